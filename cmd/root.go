package cmd

import (
	"fmt"
	"os"

	"releasesite/config"
	"releasesite/internal/ghrel"
	"releasesite/internal/logger"
	"releasesite/internal/releases"
	"releasesite/internal/site"
	"releasesite/tui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "releasesite",
	Short: "Render a project's latest GitHub release as a download page.",
	Long: `releasesite reads the releases of one GitHub repository, takes the most
recent one and renders a download link per asset, ordered JARs first (binary,
sources, javadoc) followed by other archives (binary, src, javadocs).

Run without arguments to browse the latest release in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return config.Init(cfgFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := tui.Run(newSource(cfg), cfg.Owner, cfg.Repo, cfg.DownloadDir); err != nil {
			logger.Log.Errorw("run tui", "err", err)
			return err
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.String("owner", "", "GitHub repository owner")
	pf.String("repo", "", "GitHub repository name")
	pf.String("api", "", "GitHub API base URL")
	pf.String("template", "", "HTML page template (default built-in page)")

	_ = viper.BindPFlag("repo.owner", pf.Lookup("owner"))
	_ = viper.BindPFlag("repo.name", pf.Lookup("repo"))
	_ = viper.BindPFlag("api.base_url", pf.Lookup("api"))
	_ = viper.BindPFlag("page.template", pf.Lookup("template"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newLinksCmd())
	rootCmd.AddCommand(newTagsCmd())
	rootCmd.AddCommand(newGetCmd())
}

func newSource(cfg config.Config) releases.Source {
	client := ghrel.NewClient()
	client.BaseURL = cfg.APIBaseURL
	if cfg.Timeout > 0 {
		client.HTTP.Timeout = cfg.Timeout
	}
	return releases.NewGitHubSource(client, releases.WithDiscovery(cfg.Discover))
}

func newRenderer(cfg config.Config, src releases.Source) (*site.Renderer, error) {
	r := site.NewRenderer(src, cfg.Owner, cfg.Repo)
	r.Targets.Section = cfg.SectionTarget
	r.Targets.Version = cfg.VersionTarget
	r.Targets.Links = cfg.LinksTarget
	r.Targets.HiddenClass = cfg.HiddenClass
	if cfg.Template != "" {
		if err := r.LoadTemplate(cfg.Template); err != nil {
			return nil, err
		}
	}
	return r, nil
}
