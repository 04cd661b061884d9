package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"releasesite/config"
	"releasesite/internal/release"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var linksFormat string

// linksDoc is the machine-readable form of the download section.
type linksDoc struct {
	Version string         `json:"version" yaml:"version"`
	Links   []release.Link `json:"links" yaml:"links"`
}

func newLinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Print the latest release's download links in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rel, err := newSource(cfg).LatestRelease(ctx, cfg.Owner, cfg.Repo)
			if err != nil {
				return err
			}
			links, err := release.Links(rel)
			if err != nil {
				return err
			}

			return writeLinks(cmd.OutOrStdout(), linksFormat, linksDoc{Version: rel.Name, Links: links})
		},
	}

	cmd.Flags().StringVarP(&linksFormat, "format", "f", "text", "Output format: text, json or yaml")

	return cmd
}

func writeLinks(w io.Writer, format string, doc linksDoc) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	case "text", "":
		bold := lipgloss.NewStyle().Bold(true)
		muted := lipgloss.NewStyle().Faint(true)

		fmt.Fprintln(w, bold.Render("Latest release: "+doc.Version))
		for _, l := range doc.Links {
			fmt.Fprintf(w, "%-22s %s  %s\n  %s\n", l.Title, l.Filename, muted.Render(l.SizeLabel()), l.URL)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}
