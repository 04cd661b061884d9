package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"releasesite/internal/logger"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	Owner string
	Repo  string

	APIBaseURL string
	// Discover resolves the releases URL from the API root's repository_url
	// template instead of building it directly.
	Discover bool
	Timeout  time.Duration

	Template      string
	SectionTarget string
	VersionTarget string
	LinksTarget   string
	HiddenClass   string
	ServeAddr     string
	DownloadDir   string
}

// Init reads config.yaml from file (or the working directory when file is empty)
// and registers defaults and RELEASESITE_* environment overrides. A missing
// ./config.yaml is fine; an explicit file that cannot be read is an error.
func Init(file string) error {
	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("config") // config.yaml
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("releasesite")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if file != "" {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		logger.Log.Infow("no config file found; using defaults", "err", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("repo.owner", "MTrop")
	viper.SetDefault("repo.name", "DoomStruct")
	viper.SetDefault("api.base_url", "https://api.github.com")
	viper.SetDefault("api.discover", false)
	viper.SetDefault("api.timeout", 60*time.Second)
	viper.SetDefault("page.template", "")
	viper.SetDefault("page.section", "#releases")
	viper.SetDefault("page.version", "#release-version")
	viper.SetDefault("page.links", ".site-release-links")
	viper.SetDefault("page.hidden_class", "site-start-hidden")
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("download.dir", "downloads")
}

// Load returns the current configuration.
func Load() (Config, error) {
	c := Config{
		Owner:         strings.TrimSpace(viper.GetString("repo.owner")),
		Repo:          strings.TrimSpace(viper.GetString("repo.name")),
		APIBaseURL:    viper.GetString("api.base_url"),
		Discover:      viper.GetBool("api.discover"),
		Timeout:       viper.GetDuration("api.timeout"),
		Template:      viper.GetString("page.template"),
		SectionTarget: viper.GetString("page.section"),
		VersionTarget: viper.GetString("page.version"),
		LinksTarget:   viper.GetString("page.links"),
		HiddenClass:   viper.GetString("page.hidden_class"),
		ServeAddr:     viper.GetString("serve.addr"),
		DownloadDir:   viper.GetString("download.dir"),
	}
	if c.Owner == "" || c.Repo == "" {
		return c, errors.New("repo.owner and repo.name are required")
	}
	return c, nil
}
