package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"releasesite/config"
	"releasesite/internal/logger"

	"github.com/spf13/cobra"
)

var (
	getAsset  string
	getOutput string
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Download one asset of the latest release",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			src := newSource(cfg)
			rel, err := src.LatestRelease(ctx, cfg.Owner, cfg.Repo)
			if err != nil {
				return err
			}
			asset, err := rel.FindAsset(getAsset)
			if err != nil {
				return err
			}

			out := getOutput
			if out == "" {
				name, err := asset.LocalName()
				if err != nil {
					return err
				}
				out = filepath.Join(cfg.DownloadDir, name)
			}

			logger.Log.Debugw("downloading asset", "asset", asset.Name, "url", asset.BrowserDownloadURL, "out", out)
			if err := src.DownloadAsset(ctx, asset, out); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Downloaded:", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&getAsset, "asset", "", "Release asset filename (required)")
	cmd.Flags().StringVar(&getOutput, "output", "", "Output path (optional; defaults to <download.dir>/<asset>)")

	_ = cmd.MarkFlagRequired("asset")

	return cmd
}
