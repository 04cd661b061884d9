package cmd

import (
	"bytes"
	"context"
	"io"
	"time"

	"releasesite/config"
	"releasesite/internal/ghrel"
	"releasesite/internal/logger"

	"github.com/spf13/cobra"
)

var (
	renderOut      string
	renderFallback bool
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the download page for the latest release once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			r, err := newRenderer(cfg, newSource(cfg))
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := r.Render(ctx, &buf); err != nil {
				if !renderFallback {
					return err
				}
				logger.Log.Warnw("render failed; writing page with hidden release section", "err", err)
				buf.Reset()
				if err := r.Fallback(&buf); err != nil {
					return err
				}
			}

			if renderOut == "" || renderOut == "-" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			return ghrel.WriteFile(renderOut, func(w io.Writer) error {
				_, err := buf.WriteTo(w)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&renderFallback, "fallback", false, "On failure write the unrendered page instead of exiting non-zero")

	return cmd
}
