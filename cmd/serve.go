package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"releasesite/config"
	"releasesite/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var serveWatch bool

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the download page; every page load reads the latest release",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if serveWatch && cfg.Template == "" {
				return errors.New("--watch needs a template file (--template or page.template)")
			}
			r, err := newRenderer(cfg, newSource(cfg))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mux := http.NewServeMux()
			mux.Handle("/", r.Handler(logger.Log))

			srv := &http.Server{
				Addr:              cfg.ServeAddr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Log.Infow("serving download page", "addr", cfg.ServeAddr, "repo", cfg.Owner+"/"+cfg.Repo)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			if serveWatch {
				g.Go(func() error {
					return r.WatchTemplate(gctx, cfg.Template, logger.Log)
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload --template when the file changes")
	_ = viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
