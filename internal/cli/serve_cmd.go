package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/spirulina/internal/api"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr, loglevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			deps := api.Deps{Store: app.Store, Advisor: app.Advisor}
			if app.Registry != nil {
				deps.Metrics = promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{Registry: app.Registry})
			}
			if app.Metrics != nil {
				deps.Observer = app.Metrics
			}
			e := api.BuildServer(deps, loglevel)

			unsubscribe := app.Store.Subscribe(func(c service.Change) {
				slog.Debug("collection changed", "collection", c.Collection, "source", c.Source)
			})
			defer unsubscribe()

			stopWatching := app.watchExternal(ctx)
			defer stopWatching()

			errc := make(chan error, 1)
			go func() {
				slog.Info("serving", "addr", addr)
				errc <- e.Start(addr)
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serving on %s: %w", addr, err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Addr, "Listen address")
	cmd.Flags().StringVar(&loglevel, "log-level", app.ServerLogLevel, "debug, info, warn, error or off")

	return cmd
}
