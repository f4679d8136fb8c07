package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/spirulina/internal/advisor"
	"github.com/alexanderramin/spirulina/internal/metrics"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds everything CLI commands need. Advisor, Metrics, Registry and
// Watcher are optional.
type App struct {
	Store    *service.Store
	Advisor  *advisor.Advisor
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Watcher  service.ExternalWatcher

	Addr           string
	ServerLogLevel string

	// IsInteractive reports whether forms and confirmations may be shown.
	IsInteractive func() bool
	// Now is the clock used for generated documents.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// watchExternal forwards changes made by other processes to the store's
// subscribers until the returned stop func is called.
func (a *App) watchExternal(ctx context.Context) (stop func()) {
	if a.Watcher == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := a.Store.WatchExternal(ctx, a.Watcher); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("watching external changes stopped", "error", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// NewRootCmd creates the top-level "spirulina" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "spirulina",
		Short:         "Spirulina culture log, dosage calculator and advisor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPondCmd(app),
		newLogCmd(app),
		newHarvestCmd(app),
		newDashboardCmd(app),
		newDoseCmd(app),
		newAskCmd(app),
		newChatCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}
