package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/spirulina/internal/advisor"
	"github.com/alexanderramin/spirulina/internal/blob"
	"github.com/alexanderramin/spirulina/internal/cli"
	"github.com/alexanderramin/spirulina/internal/config"
	"github.com/alexanderramin/spirulina/internal/db"
	"github.com/alexanderramin/spirulina/internal/llm"
	"github.com/alexanderramin/spirulina/internal/metrics"
	"github.com/alexanderramin/spirulina/internal/repository"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Storage
	docs, watcher, closeStorage, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStorage()

	store := service.NewDocumentStore(docs,
		[]repository.CollectionOption{repository.WithLogger(logger)},
		service.NewLogUseCaseObserver(os.Stderr, cfg.Log.UseCases),
		m,
	)
	if err := metrics.RegisterRecords(reg, store); err != nil {
		return fmt.Errorf("registering record metrics: %w", err)
	}

	app := &cli.App{
		Store:          store,
		Metrics:        m,
		Registry:       reg,
		Addr:           cfg.Server.Addr,
		ServerLogLevel: cfg.Server.LogLevel,
		Watcher:        watcher,
		Now:            time.Now,
	}

	// Detect interactive terminal for forms and confirmations.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Advisor
	observers := llm.MultiObserver{m}
	if cfg.LLM.LogCalls {
		observers = append(observers, llm.NewLogObserver(os.Stderr))
	}
	client, err := llm.NewClient(cfg.LLM, observers)
	if err != nil {
		slog.Warn("advisor disabled", "error", err)
	} else {
		timeout := time.Duration(cfg.LLM.TimeoutMs) * time.Millisecond
		app.Advisor = advisor.New(advisor.NewLLMAnswerer(client),
			advisor.WithTimeout(timeout),
			advisor.WithLogger(logger),
		)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openStorage returns the document store named by cfg. The watcher is nil
// unless the fs driver has watching enabled.
func openStorage(ctx context.Context, cfg config.StorageConfig) (repository.DocumentStore, service.ExternalWatcher, func(), error) {
	if cfg.IsSQL() {
		database, err := db.Open(cfg.Dialect(), cfg.ConnString())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLDocumentStore(database, cfg.Dialect()), nil, func() { database.Close() }, nil
	}

	bs, err := blob.Open(ctx, cfg.Blob())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening %s storage: %w", cfg.Driver, err)
	}
	docs := repository.NewBlobDocumentStore(bs)
	var watcher service.ExternalWatcher
	if cfg.Driver == config.StorageFS && cfg.Watch {
		watcher = docs
	}
	closer := func() {}
	if c, ok := bs.(io.Closer); ok {
		closer = func() { c.Close() }
	}
	return docs, watcher, closer, nil
}
