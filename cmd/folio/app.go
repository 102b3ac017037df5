package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/folio/internal/account"
	"github.com/mmcdole/folio/internal/adapter"
	"github.com/mmcdole/folio/internal/admin"
	"github.com/mmcdole/folio/internal/bookstore"
	"github.com/mmcdole/folio/internal/catalog"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/review"
	"github.com/mmcdole/folio/internal/store"
	"github.com/mmcdole/folio/internal/tui"
)

// app holds the wired services shared by the TUI and every subcommand
type app struct {
	cfg     *adapter.Config
	svc     tui.Services
	logger  *slog.Logger
	dialog  domain.Dialog
	out     io.Writer
	closers []io.Closer
}

// newApp wires the services around a bookstore implementation
func newApp(
	cfg *adapter.Config,
	repo domain.Bookstore,
	sessions domain.SessionStore,
	opener domain.URLOpener,
	resetter account.SessionResetter,
	logger *slog.Logger,
) *app {
	if logger == nil {
		logger = adapter.NullLogger()
	}
	return &app{
		cfg: cfg,
		svc: tui.Services{
			Catalog: catalog.NewService(repo, repo, opener, logger),
			Reviews: review.NewService(repo, logger),
			Admin:   admin.NewService(repo, logger),
			Account: account.NewService(repo, sessions, resetter, logger),
		},
		logger: logger,
	}
}

// openApp loads configuration and connects to the configured server
func openApp() (*app, error) {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var closers []io.Closer
	logger, logFile, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		closers = append(closers, logFile)
	}
	slog.SetDefault(logger)

	logger.Info("starting folio", "version", Version, "server", cfg.Server.URL)

	sessions, err := store.NewSessionStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		closeAll(closers)
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	closers = append([]io.Closer{sessions}, closers...)

	client, err := bookstore.NewClient(bookstore.Options{
		BaseURL:           cfg.Server.URL,
		Credentials:       cfg.Server.Credentials,
		Timeout:           cfg.Server.Timeout,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		Store:             sessions,
	}, logger)
	if err != nil {
		closeAll(closers)
		return nil, fmt.Errorf("failed to create bookstore client: %w", err)
	}

	launcher := adapter.NewBrowserLauncher(cfg.Browser.Command, cfg.Browser.Args, logger)

	a := newApp(cfg, client, sessions, launcher, client, logger)
	a.closers = closers
	return a, nil
}

// Close releases the session store and the log file
func (a *app) Close() error {
	return closeAll(a.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
