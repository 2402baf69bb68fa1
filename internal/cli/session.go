package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/ariel-frischer/whatsnew/internal/config"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/ariel-frischer/whatsnew/internal/logging"
	"github.com/ariel-frischer/whatsnew/internal/progress"
	"github.com/ariel-frischer/whatsnew/internal/readstate"
	"github.com/ariel-frischer/whatsnew/internal/whatsnew"
	"github.com/spf13/cobra"
)

// session is everything one command invocation needs: the effective config,
// the loaded catalogue and the panel backed by persisted read state.
type session struct {
	cfg       *config.Configuration
	logger    *slog.Logger
	catalogue *changelog.Catalogue
	tracker   *readstate.Tracker
	panel     *whatsnew.Controller
}

// newSession loads config, catalogue and read state for cmd.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, cfg.Plain).
		With("profile", cfg.Profile)

	cat, err := loadCatalogue(cmd.Context(), cfg, logger, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	store := openStore(cfg, logger)
	tracker := readstate.NewTracker(store, readstate.WithLogger(logger))

	return &session{
		cfg:       cfg,
		logger:    logger,
		catalogue: cat,
		tracker:   tracker,
		panel:     whatsnew.NewController(cat, tracker),
	}, nil
}

// Close releases the read-state store.
func (s *session) Close() {
	if err := s.tracker.Close(); err != nil {
		s.logger.Debug("closing read state", "error", err)
	}
}

// loadConfig loads the layered configuration and applies persistent flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}

	if f := cmd.Flags().Lookup("plain"); f != nil && f.Changed {
		cfg.Plain, _ = cmd.Flags().GetBool("plain")
	}
	if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
		cfg.Profile = profile
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// loadCatalogue loads the catalogue from the configured source. A served
// catalogue that cannot be fetched falls back to the embedded one.
func loadCatalogue(ctx context.Context, cfg *config.Configuration, logger *slog.Logger, status io.Writer) (*changelog.Catalogue, error) {
	logger = logger.With("component", "changelog", "source", cfg.Source)

	switch cfg.Source {
	case config.SourceFile:
		cat, err := changelog.Load(cfg.ChangelogPath)
		if err != nil {
			return nil, clierrors.ChangelogInvalid(cfg.ChangelogPath, err)
		}
		logger.Debug("catalogue loaded", "path", cfg.ChangelogPath, "entries", cat.Len())
		return cat, nil

	case config.SourceRemote:
		ctx, cancel := context.WithTimeout(ctx, cfg.RemoteTimeout)
		defer cancel()

		stop := progress.Start(status, cfg.Plain, " Fetching changelog...")
		cat, fromRemote, err := changelog.FetchRemoteWithFallback(ctx, cfg.RemoteURL)
		stop()

		if cat == nil {
			return nil, clierrors.ChangelogInvalid(cfg.RemoteURL, err)
		}
		if !fromRemote {
			logger.Warn("served changelog unavailable, using embedded", "url", cfg.RemoteURL, "error", err)
		}
		return cat, nil

	default:
		cat, err := changelog.LoadEmbedded()
		if err != nil {
			return nil, clierrors.ChangelogInvalid("embedded", err)
		}
		return cat, nil
	}
}

// openStore opens the configured read-state backend. A backend that cannot
// be opened degrades to process-local state so the session still works.
func openStore(cfg *config.Configuration, logger *slog.Logger) readstate.Store {
	logger = logger.With("component", "readstate", "backend", cfg.StateBackend)

	switch cfg.StateBackend {
	case config.BackendSQLite:
		store, err := readstate.NewSQLiteStore(filepath.Join(cfg.StateDir, readstate.DatabaseFile), cfg.Profile)
		if err != nil {
			logger.Warn("read state unavailable, changes will not persist", "error", err)
			return readstate.NewMemoryStore()
		}
		return store
	case config.BackendMemory:
		return readstate.NewMemoryStore()
	default:
		return readstate.NewFileStore(cfg.StateDir, cfg.Profile)
	}
}
