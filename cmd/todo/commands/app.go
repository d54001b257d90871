package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/todolist/todolist/pkg/config"
	"github.com/todolist/todolist/pkg/stores"
	"github.com/todolist/todolist/pkg/telemetry"
)

// app holds what a command needs to reach the item store.
type app struct {
	cfg   *config.Config
	path  string
	db    *stores.SQLStore
	items stores.ItemStore
	tel   *telemetry.Telemetry
}

// resolveConfigPath returns the --config value, or the default file when it exists.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.DefaultPath
	}
	return ""
}

// openApp loads configuration, sets up telemetry, and opens a migrated store.
func openApp(ctx context.Context) (*app, error) {
	path := resolveConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Telemetry.LogLevel = "debug"
	}
	zerolog.SetGlobalLevel(telemetry.ParseLevel(cfg.Telemetry.LogLevel))

	tel, err := telemetry.NewTelemetry(cfg.TelemetryConfig(appVersion))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		_ = tel.Shutdown(ctx)
		return nil, err
	}

	return &app{
		cfg:   cfg,
		path:  path,
		db:    db,
		items: stores.NewInstrumentedStore(db, tel),
		tel:   tel,
	}, nil
}

// openStore opens and migrates the store described by cfg.
func openStore(ctx context.Context, cfg *config.Config) (*stores.SQLStore, error) {
	if err := ensureDataDir(cfg); err != nil {
		return nil, err
	}

	db, err := stores.NewSQLStore(cfg.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	if err := db.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug().
		Str("driver", cfg.Database.Driver).
		Msg("Store ready")
	return db, nil
}

// ensureDataDir creates the parent directory of a SQLite database file.
func ensureDataDir(cfg *config.Config) error {
	if cfg.Database.Driver != string(stores.DriverSQLite) {
		return nil
	}
	dsn := cfg.Database.DSN
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn = dsn[:i]
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// shutdownTimeout bounds how long close waits for telemetry to flush.
const shutdownTimeout = 5 * time.Second

// close releases the store and flushes telemetry. It still runs to completion
// when ctx was cancelled by an interrupt.
func (a *app) close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.db.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close store")
		errs = append(errs, err)
	}
	if err := a.tel.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to shut down telemetry")
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
