package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/billdonner/obo-gen/internal/config"
	"github.com/billdonner/obo-gen/internal/generation"
	"github.com/billdonner/obo-gen/internal/platform/gemini"
	"github.com/billdonner/obo-gen/internal/platform/postgres"
	"github.com/billdonner/obo-gen/internal/platform/sqlite"
	"github.com/billdonner/obo-gen/internal/store"
)

// Deps are the collaborators the commands are built from. Zero fields fall
// back to the production implementations.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer

	LoadConfig   func(opts config.Options) (*config.Config, error)
	NewGenerator func(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Generator, error)
	NewOpener    func(cfg config.DatabaseConfig, logger *slog.Logger) (store.Opener, error)
	Migrate      func(ctx context.Context, cfg config.DatabaseConfig, command string, logger *slog.Logger, args ...string) error
}

func (d Deps) withDefaults() Deps {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.LoadConfig == nil {
		d.LoadConfig = config.Load
	}
	if d.NewGenerator == nil {
		d.NewGenerator = newGeminiGenerator
	}
	if d.NewOpener == nil {
		d.NewOpener = NewOpener
	}
	if d.Migrate == nil {
		d.Migrate = migrateDatabase
	}
	return d
}

func newGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Generator, error) {
	return gemini.NewGeminiGenerator(ctx, logger, cfg)
}

// RetryPolicy builds the store connection policy from configuration.
func RetryPolicy(cfg config.DatabaseConfig) store.RetryPolicy {
	return store.RetryPolicy{
		Attempts:  cfg.ConnectAttempts,
		BaseDelay: cfg.ConnectBaseDelay,
		MaxDelay:  cfg.ConnectMaxDelay,
	}
}

// NewOpener returns the store opener for the configured driver.
func NewOpener(cfg config.DatabaseConfig, logger *slog.Logger) (store.Opener, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.NewOpener(cfg.URL, RetryPolicy(cfg), logger), nil
	case config.DriverSQLite:
		return sqlite.NewOpener(cfg.SQLitePath, RetryPolicy(cfg), logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// migrateDatabase applies the schema. SQLite is migrated on open, so only
// "up" and "status" are meaningful there.
func migrateDatabase(ctx context.Context, cfg config.DatabaseConfig, command string, logger *slog.Logger, args ...string) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL, RetryPolicy(cfg))
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, command, logger, args...)

	case config.DriverSQLite:
		if command != "up" && command != "status" {
			return usageErrorf("migrate %s is not supported for sqlite", command)
		}
		db, err := sqlite.Open(ctx, cfg.SQLitePath, RetryPolicy(cfg), logger)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
