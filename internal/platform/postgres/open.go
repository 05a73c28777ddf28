package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/billdonner/obo-gen/internal/store"
)

// Connection pool settings. The CLI holds one connection per operation.
const (
	maxOpenConns    = 2
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// ErrMissingURL is returned by Open when no database URL is configured.
var ErrMissingURL = fmt.Errorf("%w: database URL is not set (OBO_DATABASE_URL or DATABASE_URL)", store.ErrConnectionFailed)

// Open connects to PostgreSQL at databaseURL, pinging under the retry
// policy until the server answers. An empty URL fails with ErrMissingURL
// without attempting a connection.
func Open(ctx context.Context, databaseURL string, policy store.RetryPolicy) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, ErrMissingURL
	}

	return store.Connect(ctx, policy, func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open("pgx", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}

		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxIdleConns)
		db.SetConnMaxLifetime(connMaxLifetime)

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return db, nil
	})
}

// NewOpener returns a store.Opener that connects to databaseURL for each
// logical operation.
func NewOpener(databaseURL string, policy store.RetryPolicy, logger *slog.Logger) store.Opener {
	return func(ctx context.Context) (store.DeckStore, error) {
		db, err := Open(ctx, databaseURL, policy)
		if err != nil {
			return nil, err
		}
		return NewPostgresDeckStore(db, logger), nil
	}
}
