package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/billdonner/obo-gen/internal/store"
)

const slowQueryThreshold = 200 * time.Millisecond

// slogWriter forwards gorm's log lines to slog at debug level.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// DSN appends the connection parameters the store relies on to path.
func DSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Open connects to the SQLite database at path, creating it and its schema
// when missing.
func Open(ctx context.Context, path string, policy store.RetryPolicy, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gormLog := gormlogger.New(slogWriter{logger: logger.With(slog.String("component", "gorm"))}, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	return store.Connect(ctx, policy, func(ctx context.Context) (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(DSN(path)), &gorm.Config{
			Logger:         gormLog,
			TranslateError: true,
			NowFunc:        func() time.Time { return time.Now().UTC() },
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)

		if err := db.WithContext(ctx).AutoMigrate(&deckRecord{}, &cardRecord{}); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return db, nil
	})
}

// NewOpener returns a store.Opener for the SQLite database at path.
func NewOpener(path string, policy store.RetryPolicy, logger *slog.Logger) store.Opener {
	return func(ctx context.Context) (store.DeckStore, error) {
		db, err := Open(ctx, path, policy, logger)
		if err != nil {
			return nil, err
		}
		return NewSQLiteDeckStore(db, logger), nil
	}
}
