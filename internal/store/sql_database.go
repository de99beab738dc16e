package store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/migrations"
)

// DB wraps the vault connection pool with the retry policy and the lock that
// serializes statements.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// mu keeps statements from interleaving, including their retries.
	mu          sync.Mutex
	busyRetries uint64
	busyBackoff time.Duration
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// withRetry runs fn under the statement lock. Errors the classifier marks
// [Retryable] are retried up to busyRetries times with exponential backoff;
// any other error, or the last retryable one, is returned as is.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	backoff := retry.WithMaxRetries(db.busyRetries, retry.NewExponential(db.busyBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "DB.withRetry").
				Msg("database busy, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
