package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Open connects to Postgres and waits until the server answers a ping,
// retrying with a Fibonacci backoff up to attempts times.
func Open(ctx context.Context, connString string, attempts uint, logger *zap.SugaredLogger) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if attempts == 0 {
		attempts = 1
	}

	action := func(attempt uint) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			logger.Warnw("database not ready", "attempt", attempt+1, "error", err)
			return err
		}
		return nil
	}

	if err := retry.Retry(action, strategy.Limit(attempts), strategy.Backoff(backoff.Fibonacci(500*time.Millisecond))); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
