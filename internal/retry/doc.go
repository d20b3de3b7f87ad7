// Package retry retries operations that fail with transient errors.
//
// pgiban uses it around everything that talks to PostgreSQL: opening the
// connection pool, the install transaction and the audit scan. An operation
// is retried only while the ErrorClassifier reports its error as transient,
// with delays computed by a BackoffStrategy.
//
//	executor := retry.NewExecutor(
//		retry.NewPostgreSQLErrorClassifier(),
//		retry.NewExponentialBackoff(3),
//		logger,
//	)
//	pool, err := retry.Value(ctx, executor, func(ctx context.Context) (*pgxpool.Pool, error) {
//		return pgxpool.New(ctx, dsn)
//	})
//
// Executors are immutable and safe for concurrent use.
package retry
