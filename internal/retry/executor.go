package retry

import (
	"context"
	"time"

	"github.com/vvka-141/pgiban/internal/logging"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// Executor runs an operation until it succeeds, fails fatally, or the
// strategy runs out of attempts.
type Executor struct {
	classifier pgiban.ErrorClassifier
	strategy   pgiban.BackoffStrategy
	logger     pgiban.Logger
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an executor. A nil logger discards retry messages.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier pgiban.ErrorClassifier, strategy pgiban.BackoffStrategy, logger pgiban.Logger) *Executor {
	if classifier == nil {
		panic("retry: classifier cannot be nil")
	}
	if strategy == nil {
		panic("retry: strategy cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		logger:     logger,
	}
}

// NewDefaultExecutor creates the executor pgiban uses for database work:
// PostgreSQL classification with the default attempt count and delays.
func NewDefaultExecutor(logger pgiban.Logger) *Executor {
	return NewExecutor(
		NewPostgreSQLErrorClassifier(),
		NewExponentialBackoff(pgiban.DefaultRetryMaxAttempts,
			WithInitialDelay(pgiban.DefaultRetryInitialDelay),
			WithMaxDelay(pgiban.DefaultRetryMaxDelay),
		),
		logger,
	)
}

// WithOnRetry returns a copy of e that calls fn before every retry.
// The receiver is not modified.
func (e *Executor) WithOnRetry(fn func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Execute runs op, retrying transient failures. It returns nil, the first
// fatal error, the last transient error once attempts are exhausted, or the
// context's error if ctx ends while waiting.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	if err == nil || !e.classifier.IsTransient(err) {
		return err
	}

	// A negative MaxAttempts retries until ctx is done.
	limit := e.strategy.MaxAttempts()
	for attempt := 0; limit < 0 || attempt < limit; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		e.logger.Verbose("transient error (retry %d in %v): %v", attempt+1, delay, err)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		if waitErr := sleep(ctx, delay); waitErr != nil {
			return waitErr
		}

		err = op(ctx)
		if err == nil || !e.classifier.IsTransient(err) {
			return err
		}
	}

	return err
}

// Value is Execute for operations that produce a result.
func Value[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := e.Execute(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
