package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"nba-stats-mcp/internal/domain"
	"nba-stats-mcp/internal/logging"
	"nba-stats-mcp/internal/metrics"
)

const (
	defaultRetryAttempts = 2
	defaultRetryBackoff  = 500 * time.Millisecond
)

// retryingProvider wraps a StatsProvider with bounded retry/backoff for
// the idempotent reads this server issues. A 429's Retry-After takes
// precedence over the computed backoff interval.
type retryingProvider struct {
	inner       StatsProvider
	logger      *slog.Logger
	recorder    *metrics.Recorder
	maxAttempts int
	initial     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. attempts
// counts retries after the first try; non-positive inputs take
// defaults.
func NewRetryingProvider(inner StatsProvider, logger *slog.Logger, recorder *metrics.Recorder, attempts int, initial time.Duration) StatsProvider {
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultRetryBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		recorder:    recorder,
		maxAttempts: attempts,
		initial:     initial,
	}
}

func (r *retryingProvider) Fetch(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initial
	policy.RandomizationFactor = 0.2

	var resp domain.RawResponse
	attempt := 0

	operation := func() error {
		attempt++
		start := time.Now()
		fetched, err := r.inner.Fetch(ctx, q)
		r.recorder.RecordUpstreamAttempt(q.Endpoint, time.Since(start), err)
		if err == nil {
			resp = fetched
			return nil
		}
		// Schema mismatches are not transient; retrying burns quota for
		// an identical answer.
		if domain.IsKind(err, domain.ErrUpstreamSchema) {
			return backoff.Permanent(err)
		}
		if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
			r.recorder.RecordRateLimit(q.Endpoint, rl.RetryAfter)
			// Honor Retry-After before handing control back to the
			// backoff policy.
			select {
			case <-ctx.Done():
				return backoff.Permanent(ctx.Err())
			case <-time.After(rl.RetryAfter):
			}
			return err
		}
		logging.Warn(r.logger, "upstream fetch retry",
			slog.String(logging.FieldEndpoint, q.Endpoint),
			slog.Int(logging.FieldAttempt, attempt),
			"error", err)
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(r.maxAttempts)), ctx))
	if err != nil {
		logging.Error(r.logger, "upstream fetch failed", err,
			slog.String(logging.FieldEndpoint, q.Endpoint),
			slog.Int(logging.FieldAttempt, attempt))
		return domain.RawResponse{}, err
	}
	return resp, nil
}
