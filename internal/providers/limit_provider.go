package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nba-stats-mcp/internal/domain"
	"nba-stats-mcp/internal/logging"
	"nba-stats-mcp/internal/metrics"
)

const defaultMinInterval = 600 * time.Millisecond

// rateLimitedProvider wraps a StatsProvider and enforces a minimum
// interval between upstream calls to stay under the API's informal
// quota.
type rateLimitedProvider struct {
	next     StatsProvider
	interval time.Duration
	logger   *slog.Logger
	recorder *metrics.Recorder

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewRateLimitedProvider returns a StatsProvider that spaces calls at
// least interval apart. Callers block until their slot arrives.
func NewRateLimitedProvider(next StatsProvider, interval time.Duration, logger *slog.Logger, recorder *metrics.Recorder) StatsProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) Fetch(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error) {
	if p == nil || p.next == nil {
		logging.Warn(p.logger, "provider unavailable", slog.String("provider", "rate-limited"))
		return domain.RawResponse{}, ErrProviderUnavailable
	}

	if wait := p.reserve(); wait > 0 {
		p.recorder.RecordRateLimit(q.Endpoint, wait)
		logging.Info(p.logger, "spacing upstream call",
			slog.String(logging.FieldEndpoint, q.Endpoint),
			slog.Int64(logging.FieldDurationMS, wait.Milliseconds()))
		select {
		case <-ctx.Done():
			return domain.RawResponse{}, ctx.Err()
		case <-time.After(wait):
		}
	}

	return p.next.Fetch(ctx, q)
}

// reserve claims the next send slot and returns how long the caller
// must wait for it.
func (p *rateLimitedProvider) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	next := p.last.Add(p.interval)
	if next.Before(now) {
		next = now
	}
	p.last = next
	return next.Sub(now)
}
