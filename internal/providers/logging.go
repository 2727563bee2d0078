package providers

import (
	"context"
	"log/slog"
	"time"

	"nba-stats-mcp/internal/domain"
	"nba-stats-mcp/internal/logging"
)

// loggingProvider emits one structured entry per upstream fetch with
// endpoint, latency, and table count or error.
type loggingProvider struct {
	inner  StatsProvider
	logger *slog.Logger
}

// NewLoggingProvider wraps a StatsProvider with fetch logging.
func NewLoggingProvider(inner StatsProvider, logger *slog.Logger) StatsProvider {
	return &loggingProvider{inner: inner, logger: logger}
}

func (p *loggingProvider) Fetch(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error) {
	start := time.Now()
	resp, err := p.inner.Fetch(ctx, q)
	elapsed := time.Since(start)

	if err != nil {
		logging.Error(p.logger, "upstream fetch", err,
			slog.String(logging.FieldEndpoint, q.Endpoint),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		return domain.RawResponse{}, err
	}
	logging.Info(p.logger, "upstream fetch",
		slog.String(logging.FieldEndpoint, q.Endpoint),
		slog.Int(logging.FieldCount, len(resp.Tables)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
	return resp, nil
}
