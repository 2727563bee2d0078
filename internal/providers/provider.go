package providers

import (
	"context"

	"nba-stats-mcp/internal/domain"
)

// StatsProvider defines how upstream statistics are fetched. A provider
// receives one fully-built query descriptor and returns the decoded
// tables verbatim; interpretation of the tables belongs to the
// normalization layer.
type StatsProvider interface {
	Fetch(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error)
}

// FetcherFunc adapts a function to the StatsProvider interface.
type FetcherFunc func(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error)

func (f FetcherFunc) Fetch(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error) {
	return f(ctx, q)
}
