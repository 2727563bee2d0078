package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"nba-stats-mcp/internal/domain"
	"nba-stats-mcp/internal/logging"
	"nba-stats-mcp/internal/metrics"
	"nba-stats-mcp/internal/providers"
)

const (
	defaultTTL     = 6 * time.Hour
	defaultLiveTTL = 30 * time.Second
)

type entry struct {
	resp      domain.RawResponse
	expiresAt time.Time
}

// Config tunes cache behavior. Zero durations take defaults.
type Config struct {
	// TTL applies to historical data, LiveTTL to descriptors flagged
	// live (today's scoreboard, box scores).
	TTL     time.Duration
	LiveTTL time.Duration
}

// CachingProvider decorates a StatsProvider with a TTL response cache
// keyed by descriptor fingerprint. Entries are stored once and never
// mutated; concurrent identical fetches coalesce into a single
// upstream call.
type CachingProvider struct {
	inner    providers.StatsProvider
	ttl      time.Duration
	liveTTL  time.Duration
	logger   *slog.Logger
	recorder *metrics.Recorder

	mu      sync.RWMutex
	entries map[string]entry

	group singleflight.Group
	now   func() time.Time
}

// New wraps inner with caching and request coalescing.
func New(inner providers.StatsProvider, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *CachingProvider {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	liveTTL := cfg.LiveTTL
	if liveTTL <= 0 {
		liveTTL = defaultLiveTTL
	}
	return &CachingProvider{
		inner:    inner,
		ttl:      ttl,
		liveTTL:  liveTTL,
		logger:   logger,
		recorder: recorder,
		entries:  make(map[string]entry),
		now:      time.Now,
	}
}

// Fetch serves from cache when fresh, otherwise fetches upstream. All
// goroutines requesting the same fingerprint while a fetch is in
// flight share its outcome.
func (c *CachingProvider) Fetch(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error) {
	key := q.Fingerprint()

	if resp, ok := c.lookup(key); ok {
		c.recorder.RecordCacheLookup(true)
		logging.Info(c.logger, "cache hit",
			slog.String(logging.FieldEndpoint, q.Endpoint),
			slog.Bool(logging.FieldCacheHit, true))
		return resp, nil
	}
	c.recorder.RecordCacheLookup(false)

	v, err, shared := c.group.Do(key, func() (any, error) {
		resp, err := c.inner.Fetch(ctx, q)
		if err != nil {
			return domain.RawResponse{}, err
		}
		c.store(key, q, resp)
		return resp, nil
	})
	if shared {
		c.recorder.RecordCoalesced()
	}
	if err != nil {
		return domain.RawResponse{}, err
	}
	return v.(domain.RawResponse), nil
}

// Invalidate drops one fingerprint, for on-demand refresh paths.
func (c *CachingProvider) Invalidate(q domain.QueryDescriptor) {
	c.mu.Lock()
	delete(c.entries, q.Fingerprint())
	c.mu.Unlock()
}

// Len reports the number of cached entries, expired or not.
func (c *CachingProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *CachingProvider) lookup(key string) (domain.RawResponse, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return domain.RawResponse{}, false
	}
	return e.resp, true
}

func (c *CachingProvider) store(key string, q domain.QueryDescriptor, resp domain.RawResponse) {
	ttl := c.ttl
	if q.Live {
		ttl = c.liveTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{resp: resp, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}
