package metrics

import (
	"sync"
	"time"
)

type toolStats struct {
	invocations int
	errors      int
	lastLatency time.Duration
}

type upstreamStats struct {
	calls          int
	errors         int
	rateLimitHits  int
	lastRetryAfter time.Duration
	lastLatency    time.Duration
}

type cacheStats struct {
	hits      int
	misses    int
	coalesced int
}

// Recorder captures lightweight, in-memory metrics about tool and
// upstream activity. It is intentionally simple so tests can assert on
// it directly; when OTel is configured the same events also flow to the
// exporters.
type Recorder struct {
	mu       sync.Mutex
	tools    map[string]*toolStats
	upstream map[string]*upstreamStats
	cache    cacheStats
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		tools:    make(map[string]*toolStats),
		upstream: make(map[string]*upstreamStats),
		otel:     otel,
	}
}

// RecordToolInvocation tracks one dispatched tool call.
func (r *Recorder) RecordToolInvocation(tool string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.tools[tool]
	if stats == nil {
		stats = &toolStats{}
		r.tools[tool] = stats
	}
	stats.invocations++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordToolInvocation(tool, duration, err)
	}
}

// RecordUpstreamAttempt tracks one call against the stats API.
func (r *Recorder) RecordUpstreamAttempt(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureUpstream(endpoint)
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamAttempt(endpoint, duration, err)
	}
}

// RecordRateLimit tracks an upstream rate limit response.
func (r *Recorder) RecordRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureUpstream(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, retryAfter)
	}
}

// RecordCacheLookup tracks a response cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if hit {
		r.cache.hits++
	} else {
		r.cache.misses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(hit)
	}
}

// RecordCoalesced tracks a fetch that piggybacked on an in-flight call.
func (r *Recorder) RecordCoalesced() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.coalesced++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCoalesced()
	}
}

// ToolInvocations returns the recorded invocation count for a tool.
func (r *Recorder) ToolInvocations(tool string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats := r.tools[tool]; stats != nil {
		return stats.invocations
	}
	return 0
}

// ToolErrors returns the recorded error count for a tool.
func (r *Recorder) ToolErrors(tool string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats := r.tools[tool]; stats != nil {
		return stats.errors
	}
	return 0
}

// UpstreamCalls returns the attempts recorded for an endpoint.
func (r *Recorder) UpstreamCalls(endpoint string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats := r.upstream[endpoint]; stats != nil {
		return stats.calls
	}
	return 0
}

// UpstreamErrors returns the failed attempts recorded for an endpoint.
func (r *Recorder) UpstreamErrors(endpoint string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats := r.upstream[endpoint]; stats != nil {
		return stats.errors
	}
	return 0
}

// RateLimitHits returns the rate limit events seen for an endpoint.
func (r *Recorder) RateLimitHits(endpoint string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats := r.upstream[endpoint]; stats != nil {
		return stats.rateLimitHits
	}
	return 0
}

// CacheHits returns recorded cache hits.
func (r *Recorder) CacheHits() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.hits
}

// CacheMisses returns recorded cache misses.
func (r *Recorder) CacheMisses() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.misses
}

// Coalesced returns recorded coalesced fetches.
func (r *Recorder) Coalesced() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.coalesced
}

func (r *Recorder) ensureUpstream(endpoint string) *upstreamStats {
	stats, ok := r.upstream[endpoint]
	if !ok {
		stats = &upstreamStats{}
		r.upstream[endpoint] = stats
	}
	return stats
}
