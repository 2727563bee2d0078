package config

import "time"

const (
	envBaseURL       = "NBA_STATS_BASE_URL"
	envTimeout       = "NBA_STATS_TIMEOUT"
	envRateInterval  = "NBA_STATS_RATE_INTERVAL"
	envRetryAttempts = "NBA_STATS_RETRY_ATTEMPTS"
	envRetryBackoff  = "NBA_STATS_RETRY_BACKOFF"
	envCacheTTL      = "CACHE_TTL"
	envCacheLiveTTL  = "CACHE_LIVE_TTL"
	envSeason        = "CURRENT_SEASON"
	envLogFormat     = "LOG_FORMAT"
	envLogLevel      = "LOG_LEVEL"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultBaseURL = "https://stats.nba.com/stats"
	// stats.nba.com can hang on slow queries; fail fast instead.
	defaultTimeout = 15 * Duration(time.Second)
	// Minimum spacing between upstream calls to avoid being blocked.
	defaultRateInterval  = 600 * Duration(time.Millisecond)
	defaultRetryAttempts = 2
	defaultRetryBackoff  = 500 * Duration(time.Millisecond)
	// Historical data changes at most daily; live scoreboard data far
	// more often.
	defaultCacheTTL     = 6 * Duration(time.Hour)
	defaultCacheLiveTTL = 30 * Duration(time.Second)
	defaultSeason       = "2025-26"
	defaultServiceName  = "nba-stats-mcp"
)
