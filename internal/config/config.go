package config

// Config holds runtime configuration for the server.
type Config struct {
	Upstream UpstreamConfig
	Cache    CacheConfig
	Season   string
	Log      LogConfig
	Metrics  MetricsConfig
}

// UpstreamConfig controls how the stats.nba.com client behaves.
type UpstreamConfig struct {
	BaseURL       string
	Timeout       Duration
	RateInterval  Duration
	RetryAttempts int
	RetryBackoff  Duration
}

// CacheConfig controls response cache TTLs.
type CacheConfig struct {
	TTL     Duration
	LiveTTL Duration
}

// LogConfig controls log output.
type LogConfig struct {
	Format string
	Level  string
}

// MetricsConfig controls telemetry export.
type MetricsConfig struct {
	Enabled      bool
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Upstream: UpstreamConfig{
			BaseURL:       envOrDefault(envBaseURL, defaultBaseURL),
			Timeout:       durationEnvOrDefault(envTimeout, defaultTimeout),
			RateInterval:  durationEnvOrDefault(envRateInterval, defaultRateInterval),
			RetryAttempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
			RetryBackoff:  durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		},
		Cache: CacheConfig{
			TTL:     durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
			LiveTTL: durationEnvOrDefault(envCacheLiveTTL, defaultCacheLiveTTL),
		},
		Season: envOrDefault(envSeason, defaultSeason),
		Log: LogConfig{
			Format: envOrDefault(envLogFormat, "text"),
			Level:  envOrDefault(envLogLevel, "info"),
		},
		Metrics: MetricsConfig{
			Enabled:      boolEnvOrDefault(envMetricsOn, false),
			ServiceName:  envOrDefault(envOtelService, defaultServiceName),
			OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
			OtlpInsecure: boolEnvOrDefault(envOtelInsecure, false),
		},
	}
}
