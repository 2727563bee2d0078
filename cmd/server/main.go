package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"nba-stats-mcp/internal/cache"
	"nba-stats-mcp/internal/config"
	"nba-stats-mcp/internal/dispatch"
	"nba-stats-mcp/internal/logging"
	"nba-stats-mcp/internal/metrics"
	"nba-stats-mcp/internal/providers"
	"nba-stats-mcp/internal/providers/nbastats"
	"nba-stats-mcp/internal/query"
	"nba-stats-mcp/internal/resolve"
	"nba-stats-mcp/internal/schema"
	"nba-stats-mcp/internal/tools"
)

const appVersion = "dev"

func main() {
	transport := flag.String("transport", "stdio", "MCP transport: stdio or http")
	addr := flag.String("addr", ":8080", "listen address for http transport")
	mcpPath := flag.String("path", "/mcp", "MCP endpoint path for http transport")
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Format: cfg.Log.Format,
		Level:  cfg.Log.Level,
	}).With(logging.FieldService, cfg.Metrics.ServiceName, logging.FieldVersion, appVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, metricsHandler, shutdownMetrics, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Error(logger, "metrics setup failed", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			logging.Warn(logger, "metrics shutdown", "error", err)
		}
	}()

	provider := buildProviderChain(cfg, logger, recorder)

	resolver := resolve.New(resolve.Config{})
	bootstrapPlayers(ctx, resolver, provider, cfg.Season, logger)

	builder := query.New(cfg.Season, time.Now)
	dispatcher := dispatch.New(schema.NewRegistry(cfg.Season), resolver, builder, provider, recorder, logger)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Metrics.ServiceName,
		Version: appVersion,
	}, nil)
	tools.Register(server, dispatcher)

	switch *transport {
	case "http":
		runHTTP(ctx, server, metricsHandler, logger, *addr, *mcpPath)
	default:
		logging.Info(logger, "serving MCP over stdio")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			logging.Error(logger, "stdio transport failed", err)
			os.Exit(1)
		}
	}
}

// buildProviderChain assembles the upstream stack: stats client, call
// spacing, bounded retries, fetch logging, then the response cache.
func buildProviderChain(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.StatsProvider {
	var provider providers.StatsProvider = nbastats.NewClient(nbastats.Config{
		BaseURL:    cfg.Upstream.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Upstream.Timeout},
	})
	provider = providers.NewRateLimitedProvider(provider, cfg.Upstream.RateInterval, logger, recorder)
	provider = providers.NewRetryingProvider(provider, logger, recorder, cfg.Upstream.RetryAttempts, cfg.Upstream.RetryBackoff)
	provider = providers.NewLoggingProvider(provider, logger)
	return cache.New(provider, cache.Config{
		TTL:     cfg.Cache.TTL,
		LiveTTL: cfg.Cache.LiveTTL,
	}, logger, recorder)
}

// bootstrapPlayers loads the upstream player directory into the
// resolver. A failed first load leaves the server in teams-only
// degraded mode; a background retry fills the index when the upstream
// recovers.
func bootstrapPlayers(ctx context.Context, resolver *resolve.Resolver, provider providers.StatsProvider, season string, logger *slog.Logger) {
	players, err := resolve.LoadPlayers(ctx, provider, season)
	if err == nil {
		resolver.SetPlayers(players)
		logging.Info(logger, "player index loaded", logging.FieldCount, len(players))
		return
	}
	logging.Warn(logger, "player index unavailable, starting in teams-only mode", "error", err)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				players, err := resolve.LoadPlayers(ctx, provider, season)
				if err != nil {
					logging.Warn(logger, "player index retry failed", "error", err)
					continue
				}
				resolver.SetPlayers(players)
				logging.Info(logger, "player index loaded", logging.FieldCount, len(players))
				return
			}
		}
	}()
}
