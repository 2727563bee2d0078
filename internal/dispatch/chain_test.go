package dispatch

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"nba-stats-mcp/internal/cache"
	"nba-stats-mcp/internal/metrics"
	"nba-stats-mcp/internal/providers"
	"nba-stats-mcp/internal/providers/nbastats"
	"nba-stats-mcp/internal/query"
	"nba-stats-mcp/internal/resolve"
	"nba-stats-mcp/internal/schema"
	"nba-stats-mcp/internal/testutil"
)

// Exercises the full provider chain the server assembles: stats client,
// rate limiting, retries, logging, caching, dispatch.
func TestDispatchThroughFullProviderChain(t *testing.T) {
	upstream := testutil.NewStatsServer(map[string][]testutil.StatsTable{
		"leaguestandingsv3": {{
			Name:    "Standings",
			Headers: []string{"TeamName", "WINS", "LOSSES"},
			RowSet:  [][]any{{"Celtics", 64, 18}, {"Nuggets", 57, 25}},
		}},
	})
	defer upstream.Close()

	logger, buf := testutil.NewBufferLogger()
	recorder := metrics.NewRecorder()

	var provider providers.StatsProvider = nbastats.NewClient(nbastats.Config{BaseURL: upstream.URL})
	provider = providers.NewRateLimitedProvider(provider, time.Millisecond, logger, recorder)
	provider = providers.NewRetryingProvider(provider, logger, recorder, 2, time.Millisecond)
	provider = providers.NewLoggingProvider(provider, logger)
	cached := cache.New(provider, cache.Config{}, logger, recorder)

	resolver := resolve.New(resolve.Config{})
	builder := query.New("2023-24", testutil.NowAt(time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)))
	d := New(schema.NewRegistry("2023-24"), resolver, builder, cached, recorder, logger)

	const callers = 6
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Dispatch(context.Background(), schema.ToolStandings, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}

	if hits := upstream.Hits("leaguestandingsv3"); hits != 1 {
		t.Fatalf("identical concurrent dispatches should reach upstream once, got %d", hits)
	}

	result, err := d.Dispatch(context.Background(), schema.ToolStandings, nil)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(result.Records) != 2 || result.Records[0]["team_name"] != "Celtics" {
		t.Fatalf("records = %+v", result.Records)
	}
	if result.Records[0]["wins"] != int64(64) {
		t.Fatalf("wins = %v (%T)", result.Records[0]["wins"], result.Records[0]["wins"])
	}

	if recorder.ToolInvocations(schema.ToolStandings) != callers+1 {
		t.Fatalf("tool invocations = %d", recorder.ToolInvocations(schema.ToolStandings))
	}
	if !strings.Contains(buf.String(), "upstream fetch") {
		t.Fatal("provider chain logging missing")
	}
}
