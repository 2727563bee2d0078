package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nba-stats-mcp/internal/domain"
	"nba-stats-mcp/internal/metrics"
	"nba-stats-mcp/internal/query"
	"nba-stats-mcp/internal/resolve"
	"nba-stats-mcp/internal/schema"
)

type stubProvider struct {
	mu        sync.Mutex
	fetched   []domain.QueryDescriptor
	responses map[string]domain.RawResponse
	err       error
}

func (s *stubProvider) Fetch(_ context.Context, q domain.QueryDescriptor) (domain.RawResponse, error) {
	s.mu.Lock()
	s.fetched = append(s.fetched, q)
	s.mu.Unlock()
	if s.err != nil {
		return domain.RawResponse{}, s.err
	}
	if resp, ok := s.responses[q.Endpoint]; ok {
		return resp, nil
	}
	return domain.RawResponse{Tables: []domain.Table{{
		Headers: []string{"PLAYER_ID", "PTS"},
		Rows:    [][]any{{float64(2544), float64(25)}},
	}}}, nil
}

func (s *stubProvider) calls() []domain.QueryDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.QueryDescriptor(nil), s.fetched...)
}

func newTestDispatcher(provider *stubProvider) *Dispatcher {
	resolver := resolve.New(resolve.Config{})
	resolver.SetPlayers([]resolve.Player{
		{ID: "2544", Name: "LeBron James", FirstName: "LeBron", LastName: "James", Active: true, Team: "LAL"},
		{ID: "600015", Name: "Mike James", FirstName: "Mike", LastName: "James", Active: false},
		{ID: "201939", Name: "Stephen Curry", FirstName: "Stephen", LastName: "Curry", Active: true, Team: "GSW"},
	})
	builder := query.New("2023-24", func() time.Time {
		return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	})
	return New(schema.NewRegistry("2023-24"), resolver, builder, provider, metrics.NewRecorder(), nil)
}

func TestDispatchUnknownTool(t *testing.T) {
	d := newTestDispatcher(&stubProvider{})

	_, err := d.Dispatch(context.Background(), "get_nothing", nil)
	if !domain.IsKind(err, domain.ErrUnknownTool) {
		t.Fatalf("expected unknown_tool, got %v", err)
	}
}

func TestDispatchValidationBeforeFetch(t *testing.T) {
	provider := &stubProvider{}
	d := newTestDispatcher(provider)

	_, err := d.Dispatch(context.Background(), schema.ToolLeagueLeaders, map[string]any{"seasen": "2023-24"})
	if !domain.IsKind(err, domain.ErrUnknownFilter) {
		t.Fatalf("expected unknown_filter, got %v", err)
	}
	if len(provider.calls()) != 0 {
		t.Fatal("invalid request must not reach upstream")
	}
}

func TestDispatchRangeValidationBeforeFetch(t *testing.T) {
	provider := &stubProvider{}
	d := newTestDispatcher(provider)

	_, err := d.Dispatch(context.Background(), schema.ToolPlayerGameLog, map[string]any{
		"player":    "lebron",
		"date_from": "2024-02-01",
		"date_to":   "2024-01-01",
	})
	if !domain.IsKind(err, domain.ErrInvalidRange) {
		t.Fatalf("expected invalid_range, got %v", err)
	}
	if len(provider.calls()) != 0 {
		t.Fatal("reversed range must not reach upstream")
	}
}

func TestDispatchSearchPlayers(t *testing.T) {
	provider := &stubProvider{}
	d := newTestDispatcher(provider)

	result, err := d.Dispatch(context.Background(), schema.ToolSearchPlayers, map[string]any{"query": "lebron"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(result.Records) == 0 {
		t.Fatal("expected candidates")
	}
	if result.Records[0]["name"] != "LeBron James" {
		t.Fatalf("first candidate = %+v", result.Records[0])
	}
	if len(provider.calls()) != 0 {
		t.Fatal("search tools never call upstream")
	}
}

func TestDispatchResolvesEntity(t *testing.T) {
	provider := &stubProvider{}
	d := newTestDispatcher(provider)

	_, err := d.Dispatch(context.Background(), schema.ToolPlayerStats, map[string]any{"player": "lebron"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	calls := provider.calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d", len(calls))
	}
	if got := paramValue(calls[0], "PlayerID"); got != "2544" {
		t.Fatalf("PlayerID = %q", got)
	}
}

func TestDispatchNumericIDBypassesResolver(t *testing.T) {
	provider := &stubProvider{}
	d := newTestDispatcher(provider)

	_, err := d.Dispatch(context.Background(), schema.ToolPlayerStats, map[string]any{"player": "201939"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := paramValue(provider.calls()[0], "PlayerID"); got != "201939" {
		t.Fatalf("PlayerID = %q", got)
	}
}

func TestDispatchAmbiguityReturnsClarification(t *testing.T) {
	provider := &stubProvider{}
	d := newTestDispatcher(provider)

	result, err := d.Dispatch(context.Background(), schema.ToolPlayerStats, map[string]any{"player": "james"})
	if err != nil {
		t.Fatalf("ambiguity must not be an error: %v", err)
	}
	if result.Clarification == nil {
		t.Fatal("expected clarification")
	}
	if result.Clarification.Argument != "player" || len(result.Clarification.Candidates) < 2 {
		t.Fatalf("clarification = %+v", result.Clarification)
	}
	if len(provider.calls()) != 0 {
		t.Fatal("ambiguous request must not reach upstream")
	}
}

func TestDispatchNotFound(t *testing.T) {
	d := newTestDispatcher(&stubProvider{})

	_, err := d.Dispatch(context.Background(), schema.ToolPlayerStats, map[string]any{"player": "zzzzqq"})
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestDispatchNormalizesResponse(t *testing.T) {
	provider := &stubProvider{responses: map[string]domain.RawResponse{
		"leagueleaders": {Tables: []domain.Table{{
			Headers: []string{"PLAYER", "PTS"},
			Rows: [][]any{
				{"Luka Doncic", 33.9},
				{"Joel Embiid", 34.7},
				{"Shai Gilgeous-Alexander", 30.1},
			},
		}}},
	}}
	d := newTestDispatcher(provider)

	result, err := d.Dispatch(context.Background(), schema.ToolLeagueLeaders, map[string]any{"top_n": 2})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("top_n not applied: %d", len(result.Records))
	}
	if result.Records[0]["player_name"] != "Joel Embiid" {
		t.Fatalf("sort not applied: %+v", result.Records[0])
	}
}

func TestDispatchBoxScoreFetchesBothDescriptors(t *testing.T) {
	provider := &stubProvider{responses: map[string]domain.RawResponse{
		"boxscoretraditionalv2": {Tables: []domain.Table{
			{Headers: []string{"PLAYER_ID", "PTS"}, Rows: [][]any{{float64(2544), float64(28)}}},
			{Headers: []string{"TEAM_ID", "PTS"}, Rows: [][]any{{float64(1610612747), float64(110)}}},
		}},
		"boxscoreadvancedv2": {Tables: []domain.Table{
			{Headers: []string{"PLAYER_ID", "OFF_RATING"}, Rows: [][]any{{float64(2544), 118.2}}},
			{Headers: []string{"TEAM_ID", "PACE"}, Rows: [][]any{{float64(1610612747), 99.5}}},
		}},
	}}
	d := newTestDispatcher(provider)

	result, err := d.Dispatch(context.Background(), schema.ToolBoxScore, map[string]any{
		"game_id":          "0022300001",
		"include_advanced": true,
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(provider.calls()) != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", len(provider.calls()))
	}
	players := result.Sections["player_stats"]
	if len(players) != 1 || players[0]["off_rating"] != 118.2 {
		t.Fatalf("merged section = %+v", players)
	}
}

func TestDispatchUpstreamFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	d := newTestDispatcher(provider)

	_, err := d.Dispatch(context.Background(), schema.ToolStandings, nil)
	if !domain.IsKind(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream_unavailable, got %v", err)
	}
}

func TestDispatchIdempotent(t *testing.T) {
	provider := &stubProvider{}
	d := newTestDispatcher(provider)

	args := map[string]any{"player": "lebron", "per_mode": "Totals"}
	first, err := d.Dispatch(context.Background(), schema.ToolPlayerStats, args)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	second, err := d.Dispatch(context.Background(), schema.ToolPlayerStats, args)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	calls := provider.calls()
	if calls[0].Fingerprint() != calls[1].Fingerprint() {
		t.Fatalf("descriptors differ: %q vs %q", calls[0].Fingerprint(), calls[1].Fingerprint())
	}
	if len(first.Sections["regular_season"]) != len(second.Sections["regular_season"]) {
		t.Fatal("results differ across identical dispatches")
	}
}

func paramValue(qd domain.QueryDescriptor, name string) string {
	for _, p := range qd.Params {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}
