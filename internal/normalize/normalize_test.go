package normalize

import (
	"testing"

	"nba-stats-mcp/internal/domain"
)

func TestToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PLAYER_ID", "player_id"},
		{"FG_PCT", "fg_pct"},
		{"TeamID", "team_id"},
		{"PlayoffRank", "playoff_rank"},
		{"WinPCT", "win_pct"},
		{"Conference", "conference"},
		{"GAME_DATE", "game_date"},
	}
	for _, tt := range tests {
		if got := toSnake(tt.in); got != tt.want {
			t.Fatalf("toSnake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalFieldAliases(t *testing.T) {
	if got := canonicalField("leagueleaders", "PLAYER"); got != "player_name" {
		t.Fatalf("leaders PLAYER = %q", got)
	}
	if got := canonicalField("playergamelog", "PTS"); got != "pts" {
		t.Fatalf("fallback = %q", got)
	}
}

func TestCoerceValue(t *testing.T) {
	if got := coerceValue("pts", float64(27)); got != int64(27) {
		t.Fatalf("integral float = %v (%T)", got, got)
	}
	if got := coerceValue("fg_pct", 0.51234); got != 0.512 {
		t.Fatalf("pct rounding = %v", got)
	}
	if got := coerceValue("reb", "12"); got != int64(12) {
		t.Fatalf("numeric string = %v (%T)", got, got)
	}
	if got := coerceValue("season_id", "2023-24"); got != "2023-24" {
		t.Fatalf("season string mangled: %v", got)
	}
	if got := coerceValue("matchup", "LAL vs. BOS"); got != "LAL vs. BOS" {
		t.Fatalf("text mangled: %v", got)
	}
}

func gameLogResponse() domain.RawResponse {
	return domain.RawResponse{Tables: []domain.Table{{
		Name:    "PlayerGameLog",
		Headers: []string{"GAME_DATE", "MATCHUP", "PTS", "FG_PCT"},
		Rows: [][]any{
			{"JAN 15, 2024", "LAL vs. OKC", float64(25), 0.4567},
			{"JAN 13, 2024", "LAL @ UTA", float64(32), 0.519},
		},
	}}}
}

func TestNormalizeRecords(t *testing.T) {
	spec := domain.NormalizationSpec{Tool: "get_player_game_log", Endpoints: []string{"playergamelog"}}

	result, err := Normalize(spec, []domain.RawResponse{gameLogResponse()})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("records = %d", len(result.Records))
	}
	rec := result.Records[0]
	if rec["pts"] != int64(25) {
		t.Fatalf("pts = %v (%T)", rec["pts"], rec["pts"])
	}
	if rec["fg_pct"] != 0.457 {
		t.Fatalf("fg_pct = %v", rec["fg_pct"])
	}
	if rec["matchup"] != "LAL vs. OKC" {
		t.Fatalf("matchup = %v", rec["matchup"])
	}
}

func TestNormalizeStableFieldSet(t *testing.T) {
	spec := domain.NormalizationSpec{Tool: "get_player_game_log", Endpoints: []string{"playergamelog"}}

	first, err := Normalize(spec, []domain.RawResponse{gameLogResponse()})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	second, err := Normalize(spec, []domain.RawResponse{gameLogResponse()})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for field := range first.Records[0] {
		if _, ok := second.Records[0][field]; !ok {
			t.Fatalf("field %q not stable across runs", field)
		}
	}
	if len(first.Records[0]) != len(second.Records[0]) {
		t.Fatal("field sets differ across identical inputs")
	}
}

func TestNormalizeSections(t *testing.T) {
	spec := domain.NormalizationSpec{
		Tool:      "get_team_roster",
		Endpoints: []string{"commonteamroster"},
		Sections:  []string{"players", "coaches"},
	}
	resp := domain.RawResponse{Tables: []domain.Table{
		{Headers: []string{"PLAYER", "NUM"}, Rows: [][]any{{"LeBron James", "23"}}},
		{Headers: []string{"COACH_NAME", "COACH_TYPE"}, Rows: [][]any{{"JJ Redick", "Head Coach"}}},
	}}

	result, err := Normalize(spec, []domain.RawResponse{resp})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(result.Sections["players"]) != 1 || len(result.Sections["coaches"]) != 1 {
		t.Fatalf("sections = %+v", result.Sections)
	}
}

func TestNormalizeMissingTrailingSectionStaysEmpty(t *testing.T) {
	spec := domain.NormalizationSpec{
		Tool:      "get_team_roster",
		Endpoints: []string{"commonteamroster"},
		Sections:  []string{"players", "coaches"},
	}
	resp := domain.RawResponse{Tables: []domain.Table{
		{Headers: []string{"PLAYER"}, Rows: [][]any{{"LeBron James"}}},
	}}

	result, err := Normalize(spec, []domain.RawResponse{resp})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	coaches, ok := result.Sections["coaches"]
	if !ok || coaches == nil || len(coaches) != 0 {
		t.Fatalf("coaches section should exist empty: %+v", result.Sections)
	}
}

func TestNormalizeDropPatterns(t *testing.T) {
	spec := domain.NormalizationSpec{
		Tool:      "get_league_player_stats",
		Endpoints: []string{"leaguedashplayerstats"},
		Drop:      []string{"player_id", "team_id", "*_rank"},
	}
	resp := domain.RawResponse{Tables: []domain.Table{{
		Headers: []string{"PLAYER_ID", "PLAYER_NAME", "TEAM_ID", "PTS", "PTS_RANK"},
		Rows:    [][]any{{float64(2544), "LeBron James", float64(1610612747), 25.1, float64(8)}},
	}}}

	result, err := Normalize(spec, []domain.RawResponse{resp})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	rec := result.Records[0]
	for _, gone := range []string{"player_id", "team_id", "pts_rank"} {
		if _, ok := rec[gone]; ok {
			t.Fatalf("field %q should be dropped", gone)
		}
	}
	if rec["player_name"] != "LeBron James" {
		t.Fatalf("kept fields damaged: %+v", rec)
	}
}

func TestNormalizeSortAndLimit(t *testing.T) {
	spec := domain.NormalizationSpec{
		Tool:      "get_league_leaders",
		Endpoints: []string{"leagueleaders"},
		Sort:      &domain.SortSpec{Field: "ast", Desc: true},
		Limit:     2,
	}
	resp := domain.RawResponse{Tables: []domain.Table{{
		Headers: []string{"PLAYER", "AST"},
		Rows: [][]any{
			{"Tyrese Haliburton", 10.9},
			{"Luka Doncic", 9.8},
			{"Trae Young", 10.9},
			{"Nikola Jokic", 9.0},
		},
	}}}

	result, err := Normalize(spec, []domain.RawResponse{resp})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("limit not applied: %d", len(result.Records))
	}
	// Stable sort keeps original order for equal keys.
	if result.Records[0]["player_name"] != "Tyrese Haliburton" || result.Records[1]["player_name"] != "Trae Young" {
		t.Fatalf("sort order wrong: %+v", result.Records)
	}
}

func TestNormalizeJoinMergesAdvancedFields(t *testing.T) {
	spec := domain.NormalizationSpec{
		Tool:      "get_box_score",
		Endpoints: []string{"boxscoretraditionalv2", "boxscoreadvancedv2"},
		Sections:  []string{"player_stats", "team_stats"},
		Join: &domain.JoinSpec{
			Keys:     []string{"player_id", "team_id"},
			Sections: []string{"player_stats", "team_stats"},
		},
	}
	traditional := domain.RawResponse{Tables: []domain.Table{
		{Headers: []string{"PLAYER_ID", "PLAYER_NAME", "PTS"}, Rows: [][]any{
			{float64(2544), "LeBron James", float64(28)},
			{float64(201939), "Stephen Curry", float64(31)},
		}},
		{Headers: []string{"TEAM_ID", "PTS"}, Rows: [][]any{{float64(1610612747), float64(110)}}},
	}}
	advanced := domain.RawResponse{Tables: []domain.Table{
		{Headers: []string{"PLAYER_ID", "OFF_RATING", "USG_PCT"}, Rows: [][]any{
			{float64(2544), 118.2, 0.311},
		}},
		{Headers: []string{"TEAM_ID", "PACE"}, Rows: [][]any{{float64(1610612747), 99.5}}},
	}}

	result, err := Normalize(spec, []domain.RawResponse{traditional, advanced})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	players := result.Sections["player_stats"]
	if players[0]["off_rating"] != 118.2 || players[0]["usg_pct"] != 0.311 {
		t.Fatalf("advanced fields not merged: %+v", players[0])
	}
	if players[0]["pts"] != int64(28) {
		t.Fatalf("traditional fields damaged: %+v", players[0])
	}
	if _, ok := players[1]["off_rating"]; ok {
		t.Fatal("unmatched row gained merged fields")
	}
	if result.Sections["team_stats"][0]["pace"] != 99.5 {
		t.Fatalf("team join missed: %+v", result.Sections["team_stats"])
	}
}

func TestNormalizeJoinConflict(t *testing.T) {
	spec := domain.NormalizationSpec{
		Tool:      "get_box_score",
		Endpoints: []string{"boxscoretraditionalv2", "boxscoreadvancedv2"},
		Sections:  []string{"player_stats"},
		Join: &domain.JoinSpec{
			Keys:     []string{"player_id"},
			Sections: []string{"player_stats"},
		},
	}
	traditional := domain.RawResponse{Tables: []domain.Table{
		{Headers: []string{"PLAYER_ID", "PTS"}, Rows: [][]any{{float64(2544), float64(28)}}},
	}}
	conflicting := domain.RawResponse{Tables: []domain.Table{
		{Headers: []string{"PLAYER_ID", "PTS"}, Rows: [][]any{{float64(2544), float64(30)}}},
	}}

	_, err := Normalize(spec, []domain.RawResponse{traditional, conflicting})
	if !domain.IsKind(err, domain.ErrMergeConflict) {
		t.Fatalf("expected merge_conflict, got %v", err)
	}
}

func TestNormalizeJoinDuplicateKey(t *testing.T) {
	spec := domain.NormalizationSpec{
		Tool:      "get_box_score",
		Endpoints: []string{"boxscoretraditionalv2", "boxscoreadvancedv2"},
		Sections:  []string{"player_stats"},
		Join: &domain.JoinSpec{
			Keys:     []string{"player_id"},
			Sections: []string{"player_stats"},
		},
	}
	traditional := domain.RawResponse{Tables: []domain.Table{
		{Headers: []string{"PLAYER_ID", "PTS"}, Rows: [][]any{{float64(2544), float64(28)}}},
	}}
	duplicated := domain.RawResponse{Tables: []domain.Table{
		{Headers: []string{"PLAYER_ID", "OFF_RATING"}, Rows: [][]any{
			{float64(2544), 118.2},
			{float64(2544), 120.0},
		}},
	}}

	_, err := Normalize(spec, []domain.RawResponse{traditional, duplicated})
	if !domain.IsKind(err, domain.ErrMergeConflict) {
		t.Fatalf("expected merge_conflict, got %v", err)
	}
}

func TestNormalizeMaxRows(t *testing.T) {
	spec := domain.NormalizationSpec{
		Tool:      "get_standings",
		Endpoints: []string{"leaguestandingsv3"},
		MaxRows:   1,
	}
	resp := domain.RawResponse{Tables: []domain.Table{{
		Headers: []string{"TeamName", "WINS"},
		Rows:    [][]any{{"Celtics", float64(64)}, {"Nuggets", float64(57)}},
	}}}

	result, err := Normalize(spec, []domain.RawResponse{resp})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("max rows not applied: %d", len(result.Records))
	}
	if result.Records[0]["team_name"] != "Celtics" {
		t.Fatalf("camel headers not canonicalized: %+v", result.Records[0])
	}
}

func TestNormalizeEmptyResponse(t *testing.T) {
	spec := domain.NormalizationSpec{Tool: "get_player_game_log", Endpoints: []string{"playergamelog"}}
	_, err := Normalize(spec, []domain.RawResponse{{}})
	if !domain.IsKind(err, domain.ErrUpstreamSchema) {
		t.Fatalf("expected upstream_schema, got %v", err)
	}
}
