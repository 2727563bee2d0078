package resolve

import (
	"context"
	"testing"

	"nba-stats-mcp/internal/domain"
)

func testIndex() []Player {
	return []Player{
		{ID: "2544", Name: "LeBron James", FirstName: "LeBron", LastName: "James", Active: true, Team: "LAL"},
		{ID: "201939", Name: "Stephen Curry", FirstName: "Stephen", LastName: "Curry", Active: true, Team: "GSW"},
		{ID: "203999", Name: "Nikola Jokic", FirstName: "Nikola", LastName: "Jokic", Active: true, Team: "DEN"},
		{ID: "1629027", Name: "Luka Doncic", FirstName: "Luka", LastName: "Doncic", Active: true, Team: "LAL"},
		{ID: "600015", Name: "Mike James", FirstName: "Mike", LastName: "James", Active: false},
		{ID: "76003", Name: "Kareem Abdul-Jabbar", FirstName: "Kareem", LastName: "Abdul-Jabbar", Active: false, Team: "LAL"},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r := New(Config{})
	r.SetPlayers(testIndex())
	return r
}

func TestResolveLebronIsUnambiguous(t *testing.T) {
	r := newTestResolver(t)

	match, err := r.Resolve("lebron", domain.KindPlayer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if match.Ambiguous {
		t.Fatalf("expected unique match, got candidates %+v", match.Candidates)
	}
	if match.Entity.DisplayName != "LeBron James" || match.Entity.ID != "2544" {
		t.Fatalf("unexpected entity %+v", match.Entity)
	}
}

func TestResolveSharedLastNameIsAmbiguous(t *testing.T) {
	r := newTestResolver(t)

	match, err := r.Resolve("james", domain.KindPlayer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !match.Ambiguous {
		t.Fatalf("expected ambiguity, got %+v", match.Entity)
	}
	if len(match.Candidates) != 2 {
		t.Fatalf("expected both James players, got %+v", match.Candidates)
	}
	// Active players rank first.
	if match.Candidates[0].ID != "2544" {
		t.Fatalf("expected LeBron first, got %+v", match.Candidates[0])
	}
}

func TestResolveStripsAccents(t *testing.T) {
	r := newTestResolver(t)

	match, err := r.Resolve("Dončić", domain.KindPlayer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if match.Ambiguous || match.Entity.ID != "1629027" {
		t.Fatalf("unexpected match %+v", match)
	}
}

func TestResolveHandlesPunctuation(t *testing.T) {
	r := newTestResolver(t)

	match, err := r.Resolve("abdul jabbar", domain.KindPlayer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if match.Ambiguous || match.Entity.ID != "76003" {
		t.Fatalf("unexpected match %+v", match)
	}
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve("zzzzqq", domain.KindPlayer)
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestResolveEmptyQuery(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve("  .,  ", domain.KindPlayer)
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestResolveTeamByAbbreviationAndCity(t *testing.T) {
	r := New(Config{})

	tests := []struct {
		query string
		want  string
	}{
		{"LAL", "Los Angeles Lakers"},
		{"lakers", "Los Angeles Lakers"},
		{"Boston", "Boston Celtics"},
		{"golden state warriors", "Golden State Warriors"},
		{"knicks", "New York Knicks"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			match, err := r.Resolve(tt.query, domain.KindTeam)
			if err != nil {
				t.Fatalf("resolve %q: %v", tt.query, err)
			}
			if match.Ambiguous {
				t.Fatalf("resolve %q ambiguous: %+v", tt.query, match.Candidates)
			}
			if match.Entity.DisplayName != tt.want {
				t.Fatalf("resolve %q = %q, want %q", tt.query, match.Entity.DisplayName, tt.want)
			}
		})
	}
}

func TestResolveCityWithTwoTeamsIsAmbiguous(t *testing.T) {
	r := New(Config{})

	match, err := r.Resolve("Los Angeles", domain.KindTeam)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !match.Ambiguous || len(match.Candidates) != 2 {
		t.Fatalf("expected Clippers/Lakers ambiguity, got %+v", match)
	}
}

func TestSearchRanksAndLimits(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.Search("ja", domain.KindPlayer, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}

func TestSearchDeterministicOrder(t *testing.T) {
	r := newTestResolver(t)

	first, err := r.Search("james", domain.KindPlayer, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	second, err := r.Search("james", domain.KindPlayer, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("ranking changed size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ranking not deterministic at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LeBron James", "lebron james"},
		{"  Dončić ", "doncic"},
		{"O'Neal, Shaquille", "o neal shaquille"},
		{"76ers", "76ers"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Fatalf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreTiers(t *testing.T) {
	if score("lebron james", "lebron james") != scoreExact {
		t.Fatal("exact should score 1.0")
	}
	prefix := score("lebron", "lebron james")
	sub := score("bron", "lebron james")
	fuzzy := score("lebrom james", "lebron james")
	if !(prefix > sub && sub > fuzzy && fuzzy > 0) {
		t.Fatalf("tier ordering violated: prefix=%f sub=%f fuzzy=%f", prefix, sub, fuzzy)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"jokic", "jokić", 1},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Fatalf("levenshtein(%q,%q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

type stubFetcher struct {
	resp domain.RawResponse
	err  error
	got  domain.QueryDescriptor
}

func (s *stubFetcher) Fetch(_ context.Context, q domain.QueryDescriptor) (domain.RawResponse, error) {
	s.got = q
	return s.resp, s.err
}

func TestLoadPlayersParsesDirectory(t *testing.T) {
	fetcher := &stubFetcher{
		resp: domain.RawResponse{
			Tables: []domain.Table{{
				Name:    "CommonAllPlayers",
				Headers: []string{"PERSON_ID", "DISPLAY_LAST_COMMA_FIRST", "DISPLAY_FIRST_LAST", "ROSTERSTATUS", "TEAM_ABBREVIATION"},
				Rows: [][]any{
					{float64(2544), "James, LeBron", "LeBron James", "1", "LAL"},
					{float64(76003), "Abdul-Jabbar, Kareem", "Kareem Abdul-Jabbar", "0", ""},
					{nil, nil, nil, nil, nil}, // malformed row skipped
				},
			}},
		},
	}

	players, err := LoadPlayers(context.Background(), fetcher, "2023-24")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].ID != "2544" || !players[0].Active || players[0].Team != "LAL" {
		t.Fatalf("unexpected first player %+v", players[0])
	}
	if players[1].Active {
		t.Fatal("retired player should be inactive")
	}
	if fetcher.got.Endpoint != "commonallplayers" {
		t.Fatalf("unexpected endpoint %q", fetcher.got.Endpoint)
	}
}

func TestLoadPlayersSchemaError(t *testing.T) {
	fetcher := &stubFetcher{
		resp: domain.RawResponse{
			Tables: []domain.Table{{Headers: []string{"WRONG"}, Rows: [][]any{}}},
		},
	}

	_, err := LoadPlayers(context.Background(), fetcher, "2023-24")
	if !domain.IsKind(err, domain.ErrUpstreamSchema) {
		t.Fatalf("expected upstream_schema, got %v", err)
	}
}
