package schema

import "nba-stats-mcp/internal/domain"

// Tool names exposed over MCP.
const (
	ToolSearchPlayers     = "search_players"
	ToolSearchTeams       = "search_teams"
	ToolPlayerInfo        = "get_player_info"
	ToolPlayerStats       = "get_player_stats"
	ToolPlayerGameLog     = "get_player_game_log"
	ToolPlayerSplits      = "get_player_splits"
	ToolTeamStats         = "get_team_stats"
	ToolTeamGameLog       = "get_team_game_log"
	ToolTeamRoster        = "get_team_roster"
	ToolStandings         = "get_standings"
	ToolLeagueLeaders     = "get_league_leaders"
	ToolLeaguePlayerStats = "get_league_player_stats"
	ToolGameScores        = "get_game_scores"
	ToolBoxScore          = "get_box_score"
	ToolAdvancedStats     = "get_advanced_stats"
)

// Registry holds the filter schema for every tool, in a stable listing
// order. The default season is injected at construction so the catalog
// tracks the configured current season rather than a hardcoded one.
type Registry struct {
	order   []string
	schemas map[string]Schema
}

// NewRegistry builds the full tool catalog with defaultSeason filled
// into every season filter default.
func NewRegistry(defaultSeason string) *Registry {
	r := &Registry{schemas: make(map[string]Schema)}

	season := func() Spec {
		return Spec{Name: "season", Kind: Season, Default: defaultSeason, Desc: `Season string, e.g. "2023-24"`}
	}
	seasonType := func() Spec {
		return Spec{Name: "season_type", Kind: Enum, Allowed: seasonTypes, Default: "Regular Season", Desc: "Regular Season or Playoffs"}
	}
	player := func() Spec {
		return Spec{Name: "player", Kind: String, Required: true, Entity: domain.KindPlayer, Desc: "Player name or numeric player id"}
	}
	team := func() Spec {
		return Spec{Name: "team", Kind: String, Required: true, Entity: domain.KindTeam, Desc: "Team name, city, nickname, or abbreviation"}
	}

	r.add(Schema{
		Tool:        ToolSearchPlayers,
		Description: "Search NBA players by full or partial name; returns ranked candidates with id, name, team, and active status.",
		Specs: []Spec{
			{Name: "query", Kind: String, Required: true, Desc: "Full or partial player name"},
			{Name: "limit", Kind: Int, Default: 10, Min: 1, Max: 25, Desc: "Maximum candidates to return"},
		},
	})
	r.add(Schema{
		Tool:        ToolSearchTeams,
		Description: "Search NBA teams by name, city, nickname, or abbreviation.",
		Specs: []Spec{
			{Name: "query", Kind: String, Required: true, Desc: "Team name, city, nickname, or abbreviation"},
			{Name: "limit", Kind: Int, Default: 10, Min: 1, Max: 30, Desc: "Maximum candidates to return"},
		},
	})
	r.add(Schema{
		Tool:        ToolPlayerInfo,
		Description: "Player biography and headline stats: position, height, weight, draft info, current team.",
		Specs:       []Spec{player()},
	})
	r.add(Schema{
		Tool:        ToolPlayerStats,
		Description: "Career statistics season by season, with career totals, for regular season, playoffs, all-star and college.",
		Specs: []Spec{
			player(),
			{Name: "per_mode", Kind: Enum, Allowed: perModeCareer, Default: "PerGame", Desc: "PerGame, Totals, or Per36"},
		},
	})
	r.add(Schema{
		Tool:        ToolPlayerGameLog,
		Description: "Game-by-game log for a player in a season, optionally bounded by a date range.",
		Specs: []Spec{
			player(),
			season(),
			seasonType(),
			{Name: "date_from", Kind: Date, Desc: "Earliest game date, YYYY-MM-DD"},
			{Name: "date_to", Kind: Date, Desc: "Latest game date, YYYY-MM-DD"},
		},
	})
	r.add(Schema{
		Tool:        ToolPlayerSplits,
		Description: "Player splits for a season: overall, home/road, wins/losses, monthly, days-rest, starter/bench.",
		Specs: []Spec{
			player(),
			season(),
			{Name: "measure_type", Kind: Enum, Allowed: measureTypesPlayer, Default: "Base", Desc: "Base, Advanced, Misc, Scoring, or Usage"},
			{Name: "per_mode", Kind: Enum, Allowed: perModeCareer, Default: "PerGame", Desc: "PerGame, Totals, or Per36"},
			seasonType(),
		},
	})
	r.add(Schema{
		Tool:        ToolTeamStats,
		Description: "Franchise statistics year by year: record, rankings, playoff results.",
		Specs: []Spec{
			team(),
			{Name: "per_mode", Kind: Enum, Allowed: perModeCareer, Default: "PerGame", Desc: "PerGame, Totals, or Per36"},
			seasonType(),
		},
	})
	r.add(Schema{
		Tool:        ToolTeamGameLog,
		Description: "Game-by-game log for a team in a season, optionally bounded by a date range.",
		Specs: []Spec{
			team(),
			season(),
			seasonType(),
			{Name: "date_from", Kind: Date, Desc: "Earliest game date, YYYY-MM-DD"},
			{Name: "date_to", Kind: Date, Desc: "Latest game date, YYYY-MM-DD"},
		},
	})
	r.add(Schema{
		Tool:        ToolTeamRoster,
		Description: "Current roster and coaching staff for a team in a season.",
		Specs:       []Spec{team(), season()},
	})
	r.add(Schema{
		Tool:        ToolStandings,
		Description: "League standings with records, streaks, and conference/division ranks.",
		Specs:       []Spec{season(), seasonType()},
	})
	r.add(Schema{
		Tool:        ToolLeagueLeaders,
		Description: "Top players league-wide ranked by one stat category.",
		Specs: []Spec{
			{Name: "stat", Kind: Enum, Allowed: leaderStats, Default: "PTS", Desc: "Stat category to rank by"},
			season(),
			{Name: "per_mode", Kind: Enum, Allowed: perModeLeaders, Default: "PerGame", Desc: "PerGame, Totals, or Per48"},
			seasonType(),
			{Name: "top_n", Kind: Int, Default: 25, Min: 1, Max: 100, Desc: "Number of leaders to return"},
		},
	})
	r.add(Schema{
		Tool:        ToolLeaguePlayerStats,
		Description: "League-wide per-player statistics with rich filter dimensions: position, conference, division, experience, college, country, draft, size, schedule context.",
		Specs: []Spec{
			season(),
			{Name: "measure_type", Kind: Enum, Allowed: measureTypesLeague, Default: "Base", Desc: "Stat family to return"},
			{Name: "per_mode", Kind: Enum, Allowed: perModeLeague, Default: "PerGame", Desc: "PerGame, Totals, Per36, or Per48"},
			seasonType(),
			{Name: "player_position", Kind: Enum, Allowed: positions, Desc: "F, C, or G"},
			{Name: "conference", Kind: Enum, Allowed: conferences, Desc: "East or West"},
			{Name: "division", Kind: Enum, Allowed: divisions, Desc: "Division name"},
			{Name: "starter_bench", Kind: Enum, Allowed: starterBench, Desc: "Starters or Bench"},
			{Name: "player_experience", Kind: Enum, Allowed: experiences, Desc: "Rookie, Sophomore, or Veteran"},
			{Name: "college", Kind: String, Desc: `College name, e.g. "Duke"`},
			{Name: "country", Kind: String, Desc: `Country name, e.g. "France"`},
			{Name: "draft_year", Kind: String, Desc: `Draft year, e.g. "2020"`},
			{Name: "draft_pick", Kind: Enum, Allowed: draftPicks, Desc: "Draft pick range"},
			{Name: "height", Kind: String, Desc: `Height comparison, e.g. "GT 6-10"`},
			{Name: "weight", Kind: String, Desc: `Weight comparison, e.g. "GT 250"`},
			{Name: "last_n_games", Kind: Int, Min: 0, Max: 82, Desc: "Only the last N games; 0 = full season"},
			{Name: "month", Kind: Int, Min: 0, Max: 12, Desc: "Month number 1-12; 0 = all"},
			{Name: "opponent_team", Kind: String, Entity: domain.KindTeam, Desc: "Restrict to games against one opponent"},
			{Name: "outcome", Kind: Enum, Allowed: outcomes, Desc: "W or L"},
			{Name: "location", Kind: Enum, Allowed: locations, Desc: "Home or Road"},
			{Name: "shot_clock_range", Kind: Enum, Allowed: shotClockRanges, Desc: "Shot clock window"},
			{Name: "top_n", Kind: Int, Default: 75, Min: 1, Max: 200, Desc: "Number of players to return"},
		},
	})
	r.add(Schema{
		Tool:        ToolGameScores,
		Description: "Scoreboard for one date: matchups, live or final scores, and daily conference standings.",
		Specs: []Spec{
			{Name: "date", Kind: Date, Desc: "Game date, YYYY-MM-DD; omit for today"},
		},
	})
	r.add(Schema{
		Tool:        ToolBoxScore,
		Description: "Full box score for one game, optionally merged with advanced per-player metrics.",
		Specs: []Spec{
			{Name: "game_id", Kind: String, Required: true, Desc: `Upstream game id, e.g. "0022300001"`},
			{Name: "include_advanced", Kind: Bool, Default: false, Desc: "Merge advanced metrics into each row"},
		},
	})
	r.add(Schema{
		Tool:        ToolAdvancedStats,
		Description: "Advanced league stats: player tracking, hustle, defensive matchups, or synergy play types.",
		Specs: []Spec{
			{Name: "stat_type", Kind: Enum, Allowed: statTypes, Required: true, Desc: "tracking, hustle, defense, or playtype"},
			season(),
			{Name: "per_mode", Kind: Enum, Allowed: perModeSimple, Default: "PerGame", Desc: "PerGame or Totals; ignored for playtype"},
			seasonType(),
			{Name: "pt_measure_type", Kind: Enum, Allowed: ptMeasureTypes, Default: "SpeedDistance", Desc: "Tracking measure; tracking only"},
			{Name: "defense_category", Kind: Enum, Allowed: defenseCategories, Default: "Overall", Desc: "Defense shot category; defense only"},
			{Name: "play_type", Kind: Enum, Allowed: playTypes, Default: "Isolation", Desc: "Synergy play type; playtype only"},
		},
	})

	return r
}

func (r *Registry) add(s Schema) {
	r.order = append(r.order, s.Tool)
	r.schemas[s.Tool] = s
}

// ForTool returns the schema for one tool.
func (r *Registry) ForTool(name string) (Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Tools lists every schema in registration order.
func (r *Registry) Tools() []Schema {
	out := make([]Schema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.schemas[name])
	}
	return out
}
