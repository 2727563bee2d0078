package query

import (
	"time"

	"nba-stats-mcp/internal/domain"
	"nba-stats-mcp/internal/schema"
)

// Builder translates a validated filter set plus resolved entities into
// the ordered upstream query descriptors and the normalization plan for
// their responses. Building is pure: identical inputs always produce
// identical descriptors, and no descriptor is emitted for an invalid
// request.
type Builder struct {
	season string
	now    func() time.Time
}

// New constructs a Builder. The clock decides what "today" means for
// the scoreboard default and for live-data cache classification.
func New(defaultSeason string, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{season: defaultSeason, now: now}
}

// Build maps one tool invocation to its descriptor sequence and
// normalization spec. Entities are keyed by the filter name they
// resolved from.
func (b *Builder) Build(tool string, entities map[string]domain.Entity, fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	switch tool {
	case schema.ToolPlayerInfo:
		return b.playerInfo(entities)
	case schema.ToolPlayerStats:
		return b.playerStats(entities, fs)
	case schema.ToolPlayerGameLog:
		return b.playerGameLog(entities, fs)
	case schema.ToolPlayerSplits:
		return b.playerSplits(entities, fs)
	case schema.ToolTeamStats:
		return b.teamStats(entities, fs)
	case schema.ToolTeamGameLog:
		return b.teamGameLog(entities, fs)
	case schema.ToolTeamRoster:
		return b.teamRoster(entities, fs)
	case schema.ToolStandings:
		return b.standings(fs)
	case schema.ToolLeagueLeaders:
		return b.leagueLeaders(fs)
	case schema.ToolLeaguePlayerStats:
		return b.leaguePlayerStats(entities, fs)
	case schema.ToolGameScores:
		return b.gameScores(fs)
	case schema.ToolBoxScore:
		return b.boxScore(fs)
	case schema.ToolAdvancedStats:
		return b.advancedStats(fs)
	}
	return nil, domain.NormalizationSpec{}, domain.Errorf(domain.ErrUnknownTool, "no query mapping for tool %q", tool)
}

func (b *Builder) playerInfo(entities map[string]domain.Entity) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	qd := domain.QueryDescriptor{
		Endpoint: "commonplayerinfo",
		Params: []domain.Param{
			{Name: "PlayerID", Value: entities["player"].ID},
		},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolPlayerInfo,
		Endpoints: []string{qd.Endpoint},
		Sections:  []string{"info", "headline_stats"},
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) playerStats(entities map[string]domain.Entity, fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	qd := domain.QueryDescriptor{
		Endpoint: "playercareerstats",
		Params: []domain.Param{
			{Name: "PlayerID", Value: entities["player"].ID},
			{Name: "PerMode", Value: fs.String("per_mode")},
			{Name: "LeagueID", Value: leagueID},
		},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolPlayerStats,
		Endpoints: []string{qd.Endpoint},
		Sections: []string{
			"regular_season", "career_regular_season",
			"post_season", "career_post_season",
			"all_star", "career_all_star",
			"college", "career_college",
		},
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) playerGameLog(entities map[string]domain.Entity, fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	from, to, err := dateRange(fs)
	if err != nil {
		return nil, domain.NormalizationSpec{}, err
	}
	qd := domain.QueryDescriptor{
		Endpoint: "playergamelog",
		Params: []domain.Param{
			{Name: "PlayerID", Value: entities["player"].ID},
			{Name: "Season", Value: b.seasonOf(fs)},
			{Name: "SeasonType", Value: fs.String("season_type")},
			{Name: "DateFrom", Value: from},
			{Name: "DateTo", Value: to},
		},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolPlayerGameLog,
		Endpoints: []string{qd.Endpoint},
		MaxRows:   100,
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) playerSplits(entities map[string]domain.Entity, fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	qd := domain.QueryDescriptor{
		Endpoint: "playerdashboardbygeneralsplits",
		Params: append([]domain.Param{
			{Name: "PlayerID", Value: entities["player"].ID},
			{Name: "Season", Value: b.seasonOf(fs)},
			{Name: "MeasureType", Value: fs.String("measure_type")},
			{Name: "PerMode", Value: fs.String("per_mode")},
			{Name: "SeasonType", Value: fs.String("season_type")},
		}, dashboardDefaults()...),
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolPlayerSplits,
		Endpoints: []string{qd.Endpoint},
		Sections: []string{
			"overall", "location", "win_loss", "monthly",
			"pre_post_allstar", "starter_bench", "days_rest",
		},
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) teamStats(entities map[string]domain.Entity, fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	qd := domain.QueryDescriptor{
		Endpoint: "teamyearbyyearstats",
		Params: []domain.Param{
			{Name: "TeamID", Value: entities["team"].ID},
			{Name: "PerMode", Value: fs.String("per_mode")},
			{Name: "SeasonType", Value: fs.String("season_type")},
			{Name: "LeagueID", Value: leagueID},
		},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolTeamStats,
		Endpoints: []string{qd.Endpoint},
		MaxRows:   100,
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) teamGameLog(entities map[string]domain.Entity, fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	from, to, err := dateRange(fs)
	if err != nil {
		return nil, domain.NormalizationSpec{}, err
	}
	qd := domain.QueryDescriptor{
		Endpoint: "teamgamelog",
		Params: []domain.Param{
			{Name: "TeamID", Value: entities["team"].ID},
			{Name: "Season", Value: b.seasonOf(fs)},
			{Name: "SeasonType", Value: fs.String("season_type")},
			{Name: "DateFrom", Value: from},
			{Name: "DateTo", Value: to},
		},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolTeamGameLog,
		Endpoints: []string{qd.Endpoint},
		MaxRows:   100,
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) teamRoster(entities map[string]domain.Entity, fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	qd := domain.QueryDescriptor{
		Endpoint: "commonteamroster",
		Params: []domain.Param{
			{Name: "TeamID", Value: entities["team"].ID},
			{Name: "Season", Value: b.seasonOf(fs)},
		},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolTeamRoster,
		Endpoints: []string{qd.Endpoint},
		Sections:  []string{"players", "coaches"},
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) standings(fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	qd := domain.QueryDescriptor{
		Endpoint: "leaguestandingsv3",
		Params: []domain.Param{
			{Name: "LeagueID", Value: leagueID},
			{Name: "Season", Value: b.seasonOf(fs)},
			{Name: "SeasonType", Value: fs.String("season_type")},
		},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolStandings,
		Endpoints: []string{qd.Endpoint},
		MaxRows:   30,
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) leagueLeaders(fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	stat := fs.String("stat")
	qd := domain.QueryDescriptor{
		Endpoint: "leagueleaders",
		Params: []domain.Param{
			{Name: "LeagueID", Value: leagueID},
			{Name: "StatCategory", Value: stat},
			{Name: "Season", Value: b.seasonOf(fs)},
			{Name: "PerMode", Value: fs.String("per_mode")},
			{Name: "SeasonType", Value: fs.String("season_type")},
			{Name: "Scope", Value: "S"},
		},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolLeagueLeaders,
		Endpoints: []string{qd.Endpoint},
		Sort:      &domain.SortSpec{Field: canonicalField(stat), Desc: true},
		Limit:     fs.Int("top_n"),
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) leaguePlayerStats(entities map[string]domain.Entity, fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	opponentID := "0"
	if e, ok := entities["opponent_team"]; ok {
		opponentID = e.ID
	}
	params := []domain.Param{
		{Name: "Season", Value: b.seasonOf(fs)},
		{Name: "MeasureType", Value: fs.String("measure_type")},
		{Name: "PerMode", Value: fs.String("per_mode")},
		{Name: "SeasonType", Value: fs.String("season_type")},
		{Name: "LastNGames", Value: itoa(fs.Int("last_n_games"))},
		{Name: "Month", Value: itoa(fs.Int("month"))},
		{Name: "OpponentTeamID", Value: opponentID},
	}
	// Dimension filters are only sent when set; the upstream treats a
	// present-but-empty value differently from an absent one.
	params = appendIfSet(params, fs,
		pair{"player_position", "PlayerPosition"},
		pair{"conference", "Conference"},
		pair{"division", "Division"},
		pair{"starter_bench", "StarterBench"},
		pair{"player_experience", "PlayerExperience"},
		pair{"college", "College"},
		pair{"country", "Country"},
		pair{"draft_year", "DraftYear"},
		pair{"draft_pick", "DraftPick"},
		pair{"height", "Height"},
		pair{"weight", "Weight"},
		pair{"outcome", "Outcome"},
		pair{"location", "Location"},
		pair{"shot_clock_range", "ShotClockRange"},
	)

	qd := domain.QueryDescriptor{Endpoint: "leaguedashplayerstats", Params: params}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolLeaguePlayerStats,
		Endpoints: []string{qd.Endpoint},
		Drop:      []string{"player_id", "team_id", "*_rank"},
		Limit:     fs.Int("top_n"),
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) gameScores(fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	today := b.now().Format(canonicalDate)
	date := fs.String("date")
	if date == "" {
		date = today
	}
	qd := domain.QueryDescriptor{
		Endpoint: "scoreboardv2",
		Params: []domain.Param{
			{Name: "GameDate", Value: date},
			{Name: "LeagueID", Value: leagueID},
			{Name: "DayOffset", Value: "0"},
		},
		Live: date == today,
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolGameScores,
		Endpoints: []string{qd.Endpoint},
		Sections: []string{
			"game_header", "line_score", "series_standings", "last_meeting",
			"east_conf_standings_by_day", "west_conf_standings_by_day", "available",
		},
		MaxRows: 50,
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

func (b *Builder) boxScore(fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	gameID := fs.String("game_id")
	base := []domain.Param{
		{Name: "GameID", Value: gameID},
		{Name: "StartPeriod", Value: "0"},
		{Name: "EndPeriod", Value: "10"},
		{Name: "StartRange", Value: "0"},
		{Name: "EndRange", Value: "0"},
		{Name: "RangeType", Value: "0"},
	}

	// Box scores of in-progress games mutate, so they take the short
	// cache TTL even for past games.
	descriptors := []domain.QueryDescriptor{
		{Endpoint: "boxscoretraditionalv2", Params: base, Live: true},
	}
	spec := domain.NormalizationSpec{
		Tool:      schema.ToolBoxScore,
		Endpoints: []string{"boxscoretraditionalv2"},
		Sections:  []string{"player_stats", "team_stats"},
	}

	if fs.Bool("include_advanced") {
		descriptors = append(descriptors, domain.QueryDescriptor{
			Endpoint: "boxscoreadvancedv2", Params: base, Live: true,
		})
		spec.Endpoints = append(spec.Endpoints, "boxscoreadvancedv2")
		spec.Join = &domain.JoinSpec{
			Keys:     []string{"player_id", "team_id"},
			Sections: []string{"player_stats", "team_stats"},
		}
	}
	return descriptors, spec, nil
}

func (b *Builder) advancedStats(fs domain.FilterSet) ([]domain.QueryDescriptor, domain.NormalizationSpec, error) {
	season := b.seasonOf(fs)
	seasonType := fs.String("season_type")
	perMode := fs.String("per_mode")

	var qd domain.QueryDescriptor
	switch fs.String("stat_type") {
	case "tracking":
		qd = domain.QueryDescriptor{
			Endpoint: "leaguedashptstats",
			Params: []domain.Param{
				{Name: "Season", Value: season},
				{Name: "PerMode", Value: perMode},
				{Name: "SeasonType", Value: seasonType},
				{Name: "PtMeasureType", Value: fs.String("pt_measure_type")},
				{Name: "PlayerOrTeam", Value: "Player"},
				{Name: "LeagueID", Value: leagueID},
				{Name: "LastNGames", Value: "0"},
				{Name: "Month", Value: "0"},
				{Name: "OpponentTeamID", Value: "0"},
			},
		}
	case "hustle":
		qd = domain.QueryDescriptor{
			Endpoint: "leaguehustlestatsplayer",
			Params: []domain.Param{
				{Name: "Season", Value: season},
				{Name: "PerMode", Value: perMode},
				{Name: "SeasonType", Value: seasonType},
			},
		}
	case "defense":
		qd = domain.QueryDescriptor{
			Endpoint: "leaguedashptdefend",
			Params: []domain.Param{
				{Name: "Season", Value: season},
				{Name: "PerMode", Value: perMode},
				{Name: "SeasonType", Value: seasonType},
				{Name: "DefenseCategory", Value: fs.String("defense_category")},
				{Name: "LeagueID", Value: leagueID},
			},
		}
	case "playtype":
		qd = domain.QueryDescriptor{
			Endpoint: "synergyplaytypes",
			Params: []domain.Param{
				{Name: "LeagueID", Value: leagueID},
				{Name: "SeasonYear", Value: season},
				{Name: "SeasonType", Value: seasonType},
				{Name: "PerMode", Value: "PerGame"},
				{Name: "PlayerOrTeam", Value: "P"},
				{Name: "PlayType", Value: fs.String("play_type")},
				{Name: "TypeGrouping", Value: "offensive"},
			},
		}
	default:
		return nil, domain.NormalizationSpec{}, domain.Errorf(domain.ErrInvalidFilter, "unknown stat_type %q", fs.String("stat_type")).
			WithDetail("filter", "stat_type")
	}

	spec := domain.NormalizationSpec{
		Tool:      schema.ToolAdvancedStats,
		Endpoints: []string{qd.Endpoint},
		MaxRows:   200,
	}
	return []domain.QueryDescriptor{qd}, spec, nil
}

// seasonOf prefers the validated season filter, falling back to the
// configured current season for tools whose schema omits it.
func (b *Builder) seasonOf(fs domain.FilterSet) string {
	if s := fs.String("season"); s != "" {
		return s
	}
	return b.season
}
