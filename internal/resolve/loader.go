package resolve

import (
	"context"
	"fmt"
	"strings"

	"nba-stats-mcp/internal/domain"
)

// Fetcher is the minimal upstream surface the loader needs.
type Fetcher interface {
	Fetch(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error)
}

// playerIndexDescriptor queries the full historical player directory.
func playerIndexDescriptor(season string) domain.QueryDescriptor {
	return domain.QueryDescriptor{
		Endpoint: "commonallplayers",
		Params: []domain.Param{
			{Name: "LeagueID", Value: "00"},
			{Name: "Season", Value: season},
			{Name: "IsOnlyCurrentSeason", Value: "0"},
		},
	}
}

// LoadPlayers fetches the upstream player directory and converts it to
// the resolver's reference index.
func LoadPlayers(ctx context.Context, fetcher Fetcher, season string) ([]Player, error) {
	resp, err := fetcher.Fetch(ctx, playerIndexDescriptor(season))
	if err != nil {
		return nil, fmt.Errorf("load player index: %w", err)
	}
	if len(resp.Tables) == 0 {
		return nil, domain.Errorf(domain.ErrUpstreamSchema, "player directory returned no tables")
	}

	table := resp.Tables[0]
	cols := columnIndex(table.Headers)
	idCol, ok := cols["PERSON_ID"]
	if !ok {
		return nil, domain.Errorf(domain.ErrUpstreamSchema, "player directory missing PERSON_ID column")
	}
	nameCol, ok := cols["DISPLAY_FIRST_LAST"]
	if !ok {
		return nil, domain.Errorf(domain.ErrUpstreamSchema, "player directory missing DISPLAY_FIRST_LAST column")
	}
	statusCol, teamCol := -1, -1
	if i, ok := cols["ROSTERSTATUS"]; ok {
		statusCol = i
	}
	if i, ok := cols["TEAM_ABBREVIATION"]; ok {
		teamCol = i
	}

	players := make([]Player, 0, len(table.Rows))
	for _, row := range table.Rows {
		id := cellString(row, idCol)
		name := cellString(row, nameCol)
		if id == "" || name == "" {
			continue
		}
		first, last := splitName(name)
		players = append(players, Player{
			ID:        id,
			Name:      name,
			FirstName: first,
			LastName:  last,
			Active:    cellString(row, statusCol) == "1",
			Team:      cellString(row, teamCol),
		})
	}
	return players, nil
}

func columnIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToUpper(h)] = i
	}
	return idx
}

func cellString(row []any, col int) string {
	if col < 0 || col >= len(row) || row[col] == nil {
		return ""
	}
	switch v := row[col].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return "", parts[0]
	}
	return parts[0], strings.Join(parts[1:], " ")
}
