package query

import (
	"strconv"
	"strings"
	"time"

	"nba-stats-mcp/internal/domain"
)

const (
	leagueID = "00"

	// canonicalDate is the validated filter form; upstream game log
	// endpoints want upstreamDate instead.
	canonicalDate = "2006-01-02"
	upstreamDate  = "01/02/2006"
)

// dateRange validates ordering of the optional date_from/date_to pair
// and re-encodes both to the upstream date layout. Order violations are
// caught here, before any descriptor exists to fetch.
func dateRange(fs domain.FilterSet) (from, to string, err error) {
	fromRaw := fs.String("date_from")
	toRaw := fs.String("date_to")
	if fromRaw != "" && toRaw != "" && fromRaw > toRaw {
		return "", "", domain.Errorf(domain.ErrInvalidRange, "date_from %s is after date_to %s", fromRaw, toRaw).
			WithDetail("date_from", fromRaw).
			WithDetail("date_to", toRaw)
	}
	return reencodeDate(fromRaw), reencodeDate(toRaw), nil
}

func reencodeDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(canonicalDate, s)
	if err != nil {
		return s
	}
	return t.Format(upstreamDate)
}

// dashboardDefaults are the parameters the splits dashboard requires
// but this server never varies.
func dashboardDefaults() []domain.Param {
	return []domain.Param{
		{Name: "LastNGames", Value: "0"},
		{Name: "Month", Value: "0"},
		{Name: "OpponentTeamID", Value: "0"},
		{Name: "PaceAdjust", Value: "N"},
		{Name: "Period", Value: "0"},
		{Name: "PlusMinus", Value: "N"},
		{Name: "Rank", Value: "N"},
	}
}

// pair maps a canonical filter name to its upstream parameter name.
type pair struct {
	filter string
	param  string
}

func appendIfSet(params []domain.Param, fs domain.FilterSet, pairs ...pair) []domain.Param {
	for _, p := range pairs {
		if v := fs.String(p.filter); v != "" {
			params = append(params, domain.Param{Name: p.param, Value: v})
		}
	}
	return params
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// canonicalField is the normalized record field a stat category lands
// on after column canonicalization.
func canonicalField(stat string) string {
	return strings.ToLower(stat)
}
