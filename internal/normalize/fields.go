package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// fieldAliases overrides canonical names where the mechanical
// conversion would produce a misleading field. Keyed by endpoint, then
// by the upstream header verbatim.
var fieldAliases = map[string]map[string]string{
	"leagueleaders": {
		"PLAYER": "player_name",
		"TEAM":   "team_abbreviation",
	},
	"leaguedashptdefend": {
		"CLOSE_DEF_PERSON_ID": "player_id",
	},
	"synergyplaytypes": {
		"PLAYER_NAME": "player_name",
	},
}

// canonicalField maps an upstream column header to its stable record
// field name: explicit alias first, otherwise snake_case of the header.
func canonicalField(endpoint, header string) string {
	if aliases, ok := fieldAliases[endpoint]; ok {
		if alias, ok := aliases[header]; ok {
			return alias
		}
	}
	return toSnake(header)
}

// toSnake handles both upstream header conventions: UPPER_SNAKE
// ("PLAYER_ID") and CamelCase ("PlayoffRank", "TeamID").
func toSnake(header string) string {
	if header == strings.ToUpper(header) {
		return strings.ToLower(header)
	}
	var b strings.Builder
	b.Grow(len(header) + 4)
	runes := []rune(header)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Boundary before an upper rune, except at the start and
			// inside an acronym run ("ID", "PCT").
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// coerceValue normalizes cell values: integral floats become ints,
// numeric strings become numbers, and percentage fields are rounded to
// three decimals.
func coerceValue(field string, v any) any {
	switch n := v.(type) {
	case float64:
		return coerceNumber(field, n)
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed != "" && looksNumeric(trimmed) {
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return coerceNumber(field, f)
			}
		}
		return n
	default:
		return v
	}
}

func coerceNumber(field string, f float64) any {
	if isPercentField(field) {
		return math.Round(f*1000) / 1000
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return int64(f)
	}
	return f
}

func isPercentField(field string) bool {
	return strings.HasSuffix(field, "_pct") || field == "win_pct"
}

// looksNumeric filters out strings like "2023-24" and "W 5" that
// ParseFloat would partially accept elsewhere but we must keep verbatim.
func looksNumeric(s string) bool {
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' && i == 0:
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}
