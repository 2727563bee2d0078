package normalize

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"nba-stats-mcp/internal/domain"
)

// Normalize converts the raw upstream tables for one tool invocation
// into the stable records shape its normalization spec describes.
// Responses arrive in descriptor sequence order; callers that fetch
// concurrently re-establish that order before calling, so the output
// is deterministic regardless of completion order.
func Normalize(spec domain.NormalizationSpec, responses []domain.RawResponse) (domain.NormalizedResult, error) {
	if len(responses) == 0 {
		return domain.NormalizedResult{}, domain.Errorf(domain.ErrUpstreamSchema, "no responses to normalize for tool %q", spec.Tool)
	}

	primary := responses[0]
	endpoint := ""
	if len(spec.Endpoints) > 0 {
		endpoint = spec.Endpoints[0]
	}

	result := domain.NormalizedResult{}
	if len(spec.Sections) > 0 {
		result.Sections = make(map[string][]domain.Record, len(spec.Sections))
		for i, name := range spec.Sections {
			if i >= len(primary.Tables) {
				// Upstream sometimes omits trailing result sets; the
				// section still appears, empty, so the shape is stable.
				result.Sections[name] = []domain.Record{}
				continue
			}
			result.Sections[name] = tableRecords(endpoint, primary.Tables[i], spec)
		}
	} else {
		if len(primary.Tables) == 0 {
			return domain.NormalizedResult{}, domain.Errorf(domain.ErrUpstreamSchema, "endpoint %q returned no tables", endpoint)
		}
		result.Records = tableRecords(endpoint, primary.Tables[0], spec)
	}

	if spec.Join != nil {
		if len(responses) < 2 {
			return domain.NormalizedResult{}, domain.Errorf(domain.ErrUpstreamSchema, "merge plan for %q expects a second response", spec.Tool)
		}
		secondary := ""
		if len(spec.Endpoints) > 1 {
			secondary = spec.Endpoints[1]
		}
		if err := join(result.Sections, spec, secondary, responses[1]); err != nil {
			return domain.NormalizedResult{}, err
		}
	}

	if spec.Sort != nil {
		sortRecords(result.Records, *spec.Sort)
	}
	if spec.Limit > 0 && len(result.Records) > spec.Limit {
		result.Records = result.Records[:spec.Limit]
	}

	return result, nil
}

// tableRecords converts one upstream table into canonical records,
// applying field drops, value coercion, and the per-table row cap.
func tableRecords(endpoint string, table domain.Table, spec domain.NormalizationSpec) []domain.Record {
	fields := make([]string, len(table.Headers))
	for i, h := range table.Headers {
		fields[i] = canonicalField(endpoint, h)
	}

	rows := table.Rows
	if spec.MaxRows > 0 && len(rows) > spec.MaxRows {
		rows = rows[:spec.MaxRows]
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec := make(domain.Record, len(fields))
		for i, field := range fields {
			if i >= len(row) {
				break
			}
			if dropped(field, spec.Drop) {
				continue
			}
			rec[field] = coerceValue(field, row[i])
		}
		records = append(records, rec)
	}
	return records
}

// join merges the secondary response's tables into the named sections,
// matching rows on the section's join key. Key collisions with
// conflicting values are an error, never a silent overwrite.
func join(sections map[string][]domain.Record, spec domain.NormalizationSpec, endpoint string, secondary domain.RawResponse) error {
	for i, sectionName := range spec.Join.Sections {
		if i >= len(secondary.Tables) {
			continue
		}
		key := spec.Join.Keys[i]
		extra := tableRecords(endpoint, secondary.Tables[i], spec)

		byKey := make(map[string]domain.Record, len(extra))
		for _, rec := range extra {
			id := keyString(rec[key])
			if id == "" {
				continue
			}
			if _, dup := byKey[id]; dup {
				return domain.Errorf(domain.ErrMergeConflict, "duplicate join key %s=%s in %s", key, id, endpoint).
					WithDetail("key", key)
			}
			byKey[id] = rec
		}

		base := sections[sectionName]
		for _, rec := range base {
			other, ok := byKey[keyString(rec[key])]
			if !ok {
				continue
			}
			for field, val := range other {
				existing, present := rec[field]
				if !present {
					rec[field] = val
					continue
				}
				if !sameValue(existing, val) && !sharedDescriptiveField(field) {
					return domain.Errorf(domain.ErrMergeConflict, "field %q disagrees across merged responses", field).
						WithDetail("field", field).
						WithDetail("key", keyString(rec[key]))
				}
			}
		}
	}
	return nil
}

// sharedDescriptiveField reports fields both box score variants carry
// with legitimately differing representations (minutes formatting).
func sharedDescriptiveField(field string) bool {
	return field == "min"
}

func sameValue(a, b any) bool {
	if af, aok := numeric(a); aok {
		if bf, bok := numeric(b); bok {
			return af == bf
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func keyString(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := numeric(v); ok && f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}

// sortRecords stable-sorts by one field, numerically when both values
// are numeric, lexically otherwise. Missing values sink to the end.
func sortRecords(records []domain.Record, by domain.SortSpec) {
	sort.SliceStable(records, func(i, j int) bool {
		a, aok := records[i][by.Field]
		b, bok := records[j][by.Field]
		if !aok || !bok {
			return aok
		}
		if af, ok := numeric(a); ok {
			if bf, ok := numeric(b); ok {
				if by.Desc {
					return af > bf
				}
				return af < bf
			}
		}
		as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
		if by.Desc {
			return as > bs
		}
		return as < bs
	})
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// dropped matches a field against the drop list; a leading "*" makes
// the pattern a suffix match.
func dropped(field string, patterns []string) bool {
	for _, p := range patterns {
		if strings.HasPrefix(p, "*") {
			if strings.HasSuffix(field, p[1:]) {
				return true
			}
			continue
		}
		if field == p {
			return true
		}
	}
	return false
}
