package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"nba-stats-mcp/internal/domain"
)

// Kind is the declared type of a filter value.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Enum
	Date
	Bool
	// Season is a string constrained to the "2023-24" form with
	// consecutive years.
	Season
)

// Spec declares one recognized filter: its type, default, and
// validation rule. Filter names are unique within a tool's schema.
type Spec struct {
	Name     string
	Kind     Kind
	Required bool
	// Default fills the filter when absent; nil means the filter is
	// simply omitted when not provided.
	Default any
	// Allowed is the canonical value set for Enum filters; matching is
	// case-insensitive, the canonical casing is stored.
	Allowed []string
	// Min/Max clamp Int filters when Max > 0.
	Min, Max int
	// Entity marks the filter as a free-text entity reference the
	// dispatcher must resolve before building queries.
	Entity domain.EntityKind
	// Desc surfaces into the MCP tool input schema.
	Desc string
}

// Schema is the ordered filter set for one tool.
type Schema struct {
	Tool        string
	Description string
	Specs       []Spec
}

// Spec returns the named filter spec.
func (s Schema) Spec(name string) (Spec, bool) {
	for _, sp := range s.Specs {
		if sp.Name == name {
			return sp, true
		}
	}
	return Spec{}, false
}

var seasonRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Validate checks raw arguments against the schema, coerces values,
// applies defaults, and rejects unknown keys rather than dropping them.
func (s Schema) Validate(raw map[string]any) (domain.FilterSet, error) {
	fs := domain.FilterSet{Tool: s.Tool, Values: make(map[string]any, len(s.Specs))}

	// Reject unknown keys first so a misspelled filter is never
	// silently ignored. Keys are checked in sorted order to keep the
	// reported error deterministic.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := s.Spec(k); !ok {
			return domain.FilterSet{}, domain.Errorf(domain.ErrUnknownFilter, "unknown filter %q for tool %q", k, s.Tool).
				WithDetail("filter", k).
				WithDetail("tool", s.Tool)
		}
	}

	for _, sp := range s.Specs {
		val, present := raw[sp.Name]
		if !present || val == nil {
			if sp.Required {
				return domain.FilterSet{}, domain.Errorf(domain.ErrMissingFilter, "missing required filter %q for tool %q", sp.Name, s.Tool).
					WithDetail("filter", sp.Name).
					WithDetail("tool", s.Tool)
			}
			if sp.Default != nil {
				fs.Values[sp.Name] = sp.Default
			}
			continue
		}

		coerced, err := sp.coerce(val)
		if err != nil {
			return domain.FilterSet{}, err
		}
		fs.Values[sp.Name] = coerced
	}

	return fs, nil
}

func (sp Spec) coerce(val any) (any, error) {
	switch sp.Kind {
	case String:
		if s, ok := val.(string); ok {
			return s, nil
		}
		return nil, sp.invalid(val, "expected a string")

	case Int:
		n, err := coerceInt(val)
		if err != nil {
			return nil, sp.invalid(val, err.Error())
		}
		if sp.Max > 0 {
			if n > sp.Max {
				n = sp.Max
			}
			if n < sp.Min {
				n = sp.Min
			}
		}
		return n, nil

	case Float:
		switch v := val.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, sp.invalid(val, "expected a number")
			}
			return f, nil
		}
		return nil, sp.invalid(val, "expected a number")

	case Enum:
		s, ok := val.(string)
		if !ok {
			return nil, sp.invalid(val, "expected a string")
		}
		for _, allowed := range sp.Allowed {
			if strings.EqualFold(s, allowed) {
				return allowed, nil
			}
		}
		return nil, sp.invalid(val, "must be one of: "+strings.Join(sp.Allowed, ", "))

	case Date:
		s, ok := val.(string)
		if !ok {
			return nil, sp.invalid(val, "expected a date string")
		}
		if s == "" {
			return "", nil
		}
		canonical, err := coerceDate(s)
		if err != nil {
			return nil, sp.invalid(val, "expected YYYY-MM-DD or MM/DD/YYYY")
		}
		return canonical, nil

	case Bool:
		switch v := val.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
		}
		return nil, sp.invalid(val, "expected a boolean")

	case Season:
		s, ok := val.(string)
		if !ok {
			return nil, sp.invalid(val, "expected a season string")
		}
		m := seasonRe.FindStringSubmatch(s)
		if m == nil {
			return nil, sp.invalid(val, `expected a season like "2023-24"`)
		}
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		if (start+1)%100 != end {
			return nil, sp.invalid(val, "season years must be consecutive")
		}
		return s, nil
	}
	return nil, sp.invalid(val, "unsupported filter kind")
}

func (sp Spec) invalid(val any, reason string) error {
	return domain.Errorf(domain.ErrInvalidFilter, "invalid value %v for filter %q: %s", val, sp.Name, reason).
		WithDetail("filter", sp.Name).
		WithDetail("value", fmt.Sprintf("%v", val))
}

// coerceInt accepts ints, integral floats (JSON numbers), and integer
// strings. Lossy coercions are rejected, not truncated.
func coerceInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("expected an integer, got fractional %v", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("expected an integer")
		}
		return n, nil
	}
	return 0, fmt.Errorf("expected an integer")
}

// dateLayouts the schema accepts; values are canonicalized to the first.
var dateLayouts = []string{"2006-01-02", "01/02/2006"}

func coerceDate(s string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayouts[0]), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", s)
}
