package domain

// FilterSet is a validated, typed set of filter values for one tool
// invocation. Every key has passed the tool's filter schema; defaults for
// absent optional filters are already applied.
type FilterSet struct {
	Tool   string
	Values map[string]any
}

// String returns the filter as a string, or the empty string when absent.
func (f FilterSet) String(name string) string {
	if v, ok := f.Values[name].(string); ok {
		return v
	}
	return ""
}

// Int returns the filter as an int, or zero when absent.
func (f FilterSet) Int(name string) int {
	switch v := f.Values[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Bool returns the filter as a bool, or false when absent.
func (f FilterSet) Bool(name string) bool {
	if v, ok := f.Values[name].(bool); ok {
		return v
	}
	return false
}

// Has reports whether the filter carries a non-zero value.
func (f FilterSet) Has(name string) bool {
	v, ok := f.Values[name]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	case bool:
		return t
	}
	return true
}
