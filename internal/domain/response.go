package domain

// Table is one upstream result set: ordered column headers plus rows of
// scalar values in header order.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// RawResponse is the upstream provider's native shape. A single request
// can return several tables (e.g. roster players + coaches).
type RawResponse struct {
	Tables []Table
}

// Record is one normalized row keyed by canonical field name.
type Record map[string]any

// NormalizedResult is the only data shape the dispatcher returns. Flat
// tools fill Records; tools whose upstream response carries multiple
// datasets fill Sections keyed by dataset name.
type NormalizedResult struct {
	Records  []Record            `json:"records,omitempty"`
	Sections map[string][]Record `json:"sections,omitempty"`
}

// Clarification asks the caller to disambiguate an entity reference. It
// is a recoverable condition, not an error: the candidates carry enough
// metadata for a follow-up call.
type Clarification struct {
	Argument   string   `json:"argument"`
	Query      string   `json:"query"`
	Candidates []Entity `json:"candidates"`
}

// Result is the dispatcher's successful return value: either normalized
// data or a clarification request.
type Result struct {
	NormalizedResult
	Clarification *Clarification `json:"clarification,omitempty"`
}

// SortSpec orders normalized records by one canonical field. Sorting is
// stable: tied values keep their original relative order.
type SortSpec struct {
	Field string
	Desc  bool
}

// JoinSpec merges the tables of secondary descriptors into the primary
// descriptor's sections, joining rows on the given canonical key fields.
// Ambiguous join keys (duplicates with differing values) are an error.
type JoinSpec struct {
	Keys     []string
	Sections []string
}

// NormalizationSpec records how a tool's raw responses become a
// NormalizedResult. Built by the query builder alongside the
// descriptors; consumed by the normalizer.
type NormalizationSpec struct {
	Tool string
	// Endpoints names the alias table for each descriptor position.
	Endpoints []string
	// Sections names the primary descriptor's tables in order. Empty
	// means the first table becomes the flat Records slice.
	Sections []string
	// Join merges secondary descriptors into the primary's sections.
	Join *JoinSpec
	// MaxRows caps each table after normalization (0 = no cap).
	MaxRows int
	// Drop lists canonical fields removed from every record. A leading
	// "*" matches a suffix ("*_rank").
	Drop []string
	// Sort orders flat records before limiting.
	Sort *SortSpec
	// Limit keeps the top N flat records after sorting (0 = no limit).
	Limit int
}
