package nbastats

// statsResponse is the wire shape every stats endpoint shares: one or
// more named result sets of headers plus untyped rows.
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
	// A few endpoints (leagueleaders among them) return a single
	// result set under the singular key.
	ResultSet *resultSet `json:"resultSet"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}
