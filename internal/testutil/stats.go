package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
)

// StatsTable mirrors one upstream result set for stub responses.
type StatsTable struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// StatsServer is an httptest server speaking the stats API wire shape,
// routing by endpoint path and counting requests per endpoint.
type StatsServer struct {
	*httptest.Server
	hits map[string]*atomic.Int64
}

// NewStatsServer serves canned result sets keyed by endpoint name.
// Unknown endpoints return 404.
func NewStatsServer(responses map[string][]StatsTable) *StatsServer {
	hits := make(map[string]*atomic.Int64, len(responses))
	for endpoint := range responses {
		hits[endpoint] = &atomic.Int64{}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := strings.TrimPrefix(r.URL.Path, "/")
		tables, ok := responses[endpoint]
		if !ok {
			http.NotFound(w, r)
			return
		}
		hits[endpoint].Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"resource":   endpoint,
			"resultSets": tables,
		})
	})

	return &StatsServer{Server: httptest.NewServer(handler), hits: hits}
}

// Hits reports how many requests reached an endpoint.
func (s *StatsServer) Hits(endpoint string) int {
	counter, ok := s.hits[endpoint]
	if !ok {
		return 0
	}
	return int(counter.Load())
}
