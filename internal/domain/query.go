package domain

import (
	"net/url"
	"strings"
)

// Param is a single string-encoded upstream query parameter. Parameter
// order is significant for cache keys, so params are a slice, not a map.
type Param struct {
	Name  string
	Value string
}

// QueryDescriptor is a fully-specified, ready-to-send upstream request.
// Built once per invocation and immutable afterwards.
type QueryDescriptor struct {
	Endpoint string
	Params   []Param
	// Live marks queries whose data changes in real time (today's
	// scoreboard, in-progress box scores). Caches use a much shorter
	// TTL for live descriptors.
	Live bool
}

// Encode renders the parameters as a URL query string, preserving order.
func (d QueryDescriptor) Encode() string {
	var b strings.Builder
	for i, p := range d.Params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Fingerprint returns a stable cache key for the descriptor.
func (d QueryDescriptor) Fingerprint() string {
	return d.Endpoint + "?" + d.Encode()
}
