package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldTool       = "tool"
	FieldEndpoint   = "endpoint"
	FieldErrorKind  = "error_kind"
	FieldQuery      = "query"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldAttempt    = "attempt"
	FieldCacheHit   = "cache_hit"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
