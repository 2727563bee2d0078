package metrics

// Attribute keys shared by all exported instruments.
const (
	AttrTool     = "tool"
	AttrEndpoint = "endpoint"
	AttrKind     = "error_kind"
	AttrOutcome  = "outcome"
)
