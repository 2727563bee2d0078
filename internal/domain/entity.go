package domain

// EntityKind distinguishes the reference sets an entity can resolve against.
type EntityKind string

const (
	KindPlayer EntityKind = "player"
	KindTeam   EntityKind = "team"
)

// Entity is a resolved player or team with its canonical upstream identifier.
// Entities are request-scoped: created by the resolver, never persisted.
type Entity struct {
	Kind        EntityKind        `json:"kind"`
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Aliases     []string          `json:"aliases,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
