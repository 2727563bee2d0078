package resolve

import (
	"sort"
	"strconv"
	"sync"

	"nba-stats-mcp/internal/domain"
)

const (
	// Candidates below this similarity never resolve.
	defaultThreshold = 0.60
	// Candidates this close to the best score are ambiguous rather than
	// silently auto-resolved.
	defaultAmbiguityBand = 0.04
)

// Player is one row of the player reference index, refreshed from the
// upstream player directory at startup or on demand.
type Player struct {
	ID        string
	Name      string
	FirstName string
	LastName  string
	Active    bool
	Team      string
	Position  string
}

type entry struct {
	entity  domain.Entity
	aliases []string // normalized forms
	active  bool
}

// Match is the outcome of resolving one free-text reference.
type Match struct {
	// Entity is the unambiguous best match; meaningful when Ambiguous
	// is false.
	Entity domain.Entity
	// Ambiguous marks multiple candidates inside the score band; the
	// caller should ask for clarification using Candidates.
	Ambiguous  bool
	Candidates []domain.Entity
}

// Config tunes resolution behavior. Zero values take defaults.
type Config struct {
	Threshold     float64
	AmbiguityBand float64
}

// Resolver fuzzy-matches free-text player/team references against
// read-only reference sets. Resolution is a pure function of the
// current reference data; SetPlayers swaps the player index atomically.
type Resolver struct {
	mu        sync.RWMutex
	players   []entry
	teams     []entry
	threshold float64
	band      float64
}

// New constructs a Resolver with the static team table preloaded.
func New(cfg Config) *Resolver {
	r := &Resolver{
		threshold: cfg.Threshold,
		band:      cfg.AmbiguityBand,
	}
	if r.threshold <= 0 {
		r.threshold = defaultThreshold
	}
	if r.band <= 0 {
		r.band = defaultAmbiguityBand
	}
	r.teams = buildTeamEntries(nbaTeams)
	return r
}

// SetPlayers replaces the player reference index.
func (r *Resolver) SetPlayers(players []Player) {
	entries := make([]entry, 0, len(players))
	for _, p := range players {
		md := map[string]string{
			"active": strconv.FormatBool(p.Active),
		}
		if p.Team != "" {
			md["team"] = p.Team
		}
		if p.Position != "" {
			md["position"] = p.Position
		}
		aliases := dedupe([]string{
			normalize(p.Name),
			normalize(p.LastName),
			normalize(p.FirstName),
		})
		entries = append(entries, entry{
			entity: domain.Entity{
				Kind:        domain.KindPlayer,
				ID:          p.ID,
				DisplayName: p.Name,
				Metadata:    md,
			},
			aliases: aliases,
			active:  p.Active,
		})
	}

	r.mu.Lock()
	r.players = entries
	r.mu.Unlock()
}

// PlayerCount reports the size of the current player index.
func (r *Resolver) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Resolve matches one free-text reference to a single entity, or flags
// ambiguity when several candidates score within the band. Fails with a
// not_found error when nothing clears the threshold.
func (r *Resolver) Resolve(query string, kind domain.EntityKind) (Match, error) {
	ranked, err := r.rank(query, kind)
	if err != nil {
		return Match{}, err
	}

	best := ranked[0]
	if best.score >= scoreExact {
		// An exact match only stays ambiguous against other exact
		// matches (distinct players sharing a name).
		exact := []domain.Entity{best.entity}
		for _, c := range ranked[1:] {
			if c.score >= scoreExact {
				exact = append(exact, c.entity)
			}
		}
		if len(exact) > 1 {
			return Match{Ambiguous: true, Candidates: exact}, nil
		}
		return Match{Entity: best.entity}, nil
	}

	candidates := []domain.Entity{best.entity}
	for _, c := range ranked[1:] {
		if best.score-c.score <= r.band {
			candidates = append(candidates, c.entity)
		}
	}
	if len(candidates) > 1 {
		return Match{Ambiguous: true, Candidates: candidates}, nil
	}
	return Match{Entity: best.entity}, nil
}

// Search returns up to limit ranked candidates for a reference, for the
// explicit search tools.
func (r *Resolver) Search(query string, kind domain.EntityKind, limit int) ([]domain.Entity, error) {
	ranked, err := r.rank(query, kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]domain.Entity, 0, limit)
	for _, c := range ranked[:limit] {
		out = append(out, c.entity)
	}
	return out, nil
}

type scored struct {
	entity domain.Entity
	score  float64
	active bool
}

func (r *Resolver) rank(query string, kind domain.EntityKind) ([]scored, error) {
	q := normalize(query)
	if q == "" {
		return nil, domain.Errorf(domain.ErrNotFound, "empty %s reference", kind)
	}

	r.mu.RLock()
	var pool []entry
	switch kind {
	case domain.KindPlayer:
		pool = r.players
	case domain.KindTeam:
		pool = r.teams
	}
	r.mu.RUnlock()

	ranked := make([]scored, 0, 8)
	for _, e := range pool {
		best := 0.0
		for _, alias := range e.aliases {
			if s := score(q, alias); s > best {
				best = s
			}
		}
		if best >= r.threshold {
			ranked = append(ranked, scored{entity: e.entity, score: best, active: e.active})
		}
	}
	if len(ranked) == 0 {
		return nil, domain.Errorf(domain.ErrNotFound, "no %s matching %q", kind, query).
			WithDetail("query", query)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].active != ranked[j].active {
			return ranked[i].active
		}
		if ranked[i].entity.DisplayName != ranked[j].entity.DisplayName {
			return ranked[i].entity.DisplayName < ranked[j].entity.DisplayName
		}
		return ranked[i].entity.ID < ranked[j].entity.ID
	})
	return ranked, nil
}

func buildTeamEntries(teams []Team) []entry {
	entries := make([]entry, 0, len(teams))
	for _, t := range teams {
		entries = append(entries, entry{
			entity: domain.Entity{
				Kind:        domain.KindTeam,
				ID:          t.ID,
				DisplayName: t.FullName,
				Aliases:     []string{t.Abbreviation, t.Nickname, t.City},
				Metadata: map[string]string{
					"abbreviation": t.Abbreviation,
					"conference":   t.Conference,
					"division":     t.Division,
				},
			},
			aliases: dedupe([]string{
				normalize(t.FullName),
				normalize(t.Abbreviation),
				normalize(t.Nickname),
				normalize(t.City),
			}),
			active: true,
		})
	}
	return entries
}

func dedupe(in []string) []string {
	out := in[:0]
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
