package dispatch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"nba-stats-mcp/internal/domain"
	"nba-stats-mcp/internal/logging"
	"nba-stats-mcp/internal/metrics"
	"nba-stats-mcp/internal/normalize"
	"nba-stats-mcp/internal/providers"
	"nba-stats-mcp/internal/query"
	"nba-stats-mcp/internal/resolve"
	"nba-stats-mcp/internal/schema"
)

// Dispatcher orchestrates one tool invocation end to end: schema
// validation, entity resolution, query building, upstream fetches, and
// response normalization. All validation failures surface before the
// first upstream call.
type Dispatcher struct {
	registry *schema.Registry
	resolver *resolve.Resolver
	builder  *query.Builder
	provider providers.StatsProvider
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// New wires a Dispatcher from its collaborators.
func New(registry *schema.Registry, resolver *resolve.Resolver, builder *query.Builder, provider providers.StatsProvider, recorder *metrics.Recorder, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		resolver: resolver,
		builder:  builder,
		provider: provider,
		recorder: recorder,
		logger:   logger,
	}
}

// Registry exposes the tool catalog for transport registration.
func (d *Dispatcher) Registry() *schema.Registry {
	return d.registry
}

// Dispatch runs one tool invocation. Ambiguous entity references come
// back as a clarification result; every failure is a structured error.
func (d *Dispatcher) Dispatch(ctx context.Context, tool string, rawArgs map[string]any) (*domain.Result, error) {
	start := time.Now()
	result, err := d.dispatch(ctx, tool, rawArgs)
	elapsed := time.Since(start)

	d.recorder.RecordToolInvocation(tool, elapsed, err)
	if err != nil {
		kind := string(domain.ErrUpstreamUnavailable)
		if structured, ok := domain.AsStructured(err); ok {
			kind = string(structured.Kind)
		}
		logging.Warn(d.logger, "tool invocation failed",
			slog.String(logging.FieldTool, tool),
			slog.String(logging.FieldErrorKind, kind),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			"error", err)
		return nil, err
	}
	logging.Info(d.logger, "tool invocation",
		slog.String(logging.FieldTool, tool),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
	return result, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, tool string, rawArgs map[string]any) (*domain.Result, error) {
	sch, ok := d.registry.ForTool(tool)
	if !ok {
		return nil, domain.Errorf(domain.ErrUnknownTool, "unknown tool %q", tool).
			WithDetail("tool", tool)
	}

	fs, err := sch.Validate(rawArgs)
	if err != nil {
		return nil, err
	}

	switch tool {
	case schema.ToolSearchPlayers:
		return d.search(fs, domain.KindPlayer)
	case schema.ToolSearchTeams:
		return d.search(fs, domain.KindTeam)
	}

	entities, clarification, err := d.resolveEntities(sch, fs)
	if err != nil {
		return nil, err
	}
	if clarification != nil {
		return &domain.Result{Clarification: clarification}, nil
	}

	descriptors, spec, err := d.builder.Build(tool, entities, fs)
	if err != nil {
		return nil, err
	}

	responses, err := d.fetchAll(ctx, descriptors)
	if err != nil {
		return nil, err
	}

	normalized, err := normalize.Normalize(spec, responses)
	if err != nil {
		return nil, err
	}
	return &domain.Result{NormalizedResult: normalized}, nil
}

// search serves the resolver-only tools; no upstream call is involved.
func (d *Dispatcher) search(fs domain.FilterSet, kind domain.EntityKind) (*domain.Result, error) {
	candidates, err := d.resolver.Search(fs.String("query"), kind, fs.Int("limit"))
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(candidates))
	for _, e := range candidates {
		rec := domain.Record{
			"id":   e.ID,
			"name": e.DisplayName,
		}
		for k, v := range e.Metadata {
			rec[k] = v
		}
		records = append(records, rec)
	}
	return &domain.Result{NormalizedResult: domain.NormalizedResult{Records: records}}, nil
}

// resolveEntities resolves every entity-bearing filter present in the
// set. The first ambiguous reference short-circuits into a
// clarification; numeric references are taken as already-canonical ids.
func (d *Dispatcher) resolveEntities(sch schema.Schema, fs domain.FilterSet) (map[string]domain.Entity, *domain.Clarification, error) {
	entities := make(map[string]domain.Entity)
	for _, sp := range sch.Specs {
		if sp.Entity == "" {
			continue
		}
		raw := fs.String(sp.Name)
		if raw == "" {
			continue
		}
		if isNumericID(raw) {
			entities[sp.Name] = domain.Entity{Kind: sp.Entity, ID: raw, DisplayName: raw}
			continue
		}
		match, err := d.resolver.Resolve(raw, sp.Entity)
		if err != nil {
			return nil, nil, err
		}
		if match.Ambiguous {
			return nil, &domain.Clarification{
				Argument:   sp.Name,
				Query:      raw,
				Candidates: match.Candidates,
			}, nil
		}
		entities[sp.Name] = match.Entity
	}
	return entities, nil, nil
}

// fetchAll fetches every descriptor, concurrently when there is more
// than one, and re-establishes descriptor order for the normalizer.
func (d *Dispatcher) fetchAll(ctx context.Context, descriptors []domain.QueryDescriptor) ([]domain.RawResponse, error) {
	responses := make([]domain.RawResponse, len(descriptors))

	if len(descriptors) == 1 {
		resp, err := d.provider.Fetch(ctx, descriptors[0])
		if err != nil {
			return nil, upstreamError(descriptors[0], err)
		}
		responses[0] = resp
		return responses, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, qd := range descriptors {
		g.Go(func() error {
			resp, err := d.provider.Fetch(gctx, qd)
			if err != nil {
				return upstreamError(qd, err)
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}

// upstreamError maps transport failures onto the structured taxonomy,
// passing through errors that already carry a kind.
func upstreamError(qd domain.QueryDescriptor, err error) error {
	if _, ok := domain.AsStructured(err); ok {
		return err
	}
	return domain.WrapError(domain.ErrUpstreamUnavailable, "upstream fetch failed for "+qd.Endpoint, err).
		WithDetail("endpoint", qd.Endpoint)
}

func isNumericID(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
