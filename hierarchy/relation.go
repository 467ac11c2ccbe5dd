package hierarchy

import (
	"context"
	"log/slog"
	"sort"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/internal/trace"
)

// AddRelation installs a symmetric relation edge between a and b. rel
// maps a-node ids to the b-node ids they relate to; the reverse
// direction is derived automatically so Relation(b, a) returns a
// consistent inverse, matching the original's symmetric edge storage
// (neither direction implies a typing). Two parallel relation edges
// between the same pair are disallowed, regardless of which order they
// were first added in.
func (h *Hierarchy) AddRelation(ctx context.Context, a, b string, rel map[string][]string, attrs attrval.Dict) error {
	op := trace.Begin(ctx, h.logger, "regraph.hierarchy.add_relation",
		slog.String("a", a), slog.String("b", b))
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.graphs[a]; !ok {
		err := errGraphNotFound(a)
		op.End(err)
		return err
	}
	if _, ok := h.graphs[b]; !ok {
		err := errGraphNotFound(b)
		op.End(err)
		return err
	}
	if _, exists := h.relations[relationKey{a, b}]; exists {
		err := errRelationExists(a, b)
		op.End(err)
		return err
	}
	if _, exists := h.relations[relationKey{b, a}]; exists {
		err := errRelationExists(a, b)
		op.End(err)
		return err
	}

	forward := cloneRel(rel)
	reverse := invertRel(forward)

	h.relations[relationKey{a, b}] = forward
	h.relations[relationKey{b, a}] = reverse
	h.relationKeys[a][b] = struct{}{}
	h.relationKeys[b][a] = struct{}{}

	op.End(nil)
	return nil
}

// Relation returns the a→b side of the relation between a and b, if
// one exists.
func (h *Hierarchy) Relation(a, b string) (map[string][]string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rel, ok := h.relations[relationKey{a, b}]
	if !ok {
		return nil, false
	}
	return cloneRel(rel), true
}

// RelatedGraphs returns the graphs related to id, sorted.
func (h *Hierarchy) RelatedGraphs(id string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.relationKeys[id]))
	for other := range h.relationKeys[id] {
		out = append(out, other)
	}
	sort.Strings(out)
	return out
}

// RemoveRelation deletes the relation edge between a and b, independent
// of any typing edges between them (spec.md's distillation names only
// remove_graph; the original keeps relations and typings as separate
// edge tables, and removing one relation without touching graphs or
// typings is a natural, non-excluded operation).
func (h *Hierarchy) RemoveRelation(ctx context.Context, a, b string) error {
	op := trace.Begin(ctx, h.logger, "regraph.hierarchy.remove_relation",
		slog.String("a", a), slog.String("b", b))
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.relations[relationKey{a, b}]
	if !ok {
		_, ok = h.relations[relationKey{b, a}]
	}
	if !ok {
		err := errRelationNotFound(a, b)
		op.End(err)
		return err
	}

	delete(h.relations, relationKey{a, b})
	delete(h.relations, relationKey{b, a})
	delete(h.relationKeys[a], b)
	delete(h.relationKeys[b], a)

	op.End(nil)
	return nil
}

func cloneRel(rel map[string][]string) map[string][]string {
	out := make(map[string][]string, len(rel))
	for k, vs := range rel {
		cp := make([]string, len(vs))
		copy(cp, vs)
		sort.Strings(cp)
		out[k] = cp
	}
	return out
}

func invertRel(rel map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for k, vs := range rel {
		for _, v := range vs {
			out[v] = append(out[v], k)
		}
	}
	for k, vs := range out {
		sort.Strings(vs)
		out[k] = vs
	}
	return out
}
