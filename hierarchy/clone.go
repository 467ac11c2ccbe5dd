package hierarchy

import (
	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
)

// Clone returns an independent deep copy of the hierarchy, including a
// deep copy of every registered graph. Callers that need all-or-nothing
// semantics across a rewrite and its propagation (spec.md §5) run their
// work against a Clone and only swap it in once the whole chain
// succeeds.
func (h *Hierarchy) Clone() *Hierarchy {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := &Hierarchy{
		graphs:       make(map[string]*graph.Graph, len(h.graphs)),
		graphAttrs:   make(map[string]attrval.Dict, len(h.graphAttrs)),
		typingOut:    make(map[string]map[string]homo.Mapping, len(h.typingOut)),
		typingIn:     make(map[string]map[string]struct{}, len(h.typingIn)),
		typingAttrs:  make(map[typingKey]attrval.Dict, len(h.typingAttrs)),
		relations:    make(map[relationKey]map[string][]string, len(h.relations)),
		relationKeys: make(map[string]map[string]struct{}, len(h.relationKeys)),
		logger:       h.logger,
	}

	for id, g := range h.graphs {
		out.graphs[id] = g.Copy()
	}
	for id, attrs := range h.graphAttrs {
		out.graphAttrs[id] = attrs.Clone()
	}
	for from, edges := range h.typingOut {
		cp := make(map[string]homo.Mapping, len(edges))
		for to, m := range edges {
			cp[to] = m.Clone()
		}
		out.typingOut[from] = cp
	}
	for to, froms := range h.typingIn {
		cp := make(map[string]struct{}, len(froms))
		for from := range froms {
			cp[from] = struct{}{}
		}
		out.typingIn[to] = cp
	}
	for k, attrs := range h.typingAttrs {
		out.typingAttrs[k] = attrs.Clone()
	}
	for k, rel := range h.relations {
		out.relations[k] = cloneRel(rel)
	}
	for id, others := range h.relationKeys {
		cp := make(map[string]struct{}, len(others))
		for other := range others {
			cp[other] = struct{}{}
		}
		out.relationKeys[id] = cp
	}

	return out
}
