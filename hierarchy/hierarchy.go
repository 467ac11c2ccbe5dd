package hierarchy

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/internal/trace"
)

type typingKey struct{ From, To string }

type relationKey struct{ A, B string }

// Hierarchy is a DAG of graph handles connected by typing edges
// (homomorphisms) and symmetric relation edges. The zero value is not
// usable; construct with [New].
type Hierarchy struct {
	mu sync.RWMutex

	graphs     map[string]*graph.Graph
	graphAttrs map[string]attrval.Dict

	typingOut   map[string]map[string]homo.Mapping
	typingIn    map[string]map[string]struct{}
	typingAttrs map[typingKey]attrval.Dict

	relations   map[relationKey]map[string][]string
	relationKeys map[string]map[string]struct{} // graph -> set of related graphs, for fast lookup

	logger *slog.Logger
}

// Option configures a Hierarchy at construction time.
type Option func(*Hierarchy)

// WithLogger attaches a logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hierarchy) { h.logger = logger }
}

// New returns an empty hierarchy.
func New(opts ...Option) *Hierarchy {
	h := &Hierarchy{
		graphs:       make(map[string]*graph.Graph),
		graphAttrs:   make(map[string]attrval.Dict),
		typingOut:    make(map[string]map[string]homo.Mapping),
		typingIn:     make(map[string]map[string]struct{}),
		typingAttrs:  make(map[typingKey]attrval.Dict),
		relations:    make(map[relationKey]map[string][]string),
		relationKeys: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddGraph registers a new graph handle under id.
func (h *Hierarchy) AddGraph(ctx context.Context, id string, g *graph.Graph, attrs attrval.Dict) error {
	op := trace.Begin(ctx, h.logger, "regraph.hierarchy.add_graph", slog.String("graph", id))
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.graphs[id]; exists {
		err := errGraphExists(id)
		op.End(err)
		return err
	}
	h.graphs[id] = g
	h.graphAttrs[id] = normalizeAttrs(attrs)
	h.typingOut[id] = make(map[string]homo.Mapping)
	h.typingIn[id] = make(map[string]struct{})
	h.relationKeys[id] = make(map[string]struct{})
	op.End(nil)
	return nil
}

// Graph returns the graph handle registered under id.
func (h *Hierarchy) Graph(id string) (*graph.Graph, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	g, ok := h.graphs[id]
	if !ok {
		return nil, errGraphNotFound(id)
	}
	return g, nil
}

// HasGraph reports whether id names a registered graph.
func (h *Hierarchy) HasGraph(id string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.graphs[id]
	return ok
}

// GraphIDs returns every registered graph id, sorted.
func (h *Hierarchy) GraphIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.graphs))
	for id := range h.graphs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Successors returns the graphs that id types into directly (the
// targets of id's outgoing typing edges), sorted.
func (h *Hierarchy) Successors(id string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.typingOut[id]))
	for to := range h.typingOut[id] {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// Predecessors returns the graphs typed directly by id, sorted.
func (h *Hierarchy) Predecessors(id string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.typingIn[id]))
	for from := range h.typingIn[id] {
		out = append(out, from)
	}
	sort.Strings(out)
	return out
}

// Typing returns the direct typing mapping from → to, if one exists.
func (h *Hierarchy) Typing(from, to string) (homo.Mapping, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	m, ok := h.typingOut[from][to]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// AddTyping installs a typing edge from → to. If check is true, m must
// be a valid total homomorphism graphs[from] → graphs[to], the edge must
// not close a cycle in the hierarchy (spec.md §3), and every pair of
// existing typing paths into a common descendant that the new edge
// creates or extends must agree node-wise (the commutativity invariant,
// spec.md §4.7).
func (h *Hierarchy) AddTyping(ctx context.Context, from, to string, m homo.Mapping, attrs attrval.Dict, check bool) error {
	op := trace.Begin(ctx, h.logger, "regraph.hierarchy.add_typing",
		slog.String("from", from), slog.String("to", to))
	h.mu.Lock()
	defer h.mu.Unlock()

	gFrom, ok := h.graphs[from]
	if !ok {
		err := errGraphNotFound(from)
		op.End(err)
		return err
	}
	gTo, ok := h.graphs[to]
	if !ok {
		err := errGraphNotFound(to)
		op.End(err)
		return err
	}
	if _, exists := h.typingOut[from][to]; exists {
		err := errTypingExists(from, to)
		op.End(err)
		return err
	}

	if check {
		if err := homo.Check(gFrom, gTo, m); err != nil {
			wrapped := errNotHomomorphism(from, to, err)
			op.End(wrapped)
			return wrapped
		}
		if h.reachesLocked(to, from) {
			err := errCycle(from, to)
			op.End(err)
			return err
		}
		if err := h.checkCommutativity(from, to, m); err != nil {
			op.End(err)
			return err
		}
	}

	h.typingOut[from][to] = m.Clone()
	h.typingIn[to][from] = struct{}{}
	h.typingAttrs[typingKey{from, to}] = normalizeAttrs(attrs)
	op.End(nil)
	return nil
}

// checkCommutativity verifies that, for every ancestor A with an
// existing composite path into from, composing that path with the
// candidate edge from→to agrees with any pre-existing composite path
// A→to. Since the invariant already holds for every pair of paths not
// using the candidate edge, comparing against one existing path per
// ancestor suffices. O(n²) in the number of registered graphs.
func (h *Hierarchy) checkCommutativity(from, to string, m homo.Mapping) error {
	for _, ancestor := range h.graphIDsLocked() {
		reach := h.reachableLocked(ancestor)

		toFrom, hasFrom := reach[from]
		if ancestor == from {
			toFrom, hasFrom = homo.Mapping{}, true
			for _, n := range h.graphs[from].Nodes() {
				toFrom[n] = n
			}
		}
		if !hasFrom {
			continue
		}

		existingToTarget, hasTarget := reach[to]
		if !hasTarget {
			continue
		}

		candidate := toFrom.Compose(m)
		for _, n := range h.graphs[ancestor].Nodes() {
			cv, cok := candidate[n]
			ev, eok := existingToTarget[n]
			if !cok || !eok {
				continue
			}
			if cv != ev {
				return errCommutativity(ancestor, from, to)
			}
		}
	}
	return nil
}

// reachableLocked returns, for every graph reachable from start by
// following existing typing edges forward, the composite mapping
// start → that graph. Must be called with h.mu held.
func (h *Hierarchy) reachableLocked(start string) map[string]homo.Mapping {
	out := make(map[string]homo.Mapping)
	visited := map[string]struct{}{start: {}}
	queue := []string{start}
	current := homo.Mapping{}
	for _, n := range h.graphs[start].Nodes() {
		current[n] = n
	}
	composite := map[string]homo.Mapping{start: current}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for to, edge := range h.typingOut[node] {
			if _, seen := visited[to]; seen {
				continue
			}
			visited[to] = struct{}{}
			next := composite[node].Compose(edge)
			composite[to] = next
			out[to] = next
			queue = append(queue, to)
		}
	}
	return out
}

// reachesLocked reports whether target is reachable from start by
// following existing typing edges forward (start itself counts as
// reaching target when start == target). Must be called with h.mu held.
// AddTyping uses it to reject an edge from→to whenever to already
// reaches from, which would otherwise close a cycle in the hierarchy
// (spec.md §3: the hierarchy is a DAG).
func (h *Hierarchy) reachesLocked(start, target string) bool {
	if start == target {
		return true
	}
	visited := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for next := range h.typingOut[node] {
			if next == target {
				return true
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return false
}

func (h *Hierarchy) graphIDsLocked() []string {
	out := make([]string, 0, len(h.graphs))
	for id := range h.graphs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ReplaceTyping overwrites an existing from → to typing edge's mapping
// in place, without re-running the homomorphism or commutativity
// checks. It exists for the propagation engine, which mutates a
// predecessor or successor graph and its typing edge together as one
// step and is itself responsible for keeping the hierarchy's invariants
// intact across the whole rewrite.
func (h *Hierarchy) ReplaceTyping(ctx context.Context, from, to string, m homo.Mapping) error {
	op := trace.Begin(ctx, h.logger, "regraph.hierarchy.replace_typing",
		slog.String("from", from), slog.String("to", to))
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.typingOut[from][to]; !ok {
		err := errTypingNotFound(from, to)
		op.End(err)
		return err
	}
	h.typingOut[from][to] = m.Clone()
	op.End(nil)
	return nil
}

// RemoveTyping deletes the direct typing edge from → to.
func (h *Hierarchy) RemoveTyping(ctx context.Context, from, to string) error {
	op := trace.Begin(ctx, h.logger, "regraph.hierarchy.remove_typing",
		slog.String("from", from), slog.String("to", to))
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.typingOut[from][to]; !ok {
		err := errTypingNotFound(from, to)
		op.End(err)
		return err
	}
	delete(h.typingOut[from], to)
	delete(h.typingIn[to], from)
	delete(h.typingAttrs, typingKey{from, to})
	op.End(nil)
	return nil
}

// RemoveGraph deletes id along with every typing and relation edge
// incident to it. If reconnect is true, for every direct predecessor
// pred (pred→id) and direct successor suc (id→suc) a new typing
// pred→suc composing pred→id→suc is installed first, so removing an
// intermediate graph does not sever the typing chain around it
// (spec.md §4.7).
func (h *Hierarchy) RemoveGraph(ctx context.Context, id string, reconnect bool) error {
	op := trace.Begin(ctx, h.logger, "regraph.hierarchy.remove_graph",
		slog.String("graph", id), slog.Bool("reconnect", reconnect))
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.graphs[id]; !ok {
		err := errGraphNotFound(id)
		op.End(err)
		return err
	}

	if reconnect {
		preds := make(map[string]homo.Mapping, len(h.typingIn[id]))
		for from := range h.typingIn[id] {
			preds[from] = h.typingOut[from][id]
		}
		succs := make(map[string]homo.Mapping, len(h.typingOut[id]))
		for to, m := range h.typingOut[id] {
			succs[to] = m
		}
		for predID, predMap := range preds {
			for sucID, sucMap := range succs {
				if predID == sucID {
					continue
				}
				if _, exists := h.typingOut[predID][sucID]; exists {
					continue
				}
				composed := predMap.Compose(sucMap)
				h.typingOut[predID][sucID] = composed
				h.typingIn[sucID][predID] = struct{}{}
				h.typingAttrs[typingKey{predID, sucID}] = attrval.Dict{}
			}
		}
	}

	for to := range h.typingOut[id] {
		delete(h.typingIn[to], id)
		delete(h.typingAttrs, typingKey{id, to})
	}
	for from := range h.typingIn[id] {
		delete(h.typingOut[from], id)
		delete(h.typingAttrs, typingKey{from, id})
	}
	for other := range h.relationKeys[id] {
		delete(h.relations, relationKey{id, other})
		delete(h.relations, relationKey{other, id})
		delete(h.relationKeys[other], id)
	}

	delete(h.graphs, id)
	delete(h.graphAttrs, id)
	delete(h.typingOut, id)
	delete(h.typingIn, id)
	delete(h.relationKeys, id)

	op.End(nil)
	return nil
}

func normalizeAttrs(attrs attrval.Dict) attrval.Dict {
	if attrs == nil {
		return attrval.Dict{}
	}
	return attrs.Clone()
}
