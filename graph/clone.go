package graph

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Kappa-Dev/ReGraph-sub002/internal/trace"
)

// CloneOptions controls a [Graph.CloneNode] call.
type CloneOptions struct {
	// NewID, if non-empty, is used as the clone's id. Otherwise a fresh
	// id is generated.
	NewID string

	// ExcludeSuccessors names successors that should keep their edge on
	// the original node only (not redirected to the clone). Used by the
	// rewriting executor to implement partial cloning.
	ExcludeSuccessors map[string]struct{}

	// ExcludePredecessors is the predecessor-side analogue of
	// ExcludeSuccessors.
	ExcludePredecessors map[string]struct{}
}

// CloneNode creates a new node with n's attributes and redirects every
// incident edge of n to also point to/from the clone (self-loops on n
// are preserved on the clone as its own self-loop), except edges named
// in opts' exclusion sets. Returns the clone's id.
func (g *Graph) CloneNode(ctx context.Context, n string, opts CloneOptions) (string, error) {
	op := trace.Begin(ctx, g.logger, "regraph.graph.clone_node", slog.String("node", n))
	g.mu.Lock()
	defer g.mu.Unlock()

	attrs, ok := g.nodes[n]
	if !ok {
		err := errNodeNotFound(n)
		op.End(err)
		return "", err
	}

	clone := opts.NewID
	if clone == "" {
		clone = uuid.NewString()
	}
	if _, exists := g.nodes[clone]; exists {
		err := errNodeExists(clone)
		op.End(err)
		return "", err
	}

	g.nodes[clone] = attrs.Clone()
	g.out[clone] = make(map[string]struct{})
	g.in[clone] = make(map[string]struct{})

	selfLoopAttrs, hasSelfLoop := g.edges[Edge{From: n, To: n}]

	for to := range snapshot(g.out[n]) {
		if to == n {
			continue
		}
		if _, excluded := opts.ExcludeSuccessors[to]; excluded {
			continue
		}
		a := g.edges[Edge{From: n, To: to}]
		g.out[clone][to] = struct{}{}
		g.in[to][clone] = struct{}{}
		g.edges[Edge{From: clone, To: to}] = a.Clone()
	}
	for from := range snapshot(g.in[n]) {
		if from == n {
			continue
		}
		if _, excluded := opts.ExcludePredecessors[from]; excluded {
			continue
		}
		a := g.edges[Edge{From: from, To: n}]
		g.in[clone][from] = struct{}{}
		g.out[from][clone] = struct{}{}
		g.edges[Edge{From: from, To: clone}] = a.Clone()
	}
	if hasSelfLoop {
		g.out[clone][clone] = struct{}{}
		g.in[clone][clone] = struct{}{}
		g.edges[Edge{From: clone, To: clone}] = selfLoopAttrs.Clone()
	}

	op.End(nil, slog.String("clone", clone))
	return clone, nil
}

func snapshot(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}
