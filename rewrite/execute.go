package rewrite

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rule"
)

// Execute applies r to g at instance (a total, injective homomorphism
// r.L → g) and returns the resulting R → g map together with the final
// P → g map (every P-node's image after cloning and merging settle,
// which the propagation engine needs to find every clone of an
// original instance node). g is mutated in place through the eight SqPO
// phases (spec.md §4.6); callers that need all-or-nothing semantics
// should pass a [graph.Graph.Copy] and only keep it on success.
func Execute(ctx context.Context, g *graph.Graph, instance homo.Mapping, r *rule.Rule) (rg homo.Mapping, pg homo.Mapping, err error) {
	if err := homo.Check(r.L, g, instance); err != nil {
		return nil, nil, errPhase("instance validation", err)
	}

	pgNodes := make(map[string]string, len(r.P.Nodes()))
	for _, p := range r.P.Nodes() {
		pgNodes[p] = instance[r.PL[p]]
	}

	gToL := make(map[string]string, len(instance))
	for l, gn := range instance {
		gToL[gn] = l
	}

	if err := clonePhase(ctx, g, r, instance, gToL, pgNodes); err != nil {
		return nil, nil, err
	}
	if err := removeNodePhase(ctx, g, r, instance); err != nil {
		return nil, nil, err
	}
	if err := removeEdgePhase(ctx, g, r, instance); err != nil {
		return nil, nil, err
	}
	if err := removeAttrPhase(ctx, g, r, pgNodes); err != nil {
		return nil, nil, err
	}
	if err := mergePhase(ctx, g, r, pgNodes); err != nil {
		return nil, nil, err
	}

	rgNodes := make(homo.Mapping, len(r.R.Nodes()))
	for _, p := range r.P.Nodes() {
		rgNodes[r.PR[p]] = pgNodes[p]
	}

	if err := addNodePhase(ctx, g, r, rgNodes); err != nil {
		return nil, nil, err
	}
	if err := addAttrPhase(ctx, g, r, rgNodes); err != nil {
		return nil, nil, err
	}
	if err := addEdgePhase(ctx, g, r, rgNodes); err != nil {
		return nil, nil, err
	}

	return rgNodes, pgNodes, nil
}

// clonePhase creates one clone per extra P-preimage of a cloned
// L-node, keeping the lowest-sorted preimage on the original instance
// node. Each clone is redirected only the edges its own P-node
// preserves, so a clone never picks up an edge destined to be dropped
// in the remove-edge phase.
func clonePhase(ctx context.Context, g *graph.Graph, r *rule.Rule, instance homo.Mapping, gToL map[string]string, pg map[string]string) error {
	for _, l := range sortedMapKeys(r.ClonedNodes()) {
		preimages := r.ClonedNodes()[l]
		g0 := instance[l]

		succ0, err := g.Successors(g0)
		if err != nil {
			return errPhase("clone", err)
		}
		pred0, err := g.Predecessors(g0)
		if err != nil {
			return errPhase("clone", err)
		}

		for i, p := range preimages {
			if i == 0 {
				pg[p] = g0
				continue
			}

			preservedSucc := preservedNeighborLNodes(r, p, r.P.Successors)
			preservedPred := preservedNeighborLNodes(r, p, r.P.Predecessors)

			excludeSucc := map[string]struct{}{}
			for _, sG := range succ0 {
				if sG == g0 {
					continue
				}
				if y, ok := gToL[sG]; ok && r.L.HasEdge(l, y) {
					if _, keep := preservedSucc[y]; !keep {
						excludeSucc[sG] = struct{}{}
					}
				}
			}
			excludePred := map[string]struct{}{}
			for _, pG := range pred0 {
				if pG == g0 {
					continue
				}
				if y, ok := gToL[pG]; ok && r.L.HasEdge(y, l) {
					if _, keep := preservedPred[y]; !keep {
						excludePred[pG] = struct{}{}
					}
				}
			}

			clone, err := g.CloneNode(ctx, g0, graph.CloneOptions{
				ExcludeSuccessors:   excludeSucc,
				ExcludePredecessors: excludePred,
			})
			if err != nil {
				return errPhase("clone", err)
			}
			pg[p] = clone
		}
	}
	return nil
}

// preservedNeighborLNodes returns the L-nodes reachable from p's own
// incident P-edges (via neighborsOf, either r.P.Successors or
// r.P.Predecessors), transported through PL.
func preservedNeighborLNodes(r *rule.Rule, p string, neighborsOf func(string) ([]string, error)) map[string]struct{} {
	out := map[string]struct{}{}
	nbrs, err := neighborsOf(p)
	if err != nil {
		return out
	}
	for _, q := range nbrs {
		out[r.PL[q]] = struct{}{}
	}
	return out
}

func removeNodePhase(ctx context.Context, g *graph.Graph, r *rule.Rule, instance homo.Mapping) error {
	for _, l := range r.RemovedNodes() {
		if err := g.RemoveNode(ctx, instance[l]); err != nil {
			return errPhase("remove-node", err)
		}
	}
	return nil
}

func removeEdgePhase(ctx context.Context, g *graph.Graph, r *rule.Rule, instance homo.Mapping) error {
	for _, e := range r.RemovedEdges() {
		from, to := instance[e.From], instance[e.To]
		if !g.HasEdge(from, to) {
			continue
		}
		if err := g.RemoveEdge(ctx, from, to); err != nil {
			return errPhase("remove-edge", err)
		}
	}
	return nil
}

// removeAttrPhase applies, on every surviving P image, the attribute
// difference between L and P. It works per P-node/P-edge rather than
// through [rule.Rule]'s aggregate helpers, since cloning can have
// distributed a single L-node's attributes across several distinct G
// images that each need their own diff applied.
func removeAttrPhase(ctx context.Context, g *graph.Graph, r *rule.Rule, pg map[string]string) error {
	for _, p := range r.P.Nodes() {
		l := r.PL[p]
		diff, empty, err := nodeAttrDiff(r.L, r.P, l, p)
		if err != nil {
			return errPhase("remove-attr", err)
		}
		if empty {
			continue
		}
		if err := g.RemoveNodeAttrs(ctx, pg[p], diff); err != nil {
			return errPhase("remove-attr", err)
		}
	}

	for _, e := range r.P.Edges() {
		lFrom, lTo := r.PL[e.From], r.PL[e.To]
		diff, empty, err := edgeAttrDiff(r.L, r.P, lFrom, lTo, e.From, e.To)
		if err != nil {
			return errPhase("remove-attr", err)
		}
		if empty {
			continue
		}
		gFrom, gTo := pg[e.From], pg[e.To]
		if !g.HasEdge(gFrom, gTo) {
			continue
		}
		if err := g.RemoveEdgeAttrs(ctx, gFrom, gTo, diff); err != nil {
			return errPhase("remove-attr", err)
		}
	}
	return nil
}

func mergePhase(ctx context.Context, g *graph.Graph, r *rule.Rule, pg map[string]string) error {
	merged := r.MergedNodes()
	for _, rn := range sortedMapKeys(merged) {
		preimages := merged[rn]

		seen := map[string]struct{}{}
		var members []string
		for _, p := range preimages {
			gn := pg[p]
			if _, ok := seen[gn]; ok {
				continue
			}
			seen[gn] = struct{}{}
			members = append(members, gn)
		}

		mergedG := members[0]
		if len(members) > 1 {
			var err error
			mergedG, err = g.MergeNodes(ctx, members, graph.MergeOptions{})
			if err != nil {
				return errPhase("merge", err)
			}
		}
		for _, p := range preimages {
			pg[p] = mergedG
		}
	}
	return nil
}

func addNodePhase(ctx context.Context, g *graph.Graph, r *rule.Rule, rg homo.Mapping) error {
	for _, rn := range r.AddedNodes() {
		id := uuid.NewString()
		attrs, err := r.R.NodeAttrs(rn)
		if err != nil {
			return errPhase("add-node", err)
		}
		if err := g.AddNode(ctx, id, attrs); err != nil {
			return errPhase("add-node", err)
		}
		rg[rn] = id
	}
	return nil
}

func addAttrPhase(ctx context.Context, g *graph.Graph, r *rule.Rule, rg homo.Mapping) error {
	addedNodeAttrs, err := r.AddedNodeAttrs()
	if err != nil {
		return errPhase("add-attr", err)
	}
	for rn, attrs := range addedNodeAttrs {
		if err := g.AddNodeAttrs(ctx, rg[rn], attrs); err != nil {
			return errPhase("add-attr", err)
		}
	}

	addedEdgeAttrs, err := r.AddedEdgeAttrs()
	if err != nil {
		return errPhase("add-attr", err)
	}
	for e, attrs := range addedEdgeAttrs {
		gFrom, gTo := rg[e.From], rg[e.To]
		if !g.HasEdge(gFrom, gTo) {
			continue
		}
		if err := g.AddEdgeAttrs(ctx, gFrom, gTo, attrs); err != nil {
			return errPhase("add-attr", err)
		}
	}
	return nil
}

func addEdgePhase(ctx context.Context, g *graph.Graph, r *rule.Rule, rg homo.Mapping) error {
	for _, e := range r.AddedEdges() {
		gFrom, gTo := rg[e.From], rg[e.To]
		attrs, err := r.R.EdgeAttrs(e.From, e.To)
		if err != nil {
			return errPhase("add-edge", err)
		}
		if g.HasEdge(gFrom, gTo) {
			if err := g.AddEdgeAttrs(ctx, gFrom, gTo, attrs); err != nil {
				return errPhase("add-edge", err)
			}
			continue
		}
		if err := g.AddEdge(ctx, gFrom, gTo, attrs); err != nil {
			return errPhase("add-edge", err)
		}
	}
	return nil
}

func nodeAttrDiff(l, p *graph.Graph, lNode, pNode string) (attrval.Dict, bool, error) {
	lAttrs, err := l.NodeAttrs(lNode)
	if err != nil {
		return nil, false, err
	}
	pAttrs, err := p.NodeAttrs(pNode)
	if err != nil {
		return nil, false, err
	}
	diff, err := lAttrs.Difference(pAttrs)
	if err != nil {
		return nil, false, err
	}
	empty, err := diff.IsEmpty()
	if err != nil {
		return nil, false, err
	}
	return diff, empty, nil
}

func edgeAttrDiff(l, p *graph.Graph, lFrom, lTo, pFrom, pTo string) (attrval.Dict, bool, error) {
	lAttrs, err := l.EdgeAttrs(lFrom, lTo)
	if err != nil {
		return nil, false, err
	}
	pAttrs, err := p.EdgeAttrs(pFrom, pTo)
	if err != nil {
		return nil, false, err
	}
	diff, err := lAttrs.Difference(pAttrs)
	if err != nil {
		return nil, false, err
	}
	empty, err := diff.IsEmpty()
	if err != nil {
		return nil, false, err
	}
	return diff, empty, nil
}

func sortedMapKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
