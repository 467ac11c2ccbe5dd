package propagate

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/hierarchy"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
)

// Downward propagates a relaxing rewrite of g0 to every transitive
// successor, visiting each exactly once in topological order (spec.md
// §4.8). Callers in strict mode must not invoke Downward at all (strict
// mode disables downward propagation entirely).
func Downward(ctx context.Context, h *hierarchy.Hierarchy, g0 string, s Summary, hints Hints, warnings *rgerr.Collector) error {
	g0Graph, err := h.Graph(g0)
	if err != nil {
		return errPhase("downward", g0, err)
	}

	for _, suc := range descendantOrder(h, g0) {
		tg, err := h.Graph(suc)
		if err != nil {
			return errPhase("downward", suc, err)
		}
		m, ok := h.Typing(g0, suc)
		if !ok {
			continue
		}

		m, err = mergePropagate(ctx, tg, m, s)
		if err != nil {
			return errPhase("downward", suc, err)
		}
		m, err = addNodePropagate(ctx, g0Graph, tg, m, hints[suc], warnings, suc)
		if err != nil {
			return errPhase("downward", suc, err)
		}
		if err := addEdgePropagate(ctx, g0Graph, tg, m); err != nil {
			return errPhase("downward", suc, err)
		}
		if err := addAttrPropagate(ctx, g0Graph, tg, m); err != nil {
			return errPhase("downward", suc, err)
		}

		if err := h.ReplaceTyping(ctx, g0, suc, m); err != nil {
			return errPhase("downward", suc, err)
		}
	}
	return nil
}

// mergePropagate folds, for every group of pre-rewrite g0-nodes that
// were merged into one, the group's distinct T-images into a single
// T-node, then re-keys the typing map under the merged g0-node's new
// id.
func mergePropagate(ctx context.Context, tg *graph.Graph, m homo.Mapping, s Summary) (homo.Mapping, error) {
	out := m.Clone()
	for _, merged := range mergedKeys(s.MergedInto) {
		olds := s.MergedInto[merged]
		seen := map[string]struct{}{}
		var images []string
		for _, old := range olds {
			img, ok := m[old]
			if !ok {
				continue
			}
			delete(out, old)
			if _, dup := seen[img]; dup {
				continue
			}
			seen[img] = struct{}{}
			images = append(images, img)
		}
		if len(images) == 0 {
			continue
		}
		target := images[0]
		if len(images) > 1 {
			merged2, err := tg.MergeNodes(ctx, images, graph.MergeOptions{})
			if err != nil {
				return nil, err
			}
			target = merged2
		}
		out[merged] = target
	}
	return out, nil
}

func mergedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// addNodePropagate gives every g0-node still lacking a T-image a fresh
// one, unless hint names a node that already exists in tg, in which
// case that node is reused. A hint naming a missing node records a
// TypingWarning and a fresh node is minted instead; the hint is not
// otherwise checked against the typings along other paths.
func addNodePropagate(ctx context.Context, g0, tg *graph.Graph, m homo.Mapping, hint map[string]string, warnings *rgerr.Collector, sucID string) (homo.Mapping, error) {
	out := m.Clone()
	for _, n := range g0.Nodes() {
		if _, ok := out[n]; ok {
			continue
		}

		if want, ok := hint[n]; ok && tg.HasNode(want) {
			out[n] = want
			continue
		} else if ok && warnings != nil {
			warnings.Collect(warnInconsistentHint(sucID))
		}

		attrs, err := g0.NodeAttrs(n)
		if err != nil {
			return nil, err
		}
		id := uuid.NewString()
		if err := tg.AddNode(ctx, id, attrs); err != nil {
			return nil, err
		}
		out[n] = id
	}
	return out, nil
}

func addEdgePropagate(ctx context.Context, g0, tg *graph.Graph, m homo.Mapping) error {
	for _, e := range g0.Edges() {
		fromImg, fromOk := m[e.From]
		toImg, toOk := m[e.To]
		if !fromOk || !toOk {
			continue
		}
		if tg.HasEdge(fromImg, toImg) {
			continue
		}
		if err := tg.AddEdge(ctx, fromImg, toImg, attrval.Dict{}); err != nil {
			return err
		}
	}
	return nil
}

func addAttrPropagate(ctx context.Context, g0, tg *graph.Graph, m homo.Mapping) error {
	for _, n := range g0.Nodes() {
		img, ok := m[n]
		if !ok {
			continue
		}
		srcAttrs, err := g0.NodeAttrs(n)
		if err != nil {
			return err
		}
		if err := tg.AddNodeAttrs(ctx, img, srcAttrs); err != nil {
			return err
		}
	}
	for _, e := range g0.Edges() {
		fromImg, fromOk := m[e.From]
		toImg, toOk := m[e.To]
		if !fromOk || !toOk || !tg.HasEdge(fromImg, toImg) {
			continue
		}
		srcAttrs, err := g0.EdgeAttrs(e.From, e.To)
		if err != nil {
			return err
		}
		if err := tg.AddEdgeAttrs(ctx, fromImg, toImg, srcAttrs); err != nil {
			return err
		}
	}
	return nil
}
