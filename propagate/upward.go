package propagate

import (
	"context"

	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/hierarchy"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
)

// Hints supplies, per ancestor/descendant graph id, a caller-provided
// typing override: for upward propagation a P-typing (which clone each
// H-node should stick to), for downward propagation an RHS-typing
// (which T-node a newly added G-node should reuse). A hint is applied
// only when it is consistent with the rewrite; otherwise propagation
// falls back to its canonical behavior and records a TypingWarning on
// warnings.
type Hints map[string]map[string]string

// Upward propagates a restrictive rewrite of g0 to every transitive
// predecessor, visiting each exactly once in reverse-topological order
// (spec.md §4.8).
func Upward(ctx context.Context, h *hierarchy.Hierarchy, g0 string, s Summary, hints Hints, warnings *rgerr.Collector) error {
	g0Graph, err := h.Graph(g0)
	if err != nil {
		return errPhase("upward", g0, err)
	}

	for _, pred := range ancestorOrder(h, g0) {
		hg, err := h.Graph(pred)
		if err != nil {
			return errPhase("upward", pred, err)
		}
		m, ok := h.Typing(pred, g0)
		if !ok {
			continue // pred reaches g0 only through a graph already processed this round
		}

		m, err = clonePropagate(ctx, hg, m, s, hints[pred], warnings, pred)
		if err != nil {
			return errPhase("upward", pred, err)
		}
		m, err = removeNodePropagate(ctx, hg, g0Graph, m)
		if err != nil {
			return errPhase("upward", pred, err)
		}
		if err := removeEdgePropagate(ctx, hg, g0Graph, m); err != nil {
			return errPhase("upward", pred, err)
		}

		if err := h.ReplaceTyping(ctx, pred, g0, m); err != nil {
			return errPhase("upward", pred, err)
		}
	}
	return nil
}

// clonePropagate redistributes typing edges so that every H-node types
// exactly one image of its pre-rewrite target: the original node keeps
// the lowest-sorted image, and one full clone of it is created per
// additional image, unless hint names a consistent, different
// assignment for that node.
func clonePropagate(ctx context.Context, hg *graph.Graph, m homo.Mapping, s Summary, hint map[string]string, warnings *rgerr.Collector, predID string) (homo.Mapping, error) {
	out := m.Clone()
	for _, h := range m.Domain() {
		old := m[h]
		images := s.imageOf(old)
		if len(images) <= 1 {
			if len(images) == 1 {
				out[h] = images[0]
			}
			continue
		}

		assignment := images
		if hint != nil {
			if resolved, ok := resolveHint(h, hint, images); ok {
				assignment = resolved
			} else if warnings != nil {
				warnings.Collect(warnInconsistentHint(predID))
			}
		}

		out[h] = assignment[0]
		for _, img := range assignment[1:] {
			clone, err := hg.CloneNode(ctx, h, graph.CloneOptions{})
			if err != nil {
				return nil, err
			}
			out[clone] = img
		}
	}
	return out, nil
}

// resolveHint reorders images so the hinted image for h comes first
// (keeping it on the original, un-cloned node), reporting false if the
// hint names an image that isn't actually one of h's targets.
func resolveHint(h string, hint map[string]string, images []string) ([]string, bool) {
	want, ok := hint[h]
	if !ok {
		return images, true
	}
	idx := -1
	for i, img := range images {
		if img == want {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]string, 0, len(images))
	out = append(out, want)
	for i, img := range images {
		if i != idx {
			out = append(out, img)
		}
	}
	return out, true
}

func removeNodePropagate(ctx context.Context, hg, g0 *graph.Graph, m homo.Mapping) (homo.Mapping, error) {
	out := m.Clone()
	for h, img := range m {
		if !g0.HasNode(img) {
			if err := hg.RemoveNode(ctx, h); err != nil {
				return nil, err
			}
			delete(out, h)
			continue
		}
		hAttrs, err := hg.NodeAttrs(h)
		if err != nil {
			return nil, err
		}
		imgAttrs, err := g0.NodeAttrs(img)
		if err != nil {
			return nil, err
		}
		kept, err := hAttrs.Intersection(imgAttrs)
		if err != nil {
			return nil, err
		}
		if err := hg.UpdateNodeAttrs(ctx, h, kept); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func removeEdgePropagate(ctx context.Context, hg, g0 *graph.Graph, m homo.Mapping) error {
	for _, e := range hg.Edges() {
		fromImg, fromOk := m[e.From]
		toImg, toOk := m[e.To]
		if !fromOk || !toOk || !g0.HasEdge(fromImg, toImg) {
			if err := hg.RemoveEdge(ctx, e.From, e.To); err != nil {
				return err
			}
			continue
		}
		hAttrs, err := hg.EdgeAttrs(e.From, e.To)
		if err != nil {
			return err
		}
		imgAttrs, err := g0.EdgeAttrs(fromImg, toImg)
		if err != nil {
			return err
		}
		kept, err := hAttrs.Intersection(imgAttrs)
		if err != nil {
			return err
		}
		if err := hg.UpdateEdgeAttrs(ctx, e.From, e.To, kept); err != nil {
			return err
		}
	}
	return nil
}
