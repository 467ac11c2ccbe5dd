package regraph

import (
	"sort"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/hierarchy"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rule"
)

// checkStrict runs the static pre-checks spec.md §7 requires before a
// strict rewrite is applied. It inspects only the rewritten graph's
// direct successors, not the full transitive closure (see DESIGN.md);
// a node or edge that only goes wrong two hops away is instead caught,
// after the fact, by the next rewrite that touches that successor.
func checkStrict(h *hierarchy.Hierarchy, g0 string, r *rule.Rule, instance homo.Mapping, rhsTyping map[string]map[string]string) error {
	preimages := preimagesByR(r)
	added := make(map[string]struct{})
	for _, n := range r.AddedNodes() {
		added[n] = struct{}{}
	}

	for _, suc := range h.Successors(g0) {
		typing, ok := h.Typing(g0, suc)
		if !ok {
			continue
		}
		tg, err := h.Graph(suc)
		if err != nil {
			return errGraphNotFound(suc, err)
		}
		hint := rhsTyping[suc]

		image := func(rNode string) (string, bool) {
			if _, isAdded := added[rNode]; isAdded {
				v, ok := hint[rNode]
				return v, ok
			}
			ps := preimages[rNode]
			if len(ps) == 0 {
				return "", false
			}
			l := r.PL[ps[0]]
			g0Node, ok := instance[l]
			if !ok {
				return "", false
			}
			v, ok := typing[g0Node]
			return v, ok
		}

		for _, rn := range r.AddedNodes() {
			if _, ok := hint[rn]; !ok {
				return errStrictMissingTyping(suc, rn)
			}
		}

		for rn, ps := range r.MergedNodes() {
			seen := make(map[string]struct{})
			for _, p := range ps {
				l := r.PL[p]
				g0Node, ok := instance[l]
				if !ok {
					continue
				}
				img, ok := typing[g0Node]
				if !ok {
					continue
				}
				seen[img] = struct{}{}
			}
			if len(seen) > 1 {
				return errStrictMergeDiverges(suc, rn)
			}
		}

		for _, e := range r.AddedEdges() {
			fromImg, fromOk := image(e.From)
			toImg, toOk := image(e.To)
			if !fromOk || !toOk {
				continue
			}
			if !tg.HasEdge(fromImg, toImg) {
				return errStrictEdgeMissing(suc, fromImg, toImg)
			}
		}

		addedNodeAttrs, err := r.AddedNodeAttrs()
		if err != nil {
			return err
		}
		for _, rn := range sortedAttrKeys(addedNodeAttrs) {
			img, ok := image(rn)
			if !ok {
				continue
			}
			imgAttrs, err := tg.NodeAttrs(img)
			if err != nil {
				return err
			}
			ok2, err := addedNodeAttrs[rn].Includes(imgAttrs)
			if err != nil {
				return err
			}
			if !ok2 {
				return errStrictAttrMissing(suc, img, firstAttrKey(addedNodeAttrs[rn]))
			}
		}

		addedEdgeAttrs, err := r.AddedEdgeAttrs()
		if err != nil {
			return err
		}
		for _, e := range sortedEdgeKeys(addedEdgeAttrs) {
			fromImg, fromOk := image(e.From)
			toImg, toOk := image(e.To)
			if !fromOk || !toOk || !tg.HasEdge(fromImg, toImg) {
				continue
			}
			imgAttrs, err := tg.EdgeAttrs(fromImg, toImg)
			if err != nil {
				return err
			}
			ok2, err := addedEdgeAttrs[e].Includes(imgAttrs)
			if err != nil {
				return err
			}
			if !ok2 {
				return errStrictAttrMissing(suc, fromImg+"->"+toImg, firstAttrKey(addedEdgeAttrs[e]))
			}
		}
	}
	return nil
}

// preimagesByR groups P-nodes by their R-image, sorted, so callers can
// deterministically pick the lowest-sorted preimage as representative.
func preimagesByR(r *rule.Rule) map[string][]string {
	out := make(map[string][]string)
	for _, p := range r.P.Nodes() {
		rn := r.PR[p]
		out[rn] = append(out[rn], p)
	}
	for rn := range out {
		sort.Strings(out[rn])
	}
	return out
}

func sortedAttrKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedEdgeKeys[V any](m map[graph.Edge]V) []graph.Edge {
	out := make([]graph.Edge, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

func firstAttrKey(d attrval.Dict) string {
	ks := make([]string, 0, len(d))
	for k := range d {
		ks = append(ks, k)
	}
	if len(ks) == 0 {
		return ""
	}
	sort.Strings(ks)
	return ks[0]
}
