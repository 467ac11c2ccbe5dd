package rule

import (
	"sort"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
)

// Rule is a span L ← P → R: L is the pattern, P the preserved part,
// R the result. PL maps P into L (its non-injectivity expresses
// cloning); PR maps P into R (its non-injectivity expresses merging).
type Rule struct {
	L, P, R *graph.Graph
	PL      homo.Mapping
	PR      homo.Mapping
}

// New validates the span and builds a Rule. PL must be a total,
// surjective homomorphism P → L; PR must be a total homomorphism
// P → R.
func New(l, p, r *graph.Graph, pl, pr homo.Mapping) (*Rule, error) {
	if err := homo.Check(p, l, pl); err != nil {
		return nil, errInvalidSpan("l: P -> L", err)
	}
	if err := homo.Check(p, r, pr); err != nil {
		return nil, errInvalidSpan("r: P -> R", err)
	}

	covered := make(map[string]struct{}, len(pl))
	for _, img := range pl {
		covered[img] = struct{}{}
	}
	for _, n := range l.Nodes() {
		if _, ok := covered[n]; !ok {
			return nil, errNotSurjective(n)
		}
	}

	if err := checkNoDanglingAttrs(l, p, pl); err != nil {
		return nil, err
	}

	return &Rule{L: l, P: p, R: r, PL: pl.Clone(), PR: pr.Clone()}, nil
}

// checkNoDanglingAttrs rejects a span where p's restriction of l
// references an attribute key that l's corresponding node or edge does
// not carry at all. p is only ever allowed to drop attribute keys
// present on l (that drop is what [Rule.RemovedNodeAttrs] and
// [Rule.RemovedEdgeAttrs] compute); a key on p absent from l has no
// l-side value to be a restriction of.
func checkNoDanglingAttrs(l, p *graph.Graph, pl homo.Mapping) error {
	for _, pn := range p.Nodes() {
		ln := pl[pn]
		pAttrs, err := p.NodeAttrs(pn)
		if err != nil {
			return err
		}
		lAttrs, err := l.NodeAttrs(ln)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(pAttrs))
		for k := range pAttrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := lAttrs[k]; !ok {
				return errDanglingNodeAttr(pn, ln, k)
			}
		}
	}

	for _, pe := range p.Edges() {
		lFrom, lTo := pl[pe.From], pl[pe.To]
		pAttrs, err := p.EdgeAttrs(pe.From, pe.To)
		if err != nil {
			return err
		}
		lAttrs, err := l.EdgeAttrs(lFrom, lTo)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(pAttrs))
		for k := range pAttrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := lAttrs[k]; !ok {
				return errDanglingEdgeAttr(pe.From, pe.To, lFrom, lTo, k)
			}
		}
	}

	return nil
}

// Identity builds the identity rule on g: L = P = R = g, l = r = id.
// Rewriting under the identity rule is a no-op (spec.md §8, property 4).
func Identity(g *graph.Graph) *Rule {
	id := make(homo.Mapping, len(g.Nodes()))
	for _, n := range g.Nodes() {
		id[n] = n
	}
	return &Rule{L: g, P: g, R: g, PL: id, PR: id.Clone()}
}

// ClonedNodes returns, for every L-node with two or more P-preimages,
// the sorted set of those preimages.
func (r *Rule) ClonedNodes() map[string][]string {
	preimages := make(map[string][]string)
	for _, p := range r.P.Nodes() {
		l := r.PL[p]
		preimages[l] = append(preimages[l], p)
	}
	out := make(map[string][]string)
	for l, ps := range preimages {
		if len(ps) > 1 {
			sort.Strings(ps)
			out[l] = ps
		}
	}
	return out
}

// MergedNodes returns, for every R-node with two or more P-preimages,
// the sorted set of those preimages.
func (r *Rule) MergedNodes() map[string][]string {
	preimages := make(map[string][]string)
	for _, p := range r.P.Nodes() {
		rn := r.PR[p]
		preimages[rn] = append(preimages[rn], p)
	}
	out := make(map[string][]string)
	for rn, ps := range preimages {
		if len(ps) > 1 {
			sort.Strings(ps)
			out[rn] = ps
		}
	}
	return out
}

// RemovedNodes returns the sorted L-nodes with no P-preimage under PL.
func (r *Rule) RemovedNodes() []string {
	covered := imageSet(r.PL)
	var out []string
	for _, n := range r.L.Nodes() {
		if _, ok := covered[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// AddedNodes returns the sorted R-nodes with no P-preimage under PR.
func (r *Rule) AddedNodes() []string {
	covered := imageSet(r.PR)
	var out []string
	for _, n := range r.R.Nodes() {
		if _, ok := covered[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// RemovedEdges returns L-edges with no corresponding P-edge transported
// through PL.
func (r *Rule) RemovedEdges() []graph.Edge {
	covered := transportedEdges(r.P, r.PL)
	var out []graph.Edge
	for _, e := range r.L.Edges() {
		if _, ok := covered[e]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// AddedEdges returns R-edges with no corresponding P-edge transported
// through PR.
func (r *Rule) AddedEdges() []graph.Edge {
	covered := transportedEdges(r.P, r.PR)
	var out []graph.Edge
	for _, e := range r.R.Edges() {
		if _, ok := covered[e]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// RemovedNodeAttrs returns, for every L-node with at least one
// P-preimage, the attributes present on the L-node but not retained on
// its (lowest-sorted) preimage in P.
func (r *Rule) RemovedNodeAttrs() (map[string]attrval.Dict, error) {
	preimages := firstPreimage(r.P.Nodes(), r.PL)
	out := make(map[string]attrval.Dict)
	for l, p := range preimages {
		lAttrs, err := r.L.NodeAttrs(l)
		if err != nil {
			return nil, err
		}
		pAttrs, err := r.P.NodeAttrs(p)
		if err != nil {
			return nil, err
		}
		diff, err := lAttrs.Difference(pAttrs)
		if err != nil {
			return nil, err
		}
		empty, err := diff.IsEmpty()
		if err != nil {
			return nil, err
		}
		if !empty {
			out[l] = diff
		}
	}
	return out, nil
}

// AddedNodeAttrs returns, for every R-node with at least one
// P-preimage, the attributes present on the R-node but not already on
// its (lowest-sorted) preimage in P.
func (r *Rule) AddedNodeAttrs() (map[string]attrval.Dict, error) {
	preimages := firstPreimage(r.P.Nodes(), r.PR)
	out := make(map[string]attrval.Dict)
	for rn, p := range preimages {
		rAttrs, err := r.R.NodeAttrs(rn)
		if err != nil {
			return nil, err
		}
		pAttrs, err := r.P.NodeAttrs(p)
		if err != nil {
			return nil, err
		}
		diff, err := rAttrs.Difference(pAttrs)
		if err != nil {
			return nil, err
		}
		empty, err := diff.IsEmpty()
		if err != nil {
			return nil, err
		}
		if !empty {
			out[rn] = diff
		}
	}
	return out, nil
}

// RemovedEdgeAttrs returns, for every L-edge with at least one
// P-preimage, the attributes present on the L-edge but not retained on
// its (lowest-sorted) preimage in P.
func (r *Rule) RemovedEdgeAttrs() (map[graph.Edge]attrval.Dict, error) {
	rep := firstPreimageEdge(r.P.Edges(), r.PL)
	out := make(map[graph.Edge]attrval.Dict)
	for lEdge, pEdge := range rep {
		lAttrs, err := r.L.EdgeAttrs(lEdge.From, lEdge.To)
		if err != nil {
			return nil, err
		}
		pAttrs, err := r.P.EdgeAttrs(pEdge.From, pEdge.To)
		if err != nil {
			return nil, err
		}
		diff, err := lAttrs.Difference(pAttrs)
		if err != nil {
			return nil, err
		}
		empty, err := diff.IsEmpty()
		if err != nil {
			return nil, err
		}
		if !empty {
			out[lEdge] = diff
		}
	}
	return out, nil
}

// AddedEdgeAttrs returns, for every R-edge with at least one
// P-preimage, the attributes present on the R-edge but not already on
// its (lowest-sorted) preimage in P.
func (r *Rule) AddedEdgeAttrs() (map[graph.Edge]attrval.Dict, error) {
	rep := firstPreimageEdge(r.P.Edges(), r.PR)
	out := make(map[graph.Edge]attrval.Dict)
	for rEdge, pEdge := range rep {
		rAttrs, err := r.R.EdgeAttrs(rEdge.From, rEdge.To)
		if err != nil {
			return nil, err
		}
		pAttrs, err := r.P.EdgeAttrs(pEdge.From, pEdge.To)
		if err != nil {
			return nil, err
		}
		diff, err := rAttrs.Difference(pAttrs)
		if err != nil {
			return nil, err
		}
		empty, err := diff.IsEmpty()
		if err != nil {
			return nil, err
		}
		if !empty {
			out[rEdge] = diff
		}
	}
	return out, nil
}

// IsRestrictive reports whether the rule clones, removes nodes/edges,
// or removes node or edge attributes.
func (r *Rule) IsRestrictive() bool {
	if len(r.ClonedNodes()) > 0 || len(r.RemovedNodes()) > 0 || len(r.RemovedEdges()) > 0 {
		return true
	}
	removed, err := r.RemovedNodeAttrs()
	if err == nil && len(removed) > 0 {
		return true
	}
	removedEdge, err := r.RemovedEdgeAttrs()
	if err == nil && len(removedEdge) > 0 {
		return true
	}
	return false
}

// IsRelaxing reports whether the rule merges, adds nodes/edges, or
// adds node or edge attributes.
func (r *Rule) IsRelaxing() bool {
	if len(r.MergedNodes()) > 0 || len(r.AddedNodes()) > 0 || len(r.AddedEdges()) > 0 {
		return true
	}
	added, err := r.AddedNodeAttrs()
	if err == nil && len(added) > 0 {
		return true
	}
	addedEdge, err := r.AddedEdgeAttrs()
	if err == nil && len(addedEdge) > 0 {
		return true
	}
	return false
}

func imageSet(m homo.Mapping) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for _, v := range m {
		out[v] = struct{}{}
	}
	return out
}

func transportedEdges(p *graph.Graph, m homo.Mapping) map[graph.Edge]struct{} {
	out := make(map[graph.Edge]struct{}, p.EdgeCount())
	for _, e := range p.Edges() {
		out[graph.Edge{From: m[e.From], To: m[e.To]}] = struct{}{}
	}
	return out
}

// firstPreimage returns, for each image value of m, the lowest-sorted
// key mapping to it (deterministic representative for attribute-delta
// computation under cloning/merging).
func firstPreimage(domain []string, m homo.Mapping) map[string]string {
	sorted := make([]string, len(domain))
	copy(sorted, domain)
	sort.Strings(sorted)

	out := make(map[string]string)
	for _, p := range sorted {
		img := m[p]
		if _, ok := out[img]; !ok {
			out[img] = p
		}
	}
	return out
}

// firstPreimageEdge returns, for each image edge of domain under m, the
// lowest-sorted (From, To) edge mapping to it.
func firstPreimageEdge(domain []graph.Edge, m homo.Mapping) map[graph.Edge]graph.Edge {
	sorted := make([]graph.Edge, len(domain))
	copy(sorted, domain)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})

	out := make(map[graph.Edge]graph.Edge)
	for _, e := range sorted {
		img := graph.Edge{From: m[e.From], To: m[e.To]}
		if _, ok := out[img]; !ok {
			out[img] = e
		}
	}
	return out
}
