package homo

import (
	"fmt"

	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
)

// Check validates that m is a total homomorphism g → h: every g-node
// has an image in h; every g-edge has an image edge in h; every
// g-node's and g-edge's attributes are included in their images'. It
// never fails fast — every offense is collected into one
// *rgerr.Error (Kind() == InvalidHomomorphism) so a caller can report
// everything wrong with a candidate typing at once.
func Check(g, h *graph.Graph, m Mapping) error {
	var details []rgerr.Detail

	for _, n := range g.Nodes() {
		img, ok := m.Image(n)
		if !ok {
			details = append(details, rgerr.Detail{
				Key: rgerr.DetailKeyNode, Value: fmt.Sprintf("%s: no image", n),
			})
			continue
		}
		if !h.HasNode(img) {
			details = append(details, rgerr.Detail{
				Key: rgerr.DetailKeyNode,
				Value: fmt.Sprintf("%s: image %s is not a node of the target graph", n, img),
			})
			continue
		}

		gAttrs, err := g.NodeAttrs(n)
		if err != nil {
			details = append(details, rgerr.Detail{Key: rgerr.DetailKeyNode, Value: err.Error()})
			continue
		}
		hAttrs, err := h.NodeAttrs(img)
		if err != nil {
			details = append(details, rgerr.Detail{Key: rgerr.DetailKeyNode, Value: err.Error()})
			continue
		}
		included, err := gAttrs.Includes(hAttrs)
		if err != nil {
			details = append(details, rgerr.Detail{
				Key: rgerr.DetailKeyAttr, Value: fmt.Sprintf("%s: %s", n, err.Error()),
			})
			continue
		}
		if !included {
			details = append(details, rgerr.Detail{
				Key: rgerr.DetailKeyAttr,
				Value: fmt.Sprintf("%s: attributes not included in image %s's", n, img),
			})
		}
	}

	for _, e := range g.Edges() {
		fromImg, okFrom := m.Image(e.From)
		toImg, okTo := m.Image(e.To)
		if !okFrom || !okTo {
			// Already reported above as a missing node image.
			continue
		}
		if !h.HasEdge(fromImg, toImg) {
			details = append(details, rgerr.Detail{
				Key:   rgerr.DetailKeyEdge,
				Value: fmt.Sprintf("%s->%s: no image edge %s->%s", e.From, e.To, fromImg, toImg),
			})
			continue
		}

		gAttrs, err := g.EdgeAttrs(e.From, e.To)
		if err != nil {
			details = append(details, rgerr.Detail{Key: rgerr.DetailKeyEdge, Value: err.Error()})
			continue
		}
		hAttrs, err := h.EdgeAttrs(fromImg, toImg)
		if err != nil {
			details = append(details, rgerr.Detail{Key: rgerr.DetailKeyEdge, Value: err.Error()})
			continue
		}
		included, err := gAttrs.Includes(hAttrs)
		if err != nil {
			details = append(details, rgerr.Detail{
				Key:   rgerr.DetailKeyAttr,
				Value: fmt.Sprintf("%s->%s: %s", e.From, e.To, err.Error()),
			})
			continue
		}
		if !included {
			details = append(details, rgerr.Detail{
				Key: rgerr.DetailKeyAttr,
				Value: fmt.Sprintf("%s->%s: attributes not included in image edge's",
					e.From, e.To),
			})
		}
	}

	if len(details) > 0 {
		return rgerr.New(rgerr.InvalidHomomorphism, "not a valid homomorphism", details...)
	}
	return nil
}

// IsValid reports whether m is a valid homomorphism g → h, discarding
// the detailed report.
func IsValid(g, h *graph.Graph, m Mapping) bool {
	return Check(g, h, m) == nil
}
