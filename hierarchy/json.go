package hierarchy

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/tidwall/jsonc"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
)

// Wire types mirror the §6 HierarchyJSON schema:
//
//	{ "graphs":    [ { "id": S, "graph": GraphJSON, "attrs": AttrDictJSON? } ],
//	  "typing":    [ { "from": S, "to": S, "mapping": {S:S}, "attrs": AttrDictJSON? } ],
//	  "relations": [ { "from": S, "to": S, "rel": {S:[S]}, "attrs": AttrDictJSON? } ] }
type wireGraphEntry struct {
	ID    string          `json:"id"`
	Graph json.RawMessage `json:"graph"`
	Attrs map[string]any  `json:"attrs,omitempty"`
}

type wireTyping struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Mapping map[string]string `json:"mapping"`
	Attrs   map[string]any    `json:"attrs,omitempty"`
}

type wireRelation struct {
	From  string              `json:"from"`
	To    string              `json:"to"`
	Rel   map[string][]string `json:"rel"`
	Attrs map[string]any      `json:"attrs,omitempty"`
}

type wireHierarchy struct {
	Graphs    []wireGraphEntry `json:"graphs"`
	Typing    []wireTyping     `json:"typing"`
	Relations []wireRelation   `json:"relations"`
}

// DecodeJSON builds a Hierarchy from HierarchyJSON data. Relation
// entries that duplicate an already-installed pair (hand-edited
// fixtures sometimes list both directions) are tolerated rather than
// rejected; everything else surfaces the underlying HierarchyError.
func DecodeJSON(ctx context.Context, data []byte, opts ...Option) (*Hierarchy, error) {
	var wire wireHierarchy
	if err := json.Unmarshal(jsonc.ToJSON(data), &wire); err != nil {
		return nil, rgerr.Wrap(rgerr.HierarchyError, err, "invalid hierarchy JSON")
	}

	h := New(opts...)
	for _, entry := range wire.Graphs {
		g, err := graph.DecodeJSON(ctx, entry.Graph)
		if err != nil {
			return nil, err
		}
		attrs, err := attrval.DictFromRaw(entry.Attrs)
		if err != nil {
			return nil, err
		}
		if err := h.AddGraph(ctx, entry.ID, g, attrs); err != nil {
			return nil, err
		}
	}
	for _, entry := range wire.Typing {
		attrs, err := attrval.DictFromRaw(entry.Attrs)
		if err != nil {
			return nil, err
		}
		if err := h.AddTyping(ctx, entry.From, entry.To, homo.Mapping(entry.Mapping), attrs, true); err != nil {
			return nil, err
		}
	}
	for _, entry := range wire.Relations {
		attrs, err := attrval.DictFromRaw(entry.Attrs)
		if err != nil {
			return nil, err
		}
		if err := h.AddRelation(ctx, entry.From, entry.To, entry.Rel, attrs); err != nil {
			if rgerr.Is(err, rgerr.HierarchyError) && h.hasRelationLocked(entry.From, entry.To) {
				continue
			}
			return nil, err
		}
	}
	return h, nil
}

func (h *Hierarchy) hasRelationLocked(a, b string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.relations[relationKey{a, b}]
	if !ok {
		_, ok = h.relations[relationKey{b, a}]
	}
	return ok
}

// EncodeJSON renders h as HierarchyJSON. Graphs and typings are sorted
// by id for deterministic output; each relation pair is emitted once,
// under its lexicographically smaller id, since the two directions are
// reconstructed from one another on decode.
func EncodeJSON(h *Hierarchy) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	wire := wireHierarchy{}

	for _, id := range h.graphIDsLocked() {
		graphJSON, err := graph.EncodeJSON(h.graphs[id])
		if err != nil {
			return nil, err
		}
		attrs, err := attrval.DictToRaw(h.graphAttrs[id])
		if err != nil {
			return nil, err
		}
		wire.Graphs = append(wire.Graphs, wireGraphEntry{ID: id, Graph: graphJSON, Attrs: attrs})
	}

	for _, from := range h.graphIDsLocked() {
		tos := make([]string, 0, len(h.typingOut[from]))
		for to := range h.typingOut[from] {
			tos = append(tos, to)
		}
		sort.Strings(tos)
		for _, to := range tos {
			attrs, err := attrval.DictToRaw(h.typingAttrs[typingKey{from, to}])
			if err != nil {
				return nil, err
			}
			wire.Typing = append(wire.Typing, wireTyping{
				From: from, To: to, Mapping: map[string]string(h.typingOut[from][to]), Attrs: attrs,
			})
		}
	}

	for _, id := range h.graphIDsLocked() {
		others := make([]string, 0, len(h.relationKeys[id]))
		for other := range h.relationKeys[id] {
			others = append(others, other)
		}
		sort.Strings(others)
		for _, other := range others {
			if id >= other {
				continue
			}
			wire.Relations = append(wire.Relations, wireRelation{
				From: id, To: other, Rel: h.relations[relationKey{id, other}],
			})
		}
	}

	return json.Marshal(wire)
}
