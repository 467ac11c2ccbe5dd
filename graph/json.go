package graph

import (
	"context"
	"encoding/json"

	"github.com/tidwall/jsonc"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
)

// wireNode and wireEdge mirror the §6 GraphJSON schema:
//
//	{ "nodes": [ { "id": <string>, "attrs": AttrDictJSON }, … ],
//	  "edges": [ { "from": <string>, "to": <string>, "attrs": AttrDictJSON }, … ] }
type wireNode struct {
	ID    string         `json:"id"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

type wireEdge struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

type wireGraph struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`
}

// DecodeJSON builds a Graph from GraphJSON data. Comments and trailing
// commas are tolerated the same way the rest of this module's JSON
// surfaces tolerate them, via a jsonc preprocessing pass.
func DecodeJSON(ctx context.Context, data []byte, opts ...Option) (*Graph, error) {
	var wire wireGraph
	if err := json.Unmarshal(jsonc.ToJSON(data), &wire); err != nil {
		return nil, rgerr.Wrap(rgerr.GraphError, err, "invalid graph JSON")
	}

	g := New(opts...)
	for _, n := range wire.Nodes {
		attrs, err := attrval.DictFromRaw(n.Attrs)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(ctx, n.ID, attrs); err != nil {
			return nil, err
		}
	}
	for _, e := range wire.Edges {
		attrs, err := attrval.DictFromRaw(e.Attrs)
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(ctx, e.From, e.To, attrs); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// EncodeJSON renders g as GraphJSON, with nodes and edges sorted by id
// for deterministic output.
func EncodeJSON(g *Graph) ([]byte, error) {
	wire := wireGraph{}
	for _, id := range g.Nodes() {
		attrs, err := g.NodeAttrs(id)
		if err != nil {
			return nil, err
		}
		raw, err := attrval.DictToRaw(attrs)
		if err != nil {
			return nil, err
		}
		wire.Nodes = append(wire.Nodes, wireNode{ID: id, Attrs: raw})
	}
	for _, e := range g.Edges() {
		attrs, err := g.EdgeAttrs(e.From, e.To)
		if err != nil {
			return nil, err
		}
		raw, err := attrval.DictToRaw(attrs)
		if err != nil {
			return nil, err
		}
		wire.Edges = append(wire.Edges, wireEdge{From: e.From, To: e.To, Attrs: raw})
	}
	return json.Marshal(wire)
}
