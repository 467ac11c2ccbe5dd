// Package regraph provides a typed graph rewriting engine with hierarchical
// typing and change propagation.
//
// It manages a directed acyclic hierarchy of attributed directed graphs
// where edges in the hierarchy are typing morphisms (homomorphisms) between
// graphs, plus symmetric relations between graphs. The engine supports
// subgraph pattern matching, rule-based rewriting under sesqui-pushout
// (SqPO) semantics, and automatic propagation of edits up and down the
// typing chain so that every homomorphism path in the hierarchy keeps
// commuting.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - attrval: attribute value sets and the attribute algebra
//	  - rgerr: structured error kinds and non-fatal diagnostics
//
//	Core library tier:
//	  - graph: typed attributed graph store and primitive edits
//	  - homo: homomorphism validity checks
//	  - rule: rule algebra (L <- P -> R) and derived edit sets
//	  - match: subgraph pattern matching
//	  - rewrite: the SqPO rewriting executor
//	  - hierarchy: the graph hierarchy and commutativity enforcement
//	  - propagate: upward/downward change propagation
//
// # Entry points
//
// Build a hierarchy, register graphs and typings, then rewrite:
//
//	h := hierarchy.New()
//	h.AddGraph("G", g, nil)
//	h.AddGraph("H", parent, nil)
//	h.AddTyping("H", "G", typing, nil, true)
//
//	sess := regraph.NewSession(h)
//	rG, err := sess.Rewrite(ctx, "G", rule, instance, regraph.Options{})
//
// Rewrite validates the rule application, applies it to the named graph,
// and propagates the resulting edits through the hierarchy: restrictive
// edits (clone, remove, attribute-remove) flow up to predecessors, relaxing
// edits (merge, add, attribute-add) flow down to successors, unless the
// call is in strict mode.
//
// See the individual package documentation for details.
package regraph
