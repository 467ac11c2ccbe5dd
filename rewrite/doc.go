// Package rewrite implements the sesqui-pushout rewriting executor
// (spec.md §4.6): given a rule and a matched instance, it mutates a
// graph in place through a fixed sequence of phases — clone, remove
// nodes, remove edges, remove attributes, merge, add nodes, add
// attributes, add edges — and returns the resulting R→G′ map.
//
// Execute stops at the first violation, which surfaces as a
// RewritingError; the phases already applied stay applied to the graph
// it was given. Callers that need the original left untouched on
// failure run it against a copy (via [graph.Graph.Copy]) and keep the
// copy only on success.
package rewrite
