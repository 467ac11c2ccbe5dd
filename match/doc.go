// Package match implements subgraph pattern matching (spec.md §4.5): it
// finds every injective homomorphism from a pattern graph into a host
// graph, optionally constrained to an allowed node set and to a set of
// pattern-typing hints against ancestor graphs in the hierarchy.
package match
