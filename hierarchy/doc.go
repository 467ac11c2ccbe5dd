// Package hierarchy implements the typed graph hierarchy (spec.md
// §4.7): a directed acyclic multigraph of graph handles connected by
// typing edges (homomorphisms) and symmetric relation edges. It
// enforces the two structural invariants — at most one typing and at
// most one relation between any ordered/unordered pair of graphs — and
// the commutativity invariant: every pair of typing paths out of a
// common ancestor must agree node-wise.
package hierarchy
