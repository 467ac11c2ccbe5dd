// Package propagate implements the propagation engine (spec.md §4.8):
// after a rewrite of a graph in the hierarchy, it pushes restrictive
// edits (clones, node/edge removals, attribute removals) up to every
// predecessor and relaxing edits (merges, node/edge additions,
// attribute additions) down to every successor, preserving path
// commutativity.
//
// Upward propagation visits each predecessor exactly once in
// reverse-topological order; downward propagation visits each
// successor exactly once in topological order.
package propagate
