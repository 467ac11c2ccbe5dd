// Package graph implements the typed attributed directed graph store
// (nodes with unique string ids, attributed edges, no parallel edges,
// self-loops allowed) plus the two composite edit primitives the
// rewriting kernel builds on: cloning a node and merging a node set.
//
// Every mutation normalizes its attribute dictionary through
// [attrval.Dict] before it is stored, and every read/write is guarded by
// a single [sync.RWMutex] per Graph: readers (iteration, attribute
// lookups, successor/predecessor queries) may run concurrently with each
// other but never with a writer.
package graph
