// Package rule implements the SqPO rule algebra: a span L ← P → R of
// graphs connected by homomorphisms l: P → L (surjective — its
// non-injectivity expresses cloning) and r: P → R (its non-injectivity
// expresses merging), plus the derived sets (cloned/merged/removed/
// added nodes and edges, attribute deltas) spec.md §4.4 requires.
package rule
