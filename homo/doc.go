// Package homo validates candidate homomorphisms between two typed
// attributed graphs: a total node map that preserves edges and whose
// attribute dictionaries are included in their images' (spec.md §4.3).
package homo
