// Package attrval implements the attribute value algebra of spec §4.1:
// every node/edge attribute value is a set of values with three
// polymorphic variants (finite, universal integer interval, universal
// string regex), plus a boolean variant used by the symbolic
// homomorphism check in the homo package. Dictionaries of named
// attribute sets ([Dict]) support key-wise union, intersection, and
// inclusion.
//
// Only the universal case of the integer-interval and string-regex
// variants is required to round-trip; any algebraic operation requested
// on a restricted (non-universal) instance of those variants returns an
// [Unsupported] error, per spec §4.1/§7.
package attrval
