package attrval

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"
)

// Set is an attribute value set: one finite or symbolic variant, per
// spec §3/§4.1. The zero value is the empty finite set.
type Set struct {
	kind      Kind
	elems     map[any]struct{} // populated only when kind == KindFinite
	universal bool             // meaningful only for symbolic kinds
}

// Finite builds a finite set from scalar values (string, bool, or any
// integer/float type — integers are normalized to int64, integral
// floats are treated as integers). Duplicate values collapse, matching
// set semantics.
func Finite(values ...any) Set {
	elems := make(map[any]struct{}, len(values))
	for _, v := range values {
		elems[normalizeScalar(v)] = struct{}{}
	}
	return Set{kind: KindFinite, elems: elems}
}

// UniversalIntegers returns the universal integer interval set.
func UniversalIntegers() Set { return Set{kind: KindIntegerSet, universal: true} }

// UniversalStrings returns the universal string regex set.
func UniversalStrings() Set { return Set{kind: KindStringSet, universal: true} }

// UniversalBooleans returns the universal boolean set.
func UniversalBooleans() Set { return Set{kind: KindBooleanSet, universal: true} }

// RestrictedIntegers returns a non-universal integer interval set. Only
// [Set.Kind] and [Set.IsUniversal] are defined on the result; every
// other operation returns an Unsupported error, per spec §4.1.
func RestrictedIntegers() Set { return Set{kind: KindIntegerSet} }

// RestrictedStrings returns a non-universal string regex set, with the
// same limited support as [RestrictedIntegers].
func RestrictedStrings() Set { return Set{kind: KindStringSet} }

// normalizeScalar canonicalizes a raw Go value into the representation
// used as a finite-set element and map key: all integer widths and
// integral float64 (as decoded from JSON numbers) collapse to int64.
func normalizeScalar(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return normalizeScalar(float64(x))
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return int64(x)
		}
		return x
	case string, bool:
		return x
	default:
		return x
	}
}

// scalarKind reports which symbolic Kind a normalized scalar is
// compatible with, if any.
func scalarKind(v any) (Kind, bool) {
	switch v.(type) {
	case int64:
		return KindIntegerSet, true
	case string:
		return KindStringSet, true
	case bool:
		return KindBooleanSet, true
	default:
		return 0, false
	}
}

// Kind reports which variant the set holds.
func (s Set) Kind() Kind { return s.kind }

// IsUniversal reports whether the set is the universal instance of its
// symbolic variant. Finite sets are never universal.
func (s Set) IsUniversal() bool {
	return s.kind != KindFinite && s.universal
}

// IsEmpty reports whether the set has no members. Universal sets are
// never empty; a restricted (non-universal) symbolic set returns
// Unsupported, since this implementation does not track restricted
// bounds/patterns.
func (s Set) IsEmpty() (bool, error) {
	switch s.kind {
	case KindFinite:
		return len(s.elems) == 0, nil
	default:
		if !s.universal {
			return false, errUnsupported(s.kind)
		}
		return false, nil
	}
}

// Contains reports whether v (after scalar normalization) is a member
// of the set.
func (s Set) Contains(v any) (bool, error) {
	nv := normalizeScalar(v)
	switch s.kind {
	case KindFinite:
		_, ok := s.elems[nv]
		return ok, nil
	case KindIntegerSet, KindStringSet, KindBooleanSet:
		if !s.universal {
			return false, errUnsupported(s.kind)
		}
		vk, ok := scalarKind(nv)
		return ok && vk == s.kind, nil
	default:
		return false, fmt.Errorf("attrval: unknown kind %v", s.kind)
	}
}

// Values returns the sorted (by formatted string) elements of a finite
// set, for deterministic iteration and JSON encoding. Returns nil for
// symbolic sets.
func (s Set) Values() []any {
	if s.kind != KindFinite {
		return nil
	}
	out := make([]any, 0, len(s.elems))
	for v := range maps.Keys(s.elems) {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
	})
	return out
}

// Len reports the number of elements in a finite set (0 for symbolic
// sets, regardless of universality).
func (s Set) Len() int {
	if s.kind != KindFinite {
		return 0
	}
	return len(s.elems)
}

func (s Set) finiteCompatibleWith(k Kind) bool {
	for v := range s.elems {
		vk, ok := scalarKind(v)
		if !ok || vk != k {
			return false
		}
	}
	return true
}

// String renders a debug-friendly summary (not the wire format; see the
// json.go AttrDictJSON codec for that).
func (s Set) String() string {
	if s.kind == KindFinite {
		return fmt.Sprintf("Finite%v", s.Values())
	}
	if s.universal {
		return "Universal(" + s.kind.String() + ")"
	}
	return "Restricted(" + s.kind.String() + ")"
}

// cloneElems returns an independent copy of a finite set's backing map (Go
// maps are reference types; every operation below must not alias its
// operands' storage).
func (s Set) cloneElems() map[any]struct{} {
	return maps.Clone(s.elems)
}

// equalSlice reports whether two slices (such as the sorted Values() of
// two finite sets) hold equal elements in the same order.
func equalSlice(a, b []any) bool {
	return slices.EqualFunc(a, b, func(x, y any) bool { return x == y })
}
