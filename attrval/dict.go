package attrval

import "maps"

// Dict maps attribute keys to value sets, per spec §3 ("Attribute
// dictionaries map string keys to value sets").
type Dict map[string]Set

// NewDict builds a Dict from a plain map, cloning it so later mutation
// of the input does not alias the Dict's storage.
func NewDict(m map[string]Set) Dict {
	return maps.Clone(Dict(m))
}

// Clone returns an independent copy.
func (d Dict) Clone() Dict {
	return maps.Clone(d)
}

// Includes reports dictionary inclusion: every key on d is present on
// other and the corresponding value set is a subset (spec §3:
// "dictionary inclusion holds when every key on the left is present on
// the right and the corresponding value-set is a subset").
func (d Dict) Includes(other Dict) (bool, error) {
	for k, v := range d {
		ov, ok := other[k]
		if !ok {
			return false, nil
		}
		sub, err := v.IsSubsetOf(ov)
		if err != nil {
			return false, err
		}
		if !sub {
			return false, nil
		}
	}
	return true, nil
}

// Union merges two dictionaries key-wise: a key present in only one
// dictionary is carried through unchanged; a key present in both is the
// Union of the two value sets.
func (d Dict) Union(other Dict) (Dict, error) {
	out := make(Dict, len(d)+len(other))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range other {
		if existing, ok := out[k]; ok {
			merged, err := existing.Union(v)
			if err != nil {
				return nil, err
			}
			out[k] = merged
		} else {
			out[k] = v
		}
	}
	return out, nil
}

// Intersection computes the key-wise intersection: a key must be
// present in both dictionaries to survive, and its value is the
// Intersection of the two value sets.
func (d Dict) Intersection(other Dict) (Dict, error) {
	out := make(Dict)
	for k, v := range d {
		ov, ok := other[k]
		if !ok {
			continue
		}
		merged, err := v.Intersection(ov)
		if err != nil {
			return nil, err
		}
		out[k] = merged
	}
	return out, nil
}

// Difference removes, for every key shared with other, the elements of
// other's value set from d's (used to compute attribute removals
// between a rule's L/P restriction, spec §4.4). Keys present only in d
// are carried through unchanged.
func (d Dict) Difference(other Dict) (Dict, error) {
	out := make(Dict, len(d))
	for k, v := range d {
		ov, ok := other[k]
		if !ok {
			out[k] = v
			continue
		}
		diff, err := v.Difference(ov)
		if err != nil {
			return nil, err
		}
		out[k] = diff
	}
	return out, nil
}

// IsEmpty reports whether the dictionary has no keys, or every key maps
// to an empty set.
func (d Dict) IsEmpty() (bool, error) {
	for _, v := range d {
		empty, err := v.IsEmpty()
		if err != nil {
			return false, err
		}
		if !empty {
			return false, nil
		}
	}
	return true, nil
}
