package attrval

import "github.com/Kappa-Dev/ReGraph-sub002/rgerr"

// DictFromRaw decodes an already-unmarshaled AttrDictJSON object (spec
// §6: each key maps to either a JSON array — a finite set — or one of
// the literal strings "IntegerSet", "StringSet", "BooleanSet" denoting
// the universal instance of that symbolic variant).
func DictFromRaw(m map[string]any) (Dict, error) {
	out := make(Dict, len(m))
	for k, v := range m {
		set, err := setFromRaw(k, v)
		if err != nil {
			return nil, err
		}
		out[k] = set
	}
	return out, nil
}

func setFromRaw(key string, v any) (Set, error) {
	switch x := v.(type) {
	case string:
		switch x {
		case "IntegerSet":
			return UniversalIntegers(), nil
		case "StringSet":
			return UniversalStrings(), nil
		case "BooleanSet":
			return UniversalBooleans(), nil
		default:
			return Finite(x), nil
		}
	case []any:
		return Finite(x...), nil
	case nil:
		return Finite(), nil
	default:
		return Set{}, rgerr.New(rgerr.GraphError,
			"attribute value must be a JSON array or a universal-set marker string",
			rgerr.Detail{Key: rgerr.DetailKeyAttr, Value: key},
		)
	}
}

// DictToRaw encodes a Dict back into its AttrDictJSON shape. Returns
// Unsupported if any value set is a restricted (non-universal) symbolic
// variant, since those cannot round-trip through JSON (spec §4.1).
func DictToRaw(d Dict) (map[string]any, error) {
	out := make(map[string]any, len(d))
	for k, v := range d {
		switch v.Kind() {
		case KindFinite:
			vals := v.Values()
			if vals == nil {
				vals = []any{}
			}
			out[k] = vals
		case KindIntegerSet, KindStringSet, KindBooleanSet:
			if !v.IsUniversal() {
				return nil, errUnsupported(v.Kind())
			}
			out[k] = v.Kind().String()
		}
	}
	return out, nil
}
