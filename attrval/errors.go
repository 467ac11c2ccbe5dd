package attrval

import "github.com/Kappa-Dev/ReGraph-sub002/rgerr"

func errUnsupported(k Kind) error {
	return rgerr.New(rgerr.Unsupported,
		"operation requires a universal "+k.String(),
		rgerr.Detail{Key: rgerr.DetailKeyReason, Value: "non_universal"},
		rgerr.Detail{Key: "kind", Value: k.String()},
	)
}

func errTypeMismatch(a, b Kind) error {
	return rgerr.New(rgerr.Unsupported,
		"cannot combine incompatible attribute value set variants",
		rgerr.Detail{Key: rgerr.DetailKeyReason, Value: "type_mismatch"},
		rgerr.Detail{Key: "left", Value: a.String()},
		rgerr.Detail{Key: "right", Value: b.String()},
	)
}
