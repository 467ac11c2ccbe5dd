package rule

import "github.com/Kappa-Dev/ReGraph-sub002/rgerr"

func errInvalidSpan(which string, cause error) error {
	return rgerr.Wrap(rgerr.RuleError, cause, which+" is not a valid homomorphism")
}

func errNotSurjective(lNode string) error {
	return rgerr.New(rgerr.RuleError, "l: P -> L is not surjective",
		rgerr.Detail{Key: rgerr.DetailKeyNode, Value: lNode})
}

func errDanglingNodeAttr(pNode, lNode, key string) error {
	return rgerr.New(rgerr.RuleError, "p node references an attribute key absent from its l image",
		rgerr.Detail{Key: rgerr.DetailKeyNode, Value: pNode + " -> " + lNode},
		rgerr.Detail{Key: rgerr.DetailKeyAttr, Value: key})
}

func errDanglingEdgeAttr(pFrom, pTo, lFrom, lTo, key string) error {
	return rgerr.New(rgerr.RuleError, "p edge references an attribute key absent from its l image",
		rgerr.Detail{Key: rgerr.DetailKeyEdge, Value: pFrom + "->" + pTo + " -> " + lFrom + "->" + lTo},
		rgerr.Detail{Key: rgerr.DetailKeyAttr, Value: key})
}
