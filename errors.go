package regraph

import "github.com/Kappa-Dev/ReGraph-sub002/rgerr"

func errGraphNotFound(graphID string, cause error) *rgerr.Error {
	return rgerr.Wrap(rgerr.HierarchyError, cause, "graph not found",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: graphID})
}

func errInstanceNotHomomorphism(graphID string, cause error) *rgerr.Error {
	return rgerr.Wrap(rgerr.InvalidHomomorphism, cause, "instance is not a valid homomorphism",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: graphID})
}

func errInstanceNotInjective(graphID string) *rgerr.Error {
	return rgerr.New(rgerr.InvalidHomomorphism, "instance must be injective",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: graphID})
}

func errRewrite(graphID string, cause error) *rgerr.Error {
	return rgerr.Wrap(rgerr.RewritingError, cause, "rewrite failed",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: graphID})
}

func errStrictMissingTyping(successor, node string) *rgerr.Error {
	return rgerr.New(rgerr.RewritingError, "added node has no typing hint in strict mode",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: successor},
		rgerr.Detail{Key: rgerr.DetailKeyNode, Value: node})
}

func errStrictMergeDiverges(successor, node string) *rgerr.Error {
	return rgerr.New(rgerr.RewritingError, "merged nodes have distinct existing images in strict mode",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: successor},
		rgerr.Detail{Key: rgerr.DetailKeyNode, Value: node})
}

func errStrictEdgeMissing(successor string, from, to string) *rgerr.Error {
	return rgerr.New(rgerr.RewritingError, "added edge has no corresponding edge in strict mode",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: successor},
		rgerr.Detail{Key: rgerr.DetailKeyEdge, Value: from + "->" + to})
}

func errStrictAttrMissing(successor, node, attr string) *rgerr.Error {
	return rgerr.New(rgerr.RewritingError, "added attribute is not already present on the image in strict mode",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: successor},
		rgerr.Detail{Key: rgerr.DetailKeyNode, Value: node},
		rgerr.Detail{Key: rgerr.DetailKeyAttr, Value: attr})
}
