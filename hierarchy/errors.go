package hierarchy

import "github.com/Kappa-Dev/ReGraph-sub002/rgerr"

func errGraphNotFound(id string) error {
	return rgerr.New(rgerr.HierarchyError, "graph not found",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: id})
}

func errGraphExists(id string) error {
	return rgerr.New(rgerr.HierarchyError, "graph already exists",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: id})
}

func errTypingExists(from, to string) error {
	return rgerr.New(rgerr.HierarchyError, "typing already exists",
		rgerr.Detail{Key: rgerr.DetailKeyTyping, Value: from + "->" + to})
}

func errTypingNotFound(from, to string) error {
	return rgerr.New(rgerr.HierarchyError, "typing not found",
		rgerr.Detail{Key: rgerr.DetailKeyTyping, Value: from + "->" + to})
}

func errRelationExists(a, b string) error {
	return rgerr.New(rgerr.HierarchyError, "relation already exists",
		rgerr.Detail{Key: rgerr.DetailKeyRelation, Value: a + "~" + b})
}

func errRelationNotFound(a, b string) error {
	return rgerr.New(rgerr.HierarchyError, "relation not found",
		rgerr.Detail{Key: rgerr.DetailKeyRelation, Value: a + "~" + b})
}

func errNotHomomorphism(from, to string, cause error) error {
	return rgerr.Wrap(rgerr.HierarchyError, cause, "typing is not a valid homomorphism",
		rgerr.Detail{Key: rgerr.DetailKeyTyping, Value: from + "->" + to})
}

func errCommutativity(ancestor, from, to string) error {
	return rgerr.New(rgerr.HierarchyError, "typing would break commutativity of existing paths",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: ancestor},
		rgerr.Detail{Key: rgerr.DetailKeyTyping, Value: from + "->" + to})
}

func errCycle(from, to string) error {
	return rgerr.New(rgerr.HierarchyError, "typing would create a cycle in the hierarchy",
		rgerr.Detail{Key: rgerr.DetailKeyTyping, Value: from + "->" + to})
}
