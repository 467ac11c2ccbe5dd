package graph

import (
	"fmt"

	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
)

func errNodeNotFound(id string) error {
	return rgerr.New(rgerr.GraphError, "node not found",
		rgerr.Detail{Key: rgerr.DetailKeyNode, Value: id})
}

func errNodeExists(id string) error {
	return rgerr.New(rgerr.GraphError, "node already exists",
		rgerr.Detail{Key: rgerr.DetailKeyNode, Value: id})
}

func errEdgeNotFound(from, to string) error {
	return rgerr.New(rgerr.GraphError, "edge not found",
		rgerr.Detail{Key: rgerr.DetailKeyEdge, Value: edgeLabel(from, to)})
}

func errEdgeExists(from, to string) error {
	return rgerr.New(rgerr.GraphError, "edge already exists",
		rgerr.Detail{Key: rgerr.DetailKeyEdge, Value: edgeLabel(from, to)})
}

func errMissingEndpoint(id string) error {
	return rgerr.New(rgerr.GraphError, "edge endpoint is not a node of this graph",
		rgerr.Detail{Key: rgerr.DetailKeyNode, Value: id})
}

func errEmptyNodeSet(reason string) error {
	return rgerr.New(rgerr.GraphError, reason)
}

func edgeLabel(from, to string) string {
	return fmt.Sprintf("%s->%s", from, to)
}
