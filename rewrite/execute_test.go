package rewrite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rewrite"
	"github.com/Kappa-Dev/ReGraph-sub002/rule"
)

func TestExecute_AddNode(t *testing.T) {
	ctx := context.Background()

	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "x", nil))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "x", nil))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "x", nil))
	require.NoError(t, r.AddNode(ctx, "y", attrval.NewDict(map[string]attrval.Set{
		"label": attrval.Finite("fresh"),
	})))
	require.NoError(t, r.AddEdge(ctx, "x", "y", nil))

	rl, err := rule.New(l, p, r, homo.Mapping{"x": "x"}, homo.Mapping{"x": "x"})
	require.NoError(t, err)

	g := graph.New()
	require.NoError(t, g.AddNode(ctx, "n1", nil))

	rg, _, err := rewrite.Execute(ctx, g, homo.Mapping{"x": "n1"}, rl)
	require.NoError(t, err)

	assert.Equal(t, "n1", rg["x"])
	newNode := rg["y"]
	require.NotEmpty(t, newNode)
	assert.Equal(t, 2, g.NodeCount())
	assert.True(t, g.HasEdge("n1", newNode))
	attrs, err := g.NodeAttrs(newNode)
	require.NoError(t, err)
	assert.Equal(t, 1, attrs["label"].Len())
}

// buildCloneRule builds a rule cloning L-node "a" (which sits between a
// predecessor "b" and a successor "c") into two P-preimages, one
// preserving the successor edge and the other the predecessor edge.
func buildCloneRule(t *testing.T) *rule.Rule {
	t.Helper()
	ctx := context.Background()

	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "a", nil))
	require.NoError(t, l.AddNode(ctx, "b", nil))
	require.NoError(t, l.AddNode(ctx, "c", nil))
	require.NoError(t, l.AddEdge(ctx, "b", "a", nil))
	require.NoError(t, l.AddEdge(ctx, "a", "c", nil))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "p1", nil))
	require.NoError(t, p.AddNode(ctx, "p2", nil))
	require.NoError(t, p.AddNode(ctx, "b", nil))
	require.NoError(t, p.AddNode(ctx, "c", nil))
	require.NoError(t, p.AddEdge(ctx, "p1", "c", nil))
	require.NoError(t, p.AddEdge(ctx, "b", "p2", nil))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "a1", nil))
	require.NoError(t, r.AddNode(ctx, "a2", nil))
	require.NoError(t, r.AddNode(ctx, "b", nil))
	require.NoError(t, r.AddNode(ctx, "c", nil))
	require.NoError(t, r.AddEdge(ctx, "a1", "c", nil))
	require.NoError(t, r.AddEdge(ctx, "b", "a2", nil))

	pl := homo.Mapping{"p1": "a", "p2": "a", "b": "b", "c": "c"}
	pr := homo.Mapping{"p1": "a1", "p2": "a2", "b": "b", "c": "c"}

	rl, err := rule.New(l, p, r, pl, pr)
	require.NoError(t, err)
	return rl
}

func TestExecute_CloneDistributesEdgesByPreimage(t *testing.T) {
	ctx := context.Background()
	rl := buildCloneRule(t)

	g := graph.New()
	require.NoError(t, g.AddNode(ctx, "a", nil))
	require.NoError(t, g.AddNode(ctx, "b", nil))
	require.NoError(t, g.AddNode(ctx, "c", nil))
	require.NoError(t, g.AddEdge(ctx, "b", "a", nil))
	require.NoError(t, g.AddEdge(ctx, "a", "c", nil))

	instance := homo.Mapping{"a": "a", "b": "b", "c": "c"}
	rg, _, err := rewrite.Execute(ctx, g, instance, rl)
	require.NoError(t, err)

	a1, a2 := rg["a1"], rg["a2"]
	assert.Equal(t, "a", a1)
	assert.NotEqual(t, a1, a2)

	assert.True(t, g.HasEdge(a1, "c"))
	assert.False(t, g.HasEdge(a2, "c"))
	assert.True(t, g.HasEdge("b", a2))
	// The original node's own edges are untouched by cloning.
	assert.True(t, g.HasEdge("b", "a"))
	assert.Equal(t, 4, g.NodeCount())
}

func TestExecute_MergeNodesFoldsSharedNeighborEdges(t *testing.T) {
	ctx := context.Background()

	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "a", nil))
	require.NoError(t, l.AddNode(ctx, "b", nil))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "p1", nil))
	require.NoError(t, p.AddNode(ctx, "p2", nil))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "m", nil))

	pl := homo.Mapping{"p1": "a", "p2": "b"}
	pr := homo.Mapping{"p1": "m", "p2": "m"}

	rl, err := rule.New(l, p, r, pl, pr)
	require.NoError(t, err)

	g := graph.New()
	require.NoError(t, g.AddNode(ctx, "a", nil))
	require.NoError(t, g.AddNode(ctx, "b", nil))
	require.NoError(t, g.AddNode(ctx, "c", nil))
	require.NoError(t, g.AddEdge(ctx, "a", "c", attrval.NewDict(map[string]attrval.Set{
		"via": attrval.Finite("a"),
	})))
	require.NoError(t, g.AddEdge(ctx, "b", "c", attrval.NewDict(map[string]attrval.Set{
		"via": attrval.Finite("b"),
	})))

	rg, _, err := rewrite.Execute(ctx, g, homo.Mapping{"a": "a", "b": "b"}, rl)
	require.NoError(t, err)

	merged := rg["m"]
	assert.Equal(t, "a", merged) // lowest-sorted member wins
	assert.False(t, g.HasNode("b"))
	require.True(t, g.HasEdge(merged, "c"))
	attrs, err := g.EdgeAttrs(merged, "c")
	require.NoError(t, err)
	assert.Equal(t, 2, attrs["via"].Len())
}

func TestExecute_RemoveAttrPhaseShrinksNodeAttrs(t *testing.T) {
	ctx := context.Background()

	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "n", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red", "blue"),
	})))
	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "n", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))
	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "n", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))

	rl, err := rule.New(l, p, r, homo.Mapping{"n": "n"}, homo.Mapping{"n": "n"})
	require.NoError(t, err)

	g := graph.New()
	require.NoError(t, g.AddNode(ctx, "n", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red", "blue", "green"),
	})))

	rg, _, err := rewrite.Execute(ctx, g, homo.Mapping{"n": "n"}, rl)
	require.NoError(t, err)

	attrs, err := g.NodeAttrs(rg["n"])
	require.NoError(t, err)
	assert.Equal(t, 2, attrs["color"].Len())
}

func TestExecute_RemoveNodeDeletesIncidentEdges(t *testing.T) {
	ctx := context.Background()

	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "a", nil))
	require.NoError(t, l.AddNode(ctx, "doomed", nil))
	require.NoError(t, l.AddEdge(ctx, "a", "doomed", nil))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "a", nil))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "a", nil))

	rl, err := rule.New(l, p, r, homo.Mapping{"a": "a"}, homo.Mapping{"a": "a"})
	require.NoError(t, err)

	g := graph.New()
	require.NoError(t, g.AddNode(ctx, "a", nil))
	require.NoError(t, g.AddNode(ctx, "doomed", nil))
	require.NoError(t, g.AddEdge(ctx, "a", "doomed", nil))

	rg, _, err := rewrite.Execute(ctx, g, homo.Mapping{"a": "a", "doomed": "doomed"}, rl)
	require.NoError(t, err)

	assert.False(t, g.HasNode("doomed"))
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, "a", rg["a"])
}
