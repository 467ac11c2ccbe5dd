package rule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
	"github.com/Kappa-Dev/ReGraph-sub002/rule"
)

// buildCloneRule builds a rule that clones a single L-node "a" into two
// P-preimages "p1","p2", both mapping back to R-nodes "a1","a2".
func buildCloneRule(t *testing.T) *rule.Rule {
	t.Helper()
	ctx := context.Background()

	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "a", nil))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "p1", nil))
	require.NoError(t, p.AddNode(ctx, "p2", nil))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "a1", nil))
	require.NoError(t, r.AddNode(ctx, "a2", nil))

	pl := homo.Mapping{"p1": "a", "p2": "a"}
	pr := homo.Mapping{"p1": "a1", "p2": "a2"}

	rl, err := rule.New(l, p, r, pl, pr)
	require.NoError(t, err)
	return rl
}

func TestNew_ClonedNodes(t *testing.T) {
	rl := buildCloneRule(t)
	cloned := rl.ClonedNodes()
	assert.Equal(t, map[string][]string{"a": {"p1", "p2"}}, cloned)
	assert.True(t, rl.IsRestrictive())
}

func TestNew_MergedNodes(t *testing.T) {
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

	merged := rl.MergedNodes()
	assert.Equal(t, map[string][]string{"m": {"p1", "p2"}}, merged)
	assert.True(t, rl.IsRelaxing())
}

func TestNew_RemovedAndAddedNodes(t *testing.T) {
	ctx := context.Background()
	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "a", nil))
	require.NoError(t, l.AddNode(ctx, "doomed", nil))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "a", nil))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "a", nil))
	require.NoError(t, r.AddNode(ctx, "fresh", nil))

	pl := homo.Mapping{"a": "a"}
	pr := homo.Mapping{"a": "a"}

	rl, err := rule.New(l, p, r, pl, pr)
	require.NoError(t, err)
	assert.Equal(t, []string{"doomed"}, rl.RemovedNodes())
	assert.Equal(t, []string{"fresh"}, rl.AddedNodes())
}

func TestNew_NotSurjectiveRejected(t *testing.T) {
	ctx := context.Background()
	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "a", nil))
	require.NoError(t, l.AddNode(ctx, "orphan", nil))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "a", nil))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "a", nil))

	_, err := rule.New(l, p, r, homo.Mapping{"a": "a"}, homo.Mapping{"a": "a"})
	assert.Error(t, err)
}

func TestIdentity_IsNeitherRestrictiveNorRelaxing(t *testing.T) {
	ctx := context.Background()
	g := graph.New()
	require.NoError(t, g.AddNode(ctx, "a", nil))
	require.NoError(t, g.AddNode(ctx, "b", nil))
	require.NoError(t, g.AddEdge(ctx, "a", "b", nil))

	rl := rule.Identity(g)
	assert.False(t, rl.IsRestrictive())
	assert.False(t, rl.IsRelaxing())
	assert.Empty(t, rl.RemovedNodes())
	assert.Empty(t, rl.AddedNodes())
}

func TestRemovedNodeAttrs(t *testing.T) {
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

	removed, err := rl.RemovedNodeAttrs()
	require.NoError(t, err)
	assert.Equal(t, 1, removed["n"]["color"].Len())
}

func TestString_Summarizes(t *testing.T) {
	rl := buildCloneRule(t)
	s := rl.String()
	assert.Contains(t, s, "clone:")
}

func TestNew_RejectsDanglingAttrKey(t *testing.T) {
	ctx := context.Background()
	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "n", nil))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "n", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "n", nil))

	_, err := rule.New(l, p, r, homo.Mapping{"n": "n"}, homo.Mapping{"n": "n"})
	require.Error(t, err)
	assert.True(t, rgerr.Is(err, rgerr.RuleError))
}

func TestEdgeAttrOnlyRule_IsRestrictiveAndRelaxing(t *testing.T) {
	ctx := context.Background()
	l := graph.New()
	require.NoError(t, l.AddNode(ctx, "a", nil))
	require.NoError(t, l.AddNode(ctx, "b", nil))
	require.NoError(t, l.AddEdge(ctx, "a", "b", attrval.NewDict(map[string]attrval.Set{
		"weight": attrval.Finite(1, 2),
	})))

	p := graph.New()
	require.NoError(t, p.AddNode(ctx, "a", nil))
	require.NoError(t, p.AddNode(ctx, "b", nil))
	require.NoError(t, p.AddEdge(ctx, "a", "b", attrval.NewDict(map[string]attrval.Set{
		"weight": attrval.Finite(1),
	})))

	r := graph.New()
	require.NoError(t, r.AddNode(ctx, "a", nil))
	require.NoError(t, r.AddNode(ctx, "b", nil))
	require.NoError(t, r.AddEdge(ctx, "a", "b", attrval.NewDict(map[string]attrval.Set{
		"weight": attrval.Finite(1, 2, 3),
	})))

	rl, err := rule.New(l, p, r, homo.Mapping{"a": "a", "b": "b"}, homo.Mapping{"a": "a", "b": "b"})
	require.NoError(t, err)

	// The only edit is to the a->b edge's attributes: narrower on the
	// L->P step (restrictive) and wider again on the P->R step (relaxing).
	assert.True(t, rl.IsRestrictive())
	assert.True(t, rl.IsRelaxing())
}
