package match_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/match"
)

func TestFindMatches_EmptyPattern(t *testing.T) {
	host := graph.New()
	pattern := graph.New()
	matches, err := match.FindMatches(pattern, host, match.Options{})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Empty(t, matches[0])
}

func TestFindMatches_SimpleTriangleAllPermutations(t *testing.T) {
	ctx := context.Background()
	host := graph.New()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, host.AddNode(ctx, n, nil))
	}
	require.NoError(t, host.AddEdge(ctx, "a", "b", nil))
	require.NoError(t, host.AddEdge(ctx, "b", "c", nil))
	require.NoError(t, host.AddEdge(ctx, "c", "a", nil))

	pattern := graph.New()
	for _, n := range []string{"x", "y"} {
		require.NoError(t, pattern.AddNode(ctx, n, nil))
	}
	require.NoError(t, pattern.AddEdge(ctx, "x", "y", nil))

	matches, err := match.FindMatches(pattern, host, match.Options{})
	require.NoError(t, err)
	// Each of the 3 directed edges in the triangle is a distinct match.
	assert.Len(t, matches, 3)
	for _, m := range matches {
		assert.True(t, host.HasEdge(m["x"], m["y"]))
		assert.NotEqual(t, m["x"], m["y"])
	}
}

func TestFindMatches_AllowedNodeSet(t *testing.T) {
	ctx := context.Background()
	host := graph.New()
	require.NoError(t, host.AddNode(ctx, "a", nil))
	require.NoError(t, host.AddNode(ctx, "b", nil))

	pattern := graph.New()
	require.NoError(t, pattern.AddNode(ctx, "x", nil))

	matches, err := match.FindMatches(pattern, host, match.Options{
		AllowedNodes: map[string]struct{}{"b": {}},
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "b", matches[0]["x"])
}

func TestFindMatches_AttributeInclusionRequired(t *testing.T) {
	ctx := context.Background()
	host := graph.New()
	require.NoError(t, host.AddNode(ctx, "a", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))
	require.NoError(t, host.AddNode(ctx, "b", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("blue"),
	})))

	pattern := graph.New()
	require.NoError(t, pattern.AddNode(ctx, "x", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))

	matches, err := match.FindMatches(pattern, host, match.Options{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0]["x"])
}

func TestFindMatches_TypingConstraint(t *testing.T) {
	ctx := context.Background()
	host := graph.New()
	require.NoError(t, host.AddNode(ctx, "a", nil))
	require.NoError(t, host.AddNode(ctx, "b", nil))

	pattern := graph.New()
	require.NoError(t, pattern.AddNode(ctx, "x", nil))

	matches, err := match.FindMatches(pattern, host, match.Options{
		Typings: []match.TypingConstraint{{
			Tau:        map[string]string{"x": "T1"},
			HostTyping: map[string]string{"a": "T1", "b": "T2"},
		}},
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0]["x"])
}

func TestFindMatches_NoMatchWhenEdgeMissing(t *testing.T) {
	ctx := context.Background()
	host := graph.New()
	require.NoError(t, host.AddNode(ctx, "a", nil))
	require.NoError(t, host.AddNode(ctx, "b", nil))

	pattern := graph.New()
	require.NoError(t, pattern.AddNode(ctx, "x", nil))
	require.NoError(t, pattern.AddNode(ctx, "y", nil))
	require.NoError(t, pattern.AddEdge(ctx, "x", "y", nil))

	matches, err := match.FindMatches(pattern, host, match.Options{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatches_SelfLoopRequired(t *testing.T) {
	ctx := context.Background()
	host := graph.New()
	require.NoError(t, host.AddNode(ctx, "a", nil))
	require.NoError(t, host.AddNode(ctx, "b", nil))
	require.NoError(t, host.AddEdge(ctx, "a", "a", nil))

	pattern := graph.New()
	require.NoError(t, pattern.AddNode(ctx, "x", nil))
	require.NoError(t, pattern.AddEdge(ctx, "x", "x", nil))

	matches, err := match.FindMatches(pattern, host, match.Options{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0]["x"])
}
