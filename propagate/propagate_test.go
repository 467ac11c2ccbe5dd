package propagate_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/hierarchy"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/propagate"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
)

func TestUpward_ClonePropagatesAndNarrowsTyping(t *testing.T) {
	ctx := context.Background()

	g0 := graph.New()
	require.NoError(t, g0.AddNode(ctx, "a", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red", "blue"),
	})))

	pred := graph.New()
	require.NoError(t, pred.AddNode(ctx, "h1", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red", "blue"),
	})))

	h := hierarchy.New()
	require.NoError(t, h.AddGraph(ctx, "G0", g0, nil))
	require.NoError(t, h.AddGraph(ctx, "H", pred, nil))
	require.NoError(t, h.AddTyping(ctx, "H", "G0", homo.Mapping{"h1": "a"}, nil, true))

	clone, err := g0.CloneNode(ctx, "a", graph.CloneOptions{})
	require.NoError(t, err)
	require.NoError(t, g0.UpdateNodeAttrs(ctx, "a", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))
	require.NoError(t, g0.UpdateNodeAttrs(ctx, clone, attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))

	images := []string{"a", clone}
	sort.Strings(images)
	summary := propagate.Summary{Images: map[string][]string{"a": images}}

	require.NoError(t, propagate.Upward(ctx, h, "G0", summary, nil, nil))

	assert.Equal(t, 2, pred.NodeCount())
	m, ok := h.Typing("H", "G0")
	require.True(t, ok)
	assert.Len(t, m, 2)

	gotImages := make([]string, 0, 2)
	for _, img := range m {
		gotImages = append(gotImages, img)
	}
	sort.Strings(gotImages)
	assert.Equal(t, images, gotImages)

	for hNode := range m {
		attrs, err := pred.NodeAttrs(hNode)
		require.NoError(t, err)
		assert.Equal(t, 1, attrs["color"].Len())
	}
}

func TestUpward_RemovesNodeWithNoSurvivingImage(t *testing.T) {
	ctx := context.Background()

	g0 := graph.New()
	require.NoError(t, g0.AddNode(ctx, "a", nil))
	require.NoError(t, g0.AddNode(ctx, "doomed", nil))
	require.NoError(t, g0.AddEdge(ctx, "a", "doomed", nil))

	pred := graph.New()
	require.NoError(t, pred.AddNode(ctx, "ha", nil))
	require.NoError(t, pred.AddNode(ctx, "hd", nil))
	require.NoError(t, pred.AddEdge(ctx, "ha", "hd", nil))

	h := hierarchy.New()
	require.NoError(t, h.AddGraph(ctx, "G0", g0, nil))
	require.NoError(t, h.AddGraph(ctx, "H", pred, nil))
	require.NoError(t, h.AddTyping(ctx, "H", "G0", homo.Mapping{"ha": "a", "hd": "doomed"}, nil, true))

	require.NoError(t, g0.RemoveNode(ctx, "doomed"))

	require.NoError(t, propagate.Upward(ctx, h, "G0", propagate.Summary{}, nil, nil))

	assert.False(t, pred.HasNode("hd"))
	assert.True(t, pred.HasNode("ha"))
	assert.False(t, pred.HasEdge("ha", "hd"))
	m, ok := h.Typing("H", "G0")
	require.True(t, ok)
	assert.Equal(t, homo.Mapping{"ha": "a"}, m)
}

func TestUpward_FallsBackWithWarningOnInconsistentHint(t *testing.T) {
	ctx := context.Background()

	g0 := graph.New()
	require.NoError(t, g0.AddNode(ctx, "a", nil))
	pred := graph.New()
	require.NoError(t, pred.AddNode(ctx, "h1", nil))

	h := hierarchy.New()
	require.NoError(t, h.AddGraph(ctx, "G0", g0, nil))
	require.NoError(t, h.AddGraph(ctx, "H", pred, nil))
	require.NoError(t, h.AddTyping(ctx, "H", "G0", homo.Mapping{"h1": "a"}, nil, true))

	clone, err := g0.CloneNode(ctx, "a", graph.CloneOptions{})
	require.NoError(t, err)

	summary := propagate.Summary{Images: map[string][]string{"a": {"a", clone}}}
	hints := propagate.Hints{"H": {"h1": "not-a-real-image"}}
	warnings := rgerr.NewCollector()

	require.NoError(t, propagate.Upward(ctx, h, "G0", summary, hints, warnings))

	assert.Equal(t, 1, warnings.Len())
	assert.Equal(t, 2, pred.NodeCount())
}

func TestDownward_MergesAddsAndUnionsAttrs(t *testing.T) {
	ctx := context.Background()

	// g0 starts out with the pre-rewrite shape the typing edge below
	// must validate against...
	g0 := graph.New()
	require.NoError(t, g0.AddNode(ctx, "a", nil))
	require.NoError(t, g0.AddNode(ctx, "b", nil))

	suc := graph.New()
	require.NoError(t, suc.AddNode(ctx, "ta", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))
	require.NoError(t, suc.AddNode(ctx, "tb", nil))

	h := hierarchy.New()
	require.NoError(t, h.AddGraph(ctx, "G0", g0, nil))
	require.NoError(t, h.AddGraph(ctx, "T", suc, nil))
	require.NoError(t, h.AddTyping(ctx, "G0", "T", homo.Mapping{"a": "ta", "b": "tb"}, nil, true))

	// ...then the rewrite merges "a" and "b" into "m" and adds "fresh",
	// leaving the stored typing edge pointing at now-gone node ids until
	// propagation settles it.
	require.NoError(t, g0.RemoveNode(ctx, "a"))
	require.NoError(t, g0.RemoveNode(ctx, "b"))
	require.NoError(t, g0.AddNode(ctx, "m", attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red"),
	})))
	require.NoError(t, g0.AddNode(ctx, "fresh", nil))
	require.NoError(t, g0.AddEdge(ctx, "m", "fresh", nil))

	summary := propagate.Summary{
		MergedInto: map[string][]string{"m": {"a", "b"}},
	}

	require.NoError(t, propagate.Downward(ctx, h, "G0", summary, nil, nil))

	m, ok := h.Typing("G0", "T")
	require.True(t, ok)
	require.Contains(t, m, "m")
	require.Contains(t, m, "fresh")
	assert.True(t, suc.HasEdge(m["m"], m["fresh"]))

	attrs, err := suc.NodeAttrs(m["m"])
	require.NoError(t, err)
	assert.Equal(t, 1, attrs["color"].Len())
}
