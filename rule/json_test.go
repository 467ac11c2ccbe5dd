package rule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kappa-Dev/ReGraph-sub002/rule"
)

func TestDecodeJSON_RoundTrips(t *testing.T) {
	ctx := context.Background()
	data := []byte(`{
		"lhs": {"nodes": [{"id": "a"}], "edges": []},
		"p":   {"nodes": [{"id": "a"}], "edges": []},
		"rhs": {"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b"}]},
		"p_lhs": {"a": "a"},
		"p_rhs": {"a": "a"}
	}`)

	rl, err := rule.DecodeJSON(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, rl.AddedNodes())

	encoded, err := rule.EncodeJSON(rl)
	require.NoError(t, err)

	rl2, err := rule.DecodeJSON(ctx, encoded)
	require.NoError(t, err)
	assert.Equal(t, rl.AddedNodes(), rl2.AddedNodes())
}

func TestDecodeJSON_InvalidRejected(t *testing.T) {
	ctx := context.Background()
	data := []byte(`{"lhs": {"nodes": [{"id": "a"}, {"id": "orphan"}], "edges": []},
		"p": {"nodes": [{"id": "a"}], "edges": []},
		"rhs": {"nodes": [{"id": "a"}], "edges": []},
		"p_lhs": {"a": "a"}, "p_rhs": {"a": "a"}}`)
	_, err := rule.DecodeJSON(ctx, data)
	assert.Error(t, err)
}
