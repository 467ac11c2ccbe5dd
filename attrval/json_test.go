package attrval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
)

func TestDictFromRaw_FiniteArray(t *testing.T) {
	d, err := attrval.DictFromRaw(map[string]any{
		"color": []any{"red", "blue"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, d["color"].Len())
}

func TestDictFromRaw_UniversalMarkers(t *testing.T) {
	d, err := attrval.DictFromRaw(map[string]any{
		"age":    "IntegerSet",
		"name":   "StringSet",
		"active": "BooleanSet",
	})
	require.NoError(t, err)
	assert.True(t, d["age"].IsUniversal())
	assert.Equal(t, attrval.KindIntegerSet, d["age"].Kind())
	assert.True(t, d["name"].IsUniversal())
	assert.Equal(t, attrval.KindStringSet, d["name"].Kind())
	assert.True(t, d["active"].IsUniversal())
	assert.Equal(t, attrval.KindBooleanSet, d["active"].Kind())
}

func TestDictFromRaw_BareScalarWrappedAsFinite(t *testing.T) {
	d, err := attrval.DictFromRaw(map[string]any{"label": "solo"})
	require.NoError(t, err)
	assert.Equal(t, attrval.KindFinite, d["label"].Kind())
	ok, err := d["label"].Contains("solo")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDictFromRaw_NullBecomesEmptyFinite(t *testing.T) {
	d, err := attrval.DictFromRaw(map[string]any{"tags": nil})
	require.NoError(t, err)
	assert.Equal(t, 0, d["tags"].Len())
}

func TestDictFromRaw_RejectsUnsupportedShape(t *testing.T) {
	_, err := attrval.DictFromRaw(map[string]any{"bad": 42})
	assert.Error(t, err)
}

func TestDictToRaw_FiniteRoundTrips(t *testing.T) {
	d := attrval.NewDict(map[string]attrval.Set{
		"color": attrval.Finite("red", "blue"),
	})
	raw, err := attrval.DictToRaw(d)
	require.NoError(t, err)

	back, err := attrval.DictFromRaw(raw)
	require.NoError(t, err)
	eq, err := back["color"].Equal(d["color"])
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestDictToRaw_UniversalRoundTrips(t *testing.T) {
	d := attrval.NewDict(map[string]attrval.Set{
		"age": attrval.UniversalIntegers(),
	})
	raw, err := attrval.DictToRaw(d)
	require.NoError(t, err)
	assert.Equal(t, "IntegerSet", raw["age"])
}

func TestDictToRaw_RestrictedSymbolicUnsupported(t *testing.T) {
	d := attrval.NewDict(map[string]attrval.Set{
		"age": attrval.RestrictedIntegers(),
	})
	_, err := attrval.DictToRaw(d)
	assert.ErrorContains(t, err, "Unsupported")
}

func TestDictToRaw_EmptyFiniteEncodesAsEmptyArray(t *testing.T) {
	d := attrval.NewDict(map[string]attrval.Set{"tags": attrval.Finite()})
	raw, err := attrval.DictToRaw(d)
	require.NoError(t, err)
	assert.Equal(t, []any{}, raw["tags"])
}
