package attrval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kappa-Dev/ReGraph-sub002/attrval"
)

func TestFinite_NormalizesIntegerWidths(t *testing.T) {
	s := attrval.Finite(int32(1), int64(1), 1.0, 2)
	assert.Equal(t, 2, s.Len())
}

func TestFinite_Contains(t *testing.T) {
	s := attrval.Finite("red", "blue")
	ok, err := s.Contains("red")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Contains("green")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUniversalSets_IsUniversalAndNeverEmpty(t *testing.T) {
	for _, s := range []attrval.Set{
		attrval.UniversalIntegers(),
		attrval.UniversalStrings(),
		attrval.UniversalBooleans(),
	} {
		assert.True(t, s.IsUniversal())
		empty, err := s.IsEmpty()
		require.NoError(t, err)
		assert.False(t, empty)
	}
}

func TestRestrictedSet_OperationsUnsupported(t *testing.T) {
	s := attrval.RestrictedIntegers()
	assert.False(t, s.IsUniversal())
	_, err := s.IsEmpty()
	assert.ErrorContains(t, err, "Unsupported")
}

func TestFiniteSet_IsEmpty(t *testing.T) {
	empty, err := attrval.Finite().IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	nonEmpty, err := attrval.Finite(1).IsEmpty()
	require.NoError(t, err)
	assert.False(t, nonEmpty)
}

func TestSet_Values_SortedDeterministic(t *testing.T) {
	a := attrval.Finite("c", "a", "b").Values()
	b := attrval.Finite("b", "c", "a").Values()
	assert.Equal(t, a, b)
	assert.Equal(t, []any{"a", "b", "c"}, a)
}
