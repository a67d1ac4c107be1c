package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func person(id int64, name string) Person {
	return Person{ID: id, Name: name}
}

func castIDs(cast []Person) []int64 {
	ids := make([]int64, 0, len(cast))
	for _, p := range cast {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestReconcileCastComputesDelta(t *testing.T) {
	current := []Person{person(1, "a"), person(2, "b"), person(3, "c")}
	requested := []Person{person(2, "b"), person(4, "d")}

	delta := ReconcileCast(current, requested)

	assert.ElementsMatch(t, []int64{1, 3}, castIDs(delta.ToRemove))
	assert.ElementsMatch(t, []int64{4}, castIDs(delta.ToAdd))
}

func TestReconcileCastNoChange(t *testing.T) {
	current := []Person{person(1, "a"), person(2, "b")}
	requested := []Person{person(2, "b"), person(1, "a")}

	delta := ReconcileCast(current, requested)
	assert.True(t, delta.Empty())
}

func TestReconcileCastEmptyCurrent(t *testing.T) {
	requested := []Person{person(1, "a"), person(2, "b")}

	delta := ReconcileCast(nil, requested)
	assert.Empty(t, delta.ToRemove)
	assert.ElementsMatch(t, []int64{1, 2}, castIDs(delta.ToAdd))
}

func TestReconcileCastEmptyRequested(t *testing.T) {
	current := []Person{person(1, "a"), person(2, "b")}

	delta := ReconcileCast(current, nil)
	assert.Empty(t, delta.ToAdd)
	assert.ElementsMatch(t, []int64{1, 2}, castIDs(delta.ToRemove))
}

func TestReconcileCastIdempotent(t *testing.T) {
	current := []Person{person(1, "a"), person(2, "b")}
	requested := []Person{person(2, "b"), person(3, "c")}

	first := ReconcileCast(current, requested)
	after := first.Apply(current)
	require.ElementsMatch(t, []int64{2, 3}, castIDs(after))

	second := ReconcileCast(after, requested)
	assert.True(t, second.Empty())
	assert.ElementsMatch(t, []int64{2, 3}, castIDs(second.Apply(after)))
}

func TestCastDeltaApply(t *testing.T) {
	current := []Person{person(1, "a"), person(2, "b")}
	delta := CastDelta{
		ToAdd:    []Person{person(3, "c")},
		ToRemove: []Person{person(1, "a")},
	}

	result := delta.Apply(current)
	assert.ElementsMatch(t, []int64{2, 3}, castIDs(result))
	// The input slice stays untouched.
	assert.ElementsMatch(t, []int64{1, 2}, castIDs(current))
}

func TestDistinctIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, DistinctIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, DistinctIDs(nil))
}
