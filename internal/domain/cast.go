package domain

// CastDelta is the minimal change set needed to turn a movie's current cast
// into a requested one.
type CastDelta struct {
	ToAdd    []Person
	ToRemove []Person
}

// Empty reports whether applying the delta would change nothing.
func (d CastDelta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Apply returns the cast that results from removing ToRemove from current
// and appending ToAdd.
func (d CastDelta) Apply(current []Person) []Person {
	removed := make(map[int64]bool, len(d.ToRemove))
	for _, p := range d.ToRemove {
		removed[p.ID] = true
	}

	result := make([]Person, 0, len(current)+len(d.ToAdd))
	for _, p := range current {
		if !removed[p.ID] {
			result = append(result, p)
		}
	}
	return append(result, d.ToAdd...)
}

// ReconcileCast computes the delta between a movie's current cast and the
// requested one. requested must already be resolved to existing Person
// records (see DistinctIDs and PersonStore.GetByIDs); the existence check
// happens before this is called so that a dangling actor id never mutates
// anything. Reconciling the same requested cast twice yields an empty delta
// the second time.
func ReconcileCast(current []Person, requested []Person) CastDelta {
	currentIDs := make(map[int64]bool, len(current))
	for _, p := range current {
		currentIDs[p.ID] = true
	}
	requestedIDs := make(map[int64]bool, len(requested))
	for _, p := range requested {
		requestedIDs[p.ID] = true
	}

	var delta CastDelta
	for _, p := range current {
		if !requestedIDs[p.ID] {
			delta.ToRemove = append(delta.ToRemove, p)
		}
	}
	for _, p := range requested {
		if !currentIDs[p.ID] {
			delta.ToAdd = append(delta.ToAdd, p)
		}
	}
	return delta
}

// DistinctIDs returns ids with duplicates dropped, preserving first-seen
// order. The count of distinct ids is what the actor existence check
// compares against.
func DistinctIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	distinct := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	return distinct
}
