package shard

import (
	"errors"

	"github.com/achilleasa/renderfarm/config"
	"github.com/achilleasa/renderfarm/scene"
)

var (
	ErrEmptyAssignment = errors.New("shard: assignment is empty")
)

// A Spec selects one contiguous slice of the scene catalog.
type Spec struct {
	// 1-based shard index.
	Index int

	// Number of shards the catalog is split into.
	Count int

	// Number of scene indices in the catalog.
	Total int
}

// Validate returns a *config.Error if the spec does not describe a shard.
func (s Spec) Validate() error {
	switch {
	case s.Count < 1:
		return config.Errorf("total", "shard count must be at least 1; got %d", s.Count)
	case s.Index < 1 || s.Index > s.Count:
		return config.Errorf("sub", "shard index must be in [1, %d]; got %d", s.Count, s.Index)
	case s.Total < 1:
		return config.Errorf("scenes", "scene count must be at least 1; got %d", s.Total)
	}
	return nil
}

// Range returns the half-open range of scene indices assigned to the shard.
//
// Every shard receives floor(Total/Count) indices; the last shard also
// absorbs the remainder. When there are more shards than scenes, all shards
// but the last one receive an empty range.
func Range(s Spec) (lo, hi int, err error) {
	if err = s.Validate(); err != nil {
		return 0, 0, err
	}

	perShard := s.Total / s.Count
	lo = (s.Index - 1) * perShard
	hi = s.Index * perShard
	if s.Index == s.Count {
		hi = s.Total
	}
	return lo, hi, nil
}

// An Assignment is the ordered list of scenes processed by one shard.
type Assignment []scene.ID

// Assign computes the scene ids assigned to a shard. In paired mode each
// scene index contributes both of its variants, variant 0 first.
func Assign(s Spec, mode scene.Mode) (Assignment, error) {
	lo, hi, err := Range(s)
	if err != nil {
		return nil, err
	}

	perIndex := len(mode.IDs(0))
	ids := make(Assignment, 0, (hi-lo)*perIndex)
	for index := lo; index < hi; index++ {
		ids = append(ids, mode.IDs(index)...)
	}
	return ids, nil
}

// Bounds returns the first and last scene of the assignment.
func (a Assignment) Bounds() (first, last scene.ID, err error) {
	if len(a) == 0 {
		return "", "", ErrEmptyAssignment
	}
	return a[0], a[len(a)-1], nil
}
