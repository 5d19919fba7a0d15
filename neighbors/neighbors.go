// Package neighbors resolves the k nearest doppelgaenger cells of a cell within
// one modality's distance matrix.
//
// Each modality is described by a Space: its doppelgaenger Subset and the
// distance matrix computed over it. The Resolver holds no reference to the
// dataset, so it can be built and tested from plain values.
package neighbors

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hupe1980/mimgo/dataset"
	"github.com/hupe1980/mimgo/distance"
)

// DefaultK is the number of neighbors compared per cell.
const DefaultK = 50

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("k must be positive")

// Neighbors is the ordered neighbor list of one cell in one modality.
//
// The zero value is the "not applicable" marker: the cell is not a
// doppelgaenger of that modality. It is distinct from a valid empty list, which
// a doppelgaenger gets when its modality has no other doppelgaenger cells.
type Neighbors struct {
	// IDs are cell identifiers in ascending-distance order. Must not be modified.
	IDs   []string
	Valid bool
}

// NotApplicable returns the "not applicable" marker.
func NotApplicable() Neighbors { return Neighbors{} }

// Len returns the number of neighbors.
func (n Neighbors) Len() int { return len(n.IDs) }

// Space is the neighbor search space of one modality.
type Space struct {
	Subset *dataset.Subset
	Matrix *distance.Matrix
}

// NewSpace pairs a subset with the distance matrix computed over it.
func NewSpace(subset *dataset.Subset, matrix *distance.Matrix) (Space, error) {
	if subset.Len() != matrix.Len() {
		return Space{}, fmt.Errorf("modality %q: subset has %d cells, distance matrix has %d rows", subset.Modality(), subset.Len(), matrix.Len())
	}
	return Space{Subset: subset, Matrix: matrix}, nil
}

// Modality returns the modality label of the space.
func (s Space) Modality() string { return s.Subset.Modality() }

// Nearest returns the positions of the k smallest entries of row, excluding
// position self, in ascending order of value.
//
// Ties keep their original position order (stable sort), so results are
// reproducible for identical input order. If fewer than k other positions
// exist, all of them are returned.
//
// Self is excluded by position, not by dropping the first ranked entry. Another
// cell at distance 0 may sort ahead of self, and it stays a neighbor.
func Nearest(row []float64, self, k int) []int {
	idx := make([]int, 0, len(row))
	for i := range row {
		if i != self {
			idx = append(idx, i)
		}
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(row[a], row[b])
	})

	if len(idx) > k {
		idx = idx[:k]
	}
	return idx
}

type cacheKey struct {
	modality string
	id       string
}

// Resolver answers neighbor queries over the spaces it was built with.
// It is not safe for concurrent use.
type Resolver struct {
	k      int
	spaces map[string]Space
	cache  *lru.Cache[cacheKey, []string]
}

// NewResolver creates a Resolver returning up to k neighbors per query.
// cacheSize bounds the memoised neighbor lists; 0 disables memoisation.
func NewResolver(k, cacheSize int, spaces ...Space) (*Resolver, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	r := &Resolver{
		k:      k,
		spaces: make(map[string]Space, len(spaces)),
	}
	for _, s := range spaces {
		r.spaces[s.Modality()] = s
	}

	if cacheSize > 0 {
		c, err := lru.New[cacheKey, []string](cacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = c
	}

	return r, nil
}

// K returns the neighbor count.
func (r *Resolver) K() int { return r.k }

// Resolve returns the k nearest doppelgaenger cells of id within modality.
// It returns NotApplicable if id is not a doppelgaenger cell of modality.
func (r *Resolver) Resolve(id, modality string) Neighbors {
	space, ok := r.spaces[modality]
	if !ok {
		return NotApplicable()
	}
	pos, ok := space.Subset.Index(id)
	if !ok {
		return NotApplicable()
	}

	key := cacheKey{modality: modality, id: id}
	if r.cache != nil {
		if ids, hit := r.cache.Get(key); hit {
			return Neighbors{IDs: ids, Valid: true}
		}
	}

	nearest := Nearest(space.Matrix.Row(pos), pos, r.k)
	ids := make([]string, len(nearest))
	for i, p := range nearest {
		ids[i] = space.Subset.ID(p)
	}

	if r.cache != nil {
		r.cache.Add(key, ids)
	}
	return Neighbors{IDs: ids, Valid: true}
}
