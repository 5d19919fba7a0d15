package neighbors

import (
	"context"
	"testing"

	"github.com/hupe1980/mimgo/dataset"
	"github.com/hupe1980/mimgo/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func space(t *testing.T, modality string, ids []string, coords [][]float64) Space {
	t.Helper()

	emb, err := dataset.NewEmbedding(coords)
	require.NoError(t, err)
	rows := make([]int, len(ids))
	for i := range rows {
		rows[i] = i
	}
	subset, err := dataset.NewSubset(modality, ids, rows, emb)
	require.NoError(t, err)

	m, err := distance.Pairwise(context.Background(), subset, distance.MetricEuclidean, nil)
	require.NoError(t, err)

	s, err := NewSpace(subset, m)
	require.NoError(t, err)
	return s
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name     string
		row      []float64
		self     int
		k        int
		expected []int
	}{
		{"Ascending", []float64{0, 3, 1, 2}, 0, 3, []int{2, 3, 1}},
		{"CappedAtK", []float64{0, 3, 1, 2}, 0, 2, []int{2, 3}},
		{"FewerThanK", []float64{2, 0, 1}, 1, 50, []int{2, 0}},
		{"StableTies", []float64{1, 1, 0, 1}, 2, 3, []int{0, 1, 3}},
		{"SelfTiedAtZero", []float64{0, 0, 5}, 1, 2, []int{0, 2}},
		{"Single", []float64{0}, 0, 50, []int{}},
		{"Empty", []float64{}, 0, 50, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Nearest(tt.row, tt.self, tt.k)
			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got, tt.self)
		})
	}
}

func TestResolver(t *testing.T) {
	atac := space(t, "ATAC", []string{"A", "B", "C", "D"}, [][]float64{{0}, {1}, {5}, {1.5}})

	for _, cacheSize := range []int{0, 16} {
		r, err := NewResolver(2, cacheSize, atac)
		require.NoError(t, err)
		assert.Equal(t, 2, r.K())

		t.Run("Ordered", func(t *testing.T) {
			n := r.Resolve("A", "ATAC")
			assert.True(t, n.Valid)
			assert.Equal(t, []string{"B", "D"}, n.IDs)

			// Second call may come from the cache.
			assert.Equal(t, n, r.Resolve("A", "ATAC"))
		})

		t.Run("SelfExcluded", func(t *testing.T) {
			for _, id := range []string{"A", "B", "C", "D"} {
				assert.NotContains(t, r.Resolve(id, "ATAC").IDs, id)
			}
		})

		t.Run("NotApplicable", func(t *testing.T) {
			n := r.Resolve("Z", "ATAC")
			assert.False(t, n.Valid)
			assert.Equal(t, NotApplicable(), n)

			n = r.Resolve("A", "GEX")
			assert.False(t, n.Valid)
		})
	}
}

func TestResolver_Degenerate(t *testing.T) {
	lonely := space(t, "GEX", []string{"A"}, [][]float64{{3, 3}})

	r, err := NewResolver(DefaultK, 0, lonely)
	require.NoError(t, err)

	n := r.Resolve("A", "GEX")
	assert.True(t, n.Valid)
	assert.Empty(t, n.IDs)
	assert.NotEqual(t, NotApplicable(), n)
}

func TestResolver_InvalidK(t *testing.T) {
	_, err := NewResolver(0, 0)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestNewSpace_Mismatch(t *testing.T) {
	a := space(t, "ATAC", []string{"A", "B"}, [][]float64{{0}, {1}})
	b := space(t, "ATAC", []string{"A"}, [][]float64{{0}})

	_, err := NewSpace(a.Subset, b.Matrix)
	assert.Error(t, err)
}
