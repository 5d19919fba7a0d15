package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.GaussianVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestClusteredVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.ClusteredVectors(100, 16, 4, 0.01)

	assert.Equal(t, 100, len(v))
	assert.Equal(t, 16, len(v[0]))

	// Members of the same cluster stay close to each other.
	for j := range 16 {
		assert.InDelta(t, v[0][j], v[4][j], 0.2)
	}
}

func TestDeterminism(t *testing.T) {
	a := NewRNG(7).ClusteredVectors(10, 4, 2, 1)
	b := NewRNG(7).ClusteredVectors(10, 4, 2, 1)
	assert.Equal(t, a, b)
}

func TestSingleTable(t *testing.T) {
	c := Cohort{Cells: 20, Dim: 3, Clusters: 2, Spread: 0.1, Noise: 0.01, DoppFraction: 1}
	tbl := NewRNG(1).SingleTable(c, Fields, Modalities)

	assert.Equal(t, 40, tbl.Len())

	labels, err := tbl.Strings(Fields.Modality)
	require.NoError(t, err)
	assert.Equal(t, "ATAC", labels[0])
	assert.Equal(t, "GEX", labels[39])

	emb, err := tbl.Embedding(Fields.Embedding)
	require.NoError(t, err)
	assert.Equal(t, 3, emb.Dim())
}

func TestDualTables(t *testing.T) {
	c := Cohort{Cells: 10, Dim: 2, Clusters: 1, Spread: 1, DoppFraction: 0.5}
	tables := NewRNG(1).DualTables(c, Fields, Modalities)

	require.Len(t, tables, 2)

	atac, err := tables["ATAC"].Strings(Fields.CellID)
	require.NoError(t, err)
	gex, err := tables["GEX"].Strings(Fields.CellID)
	require.NoError(t, err)

	assert.Equal(t, atac[0], gex[9])
	assert.Equal(t, atac[9], gex[0])

	af, err := tables["ATAC"].Bools(Fields.Doppelgaenger)
	require.NoError(t, err)
	gf, err := tables["GEX"].Bools(Fields.Doppelgaenger)
	require.NoError(t, err)
	assert.Equal(t, af[3], gf[6])
}
