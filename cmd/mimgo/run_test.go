package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/mimgo/blobstore"
	"github.com/hupe1980/mimgo/persistence"
	"github.com/hupe1980/mimgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pair   = [2]string{"ATAC", "GEX"}
	cohort = testutil.Cohort{Cells: 60, Dim: 4, Clusters: 3, Spread: 0.5, Noise: 0.1, DoppFraction: 0.7}
)

func writeConfig(t *testing.T, root, dataset string) string {
	t.Helper()

	body := fmt.Sprintf(`
[storage]
backend = "local"
root = %q

[dataset]
pair = ["ATAC", "GEX"]
%s

[scoring]
k = 10

[resources]
memory_limit_bytes = 268435456
io_limit_bytes_per_sec = 268435456

[output]
compression = "zstd"

[log]
level = "error"
`, root, dataset)

	path := filepath.Join(t.TempDir(), "mimgo.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_Single(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := blobstore.NewLocalStore(root)

	tbl := testutil.NewRNG(1).SingleTable(cohort, testutil.Fields, pair)
	require.NoError(t, persistence.Save(ctx, store, "obs.mim", tbl, persistence.Options{}))

	path := writeConfig(t, root, `single = "obs.mim"
output = "scored/obs.mim"`)
	require.NoError(t, run(ctx, path))

	scored, err := persistence.Load(ctx, store, "scored/obs.mim", nil)
	require.NoError(t, err)

	flags, err := scored.Bools("dopp")
	require.NoError(t, err)
	scores, err := scored.Floats("jaccard_similarity")
	require.NoError(t, err)
	require.Len(t, scores, 2*cohort.Cells)
	for i, v := range scores {
		if !flags[i] {
			assert.True(t, math.IsNaN(v))
			continue
		}
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}

	// The input blob is left untouched.
	orig, err := persistence.Load(ctx, store, "obs.mim", nil)
	require.NoError(t, err)
	_, err = orig.Floats("jaccard_similarity")
	assert.Error(t, err)
}

func TestRun_Dual(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := blobstore.NewLocalStore(root)

	for m, tbl := range testutil.NewRNG(2).DualTables(cohort, testutil.Fields, pair) {
		require.NoError(t, persistence.Save(ctx, store, m+".mim", tbl, persistence.Options{Compression: persistence.CompressionLZ4}))
	}

	path := writeConfig(t, root, `
[dataset.modalities]
ATAC = "ATAC.mim"
GEX = "GEX.mim"`)
	require.NoError(t, run(ctx, path))

	for _, m := range pair {
		scored, err := persistence.Load(ctx, store, m+".mim", nil)
		require.NoError(t, err)
		scores, err := scored.Floats("jaccard_similarity")
		require.NoError(t, err)
		assert.Len(t, scores, cohort.Cells)
	}
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingConfig", func(t *testing.T) {
		assert.ErrorIs(t, run(ctx, filepath.Join(t.TempDir(), "absent.toml")), os.ErrNotExist)
	})

	t.Run("MissingBlob", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), `single = "absent.mim"`)
		assert.ErrorIs(t, run(ctx, path), blobstore.ErrNotFound)
	})
}
