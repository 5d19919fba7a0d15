package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/mimgo/dataset"
)

// Fields are the column names used by the cohort builders.
var Fields = dataset.Fields{
	CellID:        "cell_ID",
	Modality:      "modality",
	Doppelgaenger: "dopp",
	Embedding:     dataset.DefaultEmbedding,
}

// Modalities is the modality pair used by the cohort builders.
var Modalities = [2]string{"ATAC", "GEX"}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// GaussianVectors generates random vectors with values from a standard normal distribution.
// Uses a single backing array for efficiency.
func (r *RNG) GaussianVectors(num, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.NormFloat64()
		}
		vectors[i] = vec
	}

	return vectors
}

// ClusteredVectors generates vectors clustered around random centroids in [-10, 10).
// Vector i belongs to cluster i%clusters.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	centroids := make([][]float64, clusters)
	for c := range centroids {
		centroids[c] = make([]float64, dim)
		for j := range dim {
			centroids[c][j] = r.rand.Float64()*20 - 10
		}
	}

	data := make([]float64, num*dim)
	vectors := make([][]float64, num)

	for i := range num {
		centroid := centroids[i%clusters]
		vec := data[i*dim : (i+1)*dim]
		for j := range dim {
			vec[j] = centroid[j] + r.rand.NormFloat64()*spread
		}
		vectors[i] = vec
	}

	return vectors
}

// Jitter returns a copy of vectors with Gaussian noise of the given scale added.
func (r *RNG) Jitter(vectors [][]float64, scale float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		out[i] = make([]float64, len(v))
		for j := range v {
			out[i][j] = v[j] + r.rand.NormFloat64()*scale
		}
	}
	return out
}

// Cohort describes a synthetic paired dataset.
type Cohort struct {
	// Cells is the number of cells measured in each modality.
	Cells int
	Dim   int
	// Clusters and Spread shape the first modality's embedding.
	Clusters int
	Spread   float64
	// Noise perturbs the second modality's embedding relative to the first.
	Noise float64
	// DoppFraction is the probability that a cell is a doppelgaenger.
	DoppFraction float64
}

type cohortData struct {
	ids  []string
	dopp []bool
	emb  [2][][]float64
}

func (r *RNG) cohort(c Cohort) cohortData {
	clusters := max(c.Clusters, 1)
	first := r.ClusteredVectors(c.Cells, c.Dim, clusters, c.Spread)
	second := r.Jitter(first, c.Noise)

	ids := make([]string, c.Cells)
	dopp := make([]bool, c.Cells)
	for i := range ids {
		ids[i] = fmt.Sprintf("cell-%05d", i)
		dopp[i] = r.Float64() < c.DoppFraction
	}

	return cohortData{ids: ids, dopp: dopp, emb: [2][][]float64{first, second}}
}

// SingleTable builds one table holding both modalities, rows of the first
// modality followed by rows of the second.
func (r *RNG) SingleTable(c Cohort, fields dataset.Fields, modalities [2]string) *dataset.Table {
	d := r.cohort(c)
	n := c.Cells

	ids := make([]string, 0, 2*n)
	labels := make([]string, 0, 2*n)
	dopp := make([]bool, 0, 2*n)
	rows := make([][]float64, 0, 2*n)
	for m := range modalities {
		ids = append(ids, d.ids...)
		dopp = append(dopp, d.dopp...)
		rows = append(rows, d.emb[m]...)
		for range n {
			labels = append(labels, modalities[m])
		}
	}

	t := dataset.NewTable("obs", 2*n)
	mustDo(t.SetStrings(fields.CellID, ids))
	mustDo(t.SetStrings(fields.Modality, labels))
	mustDo(t.SetBools(fields.Doppelgaenger, dopp))
	emb, err := dataset.NewEmbedding(rows)
	mustDo(err)
	mustDo(t.SetEmbedding(embeddingName(fields), emb))
	return t
}

// DualTables builds one table per modality. The second modality's rows are
// stored in reverse order so that row positions do not line up across tables.
func (r *RNG) DualTables(c Cohort, fields dataset.Fields, modalities [2]string) map[string]*dataset.Table {
	d := r.cohort(c)
	tables := make(map[string]*dataset.Table, 2)

	for m, name := range modalities {
		order := make([]int, c.Cells)
		for i := range order {
			if m == 0 {
				order[i] = i
			} else {
				order[i] = c.Cells - 1 - i
			}
		}

		ids := make([]string, c.Cells)
		dopp := make([]bool, c.Cells)
		rows := make([][]float64, c.Cells)
		for i, src := range order {
			ids[i] = d.ids[src]
			dopp[i] = d.dopp[src]
			rows[i] = d.emb[m][src]
		}

		t := dataset.NewTable(name, c.Cells)
		mustDo(t.SetStrings(fields.CellID, ids))
		mustDo(t.SetBools(fields.Doppelgaenger, dopp))
		emb, err := dataset.NewEmbedding(rows)
		mustDo(err)
		mustDo(t.SetEmbedding(embeddingName(fields), emb))
		tables[name] = t
	}

	return tables
}

func embeddingName(f dataset.Fields) string {
	if f.Embedding == "" {
		return dataset.DefaultEmbedding
	}
	return f.Embedding
}

func mustDo(err error) {
	if err != nil {
		panic(fmt.Errorf("testutil: %w", err))
	}
}
