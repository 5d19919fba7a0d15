package distance

import (
	"context"
	"fmt"

	"github.com/hupe1980/mimgo/resource"
)

// Rows is a read-only view over N embedding rows of equal dimension.
type Rows interface {
	Rows() int
	Row(i int) []float64
}

// Matrix is a square, symmetric distance matrix with a zero diagonal.
// Row and column order follow the Rows it was computed from.
type Matrix struct {
	n    int
	data []float64
	rc   *resource.Controller
}

// MatrixBytes returns the memory footprint of an n×n matrix.
func MatrixBytes(n int) int64 {
	return int64(n) * int64(n) * 8
}

// Pairwise computes the full distance matrix of rows under metric.
//
// Only the upper triangle is computed; the lower triangle is mirrored from it
// and the diagonal stays exactly zero. ctx is checked between rows and bounds
// the wait for the memory reservation on rc (which may be nil).
func Pairwise(ctx context.Context, rows Rows, metric Metric, rc *resource.Controller) (*Matrix, error) {
	fn, err := Provider(metric)
	if err != nil {
		return nil, err
	}

	n := rows.Rows()
	size := MatrixBytes(n)
	if err := rc.AcquireMemory(ctx, size); err != nil {
		return nil, fmt.Errorf("reserve %dx%d distance matrix: %w", n, n, err)
	}

	m := &Matrix{n: n, data: make([]float64, n*n), rc: rc}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			m.Release()
			return nil, err
		}
		ri := rows.Row(i)
		for j := i + 1; j < n; j++ {
			d := fn(ri, rows.Row(j))
			m.data[i*n+j] = d
			m.data[j*n+i] = d
		}
	}

	return m, nil
}

// Len returns the number of rows (and columns).
func (m *Matrix) Len() int { return m.n }

// At returns the distance between rows i and j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.n+j] }

// Row returns the distances from row i to every row.
func (m *Matrix) Row(i int) []float64 { return m.data[i*m.n : (i+1)*m.n : (i+1)*m.n] }

// Bytes returns the memory footprint of the matrix values.
func (m *Matrix) Bytes() int64 { return MatrixBytes(m.n) }

// Release returns the matrix's memory reservation and drops its values.
// The matrix must not be used afterwards. Release is idempotent.
func (m *Matrix) Release() {
	if m == nil || m.data == nil {
		return
	}
	m.rc.ReleaseMemory(MatrixBytes(m.n))
	m.data = nil
}
