package dataset

import "fmt"

// Embedding is a dense row-major N×D matrix of float64 coordinates, one row per cell.
type Embedding struct {
	data []float64
	rows int
	dim  int
}

// NewEmbedding copies rows into a new Embedding.
// All rows must have the same length.
func NewEmbedding(rows [][]float64) (*Embedding, error) {
	if len(rows) == 0 {
		return &Embedding{}, nil
	}

	dim := len(rows[0])
	data := make([]float64, 0, len(rows)*dim)
	for i, r := range rows {
		if len(r) != dim {
			return nil, &SchemaError{Field: "embedding", Reason: fmt.Sprintf("row %d has dimension %d, expected %d", i, len(r), dim)}
		}
		data = append(data, r...)
	}

	return &Embedding{data: data, rows: len(rows), dim: dim}, nil
}

// NewEmbeddingFromFlat wraps a row-major buffer of rows*dim values without copying.
func NewEmbeddingFromFlat(data []float64, rows, dim int) (*Embedding, error) {
	if rows < 0 || dim < 0 || len(data) != rows*dim {
		return nil, &SchemaError{Field: "embedding", Reason: fmt.Sprintf("buffer of %d values does not match %dx%d", len(data), rows, dim)}
	}
	return &Embedding{data: data, rows: rows, dim: dim}, nil
}

// Rows returns the number of rows.
func (e *Embedding) Rows() int { return e.rows }

// Dim returns the dimensionality of every row.
func (e *Embedding) Dim() int { return e.dim }

// Row returns row i as a subslice of the backing buffer.
func (e *Embedding) Row(i int) []float64 {
	return e.data[i*e.dim : (i+1)*e.dim : (i+1)*e.dim]
}

// Data returns the row-major backing buffer.
func (e *Embedding) Data() []float64 { return e.data }

// Select returns a new Embedding holding the given rows, in the given order.
func (e *Embedding) Select(rows []int) *Embedding {
	data := make([]float64, 0, len(rows)*e.dim)
	for _, r := range rows {
		data = append(data, e.Row(r)...)
	}
	return &Embedding{data: data, rows: len(rows), dim: e.dim}
}
