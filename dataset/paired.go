package dataset

import "fmt"

// Shape tells which table layout a Paired dataset uses.
type Shape int

const (
	// ShapeSingle is one table whose rows carry a modality label.
	ShapeSingle Shape = iota
	// ShapeDual is one table per modality.
	ShapeDual
)

func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeDual:
		return "dual"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// DefaultEmbedding is the embedding name used when Fields.Embedding is empty.
const DefaultEmbedding = "embedding"

// Fields names the caller-supplied columns of a dataset.
type Fields struct {
	// CellID is the string column holding cell identifiers.
	CellID string
	// Modality is the string column holding modality labels (single-table only).
	Modality string
	// Doppelgaenger is the bool column flagging doppelgaenger cells.
	Doppelgaenger string
	// Embedding is the embedding name. Defaults to DefaultEmbedding.
	Embedding string
}

func (f Fields) embedding() string {
	if f.Embedding == "" {
		return DefaultEmbedding
	}
	return f.Embedding
}

// Cell is the logical record of one table row.
type Cell struct {
	ID            string
	Modality      string
	Doppelgaenger bool
	// Row is the row in the table the cell belongs to.
	Row int
}

// Target is one table that receives a result column, with its cells in row order.
type Target struct {
	// Modality names the per-modality table in dual-table mode; empty in single-table mode.
	Modality string
	Cells    []Cell
}

// Paired is a dataset holding two modalities of the same cells.
type Paired interface {
	// Shape returns the table layout.
	Shape() Shape
	// Modalities returns the two modality labels.
	Modalities() [2]string
	// Subset returns the doppelgaenger subset of one modality.
	Subset(modality string) (*Subset, error)
	// Targets returns the tables that receive results.
	Targets() ([]Target, error)
	// WriteResult stores one value per cell of the target named by modality.
	WriteResult(modality, field string, values []float64) error
}

// Opposite returns the other label of pair, or false if m is not in pair.
func Opposite(pair [2]string, m string) (string, bool) {
	switch m {
	case pair[0]:
		return pair[1], true
	case pair[1]:
		return pair[0], true
	default:
		return "", false
	}
}

func validateModalities(pair [2]string) error {
	if pair[0] == "" || pair[1] == "" {
		return &SchemaError{Field: "modalities", Reason: "modality labels must be non-empty"}
	}
	if pair[0] == pair[1] {
		return &SchemaError{Field: "modalities", Reason: fmt.Sprintf("expected 2 distinct modalities, got %q twice", pair[0])}
	}
	return nil
}

// ModalitiesFromSlice converts a caller-supplied list into a modality pair.
func ModalitiesFromSlice(mods []string) ([2]string, error) {
	if len(mods) != 2 {
		return [2]string{}, &SchemaError{Field: "modalities", Reason: fmt.Sprintf("expected 2 modalities, got %d", len(mods))}
	}
	pair := [2]string{mods[0], mods[1]}
	if err := validateModalities(pair); err != nil {
		return [2]string{}, err
	}
	return pair, nil
}
