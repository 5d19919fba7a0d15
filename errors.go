package mimgo

import (
	"github.com/hupe1980/mimgo/dataset"
	"github.com/hupe1980/mimgo/neighbors"
	"github.com/hupe1980/mimgo/resource"
)

// SchemaError indicates a required field or column is missing or has the wrong shape.
type SchemaError = dataset.SchemaError

// DuplicateIdentifierError indicates a cell identifier repeats within a
// modality's doppelgaenger subset.
type DuplicateIdentifierError = dataset.DuplicateIdentifierError

// InsufficientDataError is the advisory reported when a modality has at most
// one doppelgaenger cell. It appears in Report.Warnings, never as an error
// returned by Score.
type InsufficientDataError = dataset.InsufficientDataError

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = neighbors.ErrInvalidK

	// ErrMemoryLimit is returned when a distance matrix does not fit the
	// configured memory budget.
	ErrMemoryLimit = resource.ErrMemoryLimit
)
