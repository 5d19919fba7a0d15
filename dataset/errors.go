package dataset

import (
	"fmt"
)

// SchemaError indicates a required column or field is missing or has the wrong shape.
type SchemaError struct {
	Table  string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("schema: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("schema: table %q: field %q: %s", e.Table, e.Field, e.Reason)
}

// DuplicateIdentifierError indicates a cell identifier occurs more than once
// within one modality's doppelgaenger subset.
type DuplicateIdentifierError struct {
	Modality string
	ID       string
	// First and Second are the table rows carrying the identifier.
	First  int
	Second int
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate cell identifier %q in modality %q (rows %d and %d)", e.ID, e.Modality, e.First, e.Second)
}

// InsufficientDataError is advisory: a modality's doppelgaenger subset has at
// most one member, so every neighbor set in it is empty.
//
// It is never returned as a fatal error by the scorer; it is reported as a
// warning and the affected cells receive a missing value.
type InsufficientDataError struct {
	Modality string
	Count    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: modality %q has %d doppelgaenger cell(s)", e.Modality, e.Count)
}

func missingField(table, field string) error {
	return &SchemaError{Table: table, Field: field, Reason: "not found"}
}

func wrongType(table, field, want string, got any) error {
	return &SchemaError{Table: table, Field: field, Reason: fmt.Sprintf("expected %s column, got %T", want, got)}
}
