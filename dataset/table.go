package dataset

import (
	"fmt"
	"slices"
)

// Kind is the element type of a table column.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float64"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Table is a cell-indexed annotation table with typed columns and named embeddings.
//
// Table is not safe for concurrent mutation.
type Table struct {
	name       string
	rows       int
	columns    map[string]any // []string | []bool | []float64
	order      []string
	embeddings map[string]*Embedding
}

// NewTable creates an empty table with a fixed number of rows.
func NewTable(name string, rows int) *Table {
	return &Table{
		name:       name,
		rows:       rows,
		columns:    make(map[string]any),
		embeddings: make(map[string]*Embedding),
	}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns column names in insertion order.
func (t *Table) Columns() []string { return slices.Clone(t.order) }

// EmbeddingNames returns the embedding names in sorted order.
func (t *Table) EmbeddingNames() []string {
	names := make([]string, 0, len(t.embeddings))
	for name := range t.embeddings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Kind returns the kind of the named column.
func (t *Table) Kind(name string) (Kind, error) {
	col, ok := t.columns[name]
	if !ok {
		return 0, missingField(t.name, name)
	}
	switch col.(type) {
	case []string:
		return KindString, nil
	case []bool:
		return KindBool, nil
	default:
		return KindFloat, nil
	}
}

// SetStrings stores a string column, replacing any column of the same name.
func (t *Table) SetStrings(name string, values []string) error {
	return t.set(name, len(values), values)
}

// SetBools stores a bool column, replacing any column of the same name.
func (t *Table) SetBools(name string, values []bool) error {
	return t.set(name, len(values), values)
}

// SetFloats stores a float64 column, replacing any column of the same name.
func (t *Table) SetFloats(name string, values []float64) error {
	return t.set(name, len(values), values)
}

func (t *Table) set(name string, n int, values any) error {
	if n != t.rows {
		return &SchemaError{Table: t.name, Field: name, Reason: fmt.Sprintf("column has %d rows, table has %d", n, t.rows)}
	}
	if _, ok := t.columns[name]; !ok {
		t.order = append(t.order, name)
	}
	t.columns[name] = values
	return nil
}

// Strings returns the named string column.
func (t *Table) Strings(name string) ([]string, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, missingField(t.name, name)
	}
	v, ok := col.([]string)
	if !ok {
		return nil, wrongType(t.name, name, "string", col)
	}
	return v, nil
}

// Bools returns the named bool column.
func (t *Table) Bools(name string) ([]bool, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, missingField(t.name, name)
	}
	v, ok := col.([]bool)
	if !ok {
		return nil, wrongType(t.name, name, "bool", col)
	}
	return v, nil
}

// Floats returns the named float64 column.
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, missingField(t.name, name)
	}
	v, ok := col.([]float64)
	if !ok {
		return nil, wrongType(t.name, name, "float64", col)
	}
	return v, nil
}

// SetEmbedding stores a named embedding. Its row count must match the table.
func (t *Table) SetEmbedding(name string, e *Embedding) error {
	if e == nil {
		return &SchemaError{Table: t.name, Field: name, Reason: "nil embedding"}
	}
	if e.Rows() != t.rows {
		return &SchemaError{Table: t.name, Field: name, Reason: fmt.Sprintf("embedding has %d rows, table has %d", e.Rows(), t.rows)}
	}
	t.embeddings[name] = e
	return nil
}

// Embedding returns the named embedding.
func (t *Table) Embedding(name string) (*Embedding, error) {
	e, ok := t.embeddings[name]
	if !ok {
		return nil, missingField(t.name, name)
	}
	return e, nil
}
