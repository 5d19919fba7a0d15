package dataset

import "fmt"

// SingleTable is a Paired dataset stored in one table whose rows are tagged
// with a modality label.
type SingleTable struct {
	table  *Table
	fields Fields
	pair   [2]string

	ids    []string
	labels []string
	flags  []bool
	emb    *Embedding
}

var _ Paired = (*SingleTable)(nil)

// NewSingleTable validates the table against fields and wraps it.
func NewSingleTable(t *Table, fields Fields, modalities [2]string) (*SingleTable, error) {
	if err := validateModalities(modalities); err != nil {
		return nil, err
	}
	if fields.Modality == "" {
		return nil, missingField(t.Name(), "modality")
	}

	ids, err := t.Strings(fields.CellID)
	if err != nil {
		return nil, err
	}
	labels, err := t.Strings(fields.Modality)
	if err != nil {
		return nil, err
	}
	flags, err := t.Bools(fields.Doppelgaenger)
	if err != nil {
		return nil, err
	}
	emb, err := t.Embedding(fields.embedding())
	if err != nil {
		return nil, err
	}

	return &SingleTable{
		table:  t,
		fields: fields,
		pair:   modalities,
		ids:    ids,
		labels: labels,
		flags:  flags,
		emb:    emb,
	}, nil
}

// Table returns the underlying table.
func (s *SingleTable) Table() *Table { return s.table }

// Shape implements Paired.
func (s *SingleTable) Shape() Shape { return ShapeSingle }

// Modalities implements Paired.
func (s *SingleTable) Modalities() [2]string { return s.pair }

// Subset selects the rows labelled with modality, then keeps the doppelgaenger
// rows among them. The two filters are applied one after the other.
func (s *SingleTable) Subset(modality string) (*Subset, error) {
	if _, ok := Opposite(s.pair, modality); !ok {
		return nil, &SchemaError{Table: s.table.Name(), Field: s.fields.Modality, Reason: fmt.Sprintf("unknown modality %q", modality)}
	}

	mask := labelMask(s.labels, modality)
	mask.And(flagMask(s.flags))

	rows := maskRows(mask)
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = s.ids[r]
	}

	return NewSubset(modality, ids, rows, s.emb.Select(rows))
}

// Targets implements Paired. The single target covers every row of the table.
func (s *SingleTable) Targets() ([]Target, error) {
	cells := make([]Cell, s.table.Len())
	for i := range cells {
		cells[i] = Cell{
			ID:            s.ids[i],
			Modality:      s.labels[i],
			Doppelgaenger: s.flags[i],
			Row:           i,
		}
	}
	return []Target{{Cells: cells}}, nil
}

// WriteResult implements Paired. modality must be empty: the result column is shared.
func (s *SingleTable) WriteResult(modality, field string, values []float64) error {
	if modality != "" {
		return &SchemaError{Table: s.table.Name(), Field: field, Reason: fmt.Sprintf("single table has one shared result column, got target %q", modality)}
	}
	return s.table.SetFloats(field, values)
}
