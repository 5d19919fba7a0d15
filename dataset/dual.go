package dataset

import "fmt"

// DualTable is a Paired dataset stored as one table per modality. Rows of the
// two tables correspond only through the cell identifier.
type DualTable struct {
	fields Fields
	pair   [2]string
	mods   map[string]*modTable
}

type modTable struct {
	table *Table
	ids   []string
	flags []bool
	emb   *Embedding
}

var _ Paired = (*DualTable)(nil)

// NewDualTable validates both tables against fields and wraps them.
// tables is keyed by modality label.
func NewDualTable(tables map[string]*Table, fields Fields, modalities [2]string) (*DualTable, error) {
	if err := validateModalities(modalities); err != nil {
		return nil, err
	}

	d := &DualTable{
		fields: fields,
		pair:   modalities,
		mods:   make(map[string]*modTable, 2),
	}

	for _, m := range modalities {
		t, ok := tables[m]
		if !ok || t == nil {
			return nil, &SchemaError{Table: m, Field: "modalities", Reason: fmt.Sprintf("no table for modality %q", m)}
		}
		ids, err := t.Strings(fields.CellID)
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
		d.mods[m] = &modTable{table: t, ids: ids, flags: flags, emb: emb}
	}

	a, b := d.mods[modalities[0]].emb, d.mods[modalities[1]].emb
	if a.Rows() > 0 && b.Rows() > 0 && a.Dim() != b.Dim() {
		return nil, &SchemaError{Field: fields.embedding(), Reason: fmt.Sprintf("modality %q has dimension %d, modality %q has dimension %d", modalities[0], a.Dim(), modalities[1], b.Dim())}
	}

	return d, nil
}

// Table returns the table of one modality, or nil.
func (d *DualTable) Table(modality string) *Table {
	if mt, ok := d.mods[modality]; ok {
		return mt.table
	}
	return nil
}

// Shape implements Paired.
func (d *DualTable) Shape() Shape { return ShapeDual }

// Modalities implements Paired.
func (d *DualTable) Modalities() [2]string { return d.pair }

// Subset keeps the doppelgaenger rows of the modality's own table.
func (d *DualTable) Subset(modality string) (*Subset, error) {
	mt, err := d.lookup(modality)
	if err != nil {
		return nil, err
	}

	rows := maskRows(flagMask(mt.flags))
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = mt.ids[r]
	}

	return NewSubset(modality, ids, rows, mt.emb.Select(rows))
}

// Targets implements Paired. Each modality table is its own target.
func (d *DualTable) Targets() ([]Target, error) {
	targets := make([]Target, 0, 2)
	for _, m := range d.pair {
		mt := d.mods[m]
		cells := make([]Cell, mt.table.Len())
		for i := range cells {
			cells[i] = Cell{
				ID:            mt.ids[i],
				Modality:      m,
				Doppelgaenger: mt.flags[i],
				Row:           i,
			}
		}
		targets = append(targets, Target{Modality: m, Cells: cells})
	}
	return targets, nil
}

// WriteResult implements Paired.
func (d *DualTable) WriteResult(modality, field string, values []float64) error {
	mt, err := d.lookup(modality)
	if err != nil {
		return err
	}
	return mt.table.SetFloats(field, values)
}

func (d *DualTable) lookup(modality string) (*modTable, error) {
	mt, ok := d.mods[modality]
	if !ok {
		return nil, &SchemaError{Field: "modalities", Reason: fmt.Sprintf("unknown modality %q", modality)}
	}
	return mt, nil
}
