package dataset

import (
	"fmt"
	"math"
)

// Subset is the doppelgaenger embedding subset of one modality: identifiers in
// table order, their embedding rows and an identifier index.
type Subset struct {
	modality  string
	ids       []string
	tableRows []int
	emb       *Embedding
	index     map[string]int
}

// NewSubset builds a Subset from parallel identifier and table-row slices.
// emb must hold exactly one row per identifier, in the same order, and every
// coordinate must be finite.
func NewSubset(modality string, ids []string, tableRows []int, emb *Embedding) (*Subset, error) {
	if len(ids) != len(tableRows) || emb.Rows() != len(ids) {
		return nil, &SchemaError{Field: "embedding", Reason: fmt.Sprintf("subset of modality %q has %d ids, %d rows, %d embedding rows", modality, len(ids), len(tableRows), emb.Rows())}
	}

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if prev, dup := index[id]; dup {
			return nil, &DuplicateIdentifierError{Modality: modality, ID: id, First: tableRows[prev], Second: tableRows[i]}
		}
		index[id] = i
	}

	for i := range ids {
		for _, v := range emb.Row(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &SchemaError{Field: "embedding", Reason: fmt.Sprintf("cell %q of modality %q has non-finite coordinate %v", ids[i], modality, v)}
			}
		}
	}

	return &Subset{
		modality:  modality,
		ids:       ids,
		tableRows: tableRows,
		emb:       emb,
		index:     index,
	}, nil
}

// Modality returns the modality label of the subset.
func (s *Subset) Modality() string { return s.modality }

// Len returns the number of doppelgaenger cells.
func (s *Subset) Len() int { return len(s.ids) }

// ID returns the identifier at subset position i.
func (s *Subset) ID(i int) string { return s.ids[i] }

// IDs returns the identifiers in subset order.
func (s *Subset) IDs() []string { return s.ids }

// TableRow returns the source table row of subset position i.
func (s *Subset) TableRow(i int) int { return s.tableRows[i] }

// Index returns the subset position of id.
func (s *Subset) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Embedding returns the subset's embedding rows.
func (s *Subset) Embedding() *Embedding { return s.emb }

// Rows returns the number of embedding rows. Together with Row it lets a Subset
// feed the distance engine directly.
func (s *Subset) Rows() int { return s.emb.Rows() }

// Row returns the embedding of subset position i.
func (s *Subset) Row(i int) []float64 { return s.emb.Row(i) }
