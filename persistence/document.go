package persistence

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/mimgo/dataset"
)

// document is the codec-facing form of a dataset.Table.
type document struct {
	Name       string         `json:"name"`
	Rows       int            `json:"rows"`
	Columns    []columnDoc    `json:"columns"`
	Embeddings []embeddingDoc `json:"embeddings"`
}

type columnDoc struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Strings []string `json:"strings,omitempty"`
	Bools   []bool   `json:"bools,omitempty"`
	// Floats holds little-endian float64 bits.
	Floats []byte `json:"floats,omitempty"`
}

type embeddingDoc struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Dim  int    `json:"dim"`
	Data []byte `json:"data"`
}

func newDocument(t *dataset.Table) (*document, error) {
	doc := &document{Name: t.Name(), Rows: t.Len()}

	for _, name := range t.Columns() {
		kind, err := t.Kind(name)
		if err != nil {
			return nil, err
		}

		col := columnDoc{Name: name, Kind: kind.String()}
		switch kind {
		case dataset.KindString:
			col.Strings, err = t.Strings(name)
		case dataset.KindBool:
			col.Bools, err = t.Bools(name)
		case dataset.KindFloat:
			var v []float64
			v, err = t.Floats(name)
			col.Floats = floatBytes(v)
		}
		if err != nil {
			return nil, err
		}
		doc.Columns = append(doc.Columns, col)
	}

	for _, name := range t.EmbeddingNames() {
		emb, err := t.Embedding(name)
		if err != nil {
			return nil, err
		}
		doc.Embeddings = append(doc.Embeddings, embeddingDoc{
			Name: name,
			Rows: emb.Rows(),
			Dim:  emb.Dim(),
			Data: floatBytes(emb.Data()),
		})
	}

	return doc, nil
}

func (d *document) table() (*dataset.Table, error) {
	if d.Rows < 0 {
		return nil, fmt.Errorf("table %q: negative row count %d", d.Name, d.Rows)
	}
	t := dataset.NewTable(d.Name, d.Rows)

	for _, col := range d.Columns {
		var err error
		switch col.Kind {
		case dataset.KindString.String():
			err = t.SetStrings(col.Name, orEmpty(col.Strings))
		case dataset.KindBool.String():
			err = t.SetBools(col.Name, orEmpty(col.Bools))
		case dataset.KindFloat.String():
			var v []float64
			if v, err = bytesFloats(col.Floats); err == nil {
				err = t.SetFloats(col.Name, v)
			}
		default:
			err = fmt.Errorf("unknown column kind %q", col.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("table %q column %q: %w", d.Name, col.Name, err)
		}
	}

	for _, e := range d.Embeddings {
		data, err := bytesFloats(e.Data)
		if err != nil {
			return nil, fmt.Errorf("table %q embedding %q: %w", d.Name, e.Name, err)
		}
		emb, err := dataset.NewEmbeddingFromFlat(data, e.Rows, e.Dim)
		if err != nil {
			return nil, err
		}
		if err := t.SetEmbedding(e.Name, emb); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// orEmpty maps a column dropped by omitempty back to a zero-length slice.
func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func floatBytes(v []float64) []byte {
	buf := make([]byte, 8*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(f))
	}
	return buf
}

func bytesFloats(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("float buffer of %d bytes is not a multiple of 8", len(b))
	}
	v := make([]float64, len(b)/8)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return v, nil
}
