// Package dataset models cell-indexed annotation tables and the paired-modality
// views the Jaccard scorer runs against.
//
// A Table is the in-memory analogue of an AnnData frame: a fixed number of rows,
// named typed columns (string, bool, float64) and named embeddings (an N×D
// matrix per name). Two Paired variants sit on top of it:
//
//   - SingleTable: one table, every row tagged with a modality label, one shared
//     embedding and one shared result column.
//   - DualTable: one table per modality, each with its own embedding and its own
//     result column; rows correspond across tables only through the cell
//     identifier.
//
// Both variants expose the doppelgaenger subset of a modality as a Subset:
// ordered identifiers, their embedding rows and an identifier index.
//
// # Usage
//
//	fields := dataset.Fields{CellID: "cell_ID", Modality: "modality", Doppelgaenger: "dopp"}
//	ds, err := dataset.NewSingleTable(tbl, fields, [2]string{"ATAC", "GEX"})
//	atac, err := ds.Subset("ATAC")
package dataset
