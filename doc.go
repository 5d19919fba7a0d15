// Package mimgo scores how consistently a joint embedding preserves local
// neighborhoods across two paired omics modalities.
//
// For every doppelgaenger cell (a cell measured and embedded in both modalities,
// e.g. ATAC and GEX) the scorer computes its k nearest doppelgaenger neighbors
// independently in each modality's embedding and reports the Jaccard similarity
// of the two neighbor sets. Non-doppelgaenger cells receive NaN.
//
// # Quick Start
//
// Single table, rows tagged with a modality label:
//
//	fields := dataset.Fields{CellID: "cell_ID", Modality: "modality", Doppelgaenger: "dopp"}
//	ds, _ := dataset.NewSingleTable(obs, fields, [2]string{"ATAC", "GEX"})
//	report, _ := mimgo.JaccardSimilarity(ctx, ds)
//	scores, _ := obs.Floats(mimgo.ColumnName)
//
// One table per modality:
//
//	ds, _ := dataset.NewDualTable(map[string]*dataset.Table{"ATAC": atac, "GEX": gex}, fields, [2]string{"ATAC", "GEX"})
//	report, _ := mimgo.JaccardSimilarity(ctx, ds)
//
// # Pipeline
//
//  1. Partition: per modality, the doppelgaenger rows and their embedding.
//  2. Distances: an exact N×N Euclidean matrix per modality.
//  3. Neighbors: the k nearest other rows, stable on ties.
//  4. Jaccard: |A∩B| / |A∪B| over the two neighbor sets.
//  5. Assembly: one result column per output table.
//
// The run is synchronous and deterministic. Memory grows with the square of
// the doppelgaenger count per modality; bound it with WithResourceController.
package mimgo
