// Package testutil provides testing utilities for mimgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG for embedding generation and builders for
// synthetic paired cohorts in both table layouts.
//
// # Random Embeddings
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.ClusteredVectors(300, 16, 4, 0.5)
//
// # Synthetic Cohorts
//
//	c := testutil.Cohort{Cells: 200, Dim: 8, Clusters: 4, Spread: 0.3, Noise: 0.05, DoppFraction: 0.9}
//	obs := rng.SingleTable(c, testutil.Fields, testutil.Modalities)
//	tables := rng.DualTables(c, testutil.Fields, testutil.Modalities)
package testutil
