// Package distance computes exact pairwise distance matrices over embedding rows.
//
// # Supported Metrics
//
//   - MetricEuclidean: Euclidean (L2) distance (default)
//   - MetricSquaredEuclidean: squared L2; same neighbor ranking as Euclidean
//   - MetricManhattan: L1 distance
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	m, err := distance.Pairwise(ctx, subset, distance.MetricEuclidean, rc)
//	defer m.Release()
//
// A matrix over N rows holds N² float64 values (see MatrixBytes). When a
// resource.Controller is supplied, the bytes are reserved before allocation and
// returned by Release.
package distance
