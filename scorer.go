package mimgo

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/mimgo/dataset"
	"github.com/hupe1980/mimgo/distance"
	"github.com/hupe1980/mimgo/jaccard"
	"github.com/hupe1980/mimgo/neighbors"
)

// ColumnName is the name of the result column written to each output table.
const ColumnName = "jaccard_similarity"

// Report summarises one scoring run.
type Report struct {
	RunID      string
	Shape      dataset.Shape
	Modalities [2]string
	K          int
	Metric     distance.Metric
	Column     string

	// Doppelgaenger is the doppelgaenger subset size per modality.
	Doppelgaenger map[string]int
	// MatrixBytes is the combined footprint of both distance matrices.
	MatrixBytes int64

	// Scored counts cells that received a similarity.
	Scored int
	// Missing counts cells that received NaN.
	Missing int
	// Unmatched counts doppelgaenger cells whose identifier is absent from the
	// opposite modality's doppelgaenger subset. They are included in Missing.
	Unmatched int
	// MeanScore is the mean over scored cells, NaN if none.
	MeanScore float64

	// Warnings holds advisory conditions such as *InsufficientDataError.
	Warnings []error
	Elapsed  time.Duration
}

// Scorer computes doppelgaenger Jaccard similarities.
// A Scorer is stateless between runs and may be reused.
type Scorer struct {
	opts options
}

// New creates a Scorer.
func New(optFns ...Option) (*Scorer, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, opts.k)
	}
	if _, err := distance.Provider(opts.metric); err != nil {
		return nil, err
	}

	return &Scorer{opts: opts}, nil
}

// JaccardSimilarity scores ds with a Scorer built from opts.
func JaccardSimilarity(ctx context.Context, ds dataset.Paired, opts ...Option) (*Report, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Score(ctx, ds)
}

// Score computes the Jaccard similarity of every cell of ds and writes it into
// the result column of each output table.
//
// All derived structures (subsets, distance matrices, neighbor lists) live only
// for the duration of the call. Any error aborts the run before a result column
// is written.
func (s *Scorer) Score(ctx context.Context, ds dataset.Paired) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.opts.logger.WithRunID(runID).WithK(s.opts.k)

	report, err := s.score(ctx, ds, runID, log)
	elapsed := time.Since(start)
	if err != nil {
		s.opts.metricsCollector.RecordScore(0, 0, elapsed, err)
		log.LogScore(ctx, nil, err)
		return nil, err
	}

	report.Elapsed = elapsed
	s.opts.metricsCollector.RecordScore(report.Scored, report.Missing, elapsed, nil)
	log.LogScore(ctx, report, nil)
	return report, nil
}

func (s *Scorer) score(ctx context.Context, ds dataset.Paired, runID string, log *Logger) (*Report, error) {
	pair := ds.Modalities()
	report := &Report{
		RunID:         runID,
		Shape:         ds.Shape(),
		Modalities:    pair,
		K:             s.opts.k,
		Metric:        s.opts.metric,
		Column:        s.opts.column,
		Doppelgaenger: make(map[string]int, 2),
	}

	// Partition.
	var subsets [2]*dataset.Subset
	for i, m := range pair {
		t0 := time.Now()
		subset, err := ds.Subset(m)
		s.opts.metricsCollector.RecordPartition(m, subsetLen(subset), time.Since(t0), err)
		log.LogPartition(ctx, m, subsetLen(subset), err)
		if err != nil {
			return nil, fmt.Errorf("partition modality %q: %w", m, err)
		}

		subsets[i] = subset
		report.Doppelgaenger[m] = subset.Len()
		if subset.Len() <= 1 {
			w := &InsufficientDataError{Modality: m, Count: subset.Len()}
			report.Warnings = append(report.Warnings, w)
			log.WithModality(m).WarnContext(ctx, "neighbor sets will be empty", "error", w)
		}
	}

	a, b := subsets[0].Embedding(), subsets[1].Embedding()
	if a.Rows() > 0 && b.Rows() > 0 && a.Dim() != b.Dim() {
		return nil, &SchemaError{Field: "embedding", Reason: fmt.Sprintf("modality %q has dimension %d, modality %q has dimension %d", pair[0], a.Dim(), pair[1], b.Dim())}
	}

	// Both matrices are held at once; a budget that fits only one would block.
	need := distance.MatrixBytes(subsets[0].Len()) + distance.MatrixBytes(subsets[1].Len())
	if limit := s.opts.resources.MemoryLimit(); limit > 0 && need > limit {
		return nil, fmt.Errorf("%w: distance matrices need %d bytes, limit is %d", ErrMemoryLimit, need, limit)
	}

	// Distance matrices.
	spaces := make([]neighbors.Space, 0, 2)
	for _, subset := range subsets {
		t0 := time.Now()
		m, err := distance.Pairwise(ctx, subset, s.opts.metric, s.opts.resources)
		took := time.Since(t0)
		s.opts.metricsCollector.RecordDistance(subset.Modality(), subset.Len(), distance.MatrixBytes(subset.Len()), took, err)
		log.LogDistance(ctx, subset.Modality(), subset.Len(), distance.MatrixBytes(subset.Len()), took, err)
		if err != nil {
			return nil, fmt.Errorf("distance matrix of modality %q: %w", subset.Modality(), err)
		}
		defer m.Release()

		space, err := neighbors.NewSpace(subset, m)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, space)
		report.MatrixBytes += m.Bytes()
	}

	cacheSize := s.opts.cacheSize
	if cacheSize == AutoCacheSize {
		cacheSize = subsets[0].Len() + subsets[1].Len()
	}
	resolver, err := neighbors.NewResolver(s.opts.k, cacheSize, spaces...)
	if err != nil {
		return nil, err
	}

	// Assemble every target before writing any of them.
	targets, err := ds.Targets()
	if err != nil {
		return nil, err
	}

	results := make([][]float64, len(targets))
	var sum float64
	for ti, target := range targets {
		values := make([]float64, len(target.Cells))
		for ci, cell := range target.Cells {
			v, matched := s.scoreCell(resolver, pair, cell)
			values[ci] = v
			if jaccard.IsMissing(v) {
				report.Missing++
			} else {
				report.Scored++
				sum += v
			}
			if !matched {
				report.Unmatched++
			}
		}
		results[ti] = values
	}

	for ti, target := range targets {
		if err := ds.WriteResult(target.Modality, s.opts.column, results[ti]); err != nil {
			return nil, fmt.Errorf("write %q: %w", s.opts.column, err)
		}
	}

	report.MeanScore = math.NaN()
	if report.Scored > 0 {
		report.MeanScore = sum / float64(report.Scored)
	}
	if report.Unmatched > 0 {
		log.WarnContext(ctx, "doppelgaenger cells without counterpart", "unmatched", report.Unmatched)
	}

	return report, nil
}

// scoreCell returns the similarity of one cell. matched is false for a
// doppelgaenger cell whose identifier is absent from the opposite modality.
func (s *Scorer) scoreCell(r *neighbors.Resolver, pair [2]string, cell dataset.Cell) (float64, bool) {
	if !cell.Doppelgaenger {
		return jaccard.Missing(), true
	}
	other, ok := dataset.Opposite(pair, cell.Modality)
	if !ok {
		return jaccard.Missing(), true
	}

	own := r.Resolve(cell.ID, cell.Modality)
	counterpart := r.Resolve(cell.ID, other)
	return jaccard.Score(own, counterpart), counterpart.Valid
}

func subsetLen(s *dataset.Subset) int {
	if s == nil {
		return 0
	}
	return s.Len()
}
