package persistence

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/mimgo/blobstore"
	"github.com/hupe1980/mimgo/dataset"
	"github.com/hupe1980/mimgo/resource"
	"golang.org/x/sync/errgroup"
)

// Save encodes t and stores it under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, t *dataset.Table, opts Options) error {
	var buf bytes.Buffer
	if err := Encode(resource.NewRateLimitedWriter(ctx, &buf, opts.Resources), t, opts); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	return nil
}

// Load reads the table stored under name. rc may be nil.
func Load(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) (*dataset.Table, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	t, err := Decode(resource.NewRateLimitedReader(ctx, blobstore.NewReader(ctx, blob), rc))
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return t, nil
}

// LoadDual loads one table per modality concurrently. names maps modality to
// blob name. The first failure cancels the remaining loads.
func LoadDual(ctx context.Context, store blobstore.BlobStore, names map[string]string, rc *resource.Controller) (map[string]*dataset.Table, error) {
	var mu sync.Mutex
	tables := make(map[string]*dataset.Table, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for modality, name := range names {
		g.Go(func() error {
			t, err := Load(gctx, store, name, rc)
			if err != nil {
				return fmt.Errorf("modality %q: %w", modality, err)
			}
			mu.Lock()
			tables[modality] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
