package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/mimgo"
	"github.com/hupe1980/mimgo/blobstore"
	minioblob "github.com/hupe1980/mimgo/blobstore/minio"
	s3blob "github.com/hupe1980/mimgo/blobstore/s3"
	"github.com/hupe1980/mimgo/dataset"
	"github.com/hupe1980/mimgo/internal/config"
	"github.com/hupe1980/mimgo/persistence"
	"github.com/hupe1980/mimgo/resource"
)

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}

	_, err = score(ctx, cfg, store, logger)
	return err
}

// score loads the dataset, scores it and saves the scored tables.
func score(ctx context.Context, cfg *config.Config, store blobstore.BlobStore, logger *mimgo.Logger) (*mimgo.Report, error) {
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   cfg.Resources.MemoryLimitBytes,
		IOLimitBytesPerSec: cfg.Resources.IOLimitBytesPerSec,
	})

	pair, err := cfg.Pair()
	if err != nil {
		return nil, err
	}
	metric, err := cfg.Metric()
	if err != nil {
		return nil, err
	}
	writeOpts, err := cfg.WriteOptions()
	if err != nil {
		return nil, err
	}
	writeOpts.Resources = rc

	ds, save, err := loadDataset(ctx, cfg, store, pair, rc)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "dataset loaded", "shape", ds.Shape().String(), "modalities", pair[:])

	scorer, err := mimgo.New(
		mimgo.WithK(cfg.Scoring.K),
		mimgo.WithMetric(metric),
		mimgo.WithColumnName(cfg.Scoring.Column),
		mimgo.WithNeighborCacheSize(cfg.Scoring.CacheSize),
		mimgo.WithLogger(logger),
		mimgo.WithResourceController(rc),
	)
	if err != nil {
		return nil, err
	}

	report, err := scorer.Score(ctx, ds)
	if err != nil {
		return nil, err
	}
	for _, w := range report.Warnings {
		logger.WarnContext(ctx, "scoring warning", "error", w)
	}

	for name, t := range save {
		if err := persistence.Save(ctx, store, name, t, writeOpts); err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "table saved", "blob", name, "rows", t.Len(), "compression", writeOpts.Compression.String())
	}

	return report, nil
}

// loadDataset returns the paired dataset and the tables to save, keyed by
// output blob name.
func loadDataset(ctx context.Context, cfg *config.Config, store blobstore.BlobStore, pair [2]string, rc *resource.Controller) (dataset.Paired, map[string]*dataset.Table, error) {
	fields := cfg.DatasetFields()

	if cfg.Single() {
		t, err := persistence.Load(ctx, store, cfg.Dataset.Single, rc)
		if err != nil {
			return nil, nil, err
		}
		ds, err := dataset.NewSingleTable(t, fields, pair)
		if err != nil {
			return nil, nil, err
		}
		return ds, map[string]*dataset.Table{cfg.SingleOutput(): t}, nil
	}

	names := map[string]string{
		pair[0]: cfg.Dataset.Modalities[pair[0]],
		pair[1]: cfg.Dataset.Modalities[pair[1]],
	}
	tables, err := persistence.LoadDual(ctx, store, names, rc)
	if err != nil {
		return nil, nil, err
	}
	ds, err := dataset.NewDualTable(tables, fields, pair)
	if err != nil {
		return nil, nil, err
	}

	save := make(map[string]*dataset.Table, 2)
	for _, m := range pair {
		save[cfg.ModalityOutput(m)] = tables[m]
	}
	return ds, save, nil
}

func newLogger(cfg *config.Config) (*mimgo.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if cfg.Log.Format == "json" {
		return mimgo.NewJSONLogger(level), nil
	}
	return mimgo.NewTextLogger(level), nil
}

func openStore(ctx context.Context, cfg *config.Config) (blobstore.BlobStore, error) {
	sc := cfg.Storage

	switch sc.Backend {
	case "s3":
		var loadOpts []func(*awsconfig.LoadOptions) error
		if sc.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(sc.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, err
		}
		client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
			if sc.Endpoint != "" {
				o.BaseEndpoint = aws.String(sc.Endpoint)
				o.UsePathStyle = true
			}
		})
		return s3blob.NewStore(client, sc.Bucket, sc.Prefix), nil

	case "minio":
		client, err := minioblob.Dial(minioblob.Config{
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
			Region:    sc.Region,
			Secure:    sc.Secure,
		})
		if err != nil {
			return nil, err
		}
		return minioblob.NewStore(client, sc.Bucket, sc.Prefix), nil

	case "local":
		return blobstore.NewLocalStore(sc.Root), nil

	default:
		return nil, fmt.Errorf("unknown backend %q", sc.Backend)
	}
}
