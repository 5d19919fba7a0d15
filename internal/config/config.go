// Package config loads the mimgo command configuration from TOML with
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/hupe1980/mimgo/codec"
	"github.com/hupe1980/mimgo/dataset"
	"github.com/hupe1980/mimgo/distance"
	"github.com/hupe1980/mimgo/neighbors"
	"github.com/hupe1980/mimgo/persistence"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MIMGO_"

type StorageConfig struct {
	// Backend is one of "local", "s3" or "minio".
	Backend   string `toml:"backend"`
	Root      string `toml:"root"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	Secure    bool   `toml:"secure"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

type DatasetConfig struct {
	// Pair names the two modalities to compare, in order.
	Pair []string `toml:"pair"`
	// Single is the blob holding one table with both modalities.
	Single string `toml:"single"`
	// Modalities maps modality to blob for one table per modality.
	Modalities map[string]string `toml:"modalities"`
	// Output is where the scored single table is written. Defaults to Single.
	Output string `toml:"output"`
	// Outputs maps modality to the scored blob. Defaults to Modalities.
	Outputs map[string]string `toml:"outputs"`
}

type FieldsConfig struct {
	CellID        string `toml:"cell_id"`
	Modality      string `toml:"modality"`
	Doppelgaenger string `toml:"doppelgaenger"`
	Embedding     string `toml:"embedding"`
}

type ScoringConfig struct {
	K         int    `toml:"k"`
	Metric    string `toml:"metric"`
	Column    string `toml:"column"`
	CacheSize int    `toml:"cache_size"`
}

type ResourcesConfig struct {
	MemoryLimitBytes   int64 `toml:"memory_limit_bytes"`
	IOLimitBytesPerSec int64 `toml:"io_limit_bytes_per_sec"`
}

type OutputConfig struct {
	Codec       string `toml:"codec"`
	Compression string `toml:"compression"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Dataset   DatasetConfig   `toml:"dataset"`
	Fields    FieldsConfig    `toml:"fields"`
	Scoring   ScoringConfig   `toml:"scoring"`
	Resources ResourcesConfig `toml:"resources"`
	Output    OutputConfig    `toml:"output"`
	Log       LogConfig       `toml:"log"`
}

// Default returns the configuration used for unset keys.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: "local", Root: ".", Secure: true},
		Fields: FieldsConfig{
			CellID:        "cell_ID",
			Modality:      "modality",
			Doppelgaenger: "dopp",
			Embedding:     dataset.DefaultEmbedding,
		},
		Scoring: ScoringConfig{K: neighbors.DefaultK, Metric: "euclidean", Column: "jaccard_similarity", CacheSize: -1},
		Output:  OutputConfig{Codec: "go-json", Compression: "lz4"},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults without validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return nil, fmt.Errorf("failed to parse TOML: %s", sme.String())
		}
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from MIMGO_* variables. Credentials are usually
// supplied this way rather than in the file.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"STORAGE_BACKEND": &c.Storage.Backend,
		"STORAGE_ROOT":    &c.Storage.Root,
		"BUCKET":          &c.Storage.Bucket,
		"PREFIX":          &c.Storage.Prefix,
		"ENDPOINT":        &c.Storage.Endpoint,
		"REGION":          &c.Storage.Region,
		"ACCESS_KEY":      &c.Storage.AccessKey,
		"SECRET_KEY":      &c.Storage.SecretKey,
		"METRIC":          &c.Scoring.Metric,
		"LOG_LEVEL":       &c.Log.Level,
		"LOG_FORMAT":      &c.Log.Format,
	}
	for key, dst := range str {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "K"); ok && v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sK: %w", EnvPrefix, err)
		}
		c.Scoring.K = k
	}
	if v, ok := lookup(EnvPrefix + "MEMORY_LIMIT_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sMEMORY_LIMIT_BYTES: %w", EnvPrefix, err)
		}
		c.Resources.MemoryLimitBytes = n
	}
	if v, ok := lookup(EnvPrefix + "IO_LIMIT_BYTES_PER_SEC"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sIO_LIMIT_BYTES_PER_SEC: %w", EnvPrefix, err)
		}
		c.Resources.IOLimitBytesPerSec = n
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("storage.bucket is required for the s3 backend"))
		}
	case "minio":
		if c.Storage.Bucket == "" || c.Storage.Endpoint == "" {
			errs = append(errs, errors.New("storage.bucket and storage.endpoint are required for the minio backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q is not one of local, s3, minio", c.Storage.Backend))
	}

	if _, err := c.Pair(); err != nil {
		errs = append(errs, err)
	}

	switch {
	case c.Dataset.Single != "" && len(c.Dataset.Modalities) > 0:
		errs = append(errs, errors.New("dataset.single and dataset.modalities are mutually exclusive"))
	case c.Dataset.Single == "" && len(c.Dataset.Modalities) == 0:
		errs = append(errs, errors.New("one of dataset.single or dataset.modalities is required"))
	case len(c.Dataset.Modalities) > 0:
		for _, m := range c.Dataset.Pair {
			if c.Dataset.Modalities[m] == "" {
				errs = append(errs, fmt.Errorf("dataset.modalities has no table for %q", m))
			}
		}
	}

	if c.Scoring.K <= 0 {
		errs = append(errs, fmt.Errorf("scoring.k must be positive, got %d", c.Scoring.K))
	}
	if _, err := c.Metric(); err != nil {
		errs = append(errs, err)
	}
	if _, ok := codec.ByName(c.Output.Codec); !ok {
		errs = append(errs, fmt.Errorf("output.codec %q is not one of %v", c.Output.Codec, codec.Names()))
	}
	if _, err := persistence.ParseCompression(c.Output.Compression); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if f := c.Log.Format; f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", f))
	}

	return errors.Join(errs...)
}

// Single reports whether the dataset is one table holding both modalities.
func (c *Config) Single() bool { return c.Dataset.Single != "" }

// Pair returns the ordered modality pair.
func (c *Config) Pair() ([2]string, error) {
	pair, err := dataset.ModalitiesFromSlice(c.Dataset.Pair)
	if err != nil {
		return pair, fmt.Errorf("dataset.pair: %w", err)
	}
	return pair, nil
}

// DatasetFields returns the column names of the dataset.
func (c *Config) DatasetFields() dataset.Fields {
	return dataset.Fields{
		CellID:        c.Fields.CellID,
		Modality:      c.Fields.Modality,
		Doppelgaenger: c.Fields.Doppelgaenger,
		Embedding:     c.Fields.Embedding,
	}
}

// WriteOptions returns the container options for scored tables.
func (c *Config) WriteOptions() (persistence.Options, error) {
	cd, ok := codec.ByName(c.Output.Codec)
	if !ok {
		return persistence.Options{}, fmt.Errorf("output.codec %q is unknown", c.Output.Codec)
	}
	comp, err := persistence.ParseCompression(c.Output.Compression)
	if err != nil {
		return persistence.Options{}, err
	}
	return persistence.Options{Codec: cd, Compression: comp}, nil
}

// Metric parses scoring.metric.
func (c *Config) Metric() (distance.Metric, error) {
	return distance.ParseMetric(c.Scoring.Metric)
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return l, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}

// SingleOutput returns the blob the scored single table is written to.
func (c *Config) SingleOutput() string {
	if c.Dataset.Output != "" {
		return c.Dataset.Output
	}
	return c.Dataset.Single
}

// ModalityOutput returns the blob the scored table of modality m is written to.
func (c *Config) ModalityOutput(m string) string {
	if out := c.Dataset.Outputs[m]; out != "" {
		return out
	}
	return c.Dataset.Modalities[m]
}
