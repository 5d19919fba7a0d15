package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/mimgo/distance"
	"github.com/hupe1980/mimgo/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dualTOML = `
[storage]
backend = "minio"
endpoint = "localhost:9000"
bucket = "cohorts"
prefix = "runs/2024-06"
secure = false

[dataset]
pair = ["ATAC", "GEX"]

[dataset.modalities]
ATAC = "atac.mim"
GEX = "gex.mim"

[dataset.outputs]
GEX = "gex.scored.mim"

[fields]
doppelgaenger = "is_dopp"

[scoring]
k = 20
metric = "manhattan"

[output]
compression = "zstd"

[log]
level = "debug"
format = "json"
`

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimgo.toml")
	require.NoError(t, os.WriteFile(path, []byte(dualTOML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "minio", cfg.Storage.Backend)
	assert.False(t, cfg.Storage.Secure)
	assert.False(t, cfg.Single())

	pair, err := cfg.Pair()
	require.NoError(t, err)
	assert.Equal(t, [2]string{"ATAC", "GEX"}, pair)

	fields := cfg.DatasetFields()
	assert.Equal(t, "cell_ID", fields.CellID)
	assert.Equal(t, "is_dopp", fields.Doppelgaenger)

	assert.Equal(t, 20, cfg.Scoring.K)
	assert.Equal(t, -1, cfg.Scoring.CacheSize)
	m, err := cfg.Metric()
	require.NoError(t, err)
	assert.Equal(t, distance.MetricManhattan, m)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	assert.Equal(t, "atac.mim", cfg.ModalityOutput("ATAC"))
	assert.Equal(t, "gex.scored.mim", cfg.ModalityOutput("GEX"))

	opts, err := cfg.WriteOptions()
	require.NoError(t, err)
	assert.Equal(t, persistence.CompressionZSTD, opts.Compression)
	assert.Equal(t, "go-json", opts.Codec.Name())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("[scoring]\nkk = 3\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg, err := Parse([]byte(dualTOML))
	require.NoError(t, err)

	require.NoError(t, cfg.ApplyEnv(env(map[string]string{
		"MIMGO_ACCESS_KEY":             "minioadmin",
		"MIMGO_SECRET_KEY":             "secret",
		"MIMGO_K":                      "5",
		"MIMGO_MEMORY_LIMIT_BYTES":     "1048576",
		"MIMGO_IO_LIMIT_BYTES_PER_SEC": "4096",
		"MIMGO_LOG_LEVEL":              "",
	})))

	assert.Equal(t, "minioadmin", cfg.Storage.AccessKey)
	assert.Equal(t, "secret", cfg.Storage.SecretKey)
	assert.Equal(t, 5, cfg.Scoring.K)
	assert.Equal(t, int64(1<<20), cfg.Resources.MemoryLimitBytes)
	assert.Equal(t, int64(4096), cfg.Resources.IOLimitBytesPerSec)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Error(t, cfg.ApplyEnv(env(map[string]string{"MIMGO_K": "many"})))
	assert.Error(t, cfg.ApplyEnv(env(map[string]string{"MIMGO_IO_LIMIT_BYTES_PER_SEC": "fast"})))
}

func TestValidate(t *testing.T) {
	single := func() *Config {
		cfg := Default()
		cfg.Dataset.Pair = []string{"ATAC", "GEX"}
		cfg.Dataset.Single = "obs.mim"
		return cfg
	}

	cfg := single()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Single())
	assert.Equal(t, "obs.mim", cfg.SingleOutput())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"Backend", func(c *Config) { c.Storage.Backend = "ftp" }},
		{"S3Bucket", func(c *Config) { c.Storage.Backend = "s3" }},
		{"MinioEndpoint", func(c *Config) { c.Storage.Backend = "minio"; c.Storage.Bucket = "b" }},
		{"Pair", func(c *Config) { c.Dataset.Pair = []string{"ATAC"} }},
		{"SamePair", func(c *Config) { c.Dataset.Pair = []string{"ATAC", "ATAC"} }},
		{"BothLayouts", func(c *Config) { c.Dataset.Modalities = map[string]string{"ATAC": "a", "GEX": "g"} }},
		{"NoLayout", func(c *Config) { c.Dataset.Single = "" }},
		{"MissingModality", func(c *Config) {
			c.Dataset.Single = ""
			c.Dataset.Modalities = map[string]string{"ATAC": "a"}
		}},
		{"K", func(c *Config) { c.Scoring.K = 0 }},
		{"Metric", func(c *Config) { c.Scoring.Metric = "cosine" }},
		{"Codec", func(c *Config) { c.Output.Codec = "msgpack" }},
		{"Compression", func(c *Config) { c.Output.Compression = "gzip" }},
		{"LogLevel", func(c *Config) { c.Log.Level = "loud" }},
		{"LogFormat", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := single()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
