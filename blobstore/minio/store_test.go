package minio

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/mimgo/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}

func TestDial(t *testing.T) {
	_, err := Dial(Config{})
	assert.Error(t, err)

	client, err := Dial(Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)

	store := NewStore(client, "cohorts", "/runs/")
	assert.Equal(t, "runs/atac.mim", store.key("atac.mim"))
}

// TestMinioStore_Integration requires a running MinIO instance at MINIO_ENDPOINT.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("Skipping MinIO integration test: MINIO_ENDPOINT not set")
	}

	client, err := Dial(Config{
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	ctx := context.Background()
	store := NewStore(client, "test-mimgo", "test-prefix")
	require.NoError(t, store.EnsureBucket(ctx, ""))

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "tables/atac.mim", data))

	blob, err := store.Open(ctx, "tables/atac.mim")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	got, err := io.ReadAll(blobstore.NewReader(ctx, blob))
	require.NoError(t, err)
	assert.Equal(t, data, got)
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "tables/")
	require.NoError(t, err)
	assert.Equal(t, []string{"tables/atac.mim"}, names)

	require.NoError(t, store.Delete(ctx, "tables/atac.mim"))
	_, err = store.Open(ctx, "tables/atac.mim")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
