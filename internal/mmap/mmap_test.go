package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.mim")
	require.NoError(t, os.WriteFile(path, []byte("MIM1payload"), 0o600))

	m, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, 11, m.Len())
	assert.Equal(t, []byte("MIM1payload"), m.Bytes())
	require.NoError(t, m.Advise(AccessSequential))

	buf := make([]byte, 4)
	n, err := m.ReadAt(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "payl", string(buf))

	n, err = m.ReadAt(buf, 9)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, n)

	_, err = m.ReadAt(buf, 11)
	assert.ErrorIs(t, err, io.EOF)
	_, err = m.ReadAt(buf, -1)
	assert.Error(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestOpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, io.EOF)
	require.NoError(t, m.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
