package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaultyFS(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("limited", Fault{FailAfterBytes: 4})
	ffs.AddRule("nosync", Fault{FailAfterBytes: -1, FailOnSync: true})
	ffs.AddRule("stuck", Fault{FailAfterBytes: -1, FailOnRename: true})

	open := func(name string) File {
		f, err := ffs.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY, 0o600)
		require.NoError(t, err)
		return f
	}

	t.Run("WriteLimit", func(t *testing.T) {
		f := open("limited.bin")
		_, err := f.Write([]byte("abcd"))
		require.NoError(t, err)
		_, err = f.Write([]byte("e"))
		assert.ErrorIs(t, err, ErrInjected)
		require.NoError(t, f.Close())
	})

	t.Run("Sync", func(t *testing.T) {
		f := open("nosync.bin")
		assert.ErrorIs(t, f.Sync(), ErrInjected)
		require.NoError(t, f.Close())
	})

	t.Run("Rename", func(t *testing.T) {
		require.NoError(t, open("stuck.bin").Close())
		err := ffs.Rename(filepath.Join(dir, "stuck.bin"), filepath.Join(dir, "moved.bin"))
		assert.ErrorIs(t, err, ErrInjected)
	})

	t.Run("Passthrough", func(t *testing.T) {
		f := open("plain.bin")
		_, err := f.Write([]byte("plain"))
		require.NoError(t, err)
		require.NoError(t, f.Sync())
		require.NoError(t, f.Close())
		require.NoError(t, ffs.Rename(filepath.Join(dir, "plain.bin"), filepath.Join(dir, "renamed.bin")))

		data, err := os.ReadFile(filepath.Join(dir, "renamed.bin"))
		require.NoError(t, err)
		assert.Equal(t, "plain", string(data))
	})
}
