package sandbox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartfolder/smartfolder/internal/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContain(t *testing.T) {
	root := t.TempDir()

	t.Run("allows a relative path inside the root", func(t *testing.T) {
		got, err := sandbox.Contain(root, "notes/a.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "notes", "a.txt"), got)
	})

	t.Run("rejects parent traversal", func(t *testing.T) {
		_, err := sandbox.Contain(root, "../escape.txt")
		assert.ErrorIs(t, err, sandbox.ErrPathEscape)
	})

	t.Run("rejects an absolute path outside the root", func(t *testing.T) {
		_, err := sandbox.Contain(root, string(filepath.Separator)+"etc"+string(filepath.Separator)+"passwd")
		assert.ErrorIs(t, err, sandbox.ErrPathEscape)
	})

	t.Run("allows an absolute path that is inside the root", func(t *testing.T) {
		abs := filepath.Join(root, "x.txt")
		got, err := sandbox.Contain(root, abs)
		require.NoError(t, err)
		assert.Equal(t, abs, got)
	})
}

func TestReadCapped(t *testing.T) {
	root := t.TempDir()
	small := filepath.Join(root, "small.txt")
	require.NoError(t, os.WriteFile(small, []byte("hello"), 0o644))

	data, err := sandbox.ReadCapped(small, sandbox.DefaultReadCap)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	big := filepath.Join(root, "big.txt")
	require.NoError(t, os.WriteFile(big, make([]byte, 100), 0o644))
	_, err = sandbox.ReadCapped(big, 10)
	assert.ErrorIs(t, err, sandbox.ErrSizeExceeded)
}

func TestAssertExistsAndNotExists(t *testing.T) {
	root := t.TempDir()
	present := filepath.Join(root, "present.txt")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0o644))

	assert.NoError(t, sandbox.AssertExists(present))
	assert.Error(t, sandbox.AssertExists(filepath.Join(root, "missing.txt")))

	assert.NoError(t, sandbox.AssertNotExists(filepath.Join(root, "missing.txt")))
	assert.Error(t, sandbox.AssertNotExists(present))
}
