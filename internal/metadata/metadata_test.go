package metadata_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartfolder/smartfolder/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCore(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	core, err := metadata.ExtractCore(root, path)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", core.BaseName)
	assert.Equal(t, int64(11), core.Size)
	assert.NotEmpty(t, core.SHA256)
	assert.Equal(t, "a.txt", core.RelativePath)
}

func TestFolderExtractor(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("yy"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("z"), 0o644))

	ex := metadata.NewFolderExtractor()
	require.True(t, ex.Available())
	data, ok := ex.Extract(root)
	require.True(t, ok)
	assert.Equal(t, 2, data["folderFileCount"])
	assert.Equal(t, 1, data["folderSubfolderCount"])
}

func TestArchiveExtractor(t *testing.T) {
	root := t.TempDir()
	zipPath := filepath.Join(root, "a.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("one.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("contents"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	ex := metadata.NewArchiveExtractor()
	data, ok := ex.Extract(zipPath)
	require.True(t, ok)
	assert.Equal(t, 1, data["archiveEntryCount"])
}

func TestOptionalExtractorsReportUnavailable(t *testing.T) {
	for _, ex := range []metadata.Extractor{
		metadata.NewExifExtractor(),
		metadata.NewPDFExtractor(),
		metadata.NewAudioExtractor(),
		metadata.NewVideoExtractor(),
	} {
		assert.False(t, ex.Available())
	}
}
