package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartfolder/smartfolder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRejectsBothFoldersAndRootDirectories(t *testing.T) {
	f := config.File{
		Folders:         []config.FolderEntry{{Path: "/tmp/a", Prompt: "x"}},
		RootDirectories: []string{"/tmp"},
	}
	_, err := config.Normalize(f)
	assert.Error(t, err)
}

func TestNormalizeRejectsNeitherFoldersNorRootDirectories(t *testing.T) {
	_, err := config.Normalize(config.File{})
	assert.Error(t, err)
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	f := config.File{Folders: []config.FolderEntry{{Path: "/tmp/a", Prompt: "organize"}}}
	resolved, err := config.Normalize(f)
	require.NoError(t, err)
	require.Len(t, resolved.Folders, 1)
	assert.Equal(t, 1500, resolved.Folders[0].DebounceMs)
	assert.NotEmpty(t, resolved.Folders[0].IgnoreGlobs)
	assert.NotEmpty(t, resolved.Folders[0].StateDir)
}

func TestNormalizeRejectsDisallowedEnvToken(t *testing.T) {
	t.Setenv("SECRET_TOKEN", "shh")
	f := config.File{
		AI:      config.AI{APIKey: "$SECRET_TOKEN"},
		Folders: []config.FolderEntry{{Path: "/tmp/a", Prompt: "organize"}},
	}
	_, err := config.Normalize(f)
	assert.Error(t, err)
}

func TestNormalizeResolvesWhitelistedEnvToken(t *testing.T) {
	t.Setenv("AI_GATEWAY_API_KEY", "sk-test")
	f := config.File{
		AI:      config.AI{APIKey: "$AI_GATEWAY_API_KEY"},
		Folders: []config.FolderEntry{{Path: "/tmp/a", Prompt: "organize"}},
	}
	resolved, err := config.Normalize(f)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", resolved.AI.APIKey)
}

func TestNormalizeRootModeSetsRootMode(t *testing.T) {
	f := config.File{RootDirectories: []string{"/tmp/root"}}
	resolved, err := config.Normalize(f)
	require.NoError(t, err)
	assert.True(t, resolved.RootMode)
}

func TestLoadReadsParsesAndNormalizesAFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"folders":[{"path":"/tmp/a","prompt":"organize"}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	resolved, raw, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, resolved.Folders, 1)
	require.Len(t, raw.Folders, 1)
	assert.Equal(t, "/tmp/a", raw.Folders[0].Path)
}

func TestLoadFileReturnsTheRawFileWithoutNormalizing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"folders":[{"path":"/tmp/a","prompt":"organize"}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	f, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, f.Folders, 1)
	assert.Equal(t, "organize", f.Folders[0].Prompt)
}

func TestLoadPropagatesAMissingFileError(t *testing.T) {
	_, _, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestForSingleFolderBuildsAOneFolderResolvedConfig(t *testing.T) {
	resolved, raw, err := config.ForSingleFolder("/tmp/inbox", "sort these files", true)
	require.NoError(t, err)
	require.Len(t, resolved.Folders, 1)
	assert.Equal(t, "/tmp/inbox", resolved.Folders[0].Path)
	assert.True(t, resolved.Folders[0].DryRun)
	assert.False(t, resolved.RootMode)
	assert.Equal(t, resolved.AI.MaxToolCalls, raw.AI.MaxToolCalls)
}
