package statedir_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartfolder/smartfolder/internal/statedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("SMARTFOLDER_HOME", home)
	return home
}

func TestStateDirIsDeterministicAndOutsideFolder(t *testing.T) {
	withHome(t)
	folder := t.TempDir()

	a := statedir.StateDirFor(folder)
	b := statedir.StateDirFor(folder)
	assert.Equal(t, a, b)

	rel, err := filepath.Rel(folder, a)
	require.NoError(t, err)
	assert.True(t, rel == ".." || filepath.IsAbs(rel) || rel[0:2] == "..")
}

func TestEnsureMetadataPreservesFirstWatchedAt(t *testing.T) {
	withHome(t)
	folder := t.TempDir()

	m1, err := statedir.EnsureMetadata(folder, "do things")
	require.NoError(t, err)
	require.NotZero(t, m1.FirstWatchedAt)

	m2, err := statedir.EnsureMetadata(folder, "")
	require.NoError(t, err)
	assert.Equal(t, m1.FirstWatchedAt, m2.FirstWatchedAt)
	assert.True(t, !m2.LastRunAt.Before(m1.LastRunAt))
	assert.Equal(t, "do things", m2.Prompt)
}

func TestAppendHistoryIsOneJSONObjectPerLine(t *testing.T) {
	withHome(t)
	folder := t.TempDir()

	require.NoError(t, statedir.AppendHistory(folder, statedir.HistoryRecord{File: "a.txt", Result: map[string]any{"ok": true}}))
	require.NoError(t, statedir.AppendHistory(folder, statedir.HistoryRecord{File: "b.txt", Error: "boom"}))

	f, err := os.Open(statedir.HistoryPath(folder))
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)
	for _, line := range lines {
		var rec statedir.HistoryRecord
		assert.NoError(t, json.Unmarshal([]byte(line), &rec))
	}
}
