package discovery_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/smartfolder/smartfolder/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type events struct {
	mu      sync.Mutex
	added   []discovery.Found
	changed []discovery.Found
	removed []string
}

func (e *events) callbacks() discovery.Callbacks {
	return discovery.Callbacks{
		OnAdded: func(f discovery.Found) {
			e.mu.Lock()
			e.added = append(e.added, f)
			e.mu.Unlock()
		},
		OnChanged: func(f discovery.Found) {
			e.mu.Lock()
			e.changed = append(e.changed, f)
			e.mu.Unlock()
		},
		OnRemoved: func(path string) {
			e.mu.Lock()
			e.removed = append(e.removed, path)
			e.mu.Unlock()
		},
	}
}

func TestPollerDiscoversAddsChangesAndRemoves(t *testing.T) {
	root := t.TempDir()
	projDir := filepath.Join(root, "proj")
	require.NoError(t, os.MkdirAll(projDir, 0o755))
	cfgPath := filepath.Join(projDir, "smartfolder.md")
	require.NoError(t, os.WriteFile(cfgPath, []byte("organize downloads"), 0o644))

	ev := &events{}
	p := discovery.New([]string{root}, nil, ev.callbacks())
	go p.Run()
	defer p.Stop()

	require.Eventually(t, func() bool {
		ev.mu.Lock()
		defer ev.mu.Unlock()
		return len(ev.added) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(cfgPath, []byte("organize downloads differently"), 0o644))
	require.Eventually(t, func() bool {
		ev.mu.Lock()
		defer ev.mu.Unlock()
		return len(ev.changed) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(cfgPath))
	require.Eventually(t, func() bool {
		ev.mu.Lock()
		defer ev.mu.Unlock()
		return len(ev.removed) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPollerRejectsEmptyPrompt(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "smartfolder.md"), []byte("   \n"), 0o644))

	ev := &events{}
	p := discovery.New([]string{root}, nil, ev.callbacks())
	go p.Run()
	defer p.Stop()

	time.Sleep(100 * time.Millisecond)
	ev.mu.Lock()
	defer ev.mu.Unlock()
	assert.Empty(t, ev.added)
}

func TestPollerRejectsFileTooLarge(t *testing.T) {
	root := t.TempDir()
	big := strings.Repeat("a", 2*1024*1024)
	require.NoError(t, os.WriteFile(filepath.Join(root, "smartfolder.md"), []byte(big), 0o644))

	ev := &events{}
	p := discovery.New([]string{root}, nil, ev.callbacks())
	go p.Run()
	defer p.Stop()

	time.Sleep(100 * time.Millisecond)
	ev.mu.Lock()
	defer ev.mu.Unlock()
	assert.Empty(t, ev.added)
}

func TestPollerSkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	ignored := filepath.Join(root, "node_modules", "pkg")
	require.NoError(t, os.MkdirAll(ignored, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ignored, "smartfolder.md"), []byte("nope"), 0o644))

	ev := &events{}
	p := discovery.New([]string{root}, nil, ev.callbacks())
	go p.Run()
	defer p.Stop()

	time.Sleep(100 * time.Millisecond)
	ev.mu.Lock()
	defer ev.mu.Unlock()
	assert.Empty(t, ev.added)
}

func TestPollerParsesFrontMatterOverrides(t *testing.T) {
	root := t.TempDir()
	content := "---\ntools:\n  - rename_file\n  - move_file\ndebounce_ms: 250\ndry_run: true\n---\norganize screenshots"
	require.NoError(t, os.WriteFile(filepath.Join(root, "smartfolder.md"), []byte(content), 0o644))

	ev := &events{}
	p := discovery.New([]string{root}, nil, ev.callbacks())
	go p.Run()
	defer p.Stop()

	require.Eventually(t, func() bool {
		ev.mu.Lock()
		defer ev.mu.Unlock()
		return len(ev.added) == 1
	}, 2*time.Second, 10*time.Millisecond)

	ev.mu.Lock()
	defer ev.mu.Unlock()
	found := ev.added[0]
	assert.Equal(t, "organize screenshots", found.Prompt)
	assert.ElementsMatch(t, []string{"rename_file", "move_file"}, found.Overrides.Tools)
	assert.Equal(t, 250, found.Overrides.DebounceMs)
	assert.True(t, found.Overrides.DryRun)
	assert.True(t, found.Overrides.HasDryRun)
}

func TestPollerIsCaseInsensitiveToFileName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "SmartFolder.MD"), []byte("organize"), 0o644))

	ev := &events{}
	p := discovery.New([]string{root}, nil, ev.callbacks())
	go p.Run()
	defer p.Stop()

	require.Eventually(t, func() bool {
		ev.mu.Lock()
		defer ev.mu.Unlock()
		return len(ev.added) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
