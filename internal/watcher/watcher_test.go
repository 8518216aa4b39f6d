package watcher_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smartfolder/smartfolder/internal/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWatcher lets the test inject fsnotify events without touching the
// real filesystem watch machinery.
type fakeWatcher struct {
	events chan fsnotify.Event
	errs   chan error
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan fsnotify.Event, 16), errs: make(chan error, 1)}
}

func (f *fakeWatcher) Add(string) error                      { return nil }
func (f *fakeWatcher) Close() error                           { close(f.events); return nil }
func (f *fakeWatcher) Events() <-chan fsnotify.Event          { return f.events }
func (f *fakeWatcher) Errors() <-chan error                   { return f.errs }

func TestFolderWatcherDebouncesWriteBurstsIntoOneAdd(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	fw := newFakeWatcher()
	var mu sync.Mutex
	var adds []string

	w := watcher.New(watcher.Options{
		FolderPath: dir,
		DebounceMs: 30,
		WatcherFactory: func() (watcher.Watcher, error) {
			return fw, nil
		},
		OnAdd: func(abs string) {
			mu.Lock()
			adds = append(adds, abs)
			mu.Unlock()
		},
	})
	require.NoError(t, w.Start())
	defer w.Close()

	for i := 0; i < 5; i++ {
		fw.events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, adds, 1, "write burst should coalesce into a single add")
}

func TestFolderWatcherSkipsIgnoredPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.tmp"), []byte("x"), 0o644))

	fw := newFakeWatcher()
	var mu sync.Mutex
	var adds []string

	w := watcher.New(watcher.Options{
		FolderPath:  dir,
		DebounceMs:  10,
		IgnoreGlobs: []string{"*.tmp"},
		WatcherFactory: func() (watcher.Watcher, error) {
			return fw, nil
		},
		OnAdd: func(abs string) {
			mu.Lock()
			adds = append(adds, abs)
			mu.Unlock()
		},
	})
	require.NoError(t, w.Start())
	defer w.Close()

	fw.events <- fsnotify.Event{Name: filepath.Join(dir, "scratch.tmp"), Op: fsnotify.Create}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, adds)
}
