// Package watcher implements the per-folder watcher (C11): create/write
// events, debounced write-stability, ignore-glob filtering, and a polling
// fallback. Create and Write events are treated alike, so a write to a file
// that already existed is reported through OnAdd just as a new file is.
// The Watcher abstraction and fsNotifyWatcher adapter are carried over from
// the teacher's pkg/cache/service.go, which wrapped fsnotify the same way
// to let tests substitute a fake.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smartfolder/smartfolder/internal/ignoreglob"
)

// Watcher abstracts filesystem notifications so tests can substitute a fake
// implementation instead of a real fsnotify.Watcher.
type Watcher interface {
	Add(name string) error
	Close() error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
}

type fsNotifyWatcher struct {
	*fsnotify.Watcher
}

func (f *fsNotifyWatcher) Events() <-chan fsnotify.Event { return f.Watcher.Events }
func (f *fsNotifyWatcher) Errors() <-chan error          { return f.Watcher.Errors }

// Options configures one folder watcher.
type Options struct {
	FolderPath     string
	IgnoreGlobs    []string
	DebounceMs     int
	PollIntervalMs int
	WatcherFactory func() (Watcher, error) // overridable for tests
	OnAdd          func(absPath string)
}

// FolderWatcher watches exactly one folder's immediate directory (depth 1)
// for file creations and writes, per spec.md §4.11. Writes to existing files
// are not filtered out.
type FolderWatcher struct {
	opts    Options
	ignore  *ignoreglob.Matcher
	watcher Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const defaultDebounceMs = 1500

// New constructs a FolderWatcher without starting it.
func New(opts Options) *FolderWatcher {
	if opts.DebounceMs <= 0 {
		opts.DebounceMs = defaultDebounceMs
	}
	if opts.WatcherFactory == nil {
		opts.WatcherFactory = func() (Watcher, error) {
			w, err := fsnotify.NewWatcher()
			if err != nil {
				return nil, err
			}
			return &fsNotifyWatcher{Watcher: w}, nil
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &FolderWatcher{
		opts:    opts,
		ignore:  ignoreglob.New(opts.IgnoreGlobs),
		pending: make(map[string]*time.Timer),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start installs the watch and begins emitting debounced add events. If
// native watching is unavailable it falls back to polling at
// PollIntervalMs (default 2000ms).
func (w *FolderWatcher) Start() error {
	watcher, err := w.opts.WatcherFactory()
	if err != nil {
		log.Printf("watcher: native watch unavailable for %s (%v); falling back to polling", w.opts.FolderPath, err)
		w.wg.Add(1)
		go w.pollLoop()
		return nil
	}
	w.watcher = watcher
	if err := w.watcher.Add(w.opts.FolderPath); err != nil {
		return err
	}
	w.wg.Add(1)
	go w.eventLoop()
	return nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *FolderWatcher) Close() error {
	w.cancel()
	var err error
	if w.watcher != nil {
		err = w.watcher.Close()
	}
	w.wg.Wait()
	return err
}

func (w *FolderWatcher) eventLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.watcher.Events():
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.considerPath(evt.Name)
		case err, ok := <-w.watcher.Errors():
			if !ok {
				return
			}
			log.Printf("watcher: error on %s: %v", w.opts.FolderPath, err)
		}
	}
}

func (w *FolderWatcher) pollLoop() {
	defer w.wg.Done()
	interval := time.Duration(w.opts.PollIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 2 * time.Second
	}
	seen := map[string]bool{}
	entries, _ := os.ReadDir(w.opts.FolderPath)
	for _, e := range entries {
		seen[e.Name()] = true
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			entries, err := os.ReadDir(w.opts.FolderPath)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if seen[e.Name()] {
					continue
				}
				seen[e.Name()] = true
				w.considerPath(filepath.Join(w.opts.FolderPath, e.Name()))
			}
		}
	}
}

// considerPath applies the ignore-glob filter and (re)starts the
// stability-window timer for a candidate path, coalescing write bursts per
// spec.md §4.11.
func (w *FolderWatcher) considerPath(absPath string) {
	rel, err := filepath.Rel(w.opts.FolderPath, absPath)
	if err != nil {
		return
	}
	if w.ignore.Match(rel) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[absPath]; ok {
		t.Stop()
	}
	w.pending[absPath] = time.AfterFunc(time.Duration(w.opts.DebounceMs)*time.Millisecond, func() {
		w.mu.Lock()
		delete(w.pending, absPath)
		w.mu.Unlock()
		if info, err := os.Stat(absPath); err == nil && !info.IsDir() && w.opts.OnAdd != nil {
			w.opts.OnAdd(absPath)
		}
	})
}
