// Package discovery implements the poll-based smartfolder.md discovery
// poller (C12): it walks configured root directories, validates and parses
// each smartfolder.md it finds, and diffs against the previously discovered
// set. Edits and deletions are noticed only on the next tick; no per-file
// watcher is attached.
package discovery

import (
	"bytes"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/smartfolder/smartfolder/internal/ignoreglob"
	"gopkg.in/yaml.v3"
)

const (
	fileName            = "smartfolder.md"
	maxConfigFileBytes  = 1 * 1024 * 1024
	maxPromptChars      = 50_000
	defaultTickInterval = 5 * time.Second
	repeatedCharWarnRun = 1000
)

// ErrFileTooLarge is returned when a smartfolder.md exceeds the 1 MiB cap.
var ErrFileTooLarge = errors.New("smartfolder.md exceeds 1 MiB")

// ErrPromptTooLong is returned when a parsed prompt exceeds 50,000 characters.
var ErrPromptTooLong = errors.New("prompt exceeds 50,000 characters")

// ErrEmptyPrompt is returned for a zero-length prompt body.
var ErrEmptyPrompt = errors.New("prompt is empty")

// ErrPromptContainsNul is returned when the file contains a NUL byte.
var ErrPromptContainsNul = errors.New("prompt contains a NUL byte")

// Overrides holds the optional YAML front-matter header values a
// smartfolder.md may carry above its prompt body, per the supplemental
// header feature: `tools`, `debounce_ms`, `dry_run`.
type Overrides struct {
	Tools      []string `yaml:"tools"`
	DebounceMs int      `yaml:"debounce_ms"`
	DryRun     bool      `yaml:"dry_run"`
	HasDryRun  bool      `yaml:"-"`
}

// Found is one discovered smartfolder.md: its containing directory (the
// folder to watch), its parsed prompt, and any front-matter overrides.
type Found struct {
	ConfigPath string
	FolderPath string
	Prompt     string
	Overrides  Overrides
}

// Callbacks are invoked as the poller diffs discovered state.
type Callbacks struct {
	OnAdded   func(Found)
	OnChanged func(Found)
	OnRemoved func(configPath string)
}

// Poller walks RootDirectories on every tick, emitting Added/Changed/Removed
// callbacks as the discovered smartfolder.md set changes.
type Poller struct {
	RootDirectories []string
	IgnoreGlobs     []string
	TickInterval    time.Duration
	Callbacks       Callbacks

	ignore *ignoreglob.Matcher
	known  map[string]Found
	stop   chan struct{}
	done   chan struct{}
}

// New constructs a Poller. Per-file change detection (spec.md §4.12's
// dedicated 500ms write-stability watch per discovered file) is folded
// into the regular tick here rather than a separate per-file fsnotify
// handle: each tick re-parses every known smartfolder.md and fires
// OnChanged when its prompt differs from the last tick.
func New(roots []string, ignoreGlobs []string, callbacks Callbacks) *Poller {
	if len(ignoreGlobs) == 0 {
		ignoreGlobs = ignoreglob.DefaultDiscoveryIgnores
	}
	return &Poller{
		RootDirectories: roots,
		IgnoreGlobs:     ignoreGlobs,
		TickInterval:    defaultTickInterval,
		Callbacks:       callbacks,
		ignore:          ignoreglob.New(ignoreGlobs),
		known:           make(map[string]Found),
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
}

// Run ticks until Stop is called.
func (p *Poller) Run() {
	defer close(p.done)
	interval := p.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}
	p.tick()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// Stop halts the poller and waits for its loop to exit.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
}

func (p *Poller) tick() {
	current := make(map[string]Found)
	for _, root := range p.RootDirectories {
		p.walkRoot(root, current)
	}

	for path, found := range current {
		prev, existed := p.known[path]
		if !existed {
			p.known[path] = found
			if p.Callbacks.OnAdded != nil {
				p.Callbacks.OnAdded(found)
			}
			continue
		}
		if prev.Prompt != found.Prompt || !overridesEqual(prev.Overrides, found.Overrides) {
			p.known[path] = found
			if p.Callbacks.OnChanged != nil {
				p.Callbacks.OnChanged(found)
			}
		}
	}

	for path := range p.known {
		if _, stillPresent := current[path]; !stillPresent {
			delete(p.known, path)
			if p.Callbacks.OnRemoved != nil {
				p.Callbacks.OnRemoved(path)
			}
		}
	}
}

// walkRoot performs the lstat-based, symlink-skipping traversal of one root
// directory, collecting every valid smartfolder.md into out.
func (p *Poller) walkRoot(root string, out map[string]Found) {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&os.ModeSymlink != 0 {
		return
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				log.Printf("discovery: permission denied, skipping %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		info, err := os.Lstat(path)
		if err != nil {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		if rel != "." && p.ignore.Match(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(d.Name(), fileName) {
			return nil
		}

		prompt, overrides, err := parseConfigFile(path)
		if err != nil {
			log.Printf("discovery: rejecting %s: %v", path, err)
			return nil
		}
		out[path] = Found{ConfigPath: path, FolderPath: filepath.Dir(path), Prompt: prompt, Overrides: overrides}
		return nil
	})
}

// parseConfigFile validates and parses one smartfolder.md. Per spec.md
// §4.12 the whole file is the prompt, optionally preceded by a YAML
// front-matter header carrying `tools`/`debounce_ms`/`dry_run` overrides
// (the supplemental header feature); the header is parsed with
// gopkg.in/yaml.v3, the same library the teacher's pkg/frontmatter uses for
// note frontmatter.
func parseConfigFile(path string) (string, Overrides, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", Overrides{}, err
	}
	if info.Size() > maxConfigFileBytes {
		return "", Overrides{}, ErrFileTooLarge
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", Overrides{}, err
	}
	if bytes.IndexByte(raw, 0) >= 0 {
		return "", Overrides{}, ErrPromptContainsNul
	}

	header, body := splitFrontMatter(raw)
	overrides, err := parseOverrides(header)
	if err != nil {
		log.Printf("discovery: %s has an invalid front-matter header, ignoring overrides: %v", path, err)
		overrides = Overrides{}
	}

	prompt := strings.TrimSpace(string(body))
	if prompt == "" {
		return "", Overrides{}, ErrEmptyPrompt
	}
	if len([]rune(prompt)) > maxPromptChars {
		return "", Overrides{}, ErrPromptTooLong
	}
	warnOnUnusualContent(path, prompt)

	return prompt, overrides, nil
}

// parseOverrides decodes an optional YAML front-matter header into
// Overrides, recording whether dry_run was explicitly present so a
// folder-level default isn't silently clobbered by a zero value.
func parseOverrides(header []byte) (Overrides, error) {
	if len(strings.TrimSpace(string(header))) == 0 {
		return Overrides{}, nil
	}
	var ov Overrides
	if err := yaml.Unmarshal(header, &ov); err != nil {
		return Overrides{}, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(header, &raw); err == nil {
		_, ov.HasDryRun = raw["dry_run"]
	}
	return ov, nil
}

// overridesEqual reports whether two Overrides carry the same values, used
// to decide whether a front-matter-only edit should fire OnChanged.
func overridesEqual(a, b Overrides) bool {
	if a.DebounceMs != b.DebounceMs || a.DryRun != b.DryRun || a.HasDryRun != b.HasDryRun {
		return false
	}
	if len(a.Tools) != len(b.Tools) {
		return false
	}
	for i := range a.Tools {
		if a.Tools[i] != b.Tools[i] {
			return false
		}
	}
	return true
}

// splitFrontMatter strips a leading "---\n...\n---\n" YAML header if
// present, returning (header bytes without delimiters, remaining body). The
// delimiter scan itself is stdlib; the header's contents are handed to
// yaml.v3 by parseOverrides, the same decoding library the teacher's
// pkg/frontmatter package uses for note frontmatter.
func splitFrontMatter(raw []byte) (header []byte, body []byte) {
	const delim = "---"
	text := string(raw)
	if !strings.HasPrefix(strings.TrimLeft(text, "\r\n"), delim) {
		return nil, raw
	}
	lines := strings.SplitAfter(text, "\n")
	if strings.TrimSpace(lines[0]) != delim {
		return nil, raw
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			headerLines := lines[1:i]
			bodyLines := lines[i+1:]
			return []byte(strings.Join(headerLines, "")), []byte(strings.Join(bodyLines, ""))
		}
	}
	return nil, raw
}

// warnOnUnusualContent logs (never fails) on long runs of identical
// characters or unusual control characters, per spec.md §4.12.
func warnOnUnusualContent(path, prompt string) {
	runs := longestRun(prompt)
	if runs > repeatedCharWarnRun {
		log.Printf("discovery: %s contains a run of %d identical characters", path, runs)
	}
	for _, r := range prompt {
		if r < 0x20 && r != '\n' && r != '\t' && r != '\r' {
			log.Printf("discovery: %s contains an unusual control character %q", path, r)
			break
		}
	}
}

func longestRun(s string) int {
	var best, cur int
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			cur++
		} else {
			cur = 1
		}
		if cur > best {
			best = cur
		}
		prev = r
	}
	return best
}

// SortedKnownPaths returns the discovered config paths in a deterministic
// order, useful for tests and logging.
func (p *Poller) SortedKnownPaths() []string {
	keys := make([]string, 0, len(p.known))
	for k := range p.known {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
