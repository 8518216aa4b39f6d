// Package ignoreglob wraps doublestar glob matching (which, unlike
// path/filepath.Match, supports "**" and brace groups) for the ignore-glob
// lists used by both the folder watcher (C11) and discovery poller (C12).
package ignoreglob

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher holds a precompiled set of glob patterns.
type Matcher struct {
	patterns []string
}

// New returns a Matcher for the given patterns (glob syntax: **, *, {a,b}, [...]).
func New(patterns []string) *Matcher {
	return &Matcher{patterns: patterns}
}

// Match reports whether relPath (slash-separated, relative to the folder
// root) matches any configured pattern.
func (m *Matcher) Match(relPath string) bool {
	if m == nil {
		return false
	}
	rel := filepath.ToSlash(relPath)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// DefaultDiscoveryIgnores are the default globs discovery (C12) skips, per spec.md §4.12.
var DefaultDiscoveryIgnores = []string{"**/node_modules/**", "**/.git/**", "**/.smartfolder/**"}
