// Package config loads and normalizes the JSON config file into the
// FolderSpec records the rest of the system operates on, per spec.md §3 and
// §6. Config is JSON (not YAML) -- this diverges from the teacher, which
// used cobra flags exclusively, because the spec names a JSON config file
// explicitly.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/smartfolder/smartfolder/internal/ignoreglob"
	"github.com/smartfolder/smartfolder/internal/statedir"
)

// EnvWhitelist is the closed set of environment variable names a config
// file's $NAME tokens may reference. Anything else fails validation with
// ErrEnvVarNotAllowed.
var EnvWhitelist = map[string]bool{
	"AI_GATEWAY_API_KEY": true,
	"SMARTFOLDER_HOME":   true,
	"HOME":               true,
	"USER":               true,
}

// ErrEnvVarNotAllowed is returned when a config string references an
// unlisted $NAME token.
type ErrEnvVarNotAllowed struct{ Name string }

func (e ErrEnvVarNotAllowed) Error() string {
	return fmt.Sprintf("environment variable %q is not in the allowed whitelist", e.Name)
}

// AI holds the model gateway settings shared across all folders.
type AI struct {
	Provider     string   `json:"provider"`
	Model        string   `json:"model"`
	APIKey       string   `json:"apiKey"`
	Temperature  float64  `json:"temperature"`
	MaxToolCalls int      `json:"maxToolCalls"`
	DefaultTools []string `json:"defaultTools"`
}

// FolderEntry is one entry of the `folders` array in the config file.
type FolderEntry struct {
	Path            string   `json:"path"`
	Prompt          string   `json:"prompt"`
	Tools           []string `json:"tools,omitempty"`
	IgnoreGlobs     []string `json:"ignoreGlobs,omitempty"`
	DebounceMs      int      `json:"debounceMs,omitempty"`
	PollIntervalMs  int      `json:"pollIntervalMs,omitempty"`
	Env             map[string]string `json:"env,omitempty"`
	DryRun          bool     `json:"dryRun,omitempty"`
}

// File is the on-disk shape of the JSON config file.
type File struct {
	AI                  AI                `json:"ai"`
	Folders             []FolderEntry     `json:"folders,omitempty"`
	RootDirectories     []string          `json:"rootDirectories,omitempty"`
	GlobalDefaults      FolderEntry       `json:"globalDefaults,omitempty"`
	Tools               []string          `json:"tools,omitempty"`
	Ignore              []string          `json:"ignore,omitempty"`
	DebounceMs          int               `json:"debounceMs,omitempty"`
	PollIntervalMs      int               `json:"pollIntervalMs,omitempty"`
	DiscoveryIntervalMs int               `json:"discoveryIntervalMs,omitempty"`
	Env                 map[string]string `json:"env,omitempty"`
	DryRun              bool              `json:"dryRun,omitempty"`
}

// FolderSpec is the normalized, per-folder record the rest of the system
// consumes, per spec.md §3.
type FolderSpec struct {
	Path           string
	Prompt         string
	Tools          []string
	IgnoreGlobs    []string
	DebounceMs     int
	PollIntervalMs int
	Env            map[string]string
	DryRun         bool
	StateDir       string
	HistoryPath    string
}

// Resolved is the fully normalized, validated configuration ready for the
// supervisor (C14) to start watchers against.
type Resolved struct {
	AI                  AI
	Folders             []FolderSpec
	RootDirectories     []string
	DiscoveryIntervalMs int
	RootMode            bool
}

const (
	defaultDebounceMs          = 1500
	defaultDiscoveryIntervalMs = 5000
	defaultMaxToolCalls        = 25
)

var envTokenPattern = regexp.MustCompile(`\$([A-Z][A-Z0-9_]*)`)

// LoadFile reads, parses, and resolves env tokens in the config file at
// path, without normalizing it into a Resolved. Load wraps it with
// Normalize and returns this raw File alongside the Resolved, which is how
// the supervisor's root-mode discovery gets the File it layers a
// smartfolder.md's overrides onto.
func LoadFile(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	if err := resolveEnvTokens(&f); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads, parses, resolves env tokens in, and normalizes the config
// file at path.
func Load(path string) (Resolved, File, error) {
	f, err := LoadFile(path)
	if err != nil {
		return Resolved{}, File{}, err
	}
	resolved, err := Normalize(f)
	return resolved, f, err
}

// Normalize validates a parsed File and builds the Resolved configuration,
// including per-folder state directory assignment.
func Normalize(f File) (Resolved, error) {
	if len(f.Folders) > 0 && len(f.RootDirectories) > 0 {
		return Resolved{}, fmt.Errorf("exactly one of folders and rootDirectories may be set")
	}
	if len(f.Folders) == 0 && len(f.RootDirectories) == 0 {
		return Resolved{}, fmt.Errorf("one of folders or rootDirectories is required")
	}

	if err := resolveEnvTokens(&f); err != nil {
		return Resolved{}, err
	}

	if f.AI.MaxToolCalls == 0 {
		f.AI.MaxToolCalls = defaultMaxToolCalls
	}

	result := Resolved{
		AI:                  f.AI,
		RootDirectories:     f.RootDirectories,
		DiscoveryIntervalMs: orDefault(f.DiscoveryIntervalMs, defaultDiscoveryIntervalMs),
		RootMode:            len(f.RootDirectories) > 0,
	}

	for _, entry := range f.Folders {
		spec, err := buildFolderSpec(entry, f)
		if err != nil {
			return Resolved{}, err
		}
		result.Folders = append(result.Folders, spec)
	}

	return result, nil
}

// DiscoveryOverrides carries a discovered smartfolder.md's optional
// front-matter header values, layered over the config's global defaults
// before spec.md §4.5's own per-folder fields would apply.
type DiscoveryOverrides struct {
	Tools      []string
	DebounceMs int
	DryRun     bool
	HasDryRun  bool
}

// FolderSpecFromDiscovery builds a FolderSpec for a folder discovered at
// runtime via a smartfolder.md file (C12), applying the config's global
// defaults for tools/ignore/debounce, then layering any front-matter
// overrides on top.
func FolderSpecFromDiscovery(folderPath, prompt string, overrides DiscoveryOverrides, f File) (FolderSpec, error) {
	entry := FolderEntry{
		Path:       folderPath,
		Prompt:     prompt,
		Tools:      overrides.Tools,
		DebounceMs: overrides.DebounceMs,
		DryRun:     overrides.DryRun && overrides.HasDryRun,
	}
	return buildFolderSpec(entry, f)
}

// ForSingleFolder builds a Resolved config for the CLI's inline single-folder
// mode (`smartfolder <folder> --prompt "..."`), with no config file backing
// it -- just the AI defaults and one FolderSpec.
func ForSingleFolder(folderPath, prompt string, dryRun bool) (Resolved, File, error) {
	f := File{AI: AI{MaxToolCalls: defaultMaxToolCalls}}
	entry := FolderEntry{Path: folderPath, Prompt: prompt, DryRun: dryRun}
	spec, err := buildFolderSpec(entry, f)
	if err != nil {
		return Resolved{}, File{}, err
	}
	return Resolved{AI: f.AI, Folders: []FolderSpec{spec}}, f, nil
}

func buildFolderSpec(entry FolderEntry, f File) (FolderSpec, error) {
	if entry.Path == "" {
		return FolderSpec{}, fmt.Errorf("folder entry missing path")
	}
	absPath, err := filepath.Abs(entry.Path)
	if err != nil {
		return FolderSpec{}, fmt.Errorf("resolve folder path %q: %w", entry.Path, err)
	}

	tools := entry.Tools
	if len(tools) == 0 {
		tools = f.Tools
	}
	ignore := entry.IgnoreGlobs
	if len(ignore) == 0 {
		ignore = f.Ignore
	}
	if len(ignore) == 0 {
		ignore = ignoreglob.DefaultDiscoveryIgnores
	}

	debounce := orDefault(entry.DebounceMs, orDefault(f.DebounceMs, defaultDebounceMs))
	poll := orDefault(entry.PollIntervalMs, f.PollIntervalMs)

	env := entry.Env
	if env == nil {
		env = f.Env
	}

	dryRun := entry.DryRun || f.DryRun

	return FolderSpec{
		Path:           absPath,
		Prompt:         entry.Prompt,
		Tools:          tools,
		IgnoreGlobs:    ignore,
		DebounceMs:     debounce,
		PollIntervalMs: poll,
		Env:            env,
		DryRun:         dryRun,
		StateDir:       statedir.StateDirFor(absPath),
		HistoryPath:    statedir.HistoryPath(absPath),
	}, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// resolveEnvTokens walks every string field reachable from f and resolves
// $NAME tokens against EnvWhitelist, mutating f in place.
func resolveEnvTokens(f *File) error {
	resolve := func(s string) (string, error) {
		var outerErr error
		resolved := envTokenPattern.ReplaceAllStringFunc(s, func(tok string) string {
			name := strings.TrimPrefix(tok, "$")
			if !EnvWhitelist[name] {
				outerErr = ErrEnvVarNotAllowed{Name: name}
				return tok
			}
			return os.Getenv(name)
		})
		return resolved, outerErr
	}

	var err error
	if f.AI.APIKey, err = resolve(f.AI.APIKey); err != nil {
		return err
	}
	for i := range f.Folders {
		if f.Folders[i].Prompt, err = resolve(f.Folders[i].Prompt); err != nil {
			return err
		}
		for k, v := range f.Folders[i].Env {
			if f.Folders[i].Env[k], err = resolve(v); err != nil {
				return err
			}
			_ = k
		}
	}
	for k, v := range f.Env {
		if f.Env[k], err = resolve(v); err != nil {
			return err
		}
	}
	return nil
}
