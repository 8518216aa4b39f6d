// Package supervisor wires the folder watchers (C11), discovery poller
// (C12), job queue (C9), and per-folder job pipeline together, and owns
// process lifecycle: startup, signal handling, and graceful shutdown, per
// spec.md §4.14.
package supervisor

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/smartfolder/smartfolder/internal/agent"
	"github.com/smartfolder/smartfolder/internal/capability"
	"github.com/smartfolder/smartfolder/internal/config"
	"github.com/smartfolder/smartfolder/internal/content"
	"github.com/smartfolder/smartfolder/internal/discovery"
	"github.com/smartfolder/smartfolder/internal/metadata"
	"github.com/smartfolder/smartfolder/internal/promptbuilder"
	"github.com/smartfolder/smartfolder/internal/queue"
	"github.com/smartfolder/smartfolder/internal/statedir"
	"github.com/smartfolder/smartfolder/internal/suppress"
	"github.com/smartfolder/smartfolder/internal/tools"
	"github.com/smartfolder/smartfolder/internal/watcher"
)

// Supervisor owns every long-lived component for one process run.
type Supervisor struct {
	Resolved config.Resolved
	Gateway  agent.Completer

	registry   *tools.Registry
	suppressor *suppress.Set
	jobs       *queue.Manager
	extractors *metadata.Registry

	mu        sync.Mutex
	watchers  []*watcher.FolderWatcher
	discovery *discovery.Poller
	rawConfig config.File
}

// New constructs a Supervisor for the given resolved config. gateway may be
// nil; watchers still start, and every job then records a "no AI gateway"
// error in history instead of running the agent, dry_run or not.
func New(resolved config.Resolved, raw config.File, gateway agent.Completer) *Supervisor {
	return &Supervisor{
		Resolved:   resolved,
		rawConfig:  raw,
		Gateway:    gateway,
		registry:   tools.NewRegistry(),
		suppressor: suppress.New(),
		jobs:       queue.NewManager(),
		extractors: metadata.NewRegistry(
			metadata.NewArchiveExtractor(),
			metadata.NewFolderExtractor(),
			metadata.NewExifExtractor(),
			metadata.NewPDFExtractor(),
			metadata.NewAudioExtractor(),
			metadata.NewVideoExtractor(),
		),
	}
}

// Run starts every folder watcher (or the discovery poller in root mode),
// ensures state directories, and blocks until a shutdown signal arrives or
// ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.startAll()

	<-sigCtx.Done()
	log.Printf("supervisor: shutdown signal received, draining in-flight jobs")
	s.Shutdown()
	return nil
}

// RunOnce implements the --run-once CLI flag's documented semantics (spec.md
// §9 Open Questions): start every watcher, confirm it's ready (Start
// returned without error), then close everything and return without
// processing any events.
func (s *Supervisor) RunOnce() error {
	s.startAll()
	s.Shutdown()
	return nil
}

func (s *Supervisor) startAll() {
	if s.Resolved.RootMode {
		s.startDiscovery()
	} else {
		for _, spec := range s.Resolved.Folders {
			if err := s.startFolder(spec); err != nil {
				log.Printf("supervisor: failed to start folder %s: %v", spec.Path, err)
				continue
			}
		}
	}
}

func (s *Supervisor) startFolder(spec config.FolderSpec) error {
	if err := statedir.EnsureStateDir(spec.Path); err != nil {
		return err
	}
	if _, err := statedir.EnsureMetadata(spec.Path, spec.Prompt); err != nil {
		return err
	}

	w := watcher.New(watcher.Options{
		FolderPath:     spec.Path,
		IgnoreGlobs:    spec.IgnoreGlobs,
		DebounceMs:     spec.DebounceMs,
		PollIntervalMs: spec.PollIntervalMs,
		OnAdd: func(absPath string) {
			s.handleFileAdded(spec, absPath)
		},
	})
	if err := w.Start(); err != nil {
		return err
	}

	s.mu.Lock()
	s.watchers = append(s.watchers, w)
	s.mu.Unlock()
	return nil
}

func (s *Supervisor) startDiscovery() {
	s.discovery = discovery.New(s.Resolved.RootDirectories, nil, discovery.Callbacks{
		OnAdded: func(f discovery.Found) {
			overrides := config.DiscoveryOverrides{
				Tools:      f.Overrides.Tools,
				DebounceMs: f.Overrides.DebounceMs,
				DryRun:     f.Overrides.DryRun,
				HasDryRun:  f.Overrides.HasDryRun,
			}
			spec, err := config.FolderSpecFromDiscovery(f.FolderPath, f.Prompt, overrides, s.rawConfig)
			if err != nil {
				log.Printf("supervisor: discovered folder %s rejected: %v", f.FolderPath, err)
				return
			}
			if err := s.startFolder(spec); err != nil {
				log.Printf("supervisor: failed to start discovered folder %s: %v", spec.Path, err)
			}
		},
		OnRemoved: func(configPath string) {
			log.Printf("supervisor: smartfolder.md removed: %s (watcher left running until shutdown)", configPath)
		},
	})
	go s.discovery.Run()
}

// handleFileAdded is the C9 enqueue step: consult the suppressor, then
// append a job to the folder's chain.
func (s *Supervisor) handleFileAdded(spec config.FolderSpec, absPath string) {
	if s.suppressor.IsIgnored(absPath) {
		log.Printf("supervisor: ignoring self-change at %s", absPath)
		return
	}
	s.jobs.Enqueue(spec.Path, func(ctx context.Context) {
		s.runJob(ctx, spec, absPath)
	})
}

// runJob executes the C2→C3→C4→C5→C6→C8 pipeline for one file.
func (s *Supervisor) runJob(ctx context.Context, spec config.FolderSpec, absPath string) {
	core, err := metadata.ExtractCore(spec.Path, absPath)
	if err != nil {
		s.appendHistoryError(spec.Path, absPath, err)
		return
	}

	typed := s.extractors.ExtractFor(string(core.Category), absPath)
	strategy := content.ForCategory(core.Category)

	modelCap := capability.Select(core.Category, core.Size, s.Resolved.AI.Model)
	caps := content.ModelCaps{
		SupportsImage: modelCap.SupportsImage,
		SupportsPDF:   modelCap.SupportsPDF,
		SupportsAudio: modelCap.SupportsAudio,
		SupportsVideo: modelCap.SupportsVideo,
	}

	fc, err := strategy.Provide(core, typed, content.DefaultThresholds(), caps)
	if err != nil {
		s.appendHistoryError(spec.Path, absPath, err)
		return
	}

	if s.Gateway == nil {
		s.appendHistoryError(spec.Path, absPath, errNoGateway)
		return
	}

	sysPrompt := promptbuilder.BuildSystemPrompt(spec.Prompt)
	userMsg := promptbuilder.BuildUserMessage(fc, core.BaseName)

	toolIDs := spec.Tools
	if len(toolIDs) == 0 {
		toolIDs = s.Resolved.AI.DefaultTools
	}
	if len(toolIDs) == 0 {
		for _, t := range s.registry.All() {
			toolIDs = append(toolIDs, t.Name())
		}
	}

	driver := &agent.Driver{
		Gateway:  s.Gateway,
		Registry: s.registry,
		Model:    modelCap.ID,
		MaxSteps: s.Resolved.AI.MaxToolCalls,
	}
	toolCtx := tools.Context{FolderPath: spec.Path, DryRun: spec.DryRun, Suppressor: s.suppressor}

	result, err := driver.Run(ctx, sysPrompt, userMsg, toolCtx, toolIDs)
	if err != nil {
		s.appendHistoryError(spec.Path, absPath, err)
		return
	}

	if err := statedir.AppendHistory(spec.Path, statedir.HistoryRecord{
		File: core.RelativePath,
		Result: map[string]any{
			"finalText": result.FinalText,
			"stepsUsed": result.StepsUsed,
		},
	}); err != nil {
		log.Printf("supervisor: history append failed for %s: %v", absPath, err)
	}
}

func (s *Supervisor) appendHistoryError(folderPath, absPath string, err error) {
	log.Printf("supervisor: job failed for %s: %v", absPath, err)
	if appendErr := statedir.AppendHistory(folderPath, statedir.HistoryRecord{
		File:  absPath,
		Error: err.Error(),
	}); appendErr != nil {
		log.Printf("supervisor: history append failed for %s: %v", absPath, appendErr)
	}
}

// Shutdown closes every watcher/poller and waits for in-flight jobs to
// drain before returning.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	watchers := s.watchers
	s.watchers = nil
	s.mu.Unlock()

	if s.discovery != nil {
		s.discovery.Stop()
	}
	for _, w := range watchers {
		_ = w.Close()
	}
	s.jobs.Shutdown()
}

var errNoGateway = gatewayMissingErr{}

type gatewayMissingErr struct{}

func (gatewayMissingErr) Error() string {
	return "no AI gateway client configured; check ai.apiKey / AI_GATEWAY_API_KEY"
}
