package metadata

import (
	"os"
	"path/filepath"
	"strings"
)

// MaxFolderWalkDepth bounds the recursive tally in folderExtractor so a
// folder full of symlink loops or a vault root dropped into a watched
// folder can't make metadata extraction unbounded.
const MaxFolderWalkDepth = 10

// folderExtractor tallies file/subfolder counts, total size, and an
// extension histogram for directory entries, skipping dotfiles. Unlike the
// other typed extractors this one requires no third-party library, so it is
// always available.
type folderExtractor struct{}

// NewFolderExtractor returns the folder-summary extractor.
func NewFolderExtractor() Extractor { return folderExtractor{} }

func (folderExtractor) Category() string { return "folder" }
func (folderExtractor) Available() bool  { return true }

func (folderExtractor) Extract(absPath string) (map[string]any, bool) {
	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		return nil, false
	}

	var fileCount, dirCount int
	var totalSize int64
	histogram := map[string]int{}

	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if depth > MaxFolderWalkDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			full := filepath.Join(dir, e.Name())
			if e.IsDir() {
				dirCount++
				walk(full, depth+1)
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			fileCount++
			totalSize += info.Size()
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext == "" {
				ext = "(none)"
			}
			histogram[ext]++
		}
	}
	walk(absPath, 0)

	return map[string]any{
		"folderFileCount":      fileCount,
		"folderSubfolderCount": dirCount,
		"folderTotalSize":      totalSize,
		"folderExtensionHist":  histogram,
	}, true
}
