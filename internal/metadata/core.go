// Package metadata implements the core stat+hash extractor every file gets,
// plus best-effort type-specific extractors that degrade to "unavailable"
// rather than surfacing an error.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/smartfolder/smartfolder/internal/classifier"
)

// Core captures the metadata every file gets, regardless of category.
type Core struct {
	AbsolutePath string             `json:"absolutePath"`
	RelativePath string             `json:"relativePath"`
	BaseName     string             `json:"baseName"`
	Extension    string             `json:"extension"`
	Size         int64              `json:"size"`
	CreatedAt    time.Time          `json:"createdAt"`
	ModifiedAt   time.Time          `json:"modifiedAt"`
	Category     classifier.Category `json:"category"`
	SHA256       string             `json:"sha256"`
}

// ExtractCore stats absPath and streams its content through SHA-256 without
// ever loading the whole file into memory, so multi-gigabyte videos are safe.
func ExtractCore(root, absPath string) (Core, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return Core{}, fmt.Errorf("stat %s: %w", absPath, err)
	}

	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		rel = absPath
	}

	ext := classifier.FinalExtension(info.Name())
	mime := "" // no mime sniffing anywhere in the pipeline; classification uses the extension only
	cat := classifier.Classify(ext, mime)
	if info.IsDir() {
		cat = classifier.Folder
	}

	sum, err := streamingSHA256(absPath, info)
	if err != nil {
		return Core{}, err
	}

	return Core{
		AbsolutePath: absPath,
		RelativePath: filepath.ToSlash(rel),
		BaseName:     info.Name(),
		Extension:    ext,
		Size:         info.Size(),
		CreatedAt:    createdAt(info),
		ModifiedAt:   info.ModTime(),
		Category:     cat,
		SHA256:       sum,
	}, nil
}

func streamingSHA256(absPath string, info os.FileInfo) (string, error) {
	if info.IsDir() {
		return "", nil
	}
	f, err := os.Open(absPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", absPath, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", absPath, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
