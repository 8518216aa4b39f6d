package metadata

import "archive/zip"

// archiveExtractor reports entry counts and total uncompressed size for zip
// archives using the stdlib zip reader. Other archive formats (tar, 7z, rar)
// have no stdlib reader and no library is wired for them in this pack, so
// they fall through to "unavailable" the same way the EXIF/PDF/audio/video
// stubs do.
type archiveExtractor struct{}

// NewArchiveExtractor returns the zip-backed archive extractor.
func NewArchiveExtractor() Extractor { return archiveExtractor{} }

func (archiveExtractor) Category() string { return "archive" }
func (archiveExtractor) Available() bool  { return true }

func (archiveExtractor) Extract(absPath string) (map[string]any, bool) {
	r, err := zip.OpenReader(absPath)
	if err != nil {
		return nil, false
	}
	defer r.Close()

	var fileCount int
	var totalUncompressed uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		fileCount++
		totalUncompressed += f.UncompressedSize64
	}

	return map[string]any{
		"archiveEntryCount":       fileCount,
		"archiveUncompressedSize": totalUncompressed,
	}, true
}
