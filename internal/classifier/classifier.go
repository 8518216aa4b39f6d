// Package classifier maps a file's extension and optional mime type to one
// of the fixed content categories the rest of the pipeline dispatches on.
package classifier

import "strings"

// Category is one of the ten content buckets the content provider and tool
// registry reason about.
type Category string

const (
	TextDocument Category = "text"
	Code         Category = "code"
	Data         Category = "data"
	Image        Category = "image"
	PDF          Category = "pdf"
	Audio        Category = "audio"
	Video        Category = "video"
	Office       Category = "office"
	Archive      Category = "archive"
	Folder       Category = "folder"
)

var codeExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true,
	".java": true, ".c": true, ".h": true, ".cpp": true, ".cc": true, ".hpp": true,
	".rs": true, ".rb": true, ".php": true, ".cs": true, ".swift": true, ".kt": true,
	".sh": true, ".bash": true, ".zsh": true, ".sql": true, ".html": true, ".css": true,
	".scss": true, ".lua": true, ".pl": true, ".r": true, ".m": true, ".scala": true,
}

var dataExtensions = map[string]bool{
	".json": true, ".csv": true, ".tsv": true, ".xml": true, ".yaml": true, ".yml": true,
	".toml": true, ".ini": true, ".parquet": true, ".ndjson": true,
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".webp": true,
	".svg": true, ".tiff": true, ".heic": true,
}

var pdfExtensions = map[string]bool{".pdf": true}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".flac": true, ".ogg": true, ".m4a": true, ".aac": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".avi": true, ".webm": true, ".m4v": true,
}

var officeExtensions = map[string]bool{
	".docx": true, ".xlsx": true, ".pptx": true, ".doc": true, ".xls": true, ".ppt": true,
	".odt": true, ".ods": true, ".odp": true,
}

var archiveExtensions = map[string]bool{
	".zip": true, ".tar": true, ".gz": true, ".tgz": true, ".rar": true, ".7z": true,
	".bz2": true, ".xz": true,
}

// Classify maps a lower-cased extension (including the leading dot) plus an
// optional mime type to a Category. A mime prefix of image/, video/, audio/,
// or text/ short-circuits the extension table. Multi-dot names (.tar.gz) use
// only the final extension, so callers must pass the final extension.
func Classify(extensionLower string, mime string) Category {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch {
	case strings.HasPrefix(mime, "image/"):
		return Image
	case strings.HasPrefix(mime, "video/"):
		return Video
	case strings.HasPrefix(mime, "audio/"):
		return Audio
	case strings.HasPrefix(mime, "text/"):
		return TextDocument
	}

	ext := strings.ToLower(extensionLower)
	switch {
	case ext == ".md" || ext == ".txt" || ext == ".markdown" || ext == ".rst" || ext == ".log":
		return TextDocument
	case codeExtensions[ext]:
		return Code
	case dataExtensions[ext]:
		return Data
	case imageExtensions[ext]:
		return Image
	case pdfExtensions[ext]:
		return PDF
	case audioExtensions[ext]:
		return Audio
	case videoExtensions[ext]:
		return Video
	case officeExtensions[ext]:
		return Office
	case archiveExtensions[ext]:
		return Archive
	default:
		return TextDocument
	}
}

// FinalExtension returns the last dot-delimited extension of name, lower-cased,
// so that "archive.tar.gz" yields ".gz". The rename/move tools compare
// extensions with this same function, so only the final suffix is checked.
func FinalExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx:])
}
