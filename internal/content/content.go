// Package content implements the per-category ContentStrategy: the decision
// of whether and how much of a file's bytes accompany the prompt. Grounded
// on DESIGN NOTES §9's "template-method class hierarchy for providers" ->
// "ContentStrategy interface plus a tagged variant Category" guidance.
package content

import (
	"fmt"
	"os"
	"strings"

	"github.com/smartfolder/smartfolder/internal/classifier"
	"github.com/smartfolder/smartfolder/internal/metadata"
)

// BodyKind tags which variant of Body is populated.
type BodyKind string

const (
	BodyNone        BodyKind = "none"
	BodyFullText    BodyKind = "full_text"
	BodyPartialText BodyKind = "partial_text"
	BodyFullBinary  BodyKind = "full_binary"
)

// Body is the tagged-union payload produced by a ContentStrategy.
type Body struct {
	Kind       BodyKind
	Text       string // FullText or PartialText
	Truncation string // set on PartialText: describes what was omitted
	CSVHeader  string // set on PartialText for CSV: the preserved header line
	Bytes      []byte // FullBinary
	MediaType  string // FullBinary: mime type for the binary payload
}

// FileContent is the output of running a file through its ContentStrategy.
type FileContent struct {
	Core           metadata.Core
	TypedMeta      map[string]any
	Body           Body
	AvailableTools []string
}

// Thresholds are the configuration-overridable size limits from spec.md §4.5.
type Thresholds struct {
	TextFullMax     int64
	TextPartialMax  int64
	ImageMax        int64
	PDFMax          int64
	AudioMax        int64
	VideoMax        int64
	PartialHeadTail int // lines of head/tail for partial text
}

// DefaultThresholds mirrors spec.md §4.5's literal numbers.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TextFullMax:     10 * 1024,
		TextPartialMax:  100 * 1024,
		ImageMax:        5 * 1024 * 1024,
		PDFMax:          10 * 1024 * 1024,
		AudioMax:        10 * 1024 * 1024,
		VideoMax:        20 * 1024 * 1024,
		PartialHeadTail: 50,
	}
}

// ModelCaps is the subset of a capability.Capability the content provider needs.
type ModelCaps struct {
	SupportsImage bool
	SupportsPDF   bool
	SupportsAudio bool
	SupportsVideo bool
}

// Strategy is the per-category template: metadata is always attached by the
// caller; Provide decides the body and the tool list for the given category.
type Strategy interface {
	Provide(core metadata.Core, typed map[string]any, th Thresholds, caps ModelCaps) (FileContent, error)
}

// ForCategory dispatches to the strategy appropriate for cat. This is the
// "small dispatch function" DESIGN NOTES §9 calls for, kept separate from
// the strategies themselves.
func ForCategory(cat classifier.Category) Strategy {
	switch cat {
	case classifier.Image:
		return binaryStrategy{max: func(t Thresholds) int64 { return t.ImageMax }, supports: func(c ModelCaps) bool { return c.SupportsImage }, mediaPrefix: "image/"}
	case classifier.PDF:
		return binaryStrategy{max: func(t Thresholds) int64 { return t.PDFMax }, supports: func(c ModelCaps) bool { return c.SupportsPDF }, mediaPrefix: "application/pdf"}
	case classifier.Audio:
		return binaryStrategy{max: func(t Thresholds) int64 { return t.AudioMax }, supports: func(c ModelCaps) bool { return c.SupportsAudio }, mediaPrefix: "audio/"}
	case classifier.Video:
		return binaryStrategy{max: func(t Thresholds) int64 { return t.VideoMax }, supports: func(c ModelCaps) bool { return c.SupportsVideo }, mediaPrefix: "video/"}
	case classifier.Archive, classifier.Folder, classifier.Office:
		return metadataOnlyStrategy{}
	default: // text, code, data
		return textStrategy{}
	}
}

// textStrategy implements spec.md's text/code/data body policy.
type textStrategy struct{}

func (textStrategy) Provide(core metadata.Core, typed map[string]any, th Thresholds, _ ModelCaps) (FileContent, error) {
	fc := FileContent{Core: core, TypedMeta: typed, AvailableTools: textTools}

	if core.Size > th.TextPartialMax {
		fc.Body = Body{Kind: BodyNone}
		return fc, nil
	}

	raw, err := os.ReadFile(core.AbsolutePath)
	if err != nil {
		return fc, fmt.Errorf("read %s: %w", core.AbsolutePath, err)
	}

	if core.Size <= th.TextFullMax {
		fc.Body = Body{Kind: BodyFullText, Text: string(raw)}
		return fc, nil
	}

	lines := strings.Split(string(raw), "\n")
	headTail := th.PartialHeadTail
	var header string
	isCSV := strings.EqualFold(core.Extension, ".csv") && len(lines) > 0
	if isCSV {
		header = lines[0]
	}

	head := lines
	tail := lines
	if len(lines) > headTail {
		head = lines[:headTail]
	}
	if len(lines) > headTail {
		tail = lines[len(lines)-headTail:]
	} else {
		tail = nil
	}

	var b strings.Builder
	b.WriteString(strings.Join(head, "\n"))
	b.WriteString("\n... [omitted ")
	omitted := len(lines) - len(head) - len(tail)
	if omitted < 0 {
		omitted = 0
	}
	fmt.Fprintf(&b, "%d lines] ...\n", omitted)
	if tail != nil {
		b.WriteString(strings.Join(tail, "\n"))
	}

	fc.Body = Body{
		Kind:       BodyPartialText,
		Text:       b.String(),
		Truncation: fmt.Sprintf("showing first %d and last %d lines of %d", len(head), len(tail), len(lines)),
		CSVHeader:  header,
	}
	return fc, nil
}

var textTools = []string{"read_file", "write_file", "rename_file", "move_file", "grep", "sed", "head", "tail", "create_folder"}
var binaryTools = []string{"rename_file", "move_file", "write_file", "create_folder"}
var metadataOnlyTools = []string{"rename_file", "move_file", "create_folder"}

// binaryStrategy implements the image/pdf/audio/video body policy: full
// base64 (represented here as raw bytes; the transport adapter encodes) if
// the model supports the modality and the file is within the size cap, else
// metadata only.
type binaryStrategy struct {
	max         func(Thresholds) int64
	supports    func(ModelCaps) bool
	mediaPrefix string
}

func (s binaryStrategy) Provide(core metadata.Core, typed map[string]any, th Thresholds, caps ModelCaps) (FileContent, error) {
	fc := FileContent{Core: core, TypedMeta: typed, AvailableTools: binaryTools}

	if !s.supports(caps) || core.Size > s.max(th) {
		fc.Body = Body{Kind: BodyNone}
		return fc, nil
	}

	raw, err := os.ReadFile(core.AbsolutePath)
	if err != nil {
		return fc, fmt.Errorf("read %s: %w", core.AbsolutePath, err)
	}

	mediaType := s.mediaPrefix
	if strings.HasSuffix(mediaType, "/") {
		mediaType += strings.TrimPrefix(core.Extension, ".")
	}

	fc.Body = Body{Kind: BodyFullBinary, Bytes: raw, MediaType: mediaType}
	return fc, nil
}

// metadataOnlyStrategy implements the archive/folder/office policy: the body
// is always omitted; typed metadata describes contents.
type metadataOnlyStrategy struct{}

func (metadataOnlyStrategy) Provide(core metadata.Core, typed map[string]any, _ Thresholds, _ ModelCaps) (FileContent, error) {
	return FileContent{
		Core:           core,
		TypedMeta:      typed,
		Body:           Body{Kind: BodyNone},
		AvailableTools: metadataOnlyTools,
	}, nil
}
