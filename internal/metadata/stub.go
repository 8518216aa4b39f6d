package metadata

// stubExtractor represents one of the optional third-party metadata
// extractors (EXIF, PDF, audio, video) that spec.md §1 explicitly places
// outside the core's scope: "the core assumes a pluggable extractor
// interface that may return 'unavailable'". No EXIF/PDF/audio/video library
// is wired into this process, so each of these reports itself unavailable at
// composition time and the registry skips it — callers never see a partial
// or failed extraction, only an absent section.
type stubExtractor struct {
	category string
}

func (s stubExtractor) Category() string                        { return s.category }
func (s stubExtractor) Available() bool                         { return false }
func (s stubExtractor) Extract(string) (map[string]any, bool)   { return nil, false }

// NewExifExtractor returns the (currently unavailable) EXIF extractor slot.
func NewExifExtractor() Extractor { return stubExtractor{category: "image"} }

// NewPDFExtractor returns the (currently unavailable) PDF extractor slot.
func NewPDFExtractor() Extractor { return stubExtractor{category: "pdf"} }

// NewAudioExtractor returns the (currently unavailable) audio extractor slot.
func NewAudioExtractor() Extractor { return stubExtractor{category: "audio"} }

// NewVideoExtractor returns the (currently unavailable) video extractor slot.
func NewVideoExtractor() Extractor { return stubExtractor{category: "video"} }
