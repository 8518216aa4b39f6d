// Package capability holds the static model-capability table and the
// scoring selector that picks a model for a job, grounded on the teacher's
// embeddings.ProviderConfig / NewProvider dispatch shape (pkg/embeddings)
// generalized from "one provider" to "one row per provider/model".
package capability

import (
	"github.com/smartfolder/smartfolder/internal/classifier"
)

// Capability describes one provider/model's declared modalities, limits, and cost.
type Capability struct {
	ID               string // "provider/model"
	SupportsText     bool
	SupportsImage    bool
	SupportsPDF      bool
	SupportsAudio    bool
	SupportsVideo    bool
	MaxInputTokens   int
	InputCostPerMTok float64
	Strengths        []string
	BestFor          []classifier.Category
}

// DefaultModelID is used when no candidate matches the requested category.
const DefaultModelID = "openai/gpt-4o-mini"

// Registry is the static, ordered capability table. Order matters: it is
// the tie-breaker when two candidates score equally.
var Registry = []Capability{
	{
		ID: "openai/gpt-4o-mini", SupportsText: true, SupportsImage: true, SupportsPDF: false,
		MaxInputTokens: 128_000, InputCostPerMTok: 0.15,
		Strengths: []string{"general", "cheap"},
		BestFor:   []classifier.Category{classifier.TextDocument, classifier.Code, classifier.Data, classifier.Office, classifier.Archive, classifier.Folder},
	},
	{
		ID: "openai/gpt-4o", SupportsText: true, SupportsImage: true, SupportsPDF: true, SupportsAudio: true,
		MaxInputTokens: 128_000, InputCostPerMTok: 2.5,
		Strengths: []string{"vision", "reasoning"},
		BestFor:   []classifier.Category{classifier.Image, classifier.PDF},
	},
	{
		ID: "anthropic/claude-3-5-sonnet", SupportsText: true, SupportsImage: true, SupportsPDF: true,
		MaxInputTokens: 200_000, InputCostPerMTok: 3.0,
		Strengths: []string{"long-context", "careful-editing"},
		BestFor:   []classifier.Category{classifier.TextDocument, classifier.Code, classifier.PDF, classifier.Image},
	},
	{
		ID: "google/gemini-1.5-pro", SupportsText: true, SupportsImage: true, SupportsPDF: true, SupportsAudio: true, SupportsVideo: true,
		MaxInputTokens: 1_000_000, InputCostPerMTok: 1.25,
		Strengths: []string{"native-video", "native-audio", "huge-context"},
		BestFor:   []classifier.Category{classifier.Video, classifier.Audio, classifier.PDF},
	},
}

// Select picks a capability for cat at the given size, honoring an explicit
// userPref if it names a registered id, then falling back to scoring among
// candidates whose BestFor includes cat, then to DefaultModelID.
func Select(cat classifier.Category, sizeBytes int64, userPref string) Capability {
	if userPref != "" {
		if c, ok := lookup(userPref); ok {
			return c
		}
	}

	var candidates []Capability
	for _, c := range Registry {
		if contains(c.BestFor, cat) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		c, _ := lookup(DefaultModelID)
		return c
	}

	bestIdx := -1
	bestScore := -1.0
	for i, c := range candidates {
		score := scoreFor(c, cat, sizeBytes)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return candidates[bestIdx]
}

func scoreFor(c Capability, cat classifier.Category, sizeBytes int64) float64 {
	score := 0.0
	if c.SupportsVideo && cat == classifier.Video {
		score += 100
	}
	if c.SupportsAudio && cat == classifier.Audio {
		score += 100
	}
	if (cat == classifier.PDF && c.SupportsPDF) || (cat == classifier.Image && c.SupportsImage) {
		score += 50
	}
	if c.InputCostPerMTok > 0 {
		score += 10 / c.InputCostPerMTok
	}
	if sizeBytes > 50_000 && c.MaxInputTokens > 500_000 {
		score += 20
	}
	return score
}

func lookup(id string) (Capability, bool) {
	for _, c := range Registry {
		if c.ID == id {
			return c, true
		}
	}
	return Capability{}, false
}

func contains(cats []classifier.Category, cat classifier.Category) bool {
	for _, c := range cats {
		if c == cat {
			return true
		}
	}
	return false
}
