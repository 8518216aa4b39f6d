package capability_test

import (
	"testing"

	"github.com/smartfolder/smartfolder/internal/capability"
	"github.com/smartfolder/smartfolder/internal/classifier"
	"github.com/stretchr/testify/assert"
)

func TestSelectHonorsUserPref(t *testing.T) {
	c := capability.Select(classifier.TextDocument, 100, "openai/gpt-4o")
	assert.Equal(t, "openai/gpt-4o", c.ID)
}

func TestSelectFallsBackToDefault(t *testing.T) {
	c := capability.Select("unknown-category", 100, "")
	assert.Equal(t, capability.DefaultModelID, c.ID)
}

func TestSelectScoresNativeVideo(t *testing.T) {
	c := capability.Select(classifier.Video, 100, "")
	assert.True(t, c.SupportsVideo)
}

func TestSelectPrefersHugeContextForLargeFiles(t *testing.T) {
	c := capability.Select(classifier.PDF, 60_000, "")
	assert.True(t, c.SupportsPDF)
	assert.Greater(t, c.MaxInputTokens, 500_000)
}
