package promptbuilder_test

import (
	"strings"
	"testing"
	"time"

	"github.com/smartfolder/smartfolder/internal/classifier"
	"github.com/smartfolder/smartfolder/internal/content"
	"github.com/smartfolder/smartfolder/internal/metadata"
	"github.com/smartfolder/smartfolder/internal/promptbuilder"
	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPromptIncludesFixedReminders(t *testing.T) {
	got := promptbuilder.BuildSystemPrompt("Rename files descriptively")
	assert.Contains(t, got, "Rename files descriptively")
	assert.Contains(t, got, "Never guess missing information")
	assert.Contains(t, got, "rename_file")
}

func TestBuildUserMessageTextBody(t *testing.T) {
	fc := content.FileContent{
		Core: metadata.Core{
			RelativePath: "a.txt",
			Extension:    ".txt",
			Size:         5,
			Category:     classifier.TextDocument,
			ModifiedAt:   time.Unix(0, 0),
			SHA256:       "deadbeef",
		},
		Body:           content.Body{Kind: content.BodyFullText, Text: "hello"},
		AvailableTools: []string{"read_file", "rename_file"},
	}

	msg := promptbuilder.BuildUserMessage(fc, "a.txt")
	assert.Len(t, msg.Parts, 1)
	assert.Contains(t, msg.Parts[0].Text, "hello")
	assert.Contains(t, msg.Parts[0].Text, "rename_file")
	assert.Contains(t, msg.Parts[0].Text, `".txt"`)
	assert.Contains(t, msg.Parts[0].Text, `"a.txt"`)
}

func TestBuildUserMessageBinaryBodyAddsPart(t *testing.T) {
	fc := content.FileContent{
		Core: metadata.Core{RelativePath: "a.pdf", Extension: ".pdf", Category: classifier.PDF},
		Body: content.Body{Kind: content.BodyFullBinary, Bytes: []byte("%PDF-1.4"), MediaType: "application/pdf"},
	}
	msg := promptbuilder.BuildUserMessage(fc, "a.pdf")
	if assert.Len(t, msg.Parts, 2) {
		assert.Equal(t, "application/pdf", msg.Parts[1].MediaType)
		assert.NotEmpty(t, msg.Parts[1].FileBytes)
	}
}

func TestBuildUserMessageOmittedBody(t *testing.T) {
	fc := content.FileContent{
		Core: metadata.Core{RelativePath: "a.bin", Category: classifier.Archive},
		Body: content.Body{Kind: content.BodyNone},
	}
	msg := promptbuilder.BuildUserMessage(fc, "a.bin")
	assert.True(t, strings.Contains(msg.Parts[0].Text, "content omitted"))
}
