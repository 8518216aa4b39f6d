// Package promptbuilder assembles the system prompt and user message the
// agent driver sends to the model, per spec.md §4.6.
package promptbuilder

import (
	"fmt"
	"strings"

	"github.com/smartfolder/smartfolder/internal/content"
)

const systemReminders = `
You are operating on files inside a single watched folder. Follow these rules:
1. Never guess missing information. If you are not confident about a rename or edit, do not perform it.
2. write_file is only for creating brand-new artifacts the user explicitly asked for. To rename an existing file, use rename_file — never write_file.
3. After any successful tool call that changes a filename, all subsequent tool calls in this conversation must use the NEW filename reported by that call, not the original one.
`

// BuildSystemPrompt wraps the folder's own prompt with the fixed-wording
// system instructions every job carries.
func BuildSystemPrompt(folderPrompt string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(folderPrompt))
	b.WriteString("\n\n---\n")
	b.WriteString(strings.TrimSpace(systemReminders))
	return b.String()
}

// Part is one element of a (possibly multi-part) user message: either a
// text part (Text) or a binary attachment part (ImageB64 or FileBytes, with
// MediaType), never both.
type Part struct {
	Text      string
	ImageB64  string
	FileBytes []byte
	MediaType string
}

// Message is the full user message handed to the agent driver.
type Message struct {
	Parts []Part
}

// BuildUserMessage renders fc into a Message: a markdown header with core
// metadata, any typed-metadata subsections, the body (or an omission note),
// the list of available tools, and a closing instruction naming the
// original filename and its extension.
func BuildUserMessage(fc content.FileContent, originalName string) Message {
	var b strings.Builder

	fmt.Fprintf(&b, "## File: %s\n\n", fc.Core.RelativePath)
	fmt.Fprintf(&b, "- Size: %d bytes\n", fc.Core.Size)
	fmt.Fprintf(&b, "- Category: %s\n", fc.Core.Category)
	fmt.Fprintf(&b, "- Modified: %s\n", fc.Core.ModifiedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(&b, "- SHA-256: %s\n", fc.Core.SHA256)

	if len(fc.TypedMeta) > 0 {
		b.WriteString("\n### Additional metadata\n\n")
		for k, v := range fc.TypedMeta {
			fmt.Fprintf(&b, "- %s: %v\n", k, v)
		}
	}

	b.WriteString("\n### Content\n\n")
	switch fc.Body.Kind {
	case content.BodyFullText:
		b.WriteString("```\n")
		b.WriteString(fc.Body.Text)
		b.WriteString("\n```\n")
	case content.BodyPartialText:
		if fc.Body.CSVHeader != "" {
			fmt.Fprintf(&b, "**CSV Header**\n\n```\n%s\n```\n\n", fc.Body.CSVHeader)
		}
		fmt.Fprintf(&b, "*%s*\n\n```\n%s\n```\n", fc.Body.Truncation, fc.Body.Text)
	case content.BodyFullBinary:
		b.WriteString("_(binary content attached as a separate part)_\n")
	default:
		b.WriteString("_(content omitted — see metadata above)_\n")
	}

	if len(fc.AvailableTools) > 0 {
		b.WriteString("\n### Available tools\n\n")
		for _, t := range fc.AvailableTools {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	ext := fc.Core.Extension
	fmt.Fprintf(&b, "\n---\nIf you rename this file, the new name MUST preserve its original extension (%q). The original filename is %q.\n", ext, originalName)

	msg := Message{Parts: []Part{{Text: b.String()}}}

	switch fc.Body.Kind {
	case content.BodyFullBinary:
		if strings.HasPrefix(fc.Body.MediaType, "image/") {
			msg.Parts = append(msg.Parts, Part{ImageB64: encodeBase64(fc.Body.Bytes), MediaType: fc.Body.MediaType})
		} else {
			msg.Parts = append(msg.Parts, Part{FileBytes: fc.Body.Bytes, MediaType: fc.Body.MediaType})
		}
	}

	return msg
}
