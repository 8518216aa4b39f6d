package tools

import (
	"fmt"

	"github.com/smartfolder/smartfolder/internal/classifier"
	"github.com/smartfolder/smartfolder/internal/sandbox"
)

// textOnlyCategories are the categories read_file/write_file/grep/sed/
// head/tail accept. Every other category is binary; the model already
// received its bytes inline (C5/C6), so touching it through a text tool
// is a misuse.
var textOnlyCategories = map[classifier.Category]bool{
	classifier.TextDocument: true,
	classifier.Code:         true,
	classifier.Data:         true,
}

// assertTextTarget resolves rel against root and rejects it with
// BinaryToolMisuse semantics if its extension maps to a binary category.
func assertTextTarget(root, rel string) (string, error) {
	abs, err := sandbox.Contain(root, rel)
	if err != nil {
		return "", err
	}
	ext := classifier.FinalExtension(rel)
	cat := classifier.Classify(ext, "")
	if !textOnlyCategories[cat] {
		return "", fmt.Errorf("binary tool misuse: %q is already attached to the prompt as %s content", rel, cat)
	}
	return abs, nil
}
