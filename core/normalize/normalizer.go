// Package normalize turns cleaned page markup into a readable Markdown
// outline, so reports can show what content the styles were applied to.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/stylepipe/core"
)

// DefaultOutlineLength caps the outline in reports.
const DefaultOutlineLength = 4000

// OutlineTruncatedMarker is appended when the outline was cut.
const OutlineTruncatedMarker = "\n\n…"

var blankLines = regexp.MustCompile(`\n{3,}`)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	maxLength int
}

// New creates a MarkdownNormalizer capping outlines at maxLength characters.
// Non-positive values use DefaultOutlineLength.
func New(maxLength int) *MarkdownNormalizer {
	if maxLength <= 0 {
		maxLength = DefaultOutlineLength
	}
	return &MarkdownNormalizer{maxLength: maxLength}
}

// Outline converts cleaned markup into Markdown. The truncation marker left by
// the cleaning step is removed first.
func (n *MarkdownNormalizer) Outline(html string) (string, error) {
	html = strings.Replace(html, core.HTMLTruncatedMarker, "", 1)
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = strings.TrimSpace(blankLines.ReplaceAllString(markdown, "\n\n"))
	return core.Truncate(markdown, n.maxLength, OutlineTruncatedMarker), nil
}
