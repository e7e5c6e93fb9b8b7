// Package extract isolates the markup worth handing downstream:
//  1. Finding the content root (<body>)
//  2. Copying it and removing script and style elements from the copy
//  3. Serializing the rewritten copy with the truncation convention applied
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/stylepipe/core"
)

// ErrNoContent is returned when the document has no content root.
var ErrNoContent = errors.New("no content root found in document")

// NoContentPlaceholder stands in for cleaned markup when ErrNoContent occurs.
const NoContentPlaceholder = "<!-- Could not find a <body> element in the document. -->"

// noiseSelectors are removed from the content copy. They carry behavior or
// styling that is reported separately, not markup.
var noiseSelectors = []string{"script", "style"}

// HTMLExtractor pulls the content root out of a parsed document.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Parse parses raw HTML into a document.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Extract returns a cleaned copy of the document body. The document itself
// is not modified.
func (e *HTMLExtractor) Extract(doc *goquery.Document) (*goquery.Selection, error) {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, ErrNoContent
	}

	content := body.Clone()
	for _, sel := range noiseSelectors {
		content.Find(sel).Remove()
	}
	return content, nil
}

// Serialize renders sel as HTML, capped at core.HTMLTruncateLength.
func Serialize(sel *goquery.Selection) (string, error) {
	out, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return core.Truncate(out, core.HTMLTruncateLength, core.HTMLTruncatedMarker), nil
}

// Title returns the document title or "Untitled Page".
func Title(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return "Untitled Page"
}

// HeadContent returns the inner HTML of <head>.
func HeadContent(doc *goquery.Document) string {
	head, err := doc.Find("head").First().Html()
	if err != nil {
		return ""
	}
	return head
}
