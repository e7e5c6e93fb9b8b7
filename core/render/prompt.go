package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/stylepipe/core"
)

// PromptRenderer produces a single self-contained HTML document from the
// result: font links from the original head, consolidated CSS, the generated
// inline-style classes and the cleaned markup. It is the input for page
// replication.
type PromptRenderer struct{}

// NewPromptRenderer creates a PromptRenderer.
func NewPromptRenderer() *PromptRenderer {
	return &PromptRenderer{}
}

// Render returns the single-file HTML document.
func (r *PromptRenderer) Render(res *core.ExtractionResult) ([]byte, error) {
	return []byte(SingleFile(res)), nil
}

// Extension returns the file extension for the prompt document.
func (r *PromptRenderer) Extension() string {
	return ".html"
}

// BaseName names the document inside an analysis package.
func (r *PromptRenderer) BaseName() string {
	return "prompt"
}

// FontLinks returns the web-font <link> tags found in head markup, joined
// by newlines.
func FontLinks(headHTML string) string {
	if strings.TrimSpace(headHTML) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><head>" + headHTML + "</head></html>"))
	if err != nil {
		return ""
	}

	var links []string
	collect := func(selector string, hosts ...string) {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			href := s.AttrOr("href", "")
			if !containsAny(href, hosts...) {
				return
			}
			if html, err := goquery.OuterHtml(s); err == nil {
				links = append(links, html)
			}
		})
	}
	collect(`link[rel="stylesheet"]`, "fonts.googleapis.com", "fonts.gstatic.com")
	collect(`link[rel="preconnect"]`, "fonts.gstatic.com")

	return strings.Join(links, "\n    ")
}

// SingleFile builds the replication document. Truncation markers are
// stripped so the document stays well formed.
func SingleFile(res *core.ExtractionResult) string {
	sheets := make([]string, 0, len(res.CSSRules)+1)
	for _, src := range res.CSSRules {
		content := strings.ReplaceAll(src.Content, strings.TrimPrefix(core.CSSTruncatedMarker, "\n"), "")
		sheets = append(sheets, fmt.Sprintf("/* From: %s */\n%s", src.URL, content))
	}
	if res.GeneratedInlineCSS != "" {
		sheets = append(sheets, "/* Generated classes for collapsed inline styles */\n"+res.GeneratedInlineCSS)
	}

	body := strings.Replace(res.CleanHTML, strings.TrimPrefix(core.HTMLTruncatedMarker, "\n"), "", 1)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "    <title>Replication of: %s</title>\n\n", res.PageTitle)
	b.WriteString("    <!-- Extracted Font Links -->\n")
	fmt.Fprintf(&b, "    %s\n\n", FontLinks(res.HeadContent))
	b.WriteString("    <style>\n")
	fmt.Fprintf(&b, "        /* --- Consolidated CSS from %s --- */\n\n", res.PageURL)
	b.WriteString(strings.Join(sheets, "\n\n"))
	b.WriteString("\n    </style>\n</head>\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n</html>")
	return b.String()
}

// AnalysisPrompt builds a design-review prompt around the raw extraction
// data, for pasting into a generative assistant.
func AnalysisPrompt(res *core.ExtractionResult) string {
	var b strings.Builder

	b.WriteString("# Complete Design System Analysis\n\n")
	fmt.Fprintf(&b, "You are a senior UI/UX designer and design system specialist. I need you to analyze the following complete design system data from %s (%s) and provide comprehensive insights.\n\n", res.PageTitle, res.PageURL)

	b.WriteString("## Context\n")
	fmt.Fprintf(&b, "- **Website**: %s\n", res.PageTitle)
	fmt.Fprintf(&b, "- **URL**: %s\n", res.PageURL)
	if !res.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "- **Analysis Date**: %s\n", res.AnalyzedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	fmt.Fprintf(&b, "- **Screenshots Available**: %d pages captured\n\n", len(res.Screenshots))

	b.WriteString("## Design System Data\n\n")
	b.WriteString(rawData(res))

	b.WriteString("\n\n---\n\n## Analysis Instructions\n\n")
	b.WriteString(analysisInstructions)
	return b.String()
}

const analysisInstructions = `Please provide a comprehensive design system analysis covering:

### 1. Color Strategy
- Primary, secondary, and accent colors
- Accessibility considerations (contrast ratios)
- Color hierarchy and usage patterns

### 2. Typography System
- Type scale analysis and hierarchy
- Readability and legibility assessment

### 3. Spacing & Layout
- Grid system analysis
- Spacing scale and rhythm
- Layout patterns and responsive behavior

### 4. Component Architecture
- Identifiable component patterns
- Design tokens and systematic approach

### 5. Technical Implementation
- CSS organization and maintainability
- Performance optimization opportunities

### 6. Recommendations
- Improvement opportunities
- Design system expansion potential

Please structure your response with clear sections, actionable insights, and specific examples from the provided data.
`

func occurrences(entries []core.FrequencyEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s: %d occurrences", e.Value, e.Count)
	}
	return strings.Join(lines, "\n")
}

func layoutBlocks(patterns []core.LayoutPattern) string {
	blocks := make([]string, len(patterns))
	for i, p := range patterns {
		blocks[i] = fmt.Sprintf("**%s**\n```css\n%s;\n```", p.Selector, strings.Join(p.Properties, ";\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// rawData renders every collected value without limits.
func rawData(res *core.ExtractionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### Color Palette\n%s\n\n", occurrences(res.ColorPalette))
	b.WriteString("### Typography System\n")
	fmt.Fprintf(&b, "**Font Families:**\n%s\n\n", occurrences(res.Typography.FontFamilies))
	fmt.Fprintf(&b, "**Font Sizes:**\n%s\n\n", occurrences(res.Typography.FontSizes))
	fmt.Fprintf(&b, "**Font Weights:**\n%s\n\n", occurrences(res.Typography.FontWeights))
	fmt.Fprintf(&b, "**Line Heights:**\n%s\n\n", occurrences(res.Typography.LineHeights))
	fmt.Fprintf(&b, "### Spacing System\n%s\n\n", occurrences(res.SpacingScale))

	b.WriteString("### Layout Patterns\n")
	fmt.Fprintf(&b, "**Flexbox Layouts:**\n%s\n\n", layoutBlocks(res.LayoutPatterns.Flex))
	fmt.Fprintf(&b, "**Grid Layouts:**\n%s\n\n", layoutBlocks(res.LayoutPatterns.Grid))

	vars := make([]string, len(res.CSSVariables))
	for i, v := range res.CSSVariables {
		vars[i] = fmt.Sprintf("%s: %s;", v.Name, v.Value)
	}
	fmt.Fprintf(&b, "### CSS Variables\n```css\n%s\n```\n\n", strings.Join(vars, "\n"))

	fmt.Fprintf(&b, "### HTML Structure\n```html\n%s\n```\n\n", res.CleanHTML)

	b.WriteString("### Complete CSS Rules\n")
	for _, src := range res.CSSRules {
		fmt.Fprintf(&b, "\n#### %s\n```css\n%s\n```\n", src.URL, src.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
