// Package render provides output renderers for an ExtractionResult.
// This file implements the Markdown design-system report, which the PDF
// renderer also lays out.
package render

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/gaurav-prasanna/stylepipe/core/normalize"
	"github.com/gaurav-prasanna/stylepipe/core/screenshot"
	"github.com/gaurav-prasanna/stylepipe/core/tokens"
)

const (
	maxReportColors    = 12
	maxTypeScale       = 6
	maxSpacingFallback = 8
	maxFlexPatterns    = 3
	maxGridPatterns    = 2
	maxReportVariables = 15
)

// MarkdownRenderer produces the human-readable design-system report.
type MarkdownRenderer struct {
	// ScreenshotDir is the directory screenshot images are linked from.
	ScreenshotDir string
	normalizer    *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer linking screenshots
// under "screenshots/".
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		ScreenshotDir: "screenshots",
		normalizer:    normalize.New(normalize.DefaultOutlineLength),
	}
}

// Render builds the report.
func (r *MarkdownRenderer) Render(res *core.ExtractionResult) ([]byte, error) {
	return []byte(r.Report(res)), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// Report returns the report as a string.
func (r *MarkdownRenderer) Report(res *core.ExtractionResult) string {
	vars := tokens.VariablesFromEntries(res.CSSVariables)
	var b strings.Builder

	fmt.Fprintf(&b, "# Design System Analysis: %s\n\n", res.PageTitle)
	fmt.Fprintf(&b, "**Source:** %s\n", res.PageURL)
	if !res.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "**Analysis Date:** %s\n", res.AnalyzedAt.Format("2006-01-02"))
	}

	section(&b, "Overview")
	fmt.Fprintf(&b, "- **%d** %s loaded\n", res.StylesheetCount, plural(res.StylesheetCount, "stylesheet"))
	fmt.Fprintf(&b, "- **%d** %s with inline styles\n", res.InlineStyleCount, plural(res.InlineStyleCount, "element"))
	fmt.Fprintf(&b, "- **%d** %s captured\n", len(res.Screenshots), plural(len(res.Screenshots), "page"))
	if res.InaccessibleSheets > 0 {
		fmt.Fprintf(&b, "- **%d** %s could not be fetched\n", res.InaccessibleSheets, plural(res.InaccessibleSheets, "stylesheet"))
	}

	section(&b, "Color System")
	b.WriteString(formatColors(res.ColorPalette, vars))

	section(&b, "Typography System")
	b.WriteString(formatTypography(res.Typography, vars))

	section(&b, "Spacing System")
	b.WriteString(formatSpacing(res.SpacingScale))

	section(&b, "Layout System")
	b.WriteString(formatLayout(res.LayoutPatterns))

	section(&b, "Page Screenshots")
	b.WriteString(r.formatScreenshots(res.Screenshots))
	if len(res.ScreenshotPalette) > 0 {
		b.WriteString("\n\n### Rendered Palette\n")
		b.WriteString(formatShares(res.ScreenshotPalette))
	}

	if outline := r.outline(res.CleanHTML); outline != "" {
		section(&b, "Content Outline")
		b.WriteString(outline)
	}

	section(&b, "Technical Details")
	fmt.Fprintf(&b, "### CSS Variables (%d)\n", len(res.CSSVariables))
	b.WriteString(formatVariables(res.CSSVariables))
	fmt.Fprintf(&b, "\n\n### Generated Classes (%d)\n", len(res.StyleClasses))
	if res.GeneratedInlineCSS == "" {
		b.WriteString("No inline styles were collapsed.")
	} else {
		b.WriteString("```css\n" + res.GeneratedInlineCSS + "\n```")
	}
	b.WriteString("\n\n### Source Files\n")
	if len(res.CSSRules) == 0 {
		b.WriteString("No external stylesheets.")
	}
	for i, src := range res.CSSRules {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- [%s](%s)", src.URL, src.URL)
	}
	b.WriteString("\n")

	return b.String()
}

func (r *MarkdownRenderer) outline(cleanHTML string) string {
	if cleanHTML == "" || r.normalizer == nil {
		return ""
	}
	md, err := r.normalizer.Outline(cleanHTML)
	if err != nil {
		return ""
	}
	return md
}

func (r *MarkdownRenderer) formatScreenshots(shots []core.Screenshot) string {
	if len(shots) == 0 {
		return "No screenshots could be captured."
	}
	parts := make([]string, len(shots))
	for i, s := range shots {
		target := s.URL
		if r.ScreenshotDir != "" {
			target = r.ScreenshotDir + "/" + screenshot.Filename(i, s)
		}
		parts[i] = fmt.Sprintf("### %s\n![Screenshot of %s](%s)", s.Label, s.Label, target)
	}
	return strings.Join(parts, "\n\n")
}

// formatShares lists each entry with its share of the total count.
func formatShares(entries []core.FrequencyEntry) string {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		share := 0
		if total > 0 {
			share = e.Count * 100 / total
		}
		lines[i] = fmt.Sprintf("- `%s` (%d%%)", e.Value, share)
	}
	return strings.Join(lines, "\n")
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n---\n\n## %s\n", title)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func uses(value string, count int) string {
	return fmt.Sprintf("- `%s` (%d uses)", value, count)
}

// colorCategory buckets a color by a few well-known hex prefixes and names.
func colorCategory(color string) string {
	c := strings.ToLower(color)
	switch {
	case containsAny(c, "blue", "#00", "#3b", "#256"):
		return "Primary"
	case containsAny(c, "gray", "grey", "#fff", "#000", "#f3", "#e5", "#d1", "#9ca", "#6b7", "#374", "#111"):
		return "Neutral"
	case containsAny(c, "green", "red", "yellow", "orange"):
		return "Semantic"
	default:
		return "Accent"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func formatColors(colors []core.FrequencyEntry, vars *tokens.VariableMap) string {
	if len(colors) == 0 {
		return "No colors found."
	}

	var order []string
	groups := make(map[string][]string)
	for _, e := range colors[:min(len(colors), maxReportColors)] {
		cat := colorCategory(e.Value)
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], uses(vars.Annotate(e.Value), e.Count))
	}

	parts := make([]string, len(order))
	for i, cat := range order {
		parts[i] = fmt.Sprintf("#### %s Colors\n%s", cat, strings.Join(groups[cat], "\n"))
	}
	return strings.Join(parts, "\n\n")
}

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)

// numericValue parses the leading number of a CSS length, 0 when absent.
func numericValue(v string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(v))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

func formatTypography(t core.Typography, vars *tokens.VariableMap) string {
	if len(t.FontFamilies) == 0 && len(t.FontSizes) == 0 {
		return "No typography system found."
	}

	var parts []string
	if len(t.FontFamilies) > 0 {
		parts = append(parts, fmt.Sprintf("#### Primary Font Family\n`%s`", vars.Annotate(t.FontFamilies[0].Value)))
		if len(t.FontFamilies) > 1 {
			parts = append(parts, fmt.Sprintf("#### Secondary Font Family\n`%s`", vars.Annotate(t.FontFamilies[1].Value)))
		}
	}

	if len(t.FontSizes) > 0 {
		sizes := append([]core.FrequencyEntry(nil), t.FontSizes[:min(len(t.FontSizes), maxTypeScale)]...)
		sort.SliceStable(sizes, func(i, j int) bool {
			return numericValue(sizes[i].Value) > numericValue(sizes[j].Value)
		})
		lines := make([]string, len(sizes))
		for i, s := range sizes {
			lines[i] = uses(vars.Annotate(s.Value), s.Count)
		}
		parts = append(parts, "#### Type Scale\n"+strings.Join(lines, "\n"))
	}

	if len(t.FontWeights) > 0 {
		lines := make([]string, 0, len(t.FontWeights))
		for _, w := range t.FontWeights[:min(len(t.FontWeights), maxTypeScale)] {
			lines = append(lines, uses(vars.Annotate(w.Value), w.Count))
		}
		parts = append(parts, "#### Font Weights\n"+strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

var spacingLength = regexp.MustCompile(`^\d+(\.\d+)?(px|rem|em)$`)

func spacingUnit(v string) string {
	switch {
	case strings.HasSuffix(v, "rem"):
		return "rem"
	case strings.HasSuffix(v, "em"):
		return "em"
	default:
		return "px"
	}
}

func formatSpacing(spacing []core.FrequencyEntry) string {
	if len(spacing) == 0 {
		return "No spacing system found."
	}

	var numeric []core.FrequencyEntry
	for _, e := range spacing {
		if spacingLength.MatchString(e.Value) {
			numeric = append(numeric, e)
		}
	}

	if len(numeric) == 0 {
		lines := make([]string, 0, maxSpacingFallback)
		for _, e := range spacing[:min(len(spacing), maxSpacingFallback)] {
			lines = append(lines, uses(e.Value, e.Count))
		}
		return "#### Spacing Values\n" + strings.Join(lines, "\n")
	}

	sort.SliceStable(numeric, func(i, j int) bool {
		return numericValue(numeric[i].Value) < numericValue(numeric[j].Value)
	})

	var order []string
	byUnit := make(map[string][]string)
	for _, e := range numeric {
		unit := spacingUnit(e.Value)
		if _, ok := byUnit[unit]; !ok {
			order = append(order, unit)
		}
		byUnit[unit] = append(byUnit[unit], uses(e.Value, e.Count))
	}

	parts := make([]string, len(order))
	for i, unit := range order {
		title := strings.ToUpper(unit[:1]) + unit[1:]
		parts[i] = fmt.Sprintf("#### %s Scale\n%s", title, strings.Join(byUnit[unit], "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func formatLayout(l core.LayoutPatterns) string {
	if len(l.Flex) == 0 && len(l.Grid) == 0 {
		return "No layout system found."
	}

	var b strings.Builder
	writeGroup := func(title string, patterns []core.LayoutPattern, limit int, keep ...string) {
		if len(patterns) == 0 {
			return
		}
		fmt.Fprintf(&b, "#### %s Usage\nFound %d %s %s\n\n", title, len(patterns), strings.ToLower(title), plural(len(patterns), "container"))
		for _, p := range patterns[:min(len(patterns), limit)] {
			fmt.Fprintf(&b, "**%s**\n", p.Selector)
			var props []string
			for _, prop := range p.Properties {
				if containsAny(prop, keep...) {
					props = append(props, prop)
				}
			}
			if len(props) > 0 {
				fmt.Fprintf(&b, "```css\n%s;\n```\n\n", strings.Join(props, ";\n"))
			}
		}
	}

	writeGroup("Flexbox", l.Flex, maxFlexPatterns, "justify-content", "align-items", "flex-direction", "gap")
	writeGroup("Grid", l.Grid, maxGridPatterns, "grid-template", "grid-auto", "gap")
	return strings.TrimSpace(b.String())
}

func formatVariables(vars []core.CSSVariable) string {
	if len(vars) == 0 {
		return "No CSS variables found."
	}
	lines := make([]string, 0, maxReportVariables)
	for _, v := range vars[:min(len(vars), maxReportVariables)] {
		lines = append(lines, fmt.Sprintf("%s: %s;", v.Name, v.Value))
	}
	out := "```css\n" + strings.Join(lines, "\n")
	if len(vars) > maxReportVariables {
		out += "\n..."
	}
	return out + "\n```"
}
