// Package tokens turns CSS text into design-token summaries: colors,
// typography, spacing, CSS variables and flex/grid layout patterns.
package tokens

import (
	"regexp"
	"strings"
)

// Raw holds every extracted value in extraction order, before counting.
type Raw struct {
	Colors       []string
	FontFamilies []string
	FontSizes    []string
	FontWeights  []string
	LineHeights  []string
	Spacing      []string
}

var (
	colorRegex = regexp.MustCompile(`(?i)(#[0-9a-f]{3,8}\b|rgba?\([\d\s,.%/]+\)|hsla?\([\d\s%,./a-z]+\))`)

	fontFamilyRegex = propertyRegex(`font-family`)
	fontSizeRegex   = propertyRegex(`font-size`)
	fontWeightRegex = propertyRegex(`font-weight`)
	lineHeightRegex = propertyRegex(`line-height`)
	spacingRegex    = propertyRegex(`(?:margin|padding)(?:-(?:top|right|bottom|left|block|inline)(?:-(?:start|end))?)?|(?:row-|column-)?gap`)
)

// propertyRegex captures the value of prop up to the next `;` or `}`.
// The property must not be the tail of a longer name such as `--font-size`.
func propertyRegex(prop string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\w-])(?:` + prop + `)\s*:\s*([^;}]+)`)
}

// degenerateSpacing are spacing tokens that carry no scale information.
var degenerateSpacing = map[string]bool{
	"0":          true,
	"auto":       true,
	"inherit":    true,
	"initial":    true,
	"!important": true,
}

// Extract scans text (stylesheets followed by inline styles) for token values.
func Extract(text string) Raw {
	raw := Raw{
		Colors:       extractColors(text),
		FontFamilies: captureValues(fontFamilyRegex, text),
		FontSizes:    captureValues(fontSizeRegex, text),
		FontWeights:  captureValues(fontWeightRegex, text),
		LineHeights:  captureValues(lineHeightRegex, text),
	}

	for _, v := range captureValues(spacingRegex, text) {
		for _, tok := range strings.Fields(v) {
			if degenerateSpacing[strings.ToLower(tok)] {
				continue
			}
			raw.Spacing = append(raw.Spacing, tok)
		}
	}
	return raw
}

func extractColors(text string) []string {
	var colors []string
	for _, c := range colorRegex.FindAllString(text, -1) {
		if strings.HasPrefix(c, "#") {
			// Only 3, 4, 6 and 8 digit hex literals are colors.
			switch len(c) - 1 {
			case 3, 4, 6, 8:
			default:
				continue
			}
		}
		colors = append(colors, c)
	}
	return colors
}

func captureValues(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		if v := strings.TrimSpace(m[1]); v != "" {
			values = append(values, v)
		}
	}
	return values
}
