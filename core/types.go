package core

import "time"

// FrequencyEntry is one aggregated token value and how often it occurred.
type FrequencyEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CSSRule is one parsed `selector { declarations }` block.
type CSSRule struct {
	Selector     string `json:"selector"`
	Declarations string `json:"declarations"`
}

// LayoutPattern is a flex or grid container and its layout declarations.
type LayoutPattern struct {
	Selector   string   `json:"selector"`
	Properties []string `json:"properties"`
}

// LayoutPatterns groups detected containers by layout model.
type LayoutPatterns struct {
	Flex []LayoutPattern `json:"flex"`
	Grid []LayoutPattern `json:"grid"`
}

// CSSVariable is a resolved custom property from a :root block.
type CSSVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StyleClass maps a normalized inline style to its generated class name.
type StyleClass struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// LinkOrigin describes where on the page a candidate link was found.
type LinkOrigin string

const (
	OriginNavigation LinkOrigin = "navigation"
	OriginContent    LinkOrigin = "content"
	OriginGeneric    LinkOrigin = "generic"
)

// DiscoveredLink is a scored candidate page found on the analyzed page.
type DiscoveredLink struct {
	URL    string     `json:"url"`
	Origin LinkOrigin `json:"origin"`
	Text   string     `json:"text"`
	Score  int        `json:"score"`
}

// Typography holds the four font-related token summaries.
type Typography struct {
	FontFamilies []FrequencyEntry `json:"font_families"`
	FontSizes    []FrequencyEntry `json:"font_sizes"`
	FontWeights  []FrequencyEntry `json:"font_weights"`
	LineHeights  []FrequencyEntry `json:"line_heights"`
}

// StylesheetSource is the (possibly truncated) content of one fetched stylesheet.
type StylesheetSource struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Screenshot is a captured page image.
type Screenshot struct {
	URL         string `json:"url"`
	Label       string `json:"label"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ExtractionResult is the complete output of one analysis run.
type ExtractionResult struct {
	PageTitle          string             `json:"page_title"`
	PageURL            string             `json:"page_url"`
	StylesheetCount    int                `json:"stylesheet_count"`
	InlineStyleCount   int                `json:"inline_style_count"`
	InaccessibleSheets int                `json:"inaccessible_sheets"`
	ColorPalette       []FrequencyEntry   `json:"color_palette"`
	Typography         Typography         `json:"typography"`
	SpacingScale       []FrequencyEntry   `json:"spacing_scale"`
	LayoutPatterns     LayoutPatterns     `json:"layout_patterns"`
	CSSVariables       []CSSVariable      `json:"css_variables"`
	CSSRules           []StylesheetSource `json:"css_rules"`
	HeadContent        string             `json:"head_content"`
	CleanHTML          string             `json:"clean_html"`
	GeneratedInlineCSS string             `json:"generated_inline_css"`
	StyleClasses       []StyleClass       `json:"style_classes"`
	Screenshots        []Screenshot       `json:"screenshots"`
	ScreenshotPalette  []FrequencyEntry   `json:"screenshot_palette"`
	SampledPages       []string           `json:"sampled_pages"`
	AnalyzedAt         time.Time          `json:"analyzed_at"`
}

// Truncation markers appended to capped output fields.
const (
	HTMLTruncateLength = 50000
	CSSTruncateLength  = 20000

	HTMLTruncatedMarker = "\n...<!-- TRUNCATED -->"
	CSSTruncatedMarker  = "\n/*...TRUNCATED...*/"
)

// Truncate caps s at limit characters, appending marker when it was cut.
// Lengths are measured in runes so multi-byte text is never split.
func Truncate(s string, limit int, marker string) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + marker
}
