// Package render — PDF renderer.
// Lays out the Markdown report with gofpdf. Headings get variable font sizes,
// code blocks a shaded monospace body, color entries a filled swatch, and
// captured screenshots are appended one per page.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/jung-kurt/gofpdf"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// Screenshots wider or taller than this are downscaled before embedding.
const (
	maxEmbedWidth  = 1200
	maxEmbedHeight = 6000
)

// PDFRenderer renders the design-system report as a PDF document.
type PDFRenderer struct {
	report *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	report := NewMarkdownRenderer()
	report.ScreenshotDir = ""
	return &PDFRenderer{report: report}
}

var (
	numberedItemRegex = regexp.MustCompile(`^\d+\.\s`)
	swatchRegex       = regexp.MustCompile("`(#[0-9a-fA-F]{3,8})\\b")
	italicRegex       = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCodeRegex   = regexp.MustCompile("`([^`]+)`")
	inlineLinkRegex   = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// Render converts the report into PDF bytes.
func (r *PDFRenderer) Render(res *core.ExtractionResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	lines := strings.Split(r.report.Report(res), "\n")
	inCodeBlock := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		// Toggle code block state.
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(3)

		case trimmed == "---":
			left, _, right, _ := pdf.GetMargins()
			width, _ := pdf.GetPageSize()
			pdf.SetDrawColor(200, 200, 200)
			pdf.Line(left, pdf.GetY(), width-right, pdf.GetY())
			pdf.Ln(2)

		// Images are embedded after the report.
		case strings.HasPrefix(trimmed, "!["):

		case strings.HasPrefix(line, "#"):
			level := 0
			for _, ch := range line {
				if ch != '#' {
					break
				}
				level++
			}
			renderHeading(pdf, tr(strings.TrimSpace(strings.TrimLeft(line, "# "))), level)

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			if m := swatchRegex.FindStringSubmatch(trimmed); m != nil {
				if red, green, blue, ok := hexRGB(m[1]); ok {
					drawSwatch(pdf, red, green, blue)
				}
			}
			text := "• " + cleanInlineMarkdown(strings.TrimSpace(trimmed[2:]))
			pdf.MultiCell(0, 5, tr(text), "", "L", false)

		case numberedItemRegex.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}

	for i, shot := range res.Screenshots {
		embedScreenshot(pdf, tr, i, shot)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

// drawSwatch paints a small filled square at the start of the current line
// and moves the cursor past it.
func drawSwatch(pdf *gofpdf.Fpdf, red, green, blue int) {
	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetFillColor(red, green, blue)
	pdf.SetDrawColor(160, 160, 160)
	pdf.Rect(x, y+0.5, 4, 4, "FD")
	pdf.SetX(x + 6)
}

// embedScreenshot adds a page with the image scaled to fit. Images that
// can't be decoded are skipped.
func embedScreenshot(pdf *gofpdf.Fpdf, tr func(string) string, i int, shot core.Screenshot) {
	data, imageType, width, height, err := embeddable(shot.Data)
	if err != nil {
		return
	}

	name := fmt.Sprintf("screenshot-%d", i+1)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return
	}

	pdf.AddPage()
	renderHeading(pdf, tr(shot.Label), 3)

	left, _, right, bottom := pdf.GetMargins()
	pageW, pageH := pdf.GetPageSize()
	maxW := pageW - left - right
	maxH := pageH - pdf.GetY() - bottom

	w := maxW
	h := w * float64(height) / float64(width)
	if h > maxH {
		h = maxH
		w = h * float64(width) / float64(height)
	}
	pdf.ImageOptions(name, left, pdf.GetY(), w, h, false, opts, 0, "")
}

// embeddable returns image bytes gofpdf can read. Small PNG and JPEG data
// pass through; anything larger or in another format is decoded, shrunk to
// fit maxEmbedWidth x maxEmbedHeight and re-encoded as JPEG.
func embeddable(data []byte) ([]byte, string, int, int, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, "", 0, 0, fmt.Errorf("empty image")
	}

	imageType := map[string]string{"png": "PNG", "jpeg": "JPG"}[format]
	if imageType != "" && cfg.Width <= maxEmbedWidth && cfg.Height <= maxEmbedHeight {
		return data, imageType, cfg.Width, cfg.Height, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, err
	}
	small := resize.Thumbnail(maxEmbedWidth, maxEmbedHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", 0, 0, err
	}
	b := small.Bounds()
	return buf.Bytes(), "JPG", b.Dx(), b.Dy(), nil
}

// hexRGB parses #rgb, #rgba, #rrggbb and #rrggbbaa. Alpha is ignored.
func hexRGB(hex string) (int, int, int, bool) {
	h := strings.TrimPrefix(hex, "#")
	switch len(h) {
	case 3, 4:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
		h = h[:6]
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	// Remove bold markers.
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	// Remove italic markers (but not inside words like don't).
	text = italicRegex.ReplaceAllString(text, " $1 ")
	// Remove inline code markers.
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	// Remove link syntax, keep text.
	text = inlineLinkRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
