// Package output handles file naming and writing for StylePipe outputs.
// Single reports are named after the URL (e.g., example_com_pricing.md);
// a full package is a directory of the same name holding every artifact.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/gaurav-prasanna/stylepipe/core/render"
	"github.com/gaurav-prasanna/stylepipe/core/screenshot"
)

// Named is implemented by renderers that want a file name other than
// "analysis" inside a package.
type Named interface {
	BaseName() string
}

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteReport writes one rendered report.
// Filename: domain_path.ext (e.g., example_com.md).
func (w *Writer) WriteReport(rawURL string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, filenameFromURL(rawURL)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WritePackage writes the complete analysis package for res into a
// directory named after the page URL and returns that directory.
//
//	README.md                     package contents
//	analysis.<ext>                one file per renderer (or its BaseName)
//	design-system-analysis.md     review prompt with the raw data
//	cleaned.html                  cleaned, deduplicated markup
//	styles.css                    generated classes for collapsed inline styles
//	css/stylesheet-N.css          fetched stylesheets
//	screenshots/screenshot-N-*    captured images
func (w *Writer) WritePackage(res *core.ExtractionResult, renderers ...core.Renderer) (string, error) {
	dir := filepath.Join(w.OutputDir, filenameFromURL(res.PageURL))
	pw := &packageWriter{root: dir}

	for _, r := range renderers {
		data, err := r.Render(res)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", r.Extension(), err)
		}
		base := "analysis"
		if n, ok := r.(Named); ok {
			base = n.BaseName()
		}
		pw.write(base+r.Extension(), data)
	}

	pw.write("design-system-analysis.md", []byte(render.AnalysisPrompt(res)))
	pw.write("cleaned.html", []byte(res.CleanHTML))
	if res.GeneratedInlineCSS != "" {
		pw.write("styles.css", []byte(res.GeneratedInlineCSS+"\n"))
	}
	for i, src := range res.CSSRules {
		pw.write(filepath.Join("css", fmt.Sprintf("stylesheet-%d.css", i+1)), []byte(src.Content))
	}
	for i, shot := range res.Screenshots {
		if len(shot.Data) == 0 {
			continue
		}
		pw.write(filepath.Join("screenshots", screenshot.Filename(i, shot)), shot.Data)
	}
	pw.write("README.md", []byte(readme(res, pw.files)))

	if pw.err != nil {
		return "", pw.err
	}
	return dir, nil
}

// packageWriter remembers the first error so WritePackage reads linearly.
type packageWriter struct {
	root  string
	files []string
	err   error
}

func (p *packageWriter) write(name string, data []byte) {
	if p.err != nil {
		return
	}
	path := filepath.Join(p.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		p.err = fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		p.err = fmt.Errorf("writing file %s: %w", path, err)
		return
	}
	p.files = append(p.files, filepath.ToSlash(name))
}

func readme(res *core.ExtractionResult, files []string) string {
	var b strings.Builder
	b.WriteString("# Design System Analysis Package\n\n")
	fmt.Fprintf(&b, "This package contains a complete analysis of the design system from %q (%s).\n\n", res.PageTitle, res.PageURL)
	b.WriteString("## Files Included\n\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- `%s`\n", f)
	}
	b.WriteString("\n## Usage\n\n")
	b.WriteString("1. **For AI Analysis**: use `design-system-analysis.md` as context with your model\n")
	b.WriteString("2. **For Replication**: start from `prompt.html` when present, otherwise `cleaned.html` with the `css/` folder\n")
	b.WriteString("3. **For Reference**: use the images in `screenshots/`\n\n")
	b.WriteString("## Generated\n\n")
	generated := res.AnalyzedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	fmt.Fprintf(&b, "- Date: %s\n", generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Stylesheets analyzed: %d\n", res.StylesheetCount)
	fmt.Fprintf(&b, "- Screenshots captured: %d\n", len(res.Screenshots))
	fmt.Fprintf(&b, "- Colors identified: %d\n", len(res.ColorPalette))
	return b.String()
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback: sanitize the raw string.
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
