package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/gaurav-prasanna/stylepipe/core/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com", "example_com"},
		{"https://example.com/", "example_com"},
		{"https://example.com/docs/intro", "example_com_docs_intro"},
		{"https://example.com:8080/a-b", "example_com_8080_a_b"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, filenameFromURL(tt.url))
		})
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, w.OutputDir)
	assert.DirExists(t, dir)
}

func TestWriteReport(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteReport("https://acme.test/pricing", []byte("# Report"), ".md")
	require.NoError(t, err)
	assert.Equal(t, "acme_test_pricing.md", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Report", string(data))
}

func packageFixture() *core.ExtractionResult {
	return &core.ExtractionResult{
		PageTitle:          "Acme",
		PageURL:            "https://acme.test/",
		StylesheetCount:    2,
		ColorPalette:       []core.FrequencyEntry{{Value: "#3b82f6", Count: 2}},
		CSSRules:           []core.StylesheetSource{{URL: "https://acme.test/a.css", Content: ".a{color:red}"}, {URL: "https://acme.test/b.css", Content: ".b{margin:0}"}},
		CleanHTML:          `<body><p class="s-1">Hi</p></body>`,
		GeneratedInlineCSS: ".s-1 { color: red; }",
		Screenshots: []core.Screenshot{
			{URL: "https://acme.test/", Label: "Full Page: /", ContentType: "image/png", Data: []byte("png")},
			{URL: "https://acme.test/x", Label: "Full Page: /x", ContentType: "image/jpeg"},
		},
		AnalyzedAt: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
	}
}

func TestWritePackage(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	dir, err := w.WritePackage(packageFixture(), render.NewMarkdownRenderer(), render.NewJSONRenderer(), render.NewPromptRenderer())
	require.NoError(t, err)
	assert.Equal(t, "acme_test", filepath.Base(dir))

	for _, name := range []string{
		"analysis.md",
		"analysis.json",
		"prompt.html",
		"design-system-analysis.md",
		"cleaned.html",
		"styles.css",
		"css/stylesheet-1.css",
		"css/stylesheet-2.css",
		"screenshots/screenshot-1-Full-Page---.png",
		"README.md",
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(name)))
	}
	assert.NoFileExists(t, filepath.Join(dir, "screenshots", "screenshot-2-Full-Page---x.jpg"))

	css, err := os.ReadFile(filepath.Join(dir, "css", "stylesheet-2.css"))
	require.NoError(t, err)
	assert.Equal(t, ".b{margin:0}", string(css))

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "- `css/stylesheet-1.css`")
	assert.Contains(t, string(readme), "- Date: 2024-03-09T10:00:00Z")
	assert.Contains(t, string(readme), "- Stylesheets analyzed: 2")
	assert.Contains(t, string(readme), "- Screenshots captured: 2")
	assert.Contains(t, string(readme), "- Colors identified: 1")
}

func TestWritePackageSkipsEmptyInlineCSS(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	res := packageFixture()
	res.GeneratedInlineCSS = ""
	dir, err := w.WritePackage(res)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "styles.css"))
	assert.FileExists(t, filepath.Join(dir, "cleaned.html"))
}
