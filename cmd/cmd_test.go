package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/stylepipe/core/config"
	"github.com/gaurav-prasanna/stylepipe/core/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	flagPages = nil
	flagDiscover = false
	flagMarkdown, flagJSON, flagPDF, flagPrompt, flagTokens, flagPackage = false, false, false, false, false, false
	flagOutputDir = ""
	flagClassPrefix = ""
	flagNoScreenshots = false
}

func TestValidateExtractFlags(t *testing.T) {
	tests := []struct {
		name    string
		set     func()
		wantErr string
	}{
		{"no format", func() {}, "exactly one output format is required"},
		{"two formats", func() { flagMarkdown, flagJSON = true, true }, "only one output format allowed per run (got 2)"},
		{"pages and discover", func() { flagMarkdown, flagDiscover, flagPages = true, true, []string{"a"} }, "mutually exclusive"},
		{"too many pages", func() { flagJSON, flagPages = true, []string{"a", "b", "c", "d"} }, "at most 3 additional pages"},
		{"package", func() { flagPackage = true }, ""},
		{"markdown with discover", func() { flagMarkdown, flagDiscover = true, true }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			t.Cleanup(resetFlags)
			tt.set()

			err := validateExtractFlags()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSelectRenderer(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	flagPrompt = true
	r, err := selectRenderer()
	require.NoError(t, err)
	assert.IsType(t, &render.PromptRenderer{}, r)

	flagPrompt = false
	_, err = selectRenderer()
	assert.Error(t, err)
}

func TestParseTarget(t *testing.T) {
	got, err := parseTarget("example.com/pricing")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/pricing", got)

	got, err = parseTarget("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", got)

	_, err = parseTarget("https://")
	assert.Error(t, err)
}

func TestNewScreenshotterOff(t *testing.T) {
	c := &config.Config{Screenshot: config.ScreenshotConfig{Browser: config.BrowserOff}}
	s, release := newScreenshotter(c)
	defer release()
	assert.Nil(t, s)

	c.Screenshot.API = "https://shots.test/api"
	s, release2 := newScreenshotter(c)
	defer release2()
	assert.NotNil(t, s)
}

func TestExtractCommandWritesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/site.css":
			w.Header().Set("Content-Type", "text/css")
			_, _ = w.Write([]byte(`body { color: #112233; font-size: 16px; }`))
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><head><title>Fixture</title><link rel="stylesheet" href="/site.css"></head><body><p style="margin: 4px">Hi</p></body></html>`))
		}
	}))
	defer srv.Close()

	t.Setenv("STYLEPIPE_BROWSER", "off")
	t.Setenv("STYLEPIPE_SCREENSHOT_API", "")
	t.Setenv("STYLEPIPE_PROXY_URL", "")
	resetFlags()
	t.Cleanup(resetFlags)

	out := t.TempDir()
	rootCmd.SetArgs([]string{"extract", srv.URL, "--markdown", "--no-screenshots", "--output_dir", out})
	require.NoError(t, rootCmd.Execute())

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".md"))

	data, err := os.ReadFile(filepath.Join(out, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Design System Analysis: Fixture")
	assert.Contains(t, string(data), "#112233")
}
