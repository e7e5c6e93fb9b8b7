package normalize

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutline(t *testing.T) {
	html := "<body><h1>Welcome</h1><p>Hello <strong>world</strong></p>" + core.HTMLTruncatedMarker

	md, err := New(0).Outline(html)
	require.NoError(t, err)
	assert.Contains(t, md, "# Welcome")
	assert.Contains(t, md, "Hello **world**")
	assert.NotContains(t, md, "TRUNCATED")
}

func TestOutlineCapsLength(t *testing.T) {
	html := "<p>" + strings.Repeat("word ", 100) + "</p>"

	md, err := New(50).Outline(html)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(md, OutlineTruncatedMarker))
	assert.Equal(t, 50, len([]rune(strings.TrimSuffix(md, OutlineTruncatedMarker))))
}
