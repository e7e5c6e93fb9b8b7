package cssparse

import (
	"testing"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want []core.CSSRule
	}{
		{
			name: "simple rules",
			css:  ".a{color:#fff;margin:10px 0;} .b{display:flex;justify-content:center;}",
			want: []core.CSSRule{
				{Selector: ".a", Declarations: "color:#fff;margin:10px 0;"},
				{Selector: ".b", Declarations: "display:flex;justify-content:center;"},
			},
		},
		{
			name: "media query is flattened",
			css:  "@media (max-width: 600px) { .a { color: red; } .b { color: blue; } }",
			want: []core.CSSRule{
				{Selector: ".a", Declarations: "color: red;"},
				{Selector: ".b", Declarations: "color: blue;"},
			},
		},
		{
			name: "empty declarations are dropped",
			css:  ".empty {   } .a { color: red }",
			want: []core.CSSRule{
				{Selector: ".a", Declarations: "color: red"},
			},
		},
		{
			name: "at-rule selectors are dropped",
			css:  "@font-face { font-family: X; src: url(x.woff); } h1 { font-size: 2rem; }",
			want: []core.CSSRule{
				{Selector: "h1", Declarations: "font-size: 2rem;"},
			},
		},
		{
			name: "import statement does not swallow the next selector",
			css:  "@import url(base.css);\n.a { color: red; }",
			want: []core.CSSRule{
				{Selector: ".a", Declarations: "color: red;"},
			},
		},
		{
			name: "comments are ignored",
			css:  "/* .x { color: green } */ .a { color: red; }",
			want: []core.CSSRule{
				{Selector: ".a", Declarations: "color: red;"},
			},
		},
		{
			name: "keyframes are removed",
			css:  "@keyframes spin { from { opacity: 0 } to { opacity: 1 } } .a { color: red; }",
			want: []core.CSSRule{
				{Selector: ".a", Declarations: "color: red;"},
			},
		},
		{
			name: "no rules",
			css:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRules(tt.css))
		})
	}
}

func TestFlattenKeepsUnbalancedInput(t *testing.T) {
	css := "@media screen { .a { color: red; }"
	assert.Contains(t, Flatten(css), ".a { color: red; }")
}

func TestParseDeclarations(t *testing.T) {
	decls := ParseDeclarations("Display: flex; justify-content: center; gap: 8px !important;")
	require.Len(t, decls, 3)

	assert.Equal(t, "display", decls[0].Property)
	assert.Equal(t, "flex", decls[0].Value)
	assert.Equal(t, "justify-content: center", decls[1].String())
	assert.True(t, decls[2].Important)
	assert.Equal(t, "gap: 8px !important", decls[2].String())
}

func TestParseDeclarationsUnterminated(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  []Declaration
	}{
		{
			name:  "inline style without final semicolon",
			block: "display: flex; align-items: center",
			want: []Declaration{
				{Property: "display", Value: "flex"},
				{Property: "align-items", Value: "center"},
			},
		},
		{
			name:  "compact rule body",
			block: "display:flex;justify-content:center",
			want: []Declaration{
				{Property: "display", Value: "flex"},
				{Property: "justify-content", Value: "center"},
			},
		},
		{
			name:  "important on last declaration",
			block: "color: red; margin: 0 !important",
			want: []Declaration{
				{Property: "color", Value: "red"},
				{Property: "margin", Value: "0", Important: true},
			},
		},
		{
			name:  "single declaration",
			block: "  gap: 4px  ",
			want:  []Declaration{{Property: "gap", Value: "4px"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDeclarations(tt.block))
		})
	}

	assert.Empty(t, ParseDeclarations("   "))
}

func TestSplitDeclarations(t *testing.T) {
	decls := splitDeclarations("color:red; ;margin: 0 auto !important; broken")
	require.Len(t, decls, 2)
	assert.Equal(t, Declaration{Property: "color", Value: "red"}, decls[0])
	assert.Equal(t, Declaration{Property: "margin", Value: "0 auto", Important: true}, decls[1])
}
