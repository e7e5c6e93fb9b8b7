package render

import (
	"fmt"

	"github.com/gaurav-prasanna/stylepipe/core"
	"gopkg.in/yaml.v3"
)

// TokensRenderer exports the design tokens as YAML, for seeding a token
// pipeline or a theme file. Markup, raw CSS and screenshots are left out.
type TokensRenderer struct{}

// NewTokensRenderer creates a TokensRenderer.
func NewTokensRenderer() *TokensRenderer {
	return &TokensRenderer{}
}

type tokenValue struct {
	Value string `yaml:"value"`
	Count int    `yaml:"count"`
}

type tokenFile struct {
	Source     string            `yaml:"source"`
	Title      string            `yaml:"title"`
	Colors     []tokenValue      `yaml:"colors,omitempty"`
	Rendered   []tokenValue      `yaml:"rendered_colors,omitempty"`
	Typography tokenTypography   `yaml:"typography"`
	Spacing    []tokenValue      `yaml:"spacing,omitempty"`
	Variables  map[string]string `yaml:"variables,omitempty"`
}

type tokenTypography struct {
	Families    []tokenValue `yaml:"families,omitempty"`
	Sizes       []tokenValue `yaml:"sizes,omitempty"`
	Weights     []tokenValue `yaml:"weights,omitempty"`
	LineHeights []tokenValue `yaml:"line_heights,omitempty"`
}

func tokenValues(entries []core.FrequencyEntry) []tokenValue {
	if len(entries) == 0 {
		return nil
	}
	out := make([]tokenValue, len(entries))
	for i, e := range entries {
		out[i] = tokenValue{Value: e.Value, Count: e.Count}
	}
	return out
}

// Render marshals the token summary.
func (r *TokensRenderer) Render(res *core.ExtractionResult) ([]byte, error) {
	file := tokenFile{
		Source:   res.PageURL,
		Title:    res.PageTitle,
		Colors:   tokenValues(res.ColorPalette),
		Rendered: tokenValues(res.ScreenshotPalette),
		Typography: tokenTypography{
			Families:    tokenValues(res.Typography.FontFamilies),
			Sizes:       tokenValues(res.Typography.FontSizes),
			Weights:     tokenValues(res.Typography.FontWeights),
			LineHeights: tokenValues(res.Typography.LineHeights),
		},
		Spacing: tokenValues(res.SpacingScale),
	}
	if len(res.CSSVariables) > 0 {
		file.Variables = make(map[string]string, len(res.CSSVariables))
		for _, v := range res.CSSVariables {
			file.Variables[v.Name] = v.Value
		}
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("marshaling tokens: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for the tokens file.
func (r *TokensRenderer) Extension() string {
	return ".yaml"
}

// BaseName names the tokens file inside an analysis package.
func (r *TokensRenderer) BaseName() string {
	return "tokens"
}
