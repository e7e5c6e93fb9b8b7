package tokens

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/gaurav-prasanna/stylepipe/core/cssparse"
)

// layoutProperties is the allow-list kept for a flex or grid container.
var layoutProperties = map[string]bool{
	"display":               true,
	"flex-direction":        true,
	"flex-wrap":             true,
	"justify-content":       true,
	"align-items":           true,
	"align-content":         true,
	"gap":                   true,
	"grid-template-columns": true,
	"grid-template-rows":    true,
	"grid-auto-flow":        true,
}

type layoutKind int

const (
	layoutNone layoutKind = iota
	layoutFlex
	layoutGrid
)

func displayKind(decls []cssparse.Declaration) layoutKind {
	kind := layoutNone
	// The last display declaration wins, as it would in the browser.
	for _, d := range decls {
		if d.Property != "display" {
			continue
		}
		switch strings.ToLower(d.Value) {
		case "flex", "inline-flex":
			kind = layoutFlex
		case "grid", "inline-grid":
			kind = layoutGrid
		default:
			kind = layoutNone
		}
	}
	return kind
}

func layoutDeclarations(decls []cssparse.Declaration, kind layoutKind) []string {
	var props []string
	for _, d := range decls {
		if layoutProperties[d.Property] || (kind == layoutFlex && d.Property == "flex") {
			props = append(props, d.String())
		}
	}
	return props
}

// DetectLayout finds flex and grid containers among rules, then among inline
// styles. Inline entries are labeled by their 1-based position.
func DetectLayout(rules []core.CSSRule, inline []string) core.LayoutPatterns {
	patterns := core.LayoutPatterns{}

	record := func(selector, block string) {
		decls := cssparse.ParseDeclarations(block)
		kind := displayKind(decls)
		if kind == layoutNone {
			return
		}
		props := layoutDeclarations(decls, kind)
		if len(props) == 0 {
			return
		}
		pattern := core.LayoutPattern{Selector: selector, Properties: props}
		if kind == layoutFlex {
			patterns.Flex = append(patterns.Flex, pattern)
		} else {
			patterns.Grid = append(patterns.Grid, pattern)
		}
	}

	for _, rule := range rules {
		record(rule.Selector, rule.Declarations)
	}
	for i, style := range inline {
		record(fmt.Sprintf("Inline Style #%d", i+1), style)
	}
	return patterns
}
