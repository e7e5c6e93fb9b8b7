// Package cssparse splits raw CSS text into selector/declaration pairs.
//
// Parsing is shallow: one level of conditional at-rule nesting is
// flattened, and declaration bodies are assumed to contain no braces. Brace
// characters inside string literals are not handled.
package cssparse

import (
	"regexp"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/gaurav-prasanna/stylepipe/core"
)

var (
	commentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)
	// statementAtRuleRegex matches block-less at-rules such as @import.
	statementAtRuleRegex = regexp.MustCompile(`(?i)@(?:import|charset|namespace)[^;{}]*;`)
	ruleRegex            = regexp.MustCompile(`([^{}]+)\{([^{}]*)\}`)
	atRuleHeadRegex      = regexp.MustCompile(`(?i)@(-[a-z]+-)?([a-z-]+)[^{};]*\{`)
)

// groupingAtRules wrap ordinary rules; their bodies are kept.
var groupingAtRules = map[string]bool{
	"media":     true,
	"supports":  true,
	"container": true,
	"layer":     true,
	"document":  true,
}

// droppedAtRules contain nested blocks that are not style rules.
var droppedAtRules = map[string]bool{
	"keyframes": true,
	"page":      true,
}

// ParseRules returns the style rules found in css, in source order.
func ParseRules(css string) []core.CSSRule {
	flat := Flatten(css)

	var rules []core.CSSRule
	for _, m := range ruleRegex.FindAllStringSubmatch(flat, -1) {
		selector := strings.TrimSpace(m[1])
		declarations := strings.TrimSpace(m[2])
		if selector == "" || declarations == "" || strings.HasPrefix(selector, "@") {
			continue
		}
		rules = append(rules, core.CSSRule{Selector: selector, Declarations: declarations})
	}
	return rules
}

// Flatten strips comments and statement at-rules, then replaces each
// grouping at-rule wrapper with its inner body. Keyframes are removed.
func Flatten(css string) string {
	css = commentRegex.ReplaceAllString(css, "")
	css = statementAtRuleRegex.ReplaceAllString(css, "")

	var b strings.Builder
	b.Grow(len(css))
	rest := css
	for {
		loc := atRuleHeadRegex.FindStringSubmatchIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			break
		}
		name := strings.ToLower(rest[loc[4]:loc[5]])
		open := loc[1] - 1
		closeIdx := matchingBrace(rest, open)

		switch {
		case closeIdx < 0:
			// Unbalanced input: keep everything as-is.
			b.WriteString(rest)
			return b.String()
		case groupingAtRules[name]:
			b.WriteString(rest[:loc[0]])
			b.WriteString(rest[open+1 : closeIdx])
			b.WriteString("\n")
		case droppedAtRules[name]:
			b.WriteString(rest[:loc[0]])
		default:
			b.WriteString(rest[:closeIdx+1])
		}
		rest = rest[closeIdx+1:]
	}
	return b.String()
}

// matchingBrace returns the index of the brace closing the one at open, or -1.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Declaration is one `property: value` pair from a declaration block.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// String renders the declaration as `property: value`.
func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// ParseDeclarations splits a declaration block (or inline style attribute)
// into declarations. Property names are lower-cased. A missing final ";"
// is supplied, since the tokenizer drops an unterminated last declaration.
func ParseDeclarations(block string) []Declaration {
	block = strings.TrimSpace(block)
	if block == "" {
		return nil
	}
	if !strings.HasSuffix(block, ";") {
		block += ";"
	}
	parsed, err := parser.ParseDeclarations(block)
	if err != nil {
		return splitDeclarations(block)
	}

	decls := make([]Declaration, 0, len(parsed))
	for _, d := range parsed {
		if d == nil {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		val := strings.TrimSpace(d.Value)
		if prop == "" || val == "" {
			continue
		}
		decls = append(decls, Declaration{Property: prop, Value: val, Important: d.Important})
	}
	return decls
}

// splitDeclarations is the fallback for blocks the tokenizer rejects.
func splitDeclarations(block string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(block, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" || val == "" {
			continue
		}
		important := false
		if idx := strings.Index(strings.ToLower(val), "!important"); idx >= 0 {
			important = true
			val = strings.TrimSpace(val[:idx])
		}
		decls = append(decls, Declaration{Property: prop, Value: val, Important: important})
	}
	return decls
}
