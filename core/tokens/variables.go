package tokens

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/stylepipe/core"
)

var (
	rootBlockRegex    = regexp.MustCompile(`:root\s*\{([^}]+)\}`)
	variableDeclRegex = regexp.MustCompile(`--[\w-]+\s*:\s*[^;}]+`)
	variableRefRegex  = regexp.MustCompile(`var\(\s*(--[\w-]+)`)
)

// VariableMap holds custom properties declared in :root blocks.
// Later declarations of a name overwrite earlier ones; Entries keeps the
// order in which names were first declared.
type VariableMap struct {
	order  []string
	values map[string]string
}

// NewVariableMap returns an empty map.
func NewVariableMap() *VariableMap {
	return &VariableMap{values: make(map[string]string)}
}

// Set records name=value, overwriting any earlier value.
func (m *VariableMap) Set(name, value string) {
	if _, ok := m.values[name]; !ok {
		m.order = append(m.order, name)
	}
	m.values[name] = value
}

// Get returns the resolved value for name.
func (m *VariableMap) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of distinct variables.
func (m *VariableMap) Len() int {
	return len(m.order)
}

// Entries returns the variables in first-declared order.
func (m *VariableMap) Entries() []core.CSSVariable {
	vars := make([]core.CSSVariable, 0, len(m.order))
	for _, name := range m.order {
		vars = append(vars, core.CSSVariable{Name: name, Value: m.values[name]})
	}
	return vars
}

// Annotate appends the resolved literal to a value that references a known
// variable, e.g. "var(--brand)" becomes "var(--brand) (`#0af`)".
// Unknown references and plain values are returned unchanged.
func (m *VariableMap) Annotate(value string) string {
	match := variableRefRegex.FindStringSubmatch(value)
	if match == nil {
		return value
	}
	resolved, ok := m.values[match[1]]
	if !ok {
		return value
	}
	return value + " (`" + resolved + "`)"
}

// ResolveVariables scans every :root block of css in document order.
func ResolveVariables(css string) *VariableMap {
	vars := NewVariableMap()
	for _, block := range rootBlockRegex.FindAllStringSubmatch(css, -1) {
		for _, decl := range variableDeclRegex.FindAllString(block[1], -1) {
			name, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			name = strings.TrimSpace(name)
			value = strings.TrimSpace(value)
			if name == "" || value == "" {
				continue
			}
			vars.Set(name, value)
		}
	}
	return vars
}

// VariablesFromEntries rebuilds a map from an ExtractionResult's variable list.
func VariablesFromEntries(entries []core.CSSVariable) *VariableMap {
	vars := NewVariableMap()
	for _, e := range entries {
		vars.Set(e.Name, e.Value)
	}
	return vars
}
