// Package render — JSON renderer.
// Serializes the full extraction result. Screenshot image bytes are left out;
// the package writer stores them as separate files.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/stylepipe/core"
)

// JSONRenderer produces the structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the result with two-space indentation.
func (r *JSONRenderer) Render(res *core.ExtractionResult) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
