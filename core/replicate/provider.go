// Package replicate asks a generative text service to rebuild an analyzed
// page as a single self-contained HTML file.
package replicate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/stylepipe/core"
)

// Instructions is sent ahead of the single-file prompt.
const Instructions = `You are an expert web developer specializing in creating pixel-perfect, single-file HTML replications of websites. Your task is to take the provided HTML document, which contains cleaned markup and consolidated CSS, and generate a new, single HTML file that accurately reproduces the visual design.

**Instructions:**
1.  Analyze the provided HTML body and the consolidated CSS in the <style> tag.
2.  Your output MUST be a single, complete HTML file.
3.  Do not add any explanations or commentary outside of the HTML code.
4.  Your response should start with ` + "`<!DOCTYPE html>`" + ` and end with ` + "`</html>`" + `.
5.  Ensure all necessary styles are included in a <style> tag in the <head> to make the file self-contained.
6.  Pay close attention to layout, typography, colors, and spacing to match the original design as closely as possible.

Here is the source HTML to replicate:`

// maxOutputTokens caps the generated document.
const maxOutputTokens = 16000

// Options selects and configures a provider.
type Options struct {
	// Provider is "claude" (alias "anthropic") or "openai" (alias "gpt").
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// New creates the provider named in opts.
func New(opts Options) (core.Replicator, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "claude", "anthropic", "":
		r, err := NewClaude(opts)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "openai", "gpt":
		r, err := NewOpenAI(opts)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: claude, openai)", opts.Provider)
	}
}

var fencedHTML = regexp.MustCompile("(?s)```html[ \\t]*\\r?\\n(.+?)\\r?\\n```")

// ExtractHTML unwraps a ```html fenced block from a model response. Other
// responses are returned trimmed.
func ExtractHTML(response string) string {
	if m := fencedHTML.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(response)
}

func userPrompt(prompt string) string {
	return Instructions + "\n" + prompt
}
