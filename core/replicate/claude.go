package replicate

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeReplicator generates replications with Anthropic's Messages API.
type ClaudeReplicator struct {
	client *anthropic.Client
	model  string
}

// NewClaude creates a Claude-backed replicator.
func NewClaude(opts Options) (*ClaudeReplicator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("STYLEPIPE_ANTHROPIC_KEY or ANTHROPIC_API_KEY environment variable required")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := anthropic.NewClient(reqOpts...)

	model := opts.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	return &ClaudeReplicator{
		client: &client,
		model:  model,
	}, nil
}

// Replicate sends prompt and returns the generated HTML document.
func (r *ClaudeReplicator) Replicate(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.model),
		MaxTokens: maxOutputTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(prompt))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response from Claude")
	}
	return ExtractHTML(text), nil
}
