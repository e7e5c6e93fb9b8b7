package replicate

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIReplicator generates replications with the chat completions API.
type OpenAIReplicator struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed replicator.
func NewOpenAI(opts Options) (*OpenAIReplicator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("STYLEPIPE_OPENAI_KEY or OPENAI_API_KEY environment variable required")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	model := opts.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIReplicator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Replicate sends prompt and returns the generated HTML document.
func (r *OpenAIReplicator) Replicate(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     r.model,
		MaxTokens: maxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt(prompt),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return ExtractHTML(resp.Choices[0].Message.Content), nil
}
