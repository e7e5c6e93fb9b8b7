// Package core defines the pipeline interfaces and shared data model for StylePipe.
// Each stage of the pipeline is a clean, testable interface; the concrete
// implementations live in the sub-packages.
package core

import "context"

// FetchResult holds the raw body and response metadata from a fetch.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// Fetcher retrieves raw content (HTML or CSS) from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Screenshotter captures a full-page image of a URL.
type Screenshotter interface {
	Capture(ctx context.Context, url string) (*Screenshot, error)
}

// Renderer converts an extraction result into a final output format.
type Renderer interface {
	Render(result *ExtractionResult) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// Replicator asks a generative text service to rebuild a page from a prompt.
type Replicator interface {
	Replicate(ctx context.Context, prompt string) (string, error)
}
