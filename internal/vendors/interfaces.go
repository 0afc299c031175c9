package vendors

import "context"

// Provider identifies an upstream vendor and the model it is called with
type Provider interface {
	// Name returns the vendor identifier used in logs and metrics
	Name() string

	// Model returns the upstream model, or "" when the vendor has none
	Model() string
}

// TextGenerator answers a free-form text query
type TextGenerator interface {
	Provider

	// GenerateText returns the vendor's answer. An empty string means the
	// vendor produced no answer; callers substitute types.NoAnswer.
	GenerateText(ctx context.Context, query string) (string, error)
}

// ImageGenerator produces an image from a prompt
type ImageGenerator interface {
	Provider

	// GenerateImage returns the URL of the first generated image
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// BackgroundRemover strips the background from a remote image
type BackgroundRemover interface {
	Provider

	// RemoveBackground returns the processed image bytes (PNG)
	RemoveBackground(ctx context.Context, imageURL string) ([]byte, error)
}
