package vendors

import (
	"context"
	"net/http"
	"sync"

	"google.golang.org/genai"
)

const (
	VendorGemini = "gemini"
	GeminiModel  = "gemini-1.5-flash"
)

// contentGenerator is the part of *genai.Models the provider uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider answers queries through the Gemini API SDK.
// The SDK client is created on first use and then shared by all requests.
type GeminiProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	mu     sync.Mutex
	models contentGenerator
}

// NewGeminiProvider creates a provider. baseURL may be empty to use the SDK default.
func NewGeminiProvider(httpClient *http.Client, baseURL, apiKey string) *GeminiProvider {
	return &GeminiProvider{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (p *GeminiProvider) Name() string  { return VendorGemini }
func (p *GeminiProvider) Model() string { return GeminiModel }

func (p *GeminiProvider) generator(ctx context.Context) (contentGenerator, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.models != nil {
		return p.models, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      p.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  p.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: p.baseURL},
	})
	if err != nil {
		return nil, err
	}

	p.models = client.Models
	return p.models, nil
}

// GenerateText returns the concatenated text of the first candidate, or "" if there is none
func (p *GeminiProvider) GenerateText(ctx context.Context, query string) (string, error) {
	if p.apiKey == "" {
		return "", newVendorError(VendorGemini, "", ErrMissingAPIKey)
	}

	models, err := p.generator(ctx)
	if err != nil {
		return "", newVendorError(VendorGemini, "failed to create client", err)
	}

	resp, err := models.GenerateContent(ctx, GeminiModel, genai.Text(query), nil)
	if err != nil {
		return "", newVendorError(VendorGemini, "generate content failed", err)
	}
	if resp == nil {
		return "", nil
	}

	return resp.Text(), nil
}
