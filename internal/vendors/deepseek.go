package vendors

import (
	"context"
	"net/http"
)

const VendorDeepSeek = "deepseek"

type deepSeekRequest struct {
	Prompt string `json:"prompt"`
}

type deepSeekResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// DeepSeekProvider posts the query as a bare prompt and reads the
// completion-style choices[0].text field.
type DeepSeekProvider struct {
	client *http.Client
	url    string
	apiKey string
}

// NewDeepSeekProvider creates a provider posting to url
func NewDeepSeekProvider(client *http.Client, url, apiKey string) *DeepSeekProvider {
	return &DeepSeekProvider{client: client, url: url, apiKey: apiKey}
}

func (p *DeepSeekProvider) Name() string  { return VendorDeepSeek }
func (p *DeepSeekProvider) Model() string { return "" }

func (p *DeepSeekProvider) GenerateText(ctx context.Context, query string) (string, error) {
	if p.apiKey == "" {
		return "", newVendorError(VendorDeepSeek, "", ErrMissingAPIKey)
	}

	var result deepSeekResponse
	if err := postJSON(ctx, p.client, VendorDeepSeek, p.url, bearer(p.apiKey), deepSeekRequest{Prompt: query}, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Text, nil
}
