package vendors

import (
	"context"
	"net/http"
	"strings"
)

const (
	VendorOpenAI = "openai"

	OpenAIChatModel  = "gpt-4o-mini"
	OpenAIImageModel = "gpt-image-1"
	OpenAIImageSize  = "512x512"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAIChatProvider answers queries with the chat completions API
type OpenAIChatProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewOpenAIChatProvider creates a chat provider for baseURL (e.g. https://api.openai.com/v1)
func NewOpenAIChatProvider(client *http.Client, baseURL, apiKey string) *OpenAIChatProvider {
	return &OpenAIChatProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (p *OpenAIChatProvider) Name() string  { return VendorOpenAI }
func (p *OpenAIChatProvider) Model() string { return OpenAIChatModel }

// GenerateText returns the content of the first choice, or "" if there is none
func (p *OpenAIChatProvider) GenerateText(ctx context.Context, query string) (string, error) {
	if p.apiKey == "" {
		return "", newVendorError(VendorOpenAI, "", ErrMissingAPIKey)
	}

	requestBody := chatCompletionRequest{
		Model:    OpenAIChatModel,
		Messages: []chatMessage{{Role: "user", Content: query}},
	}

	var result chatCompletionResponse
	if err := postJSON(ctx, p.client, VendorOpenAI, p.baseURL+"/chat/completions", bearer(p.apiKey), requestBody, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}

type imageGenerationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// OpenAIImageProvider generates images with the images API
type OpenAIImageProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewOpenAIImageProvider creates an image provider for baseURL
func NewOpenAIImageProvider(client *http.Client, baseURL, apiKey string) *OpenAIImageProvider {
	return &OpenAIImageProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (p *OpenAIImageProvider) Name() string  { return VendorOpenAI }
func (p *OpenAIImageProvider) Model() string { return OpenAIImageModel }

// GenerateImage returns the URL of the first image. When the API returns
// only base64 data the image is returned as a data URL.
func (p *OpenAIImageProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", newVendorError(VendorOpenAI, "", ErrMissingAPIKey)
	}

	requestBody := imageGenerationRequest{
		Model:  OpenAIImageModel,
		Prompt: prompt,
		Size:   OpenAIImageSize,
		N:      1,
	}

	var result imageGenerationResponse
	if err := postJSON(ctx, p.client, VendorOpenAI, p.baseURL+"/images/generations", bearer(p.apiKey), requestBody, &result); err != nil {
		return "", err
	}

	if len(result.Data) == 0 {
		return "", newVendorError(VendorOpenAI, "no image in response", ErrEmptyResult)
	}

	image := result.Data[0]
	switch {
	case image.URL != "":
		return image.URL, nil
	case image.B64JSON != "":
		return "data:image/png;base64," + image.B64JSON, nil
	default:
		return "", newVendorError(VendorOpenAI, "image record has neither url nor b64_json", ErrEmptyResult)
	}
}
