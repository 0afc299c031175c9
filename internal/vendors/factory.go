package vendors

import (
	"github.com/aashari/go-ai-proxy-server/internal/config"
	"github.com/aashari/go-ai-proxy-server/internal/httpclient"
)

// Set holds one adapter per relay capability
type Set struct {
	ChatGPT  TextGenerator
	DALLE    ImageGenerator
	DeepSeek TextGenerator
	Gemini   TextGenerator
	RemoveBG BackgroundRemover
}

// Factory builds vendor adapters from configuration
type Factory struct {
	httpClientFactory *httpclient.Factory
}

// NewFactory creates a new vendor factory
func NewFactory(httpClientFactory *httpclient.Factory) *Factory {
	return &Factory{
		httpClientFactory: httpClientFactory,
	}
}

// CreateSet builds every adapter. Missing API keys are not an error here;
// the affected adapters fail each call instead.
func (f *Factory) CreateSet(cfg config.VendorsConfig) *Set {
	openAIClient := f.httpClientFactory.CreateClient(httpclient.Options{Timeout: cfg.OpenAI.Timeout})

	return &Set{
		ChatGPT: NewOpenAIChatProvider(openAIClient, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey),
		DALLE:   NewOpenAIImageProvider(openAIClient, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey),
		DeepSeek: NewDeepSeekProvider(
			f.httpClientFactory.CreateClient(httpclient.Options{Timeout: cfg.DeepSeek.Timeout}),
			cfg.DeepSeek.BaseURL, cfg.DeepSeek.APIKey),
		Gemini: NewGeminiProvider(
			f.httpClientFactory.CreateClient(httpclient.Options{Timeout: cfg.Gemini.Timeout}),
			cfg.Gemini.BaseURL, cfg.Gemini.APIKey),
		RemoveBG: NewRemoveBGProvider(
			f.httpClientFactory.CreateClient(httpclient.Options{Timeout: cfg.RemoveBG.Timeout}),
			cfg.RemoveBG.BaseURL, cfg.RemoveBG.APIKey),
	}
}

// KeyStatus reports, per vendor, whether a credential is configured
func KeyStatus(cfg config.VendorsConfig) map[string]bool {
	return map[string]bool{
		VendorOpenAI:   cfg.OpenAI.HasKey(),
		VendorDeepSeek: cfg.DeepSeek.HasKey(),
		VendorGemini:   cfg.Gemini.HasKey(),
		VendorRemoveBG: cfg.RemoveBG.HasKey(),
	}
}
