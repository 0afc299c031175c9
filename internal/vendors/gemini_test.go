package vendors

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// mockContentGenerator records calls and returns a canned response
type mockContentGenerator struct {
	mu       sync.Mutex
	calls    int
	model    string
	contents []*genai.Content
	resp     *genai.GenerateContentResponse
	err      error
}

func (m *mockContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.model = model
	m.contents = contents
	return m.resp, m.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestGeminiProvider(t *testing.T) {
	testCases := []struct {
		name           string
		resp           *genai.GenerateContentResponse
		err            error
		expectedAnswer string
		expectErr      bool
	}{
		{name: "single part", resp: textResponse("4"), expectedAnswer: "4"},
		{name: "multiple parts", resp: textResponse("Hello, ", "world"), expectedAnswer: "Hello, world"},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, expectedAnswer: ""},
		{name: "nil response", resp: nil, expectedAnswer: ""},
		{name: "sdk error", err: errors.New("API key not valid. Please pass a valid API key."), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockContentGenerator{resp: tc.resp, err: tc.err}
			provider := NewGeminiProvider(http.DefaultClient, "", "gm-key")
			provider.models = mock

			answer, err := provider.GenerateText(context.Background(), "What is 2+2?")

			assert.Equal(t, 1, mock.calls)
			assert.Equal(t, GeminiModel, mock.model)
			require.Len(t, mock.contents, 1)
			require.Len(t, mock.contents[0].Parts, 1)
			assert.Equal(t, "What is 2+2?", mock.contents[0].Parts[0].Text)

			if tc.expectErr {
				var vendorErr *VendorError
				require.ErrorAs(t, err, &vendorErr)
				assert.Equal(t, VendorGemini, vendorErr.Vendor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedAnswer, answer)
		})
	}
}

func TestGeminiMissingKeyDoesNotCreateClient(t *testing.T) {
	provider := NewGeminiProvider(http.DefaultClient, "", "")

	_, err := provider.GenerateText(context.Background(), "hi")

	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, provider.models)
}

func TestGeminiGeneratorIsReused(t *testing.T) {
	mock := &mockContentGenerator{resp: textResponse("ok")}
	provider := NewGeminiProvider(http.DefaultClient, "", "gm-key")
	provider.models = mock

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = provider.GenerateText(context.Background(), "hi")
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, mock.calls)
	assert.Same(t, mock, provider.models)
}
