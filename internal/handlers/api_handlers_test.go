package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aashari/go-ai-proxy-server/internal/database"
	"github.com/aashari/go-ai-proxy-server/internal/logger"
	"github.com/aashari/go-ai-proxy-server/internal/monitoring"
	"github.com/aashari/go-ai-proxy-server/internal/vendors"
)

// TestMain runs before all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Init(logger.Config{Level: logger.LevelError, Format: "json", Output: "stderr"}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	m.Run()
}

type stubText struct {
	name   string
	answer string
	err    error
	calls  int32
	query  string
}

func (s *stubText) Name() string  { return s.name }
func (s *stubText) Model() string { return s.name + "-model" }

func (s *stubText) GenerateText(ctx context.Context, query string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	s.query = query
	return s.answer, s.err
}

type stubImage struct {
	url   string
	err   error
	calls int32
}

func (s *stubImage) Name() string  { return vendors.VendorOpenAI }
func (s *stubImage) Model() string { return vendors.OpenAIImageModel }

func (s *stubImage) GenerateImage(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.url, s.err
}

type stubRemover struct {
	data  []byte
	err   error
	calls int32
}

func (s *stubRemover) Name() string  { return vendors.VendorRemoveBG }
func (s *stubRemover) Model() string { return "" }

func (s *stubRemover) RemoveBackground(ctx context.Context, imageURL string) ([]byte, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.data, s.err
}

type memoryRecorder struct {
	mu      sync.Mutex
	entries []database.UsageLog
}

func (m *memoryRecorder) Record(entry database.UsageLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func (m *memoryRecorder) Close(context.Context) error { return nil }

type fixture struct {
	handlers *APIHandlers
	chatgpt  *stubText
	deepseek *stubText
	gemini   *stubText
	dalle    *stubImage
	removebg *stubRemover
	metrics  *monitoring.Metrics
	usage    *memoryRecorder
}

func newFixture() *fixture {
	f := &fixture{
		chatgpt:  &stubText{name: vendors.VendorOpenAI, answer: "4"},
		deepseek: &stubText{name: vendors.VendorDeepSeek, answer: "Paris"},
		gemini:   &stubText{name: vendors.VendorGemini, answer: "Hello"},
		dalle:    &stubImage{url: "https://x/img.png"},
		removebg: &stubRemover{data: []byte("\x89PNG\r\n\x1a\nbody")},
		metrics:  monitoring.NewMetrics(nil),
		usage:    &memoryRecorder{},
	}
	f.handlers = NewAPIHandlers(Dependencies{
		Vendors: &vendors.Set{
			ChatGPT:  f.chatgpt,
			DALLE:    f.dalle,
			DeepSeek: f.deepseek,
			Gemini:   f.gemini,
			RemoveBG: f.removebg,
		},
		Metrics:     f.metrics,
		Usage:       f.usage,
		Environment: "test",
	})
	return f
}

func post(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestTextRelayHandlers(t *testing.T) {
	f := newFixture()

	testCases := []struct {
		name    string
		handler http.HandlerFunc
		path    string
		stub    *stubText
	}{
		{"chatgpt", f.handlers.ChatGPTHandler, "/chatgpt", f.chatgpt},
		{"deepseek", f.handlers.DeepSeekHandler, "/deepseek", f.deepseek},
		{"gemini", f.handlers.GeminiHandler, "/gemini", f.gemini},
	}

	for _, tc := range testCases {
		t.Run(tc.name+" success", func(t *testing.T) {
			rec := post(tc.handler, tc.path, `{"query":"What is 2+2?"}`)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"answer":"`+tc.stub.answer+`"}`, rec.Body.String())
			assert.Equal(t, "What is 2+2?", tc.stub.query)
		})

		t.Run(tc.name+" missing query", func(t *testing.T) {
			before := atomic.LoadInt32(&tc.stub.calls)
			for _, body := range []string{`{}`, ``, `{"query":""}`, `{"prompt":"x"}`, `null`, `{"Query":"hi"}`, `{"QUERY":"hi"}`} {
				rec := post(tc.handler, tc.path, body)

				assert.Equal(t, http.StatusBadRequest, rec.Code, body)
				assert.JSONEq(t, `{"error":"Query is required"}`, rec.Body.String(), body)
			}
			assert.Equal(t, before, atomic.LoadInt32(&tc.stub.calls))
		})

		t.Run(tc.name+" invalid body", func(t *testing.T) {
			for _, body := range []string{`{"query":`, `{"query":42}`, `["query"]`} {
				rec := post(tc.handler, tc.path, body)

				assert.Equal(t, http.StatusBadRequest, rec.Code, body)
				assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String(), body)
			}
		})
	}
}

func TestTextRelayNoAnswer(t *testing.T) {
	f := newFixture()
	f.deepseek.answer = ""

	rec := post(f.handlers.DeepSeekHandler, "/deepseek", `{"query":"hi"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"No answer"}`, rec.Body.String())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.VendorRequests().WithLabelValues("/deepseek", vendors.VendorDeepSeek, monitoring.OutcomeNoAnswer)))
}

func TestTextRelayProviderFailureHidesVendorText(t *testing.T) {
	f := newFixture()
	f.gemini.err = &vendors.VendorError{Vendor: vendors.VendorGemini, Message: "API key not valid. Please pass a valid API key."}

	rec := post(f.handlers.GeminiHandler, "/gemini", `{"query":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "API key")

	require.Len(t, f.usage.entries, 1)
	entry := f.usage.entries[0]
	assert.Equal(t, "/gemini", entry.Route)
	assert.Equal(t, vendors.VendorGemini, entry.Vendor)
	assert.Equal(t, http.StatusInternalServerError, entry.StatusCode)
	assert.Equal(t, monitoring.OutcomeError, entry.Outcome)
	assert.Contains(t, entry.ErrorMessage, "API key not valid")
	assert.Equal(t, "test", entry.Environment)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.VendorRequests().WithLabelValues("/gemini", vendors.VendorGemini, monitoring.OutcomeError)))
}

func TestDALLEHandler(t *testing.T) {
	f := newFixture()

	rec := post(f.handlers.DALLEHandler, "/dalle", `{"prompt":"a fox"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://x/img.png"}`, rec.Body.String())

	rec = post(f.handlers.DALLEHandler, "/dalle", `{"query":"a fox"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Prompt is required"}`, rec.Body.String())

	rec = post(f.handlers.DALLEHandler, "/dalle", `{"Prompt":"a fox"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Prompt is required"}`, rec.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.dalle.calls))

	f.dalle.err = stderrors.New("content policy violation")
	rec = post(f.handlers.DALLEHandler, "/dalle", `{"prompt":"a fox"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestRemoveBGHandler(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		providerErr  error
		expectedCode int
		expectedBody string
		expectCall   bool
	}{
		{name: "success", body: `{"imageUrl":"https://example.com/cat.jpg"}`, expectedCode: http.StatusOK, expectCall: true},
		{name: "missing", body: `{}`, expectedCode: http.StatusBadRequest, expectedBody: `{"error":"imageUrl is required"}`},
		{name: "wrong field name", body: `{"image_url":"https://example.com/cat.jpg"}`, expectedCode: http.StatusBadRequest, expectedBody: `{"error":"imageUrl is required"}`},
		{name: "lower case key", body: `{"imageurl":"https://example.com/cat.jpg"}`, expectedCode: http.StatusBadRequest, expectedBody: `{"error":"imageUrl is required"}`},
		{name: "capitalized key", body: `{"ImageUrl":"https://example.com/cat.jpg"}`, expectedCode: http.StatusBadRequest, expectedBody: `{"error":"imageUrl is required"}`},
		{name: "not a url", body: `{"imageUrl":"cat.jpg"}`, expectedCode: http.StatusBadRequest, expectedBody: `{"error":"imageUrl must be a valid URL"}`},
		{name: "vendor failure", body: `{"imageUrl":"https://example.com/cat.jpg"}`, providerErr: stderrors.New("402 insufficient credits"), expectedCode: http.StatusInternalServerError, expectedBody: `{"error":"Failed to remove background"}`, expectCall: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.removebg.err = tc.providerErr

			rec := post(f.handlers.RemoveBGHandler, "/removebg", tc.body)

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectCall {
				assert.Equal(t, int32(1), atomic.LoadInt32(&f.removebg.calls))
			} else {
				assert.Equal(t, int32(0), atomic.LoadInt32(&f.removebg.calls))
			}

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
				return
			}
			assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
			assert.Equal(t, f.removebg.data, rec.Body.Bytes())
		})
	}
}

func TestRequestIDReachesUsageLog(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, "/chatgpt", strings.NewReader(`{"query":"hi"}`))
	req = req.WithContext(logger.WithRequestID(req.Context(), "req-42"))
	rec := httptest.NewRecorder()
	f.handlers.ChatGPTHandler(rec, req)

	require.Len(t, f.usage.entries, 1)
	assert.Equal(t, "req-42", f.usage.entries[0].RequestID)
	assert.Equal(t, vendors.VendorOpenAI+"-model", f.usage.entries[0].Model)
	assert.Equal(t, monitoring.OutcomeSuccess, f.usage.entries[0].Outcome)
}

func TestNewAPIHandlersDefaults(t *testing.T) {
	h := NewAPIHandlers(Dependencies{Vendors: &vendors.Set{}})

	assert.NotNil(t, h.metrics)
	assert.IsType(t, database.NoopRecorder{}, h.usage)
	assert.Equal(t, "unknown", h.version)
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
