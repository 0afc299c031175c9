package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/aashari/go-ai-proxy-server/internal/config"
	"github.com/aashari/go-ai-proxy-server/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.Config{Level: logger.LevelError, Format: "json", Output: "stderr"}); err != nil {
		panic(err)
	}
	m.Run()
}

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Port = 0

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}

func TestAppWithoutCredentials(t *testing.T) {
	h := newTestApp(t, nil).Handler()

	testCases := []struct {
		path         string
		body         string
		expectedBody string
	}{
		{"/chatgpt", `{"query":"hi"}`, `{"error":"Internal Server Error"}`},
		{"/deepseek", `{"query":"hi"}`, `{"error":"Internal Server Error"}`},
		{"/gemini", `{"query":"hi"}`, `{"error":"Internal Server Error"}`},
		{"/dalle", `{"prompt":"hi"}`, `{"error":"Internal Server Error"}`},
		{"/removebg", `{"imageUrl":"https://example.com/a.jpg"}`, `{"error":"Failed to remove background"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tc.path, tc.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}

	rec := do(t, h, http.MethodGet, "/health", "")
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health["status"])
	assert.Equal(t, "missing_key", health["services"].(map[string]interface{})["openai"])
	assert.Equal(t, "disabled", health["services"].(map[string]interface{})["database"])
}

func TestAppSystemRoutes(t *testing.T) {
	h := newTestApp(t, nil).Handler()

	rec := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "✅ AI Proxy Server Running!", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/favicon.ico", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodOptions, "/chatgpt", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAppValidationBeforeVendor(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer upstream.Close()

	h := newTestApp(t, func(cfg *config.Config) {
		cfg.Vendors.OpenAI.APIKey = "sk-test"
		cfg.Vendors.OpenAI.BaseURL = upstream.URL
		cfg.Vendors.DeepSeek.APIKey = "ds-test"
		cfg.Vendors.DeepSeek.BaseURL = upstream.URL
	}).Handler()

	assert.JSONEq(t, `{"error":"Query is required"}`, do(t, h, http.MethodPost, "/chatgpt", `{}`).Body.String())
	assert.JSONEq(t, `{"error":"Query is required"}`, do(t, h, http.MethodPost, "/deepseek", ``).Body.String())
	assert.JSONEq(t, `{"error":"Prompt is required"}`, do(t, h, http.MethodPost, "/dalle", `{"query":"x"}`).Body.String())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestAppBodyLimit(t *testing.T) {
	h := newTestApp(t, func(cfg *config.Config) {
		cfg.Server.MaxRequestBodySize = 16
	}).Handler()

	rec := do(t, h, http.MethodPost, "/chatgpt", `{"query":"`+strings.Repeat("a", 64)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, rec.Body.String())
}

func TestAppConcurrentRequestsAreIndependent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)

		content := ""
		if len(req.Messages) > 0 {
			content = "echo:" + req.Messages[0].Content
		}
		answer, _ := json.Marshal(content)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%s}}]}`, answer)
	}))
	defer upstream.Close()

	h := newTestApp(t, func(cfg *config.Config) {
		cfg.Vendors.OpenAI.APIKey = "sk-test"
		cfg.Vendors.OpenAI.BaseURL = upstream.URL
	}).Handler()

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		query := fmt.Sprintf("question-%d", i)
		g.Go(func() error {
			rec := do(t, h, http.MethodPost, "/chatgpt", `{"query":"`+query+`"}`)
			if rec.Code != http.StatusOK {
				return fmt.Errorf("%s: status %d", query, rec.Code)
			}
			var resp struct {
				Answer string `json:"answer"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				return err
			}
			if resp.Answer != "echo:"+query {
				return fmt.Errorf("%s: got answer %q", query, resp.Answer)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestAppCloseWithoutDatabase(t *testing.T) {
	a, err := NewApp(context.Background(), config.DefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, a.Database)
	assert.NoError(t, a.Close(context.Background()))
}
