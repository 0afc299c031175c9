package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aashari/go-ai-proxy-server/internal/handlers"
	"github.com/aashari/go-ai-proxy-server/internal/middleware"
	"github.com/aashari/go-ai-proxy-server/internal/monitoring"
)

// Options controls the optional routes
type Options struct {
	Metrics     *monitoring.Metrics
	EnablePprof bool
}

// SetupRoutes configures all routes for the application. The returned handler
// is the mux wrapped in panic recovery and the metrics middleware.
func SetupRoutes(apiHandlers *handlers.APIHandlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	// Relay routes
	mux.HandleFunc("POST /chatgpt", apiHandlers.ChatGPTHandler)
	mux.HandleFunc("POST /dalle", apiHandlers.DALLEHandler)
	mux.HandleFunc("POST /deepseek", apiHandlers.DeepSeekHandler)
	mux.HandleFunc("POST /gemini", apiHandlers.GeminiHandler)
	mux.HandleFunc("POST /removebg", apiHandlers.RemoveBGHandler)

	mux.HandleFunc("GET /{$}", apiHandlers.RootHandler)
	mux.HandleFunc("GET /favicon.ico", apiHandlers.FaviconHandler)
	mux.HandleFunc("GET /health", apiHandlers.HealthHandler)

	metrics := opts.Metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics(nil)
	}
	mux.Handle("GET /metrics", metrics.Handler())

	if opts.EnablePprof {
		monitoring.SetupPprofRoutes(mux)
	}

	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	return instrument(mux, metrics)
}

// instrument recovers handler panics inside the metrics middleware so a
// panicking route is still counted, as a 500 under its own pattern.
func instrument(mux *http.ServeMux, metrics *monitoring.Metrics) http.Handler {
	return metrics.Middleware(middleware.RecoveryMiddleware(mux))
}
