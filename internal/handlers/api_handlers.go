package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aashari/go-ai-proxy-server/internal/database"
	"github.com/aashari/go-ai-proxy-server/internal/errors"
	"github.com/aashari/go-ai-proxy-server/internal/logger"
	"github.com/aashari/go-ai-proxy-server/internal/monitoring"
	"github.com/aashari/go-ai-proxy-server/internal/types"
	"github.com/aashari/go-ai-proxy-server/internal/validator"
	"github.com/aashari/go-ai-proxy-server/internal/vendors"
)

// Client-facing messages
const (
	MessageQueryRequired            = "Query is required"
	MessagePromptRequired           = "Prompt is required"
	MessageImageURLRequired         = "imageUrl is required"
	MessageBackgroundRemovalFailure = "Failed to remove background"
	RootBanner                      = "✅ AI Proxy Server Running!"
)

// RouteSpec describes how a relay route reports missing input and provider failure
type RouteSpec struct {
	Route          string
	MissingMessage string
	FailureMessage string
}

var (
	chatGPTRoute  = RouteSpec{Route: "/chatgpt", MissingMessage: MessageQueryRequired, FailureMessage: errors.MessageInternalServerError}
	dalleRoute    = RouteSpec{Route: "/dalle", MissingMessage: MessagePromptRequired, FailureMessage: errors.MessageInternalServerError}
	deepSeekRoute = RouteSpec{Route: "/deepseek", MissingMessage: MessageQueryRequired, FailureMessage: errors.MessageInternalServerError}
	geminiRoute   = RouteSpec{Route: "/gemini", MissingMessage: MessageQueryRequired, FailureMessage: errors.MessageInternalServerError}
	removeBGRoute = RouteSpec{Route: "/removebg", MissingMessage: MessageImageURLRequired, FailureMessage: MessageBackgroundRemovalFailure}
)

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies are the collaborators shared by every handler
type Dependencies struct {
	Vendors   *vendors.Set
	Metrics   *monitoring.Metrics
	Usage     database.UsageRecorder
	KeyStatus map[string]bool
	// Database is nil when usage logging is disabled
	Database    HealthChecker
	Version     string
	Environment string
}

// APIHandlers contains the dependencies needed for API handlers
type APIHandlers struct {
	vendors     *vendors.Set
	metrics     *monitoring.Metrics
	usage       database.UsageRecorder
	keyStatus   map[string]bool
	database    HealthChecker
	version     string
	environment string
	startTime   time.Time
}

// NewAPIHandlers creates a new APIHandlers instance
func NewAPIHandlers(deps Dependencies) *APIHandlers {
	h := &APIHandlers{
		vendors:     deps.Vendors,
		metrics:     deps.Metrics,
		usage:       deps.Usage,
		keyStatus:   deps.KeyStatus,
		database:    deps.Database,
		version:     deps.Version,
		environment: deps.Environment,
		startTime:   time.Now(),
	}
	if h.metrics == nil {
		h.metrics = monitoring.NewMetrics(nil)
	}
	if h.usage == nil {
		h.usage = database.NoopRecorder{}
	}
	if h.version == "" {
		h.version = "unknown"
	}
	return h
}

// ChatGPTHandler answers a query with the OpenAI chat model
// @Summary      Ask ChatGPT
// @Description  Relays the query to OpenAI chat completions (gpt-4o-mini) and returns the first answer
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        request  body      types.TextQueryRequest    true  "Query"
// @Success      200      {object}  types.TextAnswerResponse  "Answer, or \"No answer\""
// @Failure      400      {object}  errors.ErrorResponse      "Query is required"
// @Failure      500      {object}  errors.ErrorResponse      "Internal Server Error"
// @Router       /chatgpt [post]
func (h *APIHandlers) ChatGPTHandler(w http.ResponseWriter, r *http.Request) {
	h.relayText(w, r, chatGPTRoute, h.vendors.ChatGPT)
}

// DALLEHandler generates an image from a prompt
// @Summary      Generate an image
// @Description  Relays the prompt to OpenAI image generation (gpt-image-1, 512x512) and returns the image URL
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        request  body      types.ImagePromptRequest  true  "Prompt"
// @Success      200      {object}  types.ImageURLResponse    "Image URL"
// @Failure      400      {object}  errors.ErrorResponse      "Prompt is required"
// @Failure      500      {object}  errors.ErrorResponse      "Internal Server Error"
// @Router       /dalle [post]
func (h *APIHandlers) DALLEHandler(w http.ResponseWriter, r *http.Request) {
	h.relayImage(w, r, dalleRoute, h.vendors.DALLE)
}

// DeepSeekHandler answers a query with DeepSeek
// @Summary      Ask DeepSeek
// @Description  Relays the query to the DeepSeek completions endpoint and returns the first choice text
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        request  body      types.TextQueryRequest    true  "Query"
// @Success      200      {object}  types.TextAnswerResponse  "Answer, or \"No answer\""
// @Failure      400      {object}  errors.ErrorResponse      "Query is required"
// @Failure      500      {object}  errors.ErrorResponse      "Internal Server Error"
// @Router       /deepseek [post]
func (h *APIHandlers) DeepSeekHandler(w http.ResponseWriter, r *http.Request) {
	h.relayText(w, r, deepSeekRoute, h.vendors.DeepSeek)
}

// GeminiHandler answers a query with Gemini
// @Summary      Ask Gemini
// @Description  Relays the query to Gemini (gemini-1.5-flash) and returns the response text
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        request  body      types.TextQueryRequest    true  "Query"
// @Success      200      {object}  types.TextAnswerResponse  "Answer, or \"No answer\""
// @Failure      400      {object}  errors.ErrorResponse      "Query is required"
// @Failure      500      {object}  errors.ErrorResponse      "Internal Server Error"
// @Router       /gemini [post]
func (h *APIHandlers) GeminiHandler(w http.ResponseWriter, r *http.Request) {
	h.relayText(w, r, geminiRoute, h.vendors.Gemini)
}

// RemoveBGHandler removes the background of a remote image
// @Summary      Remove image background
// @Description  Relays the image URL to remove.bg and streams back the processed PNG
// @Tags         relay
// @Accept       json
// @Produce      png
// @Param        request  body      types.BackgroundRemovalRequest  true  "Image URL"
// @Success      200      {file}    binary                          "PNG image"
// @Failure      400      {object}  errors.ErrorResponse            "imageUrl is required"
// @Failure      500      {object}  errors.ErrorResponse            "Failed to remove background"
// @Router       /removebg [post]
func (h *APIHandlers) RemoveBGHandler(w http.ResponseWriter, r *http.Request) {
	var req types.BackgroundRemovalRequest
	if !decodeRequest(w, r, &req, removeBGRoute) {
		return
	}

	provider := h.vendors.RemoveBG
	ctx := relayContext(r.Context(), removeBGRoute, provider)
	start := time.Now()

	image, err := provider.RemoveBackground(ctx, req.ImageURL)
	if err != nil {
		h.fail(ctx, w, removeBGRoute, provider, start, err)
		return
	}

	h.observe(ctx, removeBGRoute, provider, http.StatusOK, monitoring.OutcomeSuccess, start, nil)

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image); err != nil {
		logger.WarnCtx(ctx, "Failed to write image response", "error", err, "response_size", len(image))
	}
}

func (h *APIHandlers) relayText(w http.ResponseWriter, r *http.Request, spec RouteSpec, provider vendors.TextGenerator) {
	var req types.TextQueryRequest
	if !decodeRequest(w, r, &req, spec) {
		return
	}

	ctx := relayContext(r.Context(), spec, provider)
	start := time.Now()

	answer, err := provider.GenerateText(ctx, req.Query)
	if err != nil {
		h.fail(ctx, w, spec, provider, start, err)
		return
	}

	outcome := monitoring.OutcomeSuccess
	if answer == "" {
		answer = types.NoAnswer
		outcome = monitoring.OutcomeNoAnswer
	}
	h.observe(ctx, spec, provider, http.StatusOK, outcome, start, nil)

	writeJSON(ctx, w, http.StatusOK, types.TextAnswerResponse{Answer: answer})
}

func (h *APIHandlers) relayImage(w http.ResponseWriter, r *http.Request, spec RouteSpec, provider vendors.ImageGenerator) {
	var req types.ImagePromptRequest
	if !decodeRequest(w, r, &req, spec) {
		return
	}

	ctx := relayContext(r.Context(), spec, provider)
	start := time.Now()

	url, err := provider.GenerateImage(ctx, req.Prompt)
	if err != nil {
		h.fail(ctx, w, spec, provider, start, err)
		return
	}

	h.observe(ctx, spec, provider, http.StatusOK, monitoring.OutcomeSuccess, start, nil)

	writeJSON(ctx, w, http.StatusOK, types.ImageURLResponse{URL: url})
}

// decodeRequest reads and validates the body into dst, writing the 4xx
// response itself. It reports whether the handler should continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, spec RouteSpec) bool {
	if apiErr := validator.DecodeJSON(r, dst); apiErr != nil {
		errors.HandleError(w, apiErr)
		return false
	}

	if violation := validator.Struct(dst); violation != nil {
		errors.HandleError(w, errors.NewValidationError(violation.Message(spec.MissingMessage)))
		return false
	}

	return true
}

func relayContext(ctx context.Context, spec RouteSpec, provider vendors.Provider) context.Context {
	ctx = logger.WithComponent(ctx, logger.ComponentNames.Handler)
	ctx = logger.WithRoute(ctx, spec.Route)
	return logger.WithVendor(ctx, provider.Name(), provider.Model())
}

// fail logs the vendor failure and answers with the route's fixed message.
// Vendor text never reaches the client.
func (h *APIHandlers) fail(ctx context.Context, w http.ResponseWriter, spec RouteSpec, provider vendors.Provider, start time.Time, err error) {
	logger.ErrorCtx(ctx, "Vendor call failed",
		"error", err,
		"duration", time.Since(start),
	)

	h.observe(ctx, spec, provider, http.StatusInternalServerError, monitoring.OutcomeError, start, err)

	errors.HandleError(w, errors.NewExternalError(spec.FailureMessage, err))
}

func (h *APIHandlers) observe(ctx context.Context, spec RouteSpec, provider vendors.Provider, status int, outcome string, start time.Time, err error) {
	duration := time.Since(start)

	h.metrics.RecordVendorCall(spec.Route, provider.Name(), provider.Model(), outcome, duration)

	entry := database.UsageLog{
		RequestID:   logger.RequestIDFromContext(ctx),
		Route:       spec.Route,
		Vendor:      provider.Name(),
		Model:       provider.Model(),
		StatusCode:  status,
		Outcome:     outcome,
		DurationMs:  duration.Milliseconds(),
		Environment: h.environment,
		Version:     h.version,
		RequestedAt: start.UTC(),
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}
	h.usage.Record(entry)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WarnCtx(ctx, "Failed to write response", "error", err)
	}
}
