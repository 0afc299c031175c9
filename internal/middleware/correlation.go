package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aashari/go-ai-proxy-server/internal/logger"
	"github.com/aashari/go-ai-proxy-server/internal/utils"
)

// Header constants
const (
	RequestIDHeader     = "X-Request-ID"
	CorrelationIDHeader = "X-Correlation-ID"
)

// maxTrackingIDLength bounds client-provided IDs before they reach logs
const maxTrackingIDLength = 128

// RequestCorrelationMiddleware assigns request and correlation IDs, exposes them
// on the response and the request context, and writes one access log line per request.
//
// Request ID priority: client X-Request-ID, then a generated UUID.
// Correlation ID priority: client X-Correlation-ID, then the request ID.
func RequestCorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID, correlationID := extractTrackingIDs(r)

		w.Header().Set(RequestIDHeader, requestID)
		w.Header().Set(CorrelationIDHeader, correlationID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		ctx = logger.WithCorrelationID(ctx, correlationID)

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r.WithContext(ctx))

		logCtx := logger.WithComponent(ctx, logger.ComponentNames.Middleware)
		fields := []any{
			"request_method", r.Method,
			"request_path", r.URL.Path,
			"request_client_ip", getClientIP(r),
			"request_user_agent", r.UserAgent(),
			"request_headers", sanitizeHeaders(r.Header),
			"response_status_code", wrapper.statusCode,
			"response_bytes", wrapper.bytes,
			"response_duration_ms", time.Since(start).Milliseconds(),
		}

		// Health probes only surface when they fail
		if r.URL.Path == "/health" && wrapper.statusCode < http.StatusBadRequest {
			logger.DebugCtx(logCtx, "Request completed", fields...)
			return
		}
		if wrapper.statusCode >= http.StatusInternalServerError {
			logger.WarnCtx(logCtx, "Request failed", fields...)
			return
		}
		logger.InfoCtx(logCtx, "Request completed", fields...)
	})
}

func extractTrackingIDs(r *http.Request) (requestID, correlationID string) {
	requestID = sanitizeTrackingID(r.Header.Get(RequestIDHeader))
	if requestID == "" {
		requestID = uuid.New().String()
	}

	correlationID = sanitizeTrackingID(r.Header.Get(CorrelationIDHeader))
	if correlationID == "" {
		correlationID = requestID
	}
	return requestID, correlationID
}

func sanitizeTrackingID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > maxTrackingIDLength {
		id = id[:maxTrackingIDLength]
	}
	return id
}

// sanitizeHeaders flattens headers for logging with credentials redacted
func sanitizeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		if utils.IsSensitiveHeader(name) {
			out[name] = "[REDACTED]"
			continue
		}
		out[name] = values[0]
	}
	return out
}

// getClientIP extracts client IP with priority cascade
func getClientIP(r *http.Request) string {
	// Priority: X-Forwarded-For > X-Real-IP > CF-Connecting-IP > RemoteAddr
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		return strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if cfIP := r.Header.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}
	return r.RemoteAddr
}

// responseWriterWrapper records status and size while passing writes through
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	bytes       int
	wroteHeader bool
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(data []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(data)
	w.bytes += n
	return n, err
}

// Flush implements http.Flusher
func (w *responseWriterWrapper) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *responseWriterWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
