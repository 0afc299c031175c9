package logger

import "context"

type contextKey string

// Context keys read by StructuredJSONHandler
const (
	RequestIDKey     contextKey = "request_id"
	CorrelationIDKey contextKey = "correlation_id"
	ComponentKey     contextKey = "component"
	RouteKey         contextKey = "route"
	VendorKey        contextKey = "vendor"
	ModelKey         contextKey = "model"
)

// WithRequestID stores the request ID on the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestIDFromContext returns the request ID, or "" if none was set
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, ComponentKey, component)
}

// WithRoute stores the relay route (e.g. "/chatgpt") on the context
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, RouteKey, route)
}

// WithVendor stores the upstream vendor and model on the context
func WithVendor(ctx context.Context, vendor, model string) context.Context {
	ctx = context.WithValue(ctx, VendorKey, vendor)
	if model != "" {
		ctx = context.WithValue(ctx, ModelKey, model)
	}
	return ctx
}
