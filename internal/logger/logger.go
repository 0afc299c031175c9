package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aashari/go-ai-proxy-server/internal/utils"
)

// Logger levels
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Global logger instance
var Logger *slog.Logger

// loggerMu guards Init against the lazy default set up by WithContext
var loggerMu sync.RWMutex

// Service configuration
var (
	ServiceName = "ai-proxy-server"
	Environment = "development"
)

// Config configures the global logger
type Config struct {
	Level       slog.Level
	Format      string // "json" or "text"
	Output      string // "stdout", "stderr", or file path
	TimeFormat  string
	ServiceName string
	Environment string
}

// Default configuration
var DefaultConfig = Config{
	Level:       LevelInfo,
	Format:      "json",
	Output:      "stdout",
	TimeFormat:  time.RFC3339,
	ServiceName: "ai-proxy-server",
	Environment: "development",
}

// StructuredLogEntry is one line of JSON log output
type StructuredLogEntry struct {
	Timestamp   string                 `json:"timestamp"`
	Level       string                 `json:"level"`
	Message     string                 `json:"message"`
	Service     string                 `json:"service"`
	Environment string                 `json:"environment"`
	Component   string                 `json:"component,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	Request     map[string]interface{} `json:"request,omitempty"`
	Response    map[string]interface{} `json:"response,omitempty"`
	Error       map[string]interface{} `json:"error,omitempty"`
}

// Init initializes the global logger
func Init(config Config) error {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	return initLocked(config)
}

func initLocked(config Config) error {
	output, err := openOutput(config.Output)
	if err != nil {
		return err
	}

	ServiceName = config.ServiceName
	Environment = config.Environment

	Logger = slog.New(NewHandler(output, config))
	return nil
}

// NewHandler builds the slog.Handler for the given configuration, writing to w
func NewHandler(w io.Writer, config Config) slog.Handler {
	if config.Format == "text" {
		timeFormat := config.TimeFormat
		if timeFormat == "" {
			timeFormat = time.RFC3339
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: config.Level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("timestamp", a.Value.Time().Format(timeFormat))
				}
				return a
			},
		})
	}

	return &StructuredJSONHandler{
		writer:      w,
		mu:          &sync.Mutex{},
		level:       config.Level,
		timeFormat:  config.TimeFormat,
		serviceName: config.ServiceName,
		environment: config.Environment,
	}
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "stdout", "":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", output, err)
		}
		return f, nil
	}
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// StructuredJSONHandler writes records as StructuredLogEntry lines,
// routing request_*, response_* and error_* attributes into their own sections.
type StructuredJSONHandler struct {
	writer      io.Writer
	mu          *sync.Mutex
	level       slog.Leveler
	timeFormat  string
	serviceName string
	environment string
	attrs       []slog.Attr
}

func (h *StructuredJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

func (h *StructuredJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *StructuredJSONHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *StructuredJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	timeFormat := h.timeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	entry := StructuredLogEntry{
		Timestamp:   r.Time.Format(timeFormat),
		Level:       r.Level.String(),
		Message:     r.Message,
		Service:     h.serviceName,
		Environment: h.environment,
	}

	section := func(m *map[string]interface{}) map[string]interface{} {
		if *m == nil {
			*m = make(map[string]interface{})
		}
		return *m
	}

	if ctx != nil {
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			section(&entry.Request)["request_id"] = requestID
		}
		if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok && correlationID != "" {
			section(&entry.Request)["correlation_id"] = correlationID
		}
		if component, ok := ctx.Value(ComponentKey).(string); ok {
			entry.Component = component
		}
		if route, ok := ctx.Value(RouteKey).(string); ok {
			section(&entry.Attributes)["route"] = route
		}
		if vendor, ok := ctx.Value(VendorKey).(string); ok {
			section(&entry.Attributes)["vendor"] = vendor
		}
		if model, ok := ctx.Value(ModelKey).(string); ok {
			section(&entry.Attributes)["model"] = model
		}
	}

	route := func(a slog.Attr) bool {
		key := a.Key
		value := a.Value.Any()

		switch {
		case key == "component":
			entry.Component = fmt.Sprintf("%v", value)
		case strings.HasPrefix(key, "request_"):
			section(&entry.Request)[strings.TrimPrefix(key, "request_")] = value
		case strings.HasPrefix(key, "response_"):
			section(&entry.Response)[strings.TrimPrefix(key, "response_")] = value
		case strings.HasPrefix(key, "error_"):
			section(&entry.Error)[strings.TrimPrefix(key, "error_")] = value
		case key == "error":
			if err, ok := value.(error); ok {
				section(&entry.Error)["message"] = err.Error()
				section(&entry.Error)["type"] = fmt.Sprintf("%T", err)
			} else {
				section(&entry.Error)["message"] = fmt.Sprintf("%v", value)
			}
		default:
			if d, ok := value.(time.Duration); ok {
				value = d.Milliseconds()
			}
			section(&entry.Attributes)[key] = value
		}
		return true
	}

	for _, a := range h.attrs {
		route(a)
	}
	r.Attrs(route)

	if entry.Attributes != nil {
		entry.Attributes = utils.TruncateBase64InData(entry.Attributes).(map[string]interface{})
	}
	if entry.Response != nil {
		entry.Response = utils.TruncateBase64InData(entry.Response).(map[string]interface{})
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.writer.Write(append(data, '\n'))
	return err
}

// WithContext returns the global logger, initializing a default one on first use
func WithContext(ctx context.Context) *slog.Logger {
	loggerMu.RLock()
	current := Logger
	loggerMu.RUnlock()
	if current != nil {
		return current
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if Logger == nil {
		if err := initLocked(DefaultConfig); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize default logger: %v\n", err)
			return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelDebug}))
		}
	}
	return Logger
}

// Convenience functions for logging without a request context

func Debug(msg string, args ...any) {
	WithContext(context.Background()).Debug(msg, args...)
}

func Info(msg string, args ...any) {
	WithContext(context.Background()).Info(msg, args...)
}

func Warn(msg string, args ...any) {
	WithContext(context.Background()).Warn(msg, args...)
}

func Error(msg string, args ...any) {
	WithContext(context.Background()).Error(msg, args...)
}

// Context-aware convenience functions. Request, correlation, vendor and
// model values stored on ctx are added to the entry by the handler.

func DebugCtx(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).DebugContext(ctx, msg, args...)
}

func InfoCtx(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).InfoContext(ctx, msg, args...)
}

func WarnCtx(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).WarnContext(ctx, msg, args...)
}

func ErrorCtx(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).ErrorContext(ctx, msg, args...)
}

// LogError logs a failed operation with its component and details
func LogError(ctx context.Context, component string, err error, details map[string]any) {
	args := make([]any, 0, 4+2*len(details))
	args = append(args, "component", component, "error", err)
	for k, v := range details {
		args = append(args, k, v)
	}
	ErrorCtx(ctx, "Operation failed", args...)
}
