package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/aashari/go-ai-proxy-server/internal/errors"
	"github.com/aashari/go-ai-proxy-server/internal/logger"
)

// RecoveryMiddleware turns a handler panic into a generic 500 response.
// The panic value and stack are logged; clients only see the generic message.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// Let the server abort the connection as it would without us
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.ErrorCtx(logger.WithComponent(r.Context(), logger.ComponentNames.Middleware),
				"Panic in handler",
				"error", fmt.Errorf("panic: %v", rec),
				"request_method", r.Method,
				"request_path", r.URL.Path,
				"error_stack", string(debug.Stack()),
			)

			errors.HandleError(w, errors.NewInternalError(fmt.Errorf("panic: %v", rec)))
		}()

		next.ServeHTTP(w, r)
	})
}
