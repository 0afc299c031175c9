package middleware

import "net/http"

// BodyLimitMiddleware caps request bodies at maxBytes. Reads beyond the cap
// fail with *http.MaxBytesError, which the JSON decoder maps to 413.
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
