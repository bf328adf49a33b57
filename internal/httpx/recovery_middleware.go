package httpx

import (
	"net/http"

	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panic into a logged 500. It expects to run inside
// RequestIDMiddleware; when it does not, the id already set on the response
// header is used instead.
func RecoveryMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := wrap(w)
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					if RequestIDFrom(r) == "" {
						if id := rw.Header().Get(RequestIDHeader); id != "" {
							r = r.WithContext(ContextWithRequestID(r.Context(), id))
						}
					}
					logger.Error("panic recovered",
						zap.String("request_id", RequestIDFrom(r)),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("error", err),
						zap.Stack("stack"),
					)
					if !rw.wroteHeader() {
						JSONError(rw, r, http.StatusInternalServerError, CodeInternal, "An internal error occurred")
					}
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
