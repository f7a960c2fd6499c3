package middleware

import (
	"net/http"

	"speaker-booking/pkg/utils"

	"go.uber.org/zap"
)

// Recover converts handler panics into a logged 500 with the shared
// response envelope, so a panicking booking request cannot take the
// server down or leak a stack trace to the client.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					utils.ResponseInternalError(w, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
