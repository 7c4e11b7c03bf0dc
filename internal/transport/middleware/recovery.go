package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/financeflow/internal"
)

// RecoveryMiddleware converts panics into the standard error envelope
// so clients never see a half-written response body.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					appErr := internal.NewInternalError("internal server error", fmt.Errorf("panic: %v", rec))
					status, body := appErr.ToHTTPResponse()

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					_ = json.NewEncoder(w).Encode(body)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
