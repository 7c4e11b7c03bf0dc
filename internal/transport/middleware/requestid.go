package middleware

import (
	"net/http"

	"github.com/frahmantamala/financeflow/pkg/logger"

	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// RequestID tags every request with a trace id. Callers may supply
// their own via the X-Trace-ID header; otherwise one is generated.
// The id rides the context logger so every log line downstream
// carries it, and is echoed on the response for client correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		w.Header().Set(traceHeader, traceID)

		ctx := logger.With(r.Context(), "trace_id", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
