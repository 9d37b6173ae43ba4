package middleware

import (
	"net/http"

	"github.com/frahmantamala/trip-management/pkg/logger"

	"github.com/google/uuid"
)

// RequestID makes sure every request carries an X-Trace-ID. A caller-supplied
// header is kept so the frontend can correlate its own traces, otherwise a
// fresh UUID is minted. The ID rides the request-scoped logger and is echoed
// in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
