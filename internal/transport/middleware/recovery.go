package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/trip-management/pkg/logger"
)

// Recovery turns a handler panic into a plain 500 response. The panic value
// and stack go to the request-scoped logger, never to the client.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.From(r.Context()).Error("panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"code":500,"message":"internal server error"}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
