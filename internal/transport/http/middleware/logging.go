package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

// Logging writes one structured line per request. Server errors are logged at
// error level.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		fields := []logger.Field{
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", sw.status),
			logger.Duration("dur", time.Since(start)),
		}
		if id := chimw.GetReqID(r.Context()); id != "" {
			fields = append(fields, logger.String("request_id", id))
		}

		if sw.status >= http.StatusInternalServerError {
			logger.Error(r.Context(), "http request", fields...)
			return
		}
		logger.Info(r.Context(), "http request", fields...)
	})
}
