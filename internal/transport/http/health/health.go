package health

import (
	"context"
	"net/http"
	"time"

	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

const checkTimeout = 2 * time.Second

// Check reports whether a dependency can serve requests.
type Check func(ctx context.Context) error

// NewHealthCheck answers SERVING while every check passes and NOT_SERVING
// with 503 otherwise.
func NewHealthCheck(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		status, body := http.StatusOK, "SERVING"
		for _, check := range checks {
			if err := check(ctx); err != nil {
				logger.Error(r.Context(), "health check", logger.ErrorF(err))
				status, body = http.StatusServiceUnavailable, "NOT_SERVING"
				break
			}
		}

		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			logger.Error(r.Context(), "health check", logger.ErrorF(err))
		}
	}
}
