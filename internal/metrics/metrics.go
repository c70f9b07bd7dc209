// Package metrics exposes the tracker's Prometheus collectors.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

const namespace = "component_tracker"

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Lifecycle operations by name and outcome.",
		},
		[]string{"operation", "result"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Registration notifications by outcome.",
		},
		[]string{"result"},
	)

	orphanedAttachmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphaned_attachments_total",
		Help:      "Attachments stored while the owning record save failed.",
	})
)

// ObserveOperation counts one finished operation under a result label
// derived from the error kind.
func ObserveOperation(operation string, err error) {
	operationsTotal.WithLabelValues(operation, Result(err)).Inc()
	if errors.Is(err, model.ErrOrphanedAttachment) {
		orphanedAttachmentsTotal.Inc()
	}
}

func ObserveNotification(err error) {
	notificationsTotal.WithLabelValues(Result(err)).Inc()
}

func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrValidation):
		return "invalid"
	case errors.Is(err, model.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, model.ErrConflict):
		return "conflict"
	case errors.Is(err, model.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, model.ErrRecordNotFound), errors.Is(err, model.ErrAttachmentNotFound):
		return "not_found"
	default:
		return "error"
	}
}
