package compproducer

import (
	"context"

	"github.com/RamonCharlles/Gestao-componentes/internal/lifecycle"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type logNotifier struct{}

// NewLogNotifier writes registrations to the process log instead of a broker.
func NewLogNotifier() *logNotifier { return &logNotifier{} }

func (logNotifier) NotifyRegistered(ctx context.Context, rec model.Record) error {
	logger.Info(ctx, "component registered",
		logger.String("record_id", rec.ID.String()),
		logger.String("equipment_tag", rec.EquipmentTag),
		logger.String("summary", lifecycle.Summary(rec)),
	)
	return nil
}
