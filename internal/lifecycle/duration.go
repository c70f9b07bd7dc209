package lifecycle

import (
	"time"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

// Duration is delivery_date (or today) minus withdrawal_date in whole days.
// Unreadable dates yield an unknown duration instead of an error.
func (c *Controller) Duration(rec model.Record) model.ProcessDuration {
	start, ok := rec.WithdrawalDate.Time()
	if !ok {
		return model.ProcessDuration{}
	}

	var end time.Time
	if rec.DeliveryDate.IsZero() {
		end, _ = c.Today().Time()
	} else if end, ok = rec.DeliveryDate.Time(); !ok {
		return model.ProcessDuration{}
	}

	return model.ProcessDuration{
		Days:  int(end.Sub(start).Hours() / 24),
		Known: true,
	}
}

func (c *Controller) View(rec model.Record) model.ComponentView {
	return model.ComponentView{Record: rec, Duration: c.Duration(rec)}
}
