package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

// Create builds a new record in AWAITING_SHIPMENT. imagePath is the already
// stored attachment, or "" when there is none.
func (c *Controller) Create(p model.CreateParams, imagePath string) (model.Mutation, error) {
	if err := c.ValidateCreate(p); err != nil {
		return model.Mutation{}, err
	}

	withdrawal, _ := model.ParseDate(string(p.WithdrawalDate))
	rec := model.Record{
		ID:                 c.newID(),
		Version:            1,
		ResponsibleName:    strings.TrimSpace(p.ResponsibleName),
		BadgeID:            strings.TrimSpace(p.BadgeID),
		PartNumber:         strings.TrimSpace(p.PartNumber),
		Description:        strings.TrimSpace(p.Description),
		EquipmentTag:       strings.TrimSpace(p.EquipmentTag),
		HourMeter:          p.HourMeter,
		FailureDescription: strings.TrimSpace(p.FailureDescription),
		ServiceScope:       strings.TrimSpace(p.ServiceScope),
		ImagePath:          imagePath,
		WithdrawalOrder:    strings.TrimSpace(p.WithdrawalOrder),
		WithdrawalDate:     withdrawal,
		Status:             model.StatusAwaitingShipment,
	}

	var warnings []model.Warning
	if t, ok := withdrawal.Time(); ok {
		if today, _ := c.Today().Time(); t.After(today) {
			warnings = append(warnings, model.Warning("withdrawal_date is in the future"))
		}
	}

	return model.Mutation{Kind: model.MutationInsert, Record: rec, Warnings: warnings}, nil
}

// Ship moves an AWAITING_SHIPMENT record to the explicitly chosen target.
func (c *Controller) Ship(rec model.Record, p model.ShipParams) (model.Mutation, error) {
	if err := checkVersion(rec, p.ExpectedVersion); err != nil {
		return model.Mutation{}, err
	}
	if rec.Status != model.StatusAwaitingShipment {
		return model.Mutation{}, invalidTransition("ship", rec.Status)
	}

	errs := requireText(
		field{"shipment_reference", p.Reference},
		field{"shipment_note", p.Note},
	)
	if err := requireDate("shipment_date", p.Date); err != nil {
		errs = append(errs, err)
	}
	switch p.Target {
	case model.StatusAwaitingReturn, model.StatusSentForRefurbishment:
	case "":
		errs = append(errs, errors.New("target status is required"))
	default:
		errs = append(errs, fmt.Errorf("target status %s is not a shipment state", p.Target))
	}
	if err := joinValidation(errs); err != nil {
		return model.Mutation{}, err
	}

	next := rec
	next.Status = p.Target
	next.ShipmentReference = strings.TrimSpace(p.Reference)
	next.ShipmentNote = strings.TrimSpace(p.Note)
	next.ShipmentDate, _ = model.ParseDate(string(p.Date))
	next.Version++

	return model.Mutation{Kind: model.MutationReplace, Record: next, Warnings: dateOrderWarnings(next)}, nil
}

// Cancel checks the reason before the state guard: a blank reason is always
// a validation failure.
func (c *Controller) Cancel(rec model.Record, p model.CancelParams) (model.Mutation, error) {
	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		return model.Mutation{}, joinValidation([]error{errors.New("cancellation_reason is required")})
	}
	if err := checkVersion(rec, p.ExpectedVersion); err != nil {
		return model.Mutation{}, err
	}

	switch rec.Status {
	case model.StatusAwaitingShipment, model.StatusAwaitingReturn, model.StatusSentForRefurbishment:
	default:
		return model.Mutation{}, invalidTransition("cancel", rec.Status)
	}

	next := rec
	next.Status = model.StatusCancelled
	next.Cancelled = true
	next.CancellationReason = reason
	next.Version++

	return model.Mutation{Kind: model.MutationReplace, Record: next}, nil
}

// Deliver closes the two-step path: AWAITING_RETURN -> DELIVERED.
func (c *Controller) Deliver(rec model.Record, p model.DeliverParams) (model.Mutation, error) {
	if err := checkVersion(rec, p.ExpectedVersion); err != nil {
		return model.Mutation{}, err
	}
	if rec.Status != model.StatusAwaitingReturn {
		return model.Mutation{}, invalidTransition("deliver", rec.Status)
	}
	return c.deliver(rec, p)
}

// DeliverDirect skips return tracking: AWAITING_SHIPMENT or
// SENT_FOR_REFURBISHMENT -> DELIVERED.
func (c *Controller) DeliverDirect(rec model.Record, p model.DeliverParams) (model.Mutation, error) {
	if err := checkVersion(rec, p.ExpectedVersion); err != nil {
		return model.Mutation{}, err
	}
	switch rec.Status {
	case model.StatusAwaitingShipment, model.StatusSentForRefurbishment:
	default:
		return model.Mutation{}, invalidTransition("deliver directly", rec.Status)
	}
	return c.deliver(rec, p)
}

func (c *Controller) deliver(rec model.Record, p model.DeliverParams) (model.Mutation, error) {
	if err := requireDate("delivery_date", p.Date); err != nil {
		return model.Mutation{}, joinValidation([]error{err})
	}

	next := rec
	next.Status = model.StatusDelivered
	next.DeliveryDate, _ = model.ParseDate(string(p.Date))
	next.Version++

	return model.Mutation{Kind: model.MutationReplace, Record: next, Warnings: dateOrderWarnings(next)}, nil
}

// Purge removes a DELIVERED or cancelled record.
func (c *Controller) Purge(rec model.Record, p model.PurgeParams) (model.Mutation, error) {
	if err := checkVersion(rec, p.ExpectedVersion); err != nil {
		return model.Mutation{}, err
	}
	if !rec.Purgeable() {
		return model.Mutation{}, invalidTransition("purge", rec.Status)
	}
	return model.Mutation{Kind: model.MutationDelete, Record: rec}, nil
}

// dateOrderWarnings reports withdrawal <= shipment <= delivery violations.
// These never block a transition.
func dateOrderWarnings(rec model.Record) []model.Warning {
	type point struct {
		name string
		date model.Date
	}
	points := []point{
		{"withdrawal_date", rec.WithdrawalDate},
		{"shipment_date", rec.ShipmentDate},
		{"delivery_date", rec.DeliveryDate},
	}

	var warnings []model.Warning
	for i := 0; i < len(points); i++ {
		earlier, ok := points[i].date.Time()
		if !ok {
			continue
		}
		for j := i + 1; j < len(points); j++ {
			later, ok := points[j].date.Time()
			if !ok {
				continue
			}
			if later.Before(earlier) {
				warnings = append(warnings, model.Warning(fmt.Sprintf("%s %s is before %s %s",
					points[j].name, points[j].date, points[i].name, points[i].date)))
			}
		}
	}
	return warnings
}
