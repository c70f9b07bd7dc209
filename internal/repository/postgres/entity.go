package repository

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

const table = "components"

var columns = []string{
	"id", "position", "version",
	"responsible_name", "badge_id", "part_number", "description", "equipment_tag",
	"hour_meter", "failure_description", "service_scope", "image_path",
	"withdrawal_order", "withdrawal_date", "status",
	"shipment_reference", "shipment_note", "shipment_date", "delivery_date",
	"cancelled", "cancellation_reason",
}

type componentEntity struct {
	ID                 uuid.UUID
	Position           int64
	Version            int64
	ResponsibleName    string
	BadgeID            string
	PartNumber         string
	Description        string
	EquipmentTag       string
	HourMeter          float64
	FailureDescription string
	ServiceScope       string
	ImagePath          string
	WithdrawalOrder    string
	WithdrawalDate     string
	Status             string
	ShipmentReference  string
	ShipmentNote       string
	ShipmentDate       string
	DeliveryDate       string
	Cancelled          bool
	CancellationReason string
}

func (e *componentEntity) scanTargets() []any {
	return []any{
		&e.ID, &e.Position, &e.Version,
		&e.ResponsibleName, &e.BadgeID, &e.PartNumber, &e.Description, &e.EquipmentTag,
		&e.HourMeter, &e.FailureDescription, &e.ServiceScope, &e.ImagePath,
		&e.WithdrawalOrder, &e.WithdrawalDate, &e.Status,
		&e.ShipmentReference, &e.ShipmentNote, &e.ShipmentDate, &e.DeliveryDate,
		&e.Cancelled, &e.CancellationReason,
	}
}

func (e *componentEntity) values() []any {
	return []any{
		e.ID, e.Position, e.Version,
		e.ResponsibleName, e.BadgeID, e.PartNumber, e.Description, e.EquipmentTag,
		e.HourMeter, e.FailureDescription, e.ServiceScope, e.ImagePath,
		e.WithdrawalOrder, e.WithdrawalDate, e.Status,
		e.ShipmentReference, e.ShipmentNote, e.ShipmentDate, e.DeliveryDate,
		e.Cancelled, e.CancellationReason,
	}
}

func modelToEntity(rec model.Record, position int) componentEntity {
	return componentEntity{
		ID:                 rec.ID,
		Position:           int64(position),
		Version:            rec.Version,
		ResponsibleName:    rec.ResponsibleName,
		BadgeID:            rec.BadgeID,
		PartNumber:         rec.PartNumber,
		Description:        rec.Description,
		EquipmentTag:       rec.EquipmentTag,
		HourMeter:          rec.HourMeter,
		FailureDescription: rec.FailureDescription,
		ServiceScope:       rec.ServiceScope,
		ImagePath:          rec.ImagePath,
		WithdrawalOrder:    rec.WithdrawalOrder,
		WithdrawalDate:     rec.WithdrawalDate.String(),
		Status:             string(rec.Status),
		ShipmentReference:  rec.ShipmentReference,
		ShipmentNote:       rec.ShipmentNote,
		ShipmentDate:       rec.ShipmentDate.String(),
		DeliveryDate:       rec.DeliveryDate.String(),
		Cancelled:          rec.Cancelled,
		CancellationReason: rec.CancellationReason,
	}
}

func entityToModel(e componentEntity) (model.Record, error) {
	status, err := model.ParseStatus(e.Status)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: component %s: %v", model.ErrStoreCorrupt, e.ID, err)
	}

	return model.Record{
		ID:                 e.ID,
		Version:            e.Version,
		ResponsibleName:    e.ResponsibleName,
		BadgeID:            e.BadgeID,
		PartNumber:         e.PartNumber,
		Description:        e.Description,
		EquipmentTag:       e.EquipmentTag,
		HourMeter:          e.HourMeter,
		FailureDescription: e.FailureDescription,
		ServiceScope:       e.ServiceScope,
		ImagePath:          e.ImagePath,
		WithdrawalOrder:    e.WithdrawalOrder,
		WithdrawalDate:     model.Date(e.WithdrawalDate),
		Status:             status,
		ShipmentReference:  e.ShipmentReference,
		ShipmentNote:       e.ShipmentNote,
		ShipmentDate:       model.Date(e.ShipmentDate),
		DeliveryDate:       model.Date(e.DeliveryDate),
		Cancelled:          e.Cancelled,
		CancellationReason: e.CancellationReason,
	}, nil
}
