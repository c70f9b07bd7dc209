package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

// EventTypeComponentRegistered is carried in the "event_type" header.
const EventTypeComponentRegistered = "component.registered"

type componentRegisteredEvent struct {
	EventID         string    `json:"event_id"`
	OccurredAt      time.Time `json:"occurred_at"`
	RecordID        string    `json:"record_id"`
	PartNumber      string    `json:"part_number"`
	Description     string    `json:"description"`
	EquipmentTag    string    `json:"equipment_tag"`
	Responsible     string    `json:"responsible"`
	WithdrawalOrder string    `json:"withdrawal_order"`
	WithdrawalDate  string    `json:"withdrawal_date"`
	HasImage        bool      `json:"has_image"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) ComponentRegisteredToPayload(e model.ComponentRegistered) ([]byte, error) {
	payload, err := json.Marshal(componentRegisteredEvent{
		EventID:         e.EventID.String(),
		OccurredAt:      e.OccurredAt.UTC(),
		RecordID:        e.RecordID.String(),
		PartNumber:      e.PartNumber,
		Description:     e.Description,
		EquipmentTag:    e.EquipmentTag,
		Responsible:     e.Responsible,
		WithdrawalOrder: e.WithdrawalOrder,
		WithdrawalDate:  e.WithdrawalDate.String(),
		HasImage:        e.HasImage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal component registered: %w", err)
	}
	return payload, nil
}

func (c *kafkaConverter) PayloadToComponentRegistered(data []byte) (model.ComponentRegistered, error) {
	var ev componentRegisteredEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return model.ComponentRegistered{}, fmt.Errorf("failed to unmarshal component registered: %w", err)
	}

	eventID, err := uuid.Parse(ev.EventID)
	if err != nil {
		return model.ComponentRegistered{}, fmt.Errorf("event_id: %w", err)
	}
	recordID, err := uuid.Parse(ev.RecordID)
	if err != nil {
		return model.ComponentRegistered{}, fmt.Errorf("record_id: %w", err)
	}

	return model.ComponentRegistered{
		EventID:         eventID,
		OccurredAt:      ev.OccurredAt,
		RecordID:        recordID,
		PartNumber:      ev.PartNumber,
		Description:     ev.Description,
		EquipmentTag:    ev.EquipmentTag,
		Responsible:     ev.Responsible,
		WithdrawalOrder: ev.WithdrawalOrder,
		WithdrawalDate:  model.Date(ev.WithdrawalDate),
		HasImage:        ev.HasImage,
	}, nil
}

// RecordToComponentRegistered stamps a fresh event for a new record.
func RecordToComponentRegistered(rec model.Record, eventID uuid.UUID, at time.Time) model.ComponentRegistered {
	return model.ComponentRegistered{
		EventID:         eventID,
		OccurredAt:      at,
		RecordID:        rec.ID,
		PartNumber:      rec.PartNumber,
		Description:     rec.Description,
		EquipmentTag:    rec.EquipmentTag,
		Responsible:     rec.ResponsibleName,
		WithdrawalOrder: rec.WithdrawalOrder,
		WithdrawalDate:  rec.WithdrawalDate,
		HasImage:        rec.HasImage(),
	}
}
