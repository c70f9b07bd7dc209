package model

import (
	"time"

	"github.com/google/uuid"
)

type ComponentRegistered struct {
	EventID         uuid.UUID
	OccurredAt      time.Time
	RecordID        uuid.UUID
	PartNumber      string
	Description     string
	EquipmentTag    string
	Responsible     string
	WithdrawalOrder string
	WithdrawalDate  Date
	HasImage        bool
}

// ComponentRegisteredNotification is the view rendered into chat messages.
type ComponentRegisteredNotification struct {
	RecordID        string
	PartNumber      string
	Description     string
	EquipmentTag    string
	Responsible     string
	WithdrawalOrder string
	WithdrawalDate  string
	HasImage        bool
}
