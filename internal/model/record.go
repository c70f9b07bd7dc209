package model

import (
	"github.com/google/uuid"
)

// Record is one tracked component from field removal to its terminal state.
type Record struct {
	ID      uuid.UUID
	Version int64

	ResponsibleName    string
	BadgeID            string
	PartNumber         string
	Description        string
	EquipmentTag       string
	HourMeter          float64
	FailureDescription string
	ServiceScope       string
	// Empty when no attachment was uploaded.
	ImagePath       string
	WithdrawalOrder string
	WithdrawalDate  Date

	Status Status

	ShipmentReference string
	ShipmentNote      string
	ShipmentDate      Date
	DeliveryDate      Date

	Cancelled          bool
	CancellationReason string
}

func (r Record) HasImage() bool { return r.ImagePath != "" }

// Eligible for purge.
func (r Record) Purgeable() bool {
	return r.Status == StatusDelivered || r.Cancelled
}
