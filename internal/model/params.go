package model

import (
	"io"

	"github.com/google/uuid"
)

type Upload struct {
	Name    string
	Content io.Reader
}

type CreateParams struct {
	ResponsibleName    string
	BadgeID            string
	PartNumber         string
	Description        string
	EquipmentTag       string
	HourMeter          float64
	FailureDescription string
	ServiceScope       string
	WithdrawalOrder    string
	WithdrawalDate     Date
	// Optional.
	Image *Upload
}

type CreateResult struct {
	Record   Record
	Summary  string
	Warnings []Warning
	// Set when the record was saved but the dispatcher failed.
	NotificationError error
}

type ShipParams struct {
	ID              uuid.UUID
	ExpectedVersion int64
	// StatusAwaitingReturn or StatusSentForRefurbishment.
	Target    Status
	Reference string
	Note      string
	Date      Date
}

type CancelParams struct {
	ID              uuid.UUID
	ExpectedVersion int64
	Reason          string
}

type DeliverParams struct {
	ID              uuid.UUID
	ExpectedVersion int64
	Date            Date
}

type PurgeParams struct {
	ID              uuid.UUID
	ExpectedVersion int64
}

type TransitionResult struct {
	Record   Record
	Warnings []Warning
}
