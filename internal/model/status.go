package model

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusAwaitingShipment     Status = "AWAITING_SHIPMENT"
	StatusAwaitingReturn       Status = "AWAITING_RETURN"
	StatusSentForRefurbishment Status = "SENT_FOR_REFURBISHMENT"
	StatusDelivered            Status = "DELIVERED"
	StatusCancelled            Status = "CANCELLED"
)

var statusLabels = map[Status]string{
	StatusAwaitingShipment:     "Aguardando Envio",
	StatusAwaitingReturn:       "Aguardando Retorno",
	StatusSentForRefurbishment: "Enviado para Reforma",
	StatusDelivered:            "Componente Entregue",
	StatusCancelled:            "Cancelado",
}

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusAwaitingShipment,
		StatusAwaitingReturn,
		StatusSentForRefurbishment,
		StatusDelivered,
		StatusCancelled,
	}
}

// Label is the human-facing text, also used as the on-disk encoding.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus accepts either the label or the enum name, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for s, l := range statusLabels {
		if strings.EqualFold(raw, l) || strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}
