package http

import (
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createRequest struct {
	ResponsibleName    string  `json:"responsible_name"`
	BadgeID            string  `json:"badge_id"`
	PartNumber         string  `json:"part_number"`
	Description        string  `json:"description"`
	EquipmentTag       string  `json:"equipment_tag"`
	HourMeter          float64 `json:"hour_meter"`
	FailureDescription string  `json:"failure_description"`
	ServiceScope       string  `json:"service_scope"`
	WithdrawalOrder    string  `json:"withdrawal_order"`
	WithdrawalDate     string  `json:"withdrawal_date"`
}

type shipRequest struct {
	ExpectedVersion int64  `json:"expected_version"`
	Target          string `json:"target"`
	Reference       string `json:"shipment_reference"`
	Note            string `json:"shipment_note"`
	Date            string `json:"shipment_date"`
}

type cancelRequest struct {
	ExpectedVersion int64  `json:"expected_version"`
	Reason          string `json:"cancellation_reason"`
}

type deliverRequest struct {
	ExpectedVersion int64  `json:"expected_version"`
	Date            string `json:"delivery_date"`
}

type componentResponse struct {
	ID                 string  `json:"id"`
	Version            int64   `json:"version"`
	ResponsibleName    string  `json:"responsible_name"`
	BadgeID            string  `json:"badge_id"`
	PartNumber         string  `json:"part_number"`
	Description        string  `json:"description"`
	EquipmentTag       string  `json:"equipment_tag"`
	HourMeter          float64 `json:"hour_meter"`
	FailureDescription string  `json:"failure_description"`
	ServiceScope       string  `json:"service_scope"`
	HasImage           bool    `json:"has_image"`
	WithdrawalOrder    string  `json:"withdrawal_order"`
	WithdrawalDate     string  `json:"withdrawal_date"`
	Status             string  `json:"status"`
	StatusLabel        string  `json:"status_label"`
	ShipmentReference  string  `json:"shipment_reference,omitempty"`
	ShipmentNote       string  `json:"shipment_note,omitempty"`
	ShipmentDate       string  `json:"shipment_date,omitempty"`
	DeliveryDate       string  `json:"delivery_date,omitempty"`
	Cancelled          bool    `json:"cancelled"`
	CancellationReason string  `json:"cancellation_reason,omitempty"`
	DurationDays       *int    `json:"duration_days,omitempty"`
	Duration           *string `json:"duration,omitempty"`
}

type createResponse struct {
	Component         componentResponse `json:"component"`
	Summary           string            `json:"summary"`
	Warnings          []string          `json:"warnings,omitempty"`
	NotificationError string            `json:"notification_error,omitempty"`
}

type transitionResponse struct {
	Component componentResponse `json:"component"`
	Warnings  []string          `json:"warnings,omitempty"`
}

type listResponse struct {
	Items []componentResponse `json:"items"`
	Total int                 `json:"total"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type reportGroupResponse struct {
	Status      string              `json:"status"`
	StatusLabel string              `json:"status_label"`
	Count       int                 `json:"count"`
	Items       []componentResponse `json:"items"`
}

type reportResponse struct {
	Generated string                `json:"generated"`
	Groups    []reportGroupResponse `json:"groups"`
}

func (r createRequest) toParams() model.CreateParams {
	return model.CreateParams{
		ResponsibleName:    r.ResponsibleName,
		BadgeID:            r.BadgeID,
		PartNumber:         r.PartNumber,
		Description:        r.Description,
		EquipmentTag:       r.EquipmentTag,
		HourMeter:          r.HourMeter,
		FailureDescription: r.FailureDescription,
		ServiceScope:       r.ServiceScope,
		WithdrawalOrder:    r.WithdrawalOrder,
		WithdrawalDate:     model.Date(r.WithdrawalDate),
	}
}

func recordToResponse(rec model.Record) componentResponse {
	return componentResponse{
		ID:                 rec.ID.String(),
		Version:            rec.Version,
		ResponsibleName:    rec.ResponsibleName,
		BadgeID:            rec.BadgeID,
		PartNumber:         rec.PartNumber,
		Description:        rec.Description,
		EquipmentTag:       rec.EquipmentTag,
		HourMeter:          rec.HourMeter,
		FailureDescription: rec.FailureDescription,
		ServiceScope:       rec.ServiceScope,
		HasImage:           rec.HasImage(),
		WithdrawalOrder:    rec.WithdrawalOrder,
		WithdrawalDate:     rec.WithdrawalDate.String(),
		Status:             string(rec.Status),
		StatusLabel:        rec.Status.Label(),
		ShipmentReference:  rec.ShipmentReference,
		ShipmentNote:       rec.ShipmentNote,
		ShipmentDate:       rec.ShipmentDate.String(),
		DeliveryDate:       rec.DeliveryDate.String(),
		Cancelled:          rec.Cancelled,
		CancellationReason: rec.CancellationReason,
	}
}

func viewToResponse(v model.ComponentView) componentResponse {
	resp := recordToResponse(v.Record)
	text := v.Duration.String()
	resp.Duration = &text
	if v.Duration.Known {
		days := v.Duration.Days
		resp.DurationDays = &days
	}
	return resp
}

func viewsToResponse(views []model.ComponentView) []componentResponse {
	out := make([]componentResponse, len(views))
	for i := range views {
		out[i] = viewToResponse(views[i])
	}
	return out
}

func warningsToResponse(ws []model.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = string(w)
	}
	return out
}

func reportToResponse(r *model.StatusReport) reportResponse {
	groups := make([]reportGroupResponse, len(r.Groups))
	for i, g := range r.Groups {
		groups[i] = reportGroupResponse{
			Status:      string(g.Status),
			StatusLabel: g.Status.Label(),
			Count:       len(g.Items),
			Items:       viewsToResponse(g.Items),
		}
	}
	return reportResponse{Generated: r.Generated.String(), Groups: groups}
}
