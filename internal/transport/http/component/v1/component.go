package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

const (
	maxUploadSize = 10 << 20
	imageField    = "image"
)

type ComponentService interface {
	Create(ctx context.Context, params model.CreateParams) (*model.CreateResult, error)
	List(ctx context.Context, filter model.RecordsFilter) ([]model.ComponentView, error)
	RecordByID(ctx context.Context, id uuid.UUID) (*model.ComponentView, error)
	Tags(ctx context.Context) ([]string, error)
	Ship(ctx context.Context, creds model.Credentials, params model.ShipParams) (*model.TransitionResult, error)
	Cancel(ctx context.Context, creds model.Credentials, params model.CancelParams) (*model.TransitionResult, error)
	Deliver(ctx context.Context, creds model.Credentials, params model.DeliverParams) (*model.TransitionResult, error)
	DeliverDirect(ctx context.Context, creds model.Credentials, params model.DeliverParams) (*model.TransitionResult, error)
	Purge(ctx context.Context, creds model.Credentials, params model.PurgeParams) error
	Image(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
	Report(ctx context.Context, creds model.Credentials) (*model.StatusReport, error)
	Records(ctx context.Context, creds model.Credentials) ([]model.Record, error)
}

type ExportService interface {
	Export(format model.ExportFormat, records []model.Record) (*model.ExportFile, error)
}

type handler struct {
	svc      ComponentService
	exporter ExportService
}

func NewComponentHandler(service ComponentService, exporter ExportService) *handler {
	return &handler{svc: service, exporter: exporter}
}

// Routes mounts the v1 API under the given router.
func (h *handler) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/components", func(r chi.Router) {
			r.Post("/", h.CreateComponent)
			r.Get("/", h.ListComponents)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetComponent)
				r.Delete("/", h.PurgeComponent)
				r.Get("/image", h.GetImage)
				r.Post("/ship", h.ShipComponent)
				r.Post("/cancel", h.CancelComponent)
				r.Post("/deliver", h.DeliverComponent)
				r.Post("/deliver-direct", h.DeliverComponentDirect)
			})
		})
		r.Get("/tags", h.ListTags)
		r.Get("/reports/status", h.StatusReport)
		r.Get("/export", h.Export)
	})
}

func (h *handler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	params, err := decodeCreate(w, r)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", model.ErrValidation, err))
		return
	}

	res, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := createResponse{
		Component: recordToResponse(res.Record),
		Summary:   res.Summary,
		Warnings:  warningsToResponse(res.Warnings),
	}
	if res.NotificationError != nil {
		resp.NotificationError = res.NotificationError.Error()
	}
	writeJSON(w, r, http.StatusCreated, resp)
}

func (h *handler) ListComponents(w http.ResponseWriter, r *http.Request) {
	filter, err := decodeFilter(r)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", model.ErrValidation, err))
		return
	}

	views, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, listResponse{Items: viewsToResponse(views), Total: len(views)})
}

func (h *handler) GetComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.RecordByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, viewToResponse(*view))
}

func (h *handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Tags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tagsResponse{Tags: tags})
}

func (h *handler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rc, path, err := h.svc.Image(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rc.Close()

	name := filepath.Base(path)
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		logger.Error(r.Context(), "stream image", logger.String("record_id", id.String()), logger.ErrorF(err))
	}
}

func (h *handler) ShipComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req shipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var target model.Status
	if strings.TrimSpace(req.Target) != "" {
		var err error
		if target, err = model.ParseStatus(req.Target); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", model.ErrValidation, err))
			return
		}
	}

	res, err := h.svc.Ship(r.Context(), credentials(r), model.ShipParams{
		ID:              id,
		ExpectedVersion: req.ExpectedVersion,
		Target:          target,
		Reference:       req.Reference,
		Note:            req.Note,
		Date:            model.Date(req.Date),
	})
	writeTransition(w, r, res, err)
}

func (h *handler) CancelComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req cancelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Cancel(r.Context(), credentials(r), model.CancelParams{
		ID:              id,
		ExpectedVersion: req.ExpectedVersion,
		Reason:          req.Reason,
	})
	writeTransition(w, r, res, err)
}

func (h *handler) DeliverComponent(w http.ResponseWriter, r *http.Request) {
	h.deliver(w, r, h.svc.Deliver)
}

func (h *handler) DeliverComponentDirect(w http.ResponseWriter, r *http.Request) {
	h.deliver(w, r, h.svc.DeliverDirect)
}

func (h *handler) deliver(
	w http.ResponseWriter,
	r *http.Request,
	call func(context.Context, model.Credentials, model.DeliverParams) (*model.TransitionResult, error),
) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req deliverRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := call(r.Context(), credentials(r), model.DeliverParams{
		ID:              id,
		ExpectedVersion: req.ExpectedVersion,
		Date:            model.Date(req.Date),
	})
	writeTransition(w, r, res, err)
}

func (h *handler) PurgeComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var expected int64
	if raw := r.URL.Query().Get("expected_version"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid expected_version", model.ErrValidation))
			return
		}
		expected = v
	}

	if err := h.svc.Purge(r.Context(), credentials(r), model.PurgeParams{ID: id, ExpectedVersion: expected}); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) StatusReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(r.Context(), credentials(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reportToResponse(report))
}

func (h *handler) Export(w http.ResponseWriter, r *http.Request) {
	format := model.ExportFormat(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = model.ExportCSV
	}

	records, err := h.svc.Records(r.Context(), credentials(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	file, err := h.exporter.Export(format, records)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		logger.Error(r.Context(), "write export", logger.ErrorF(err))
	}
}

func decodeCreate(w http.ResponseWriter, r *http.Request) (model.CreateParams, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "multipart/form-data" {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return model.CreateParams{}, fmt.Errorf("invalid json body: %w", err)
		}
		return req.toParams(), nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return model.CreateParams{}, fmt.Errorf("invalid multipart body: %w", err)
	}

	req := createRequest{
		ResponsibleName:    r.FormValue("responsible_name"),
		BadgeID:            r.FormValue("badge_id"),
		PartNumber:         r.FormValue("part_number"),
		Description:        r.FormValue("description"),
		EquipmentTag:       r.FormValue("equipment_tag"),
		FailureDescription: r.FormValue("failure_description"),
		ServiceScope:       r.FormValue("service_scope"),
		WithdrawalOrder:    r.FormValue("withdrawal_order"),
		WithdrawalDate:     r.FormValue("withdrawal_date"),
	}
	if raw := strings.TrimSpace(r.FormValue("hour_meter")); raw != "" {
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			return model.CreateParams{}, fmt.Errorf("hour_meter %q is not a number", raw)
		}
		req.HourMeter = v
	}
	params := req.toParams()

	file, header, err := r.FormFile(imageField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return model.CreateParams{}, fmt.Errorf("invalid image: %w", err)
	default:
		// The multipart form keeps the file open until the request ends.
		params.Image = &model.Upload{Name: header.Filename, Content: file}
	}

	return params, nil
}

// decodeFilter reads status, tag, from and to. Absent status or tag means
// "all"; repeated or comma separated values are accepted.
func decodeFilter(r *http.Request) (model.RecordsFilter, error) {
	q := r.URL.Query()
	var f model.RecordsFilter

	if raw := splitValues(q["status"]); raw != nil {
		f.Statuses = make([]model.Status, 0, len(raw))
		for _, s := range raw {
			st, err := model.ParseStatus(s)
			if err != nil {
				return f, err
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	f.Tags = splitValues(q["tag"])

	for name, dst := range map[string]*model.Date{"from": &f.From, "to": &f.To} {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		d, ok := model.ParseDate(raw)
		if !ok {
			return f, fmt.Errorf("%s must be YYYY-MM-DD", name)
		}
		*dst = d
	}
	return f, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func credentials(r *http.Request) model.Credentials {
	user, secret, _ := r.BasicAuth()
	return model.Credentials{Username: user, Secret: secret}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid component id",
		})
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid json body: %v", model.ErrValidation, err))
		return false
	}
	return true
}

func writeTransition(w http.ResponseWriter, r *http.Request, res *model.TransitionResult, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, transitionResponse{
		Component: recordToResponse(res.Record),
		Warnings:  warningsToResponse(res.Warnings),
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(r.Context(), "encode response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Basic realm="components"`)
	}
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.ErrorF(err))
	}
	writeJSON(w, r, status, errorResponse{Code: status, Message: err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest // 400
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized // 401
	case errors.Is(err, model.ErrRecordNotFound), errors.Is(err, model.ErrAttachmentNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, model.ErrInvalidTransition), errors.Is(err, model.ErrConflict):
		return http.StatusConflict // 409
	case errors.Is(err, model.ErrStoreRead), errors.Is(err, model.ErrStoreWrite):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
