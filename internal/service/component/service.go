package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/lifecycle"
	"github.com/RamonCharlles/Gestao-componentes/internal/metrics"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type RecordStore interface {
	Load(ctx context.Context) ([]model.Record, error)
	Save(ctx context.Context, records []model.Record) error
}

// MutationStore is implemented by stores that can persist one change
// in place. The service prefers it over rewriting the whole set.
type MutationStore interface {
	ApplyMutation(ctx context.Context, mut model.Mutation) error
}

type CredentialStore interface {
	Authenticate(ctx context.Context, role model.Role, creds model.Credentials) (bool, error)
}

type AttachmentStore interface {
	Store(ctx context.Context, content io.Reader, suggestedName string) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

type Notifier interface {
	NotifyRegistered(ctx context.Context, rec model.Record) error
}

type service struct {
	// Serializes every load-mutate-save cycle of this process.
	mu sync.Mutex

	store       RecordStore
	credentials CredentialStore
	attachments AttachmentStore
	notifier    Notifier
	ctrl        *lifecycle.Controller

	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewComponentService(
	store RecordStore,
	credentials CredentialStore,
	attachments AttachmentStore,
	notifier Notifier,
	ctrl *lifecycle.Controller,
	readTimeout time.Duration,
	writeTimeout time.Duration,
) *service {
	return &service{
		store:        store,
		credentials:  credentials,
		attachments:  attachments,
		notifier:     notifier,
		ctrl:         ctrl,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (svc *service) Create(ctx context.Context, params model.CreateParams) (res *model.CreateResult, err error) {
	const op = "component.service.Create"
	log := logger.With(
		logger.String("part_number", params.PartNumber),
		logger.String("equipment_tag", params.EquipmentTag),
		logger.Bool("with_image", params.Image != nil),
	)
	defer func() { metrics.ObserveOperation("create", err) }()

	if err := svc.ctrl.ValidateCreate(params); err != nil {
		log.Warn(ctx, "validate create", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.load(ctx)
	if err != nil {
		log.Error(ctx, "store load", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var imagePath string
	if params.Image != nil {
		imagePath, err = svc.storeAttachment(ctx, params.Image)
		if err != nil {
			log.Error(ctx, "store attachment", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log = log.With(logger.String("image_path", imagePath))
	}

	mut, err := svc.ctrl.Create(params, imagePath)
	if err != nil {
		log.Warn(ctx, "lifecycle create", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, svc.orphaned(imagePath, err))
	}

	if err := svc.persist(ctx, records, mut); err != nil {
		log.Error(ctx, "persist record", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, svc.orphaned(imagePath, err))
	}

	res = &model.CreateResult{
		Record:   mut.Record,
		Summary:  lifecycle.Summary(mut.Record),
		Warnings: mut.Warnings,
	}

	if err := svc.notifier.NotifyRegistered(ctx, mut.Record); err != nil {
		log.Warn(ctx, "notify registered", logger.ErrorF(err))
		res.NotificationError = fmt.Errorf("%w: %w", model.ErrNotification, err)
	}
	metrics.ObserveNotification(res.NotificationError)

	log.Info(ctx, "component registered", logger.String("record_id", mut.Record.ID.String()))
	return res, nil
}

// List returns the matching records with their process duration. Nil
// status or tag sets stand for every known value.
func (svc *service) List(ctx context.Context, filter model.RecordsFilter) ([]model.ComponentView, error) {
	const op = "component.service.List"

	records, err := svc.snapshot(ctx)
	if err != nil {
		logger.Error(ctx, "store load", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if filter.Statuses == nil {
		filter.Statuses = model.AllStatuses()
	}
	if filter.Tags == nil {
		filter.Tags = lifecycle.Tags(records)
	}

	matched := lifecycle.Filter(records, filter)
	views := make([]model.ComponentView, len(matched))
	for i := range matched {
		views[i] = svc.ctrl.View(matched[i])
	}
	return views, nil
}

func (svc *service) RecordByID(ctx context.Context, id uuid.UUID) (*model.ComponentView, error) {
	const op = "component.service.RecordByID"
	log := logger.With(logger.String("record_id", id.String()))

	records, err := svc.snapshot(ctx)
	if err != nil {
		log.Error(ctx, "store load", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := lifecycle.Find(records, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view := svc.ctrl.View(rec)
	return &view, nil
}

// Tags lists equipment tags present in the store, for filter defaults.
func (svc *service) Tags(ctx context.Context) ([]string, error) {
	const op = "component.service.Tags"

	records, err := svc.snapshot(ctx)
	if err != nil {
		logger.Error(ctx, "store load", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lifecycle.Tags(records), nil
}

func (svc *service) Ship(ctx context.Context, creds model.Credentials, params model.ShipParams) (res *model.TransitionResult, err error) {
	const op = "component.service.Ship"
	defer func() { metrics.ObserveOperation("ship", err) }()

	return svc.transition(ctx, op, creds, model.RoleSupervisor, params.ID, func(rec model.Record) (model.Mutation, error) {
		return svc.ctrl.Ship(rec, params)
	})
}

func (svc *service) Cancel(ctx context.Context, creds model.Credentials, params model.CancelParams) (res *model.TransitionResult, err error) {
	const op = "component.service.Cancel"
	defer func() { metrics.ObserveOperation("cancel", err) }()

	return svc.transition(ctx, op, creds, model.RoleSupervisor, params.ID, func(rec model.Record) (model.Mutation, error) {
		return svc.ctrl.Cancel(rec, params)
	})
}

func (svc *service) Deliver(ctx context.Context, creds model.Credentials, params model.DeliverParams) (res *model.TransitionResult, err error) {
	const op = "component.service.Deliver"
	defer func() { metrics.ObserveOperation("deliver", err) }()

	return svc.transition(ctx, op, creds, model.RoleSupervisor, params.ID, func(rec model.Record) (model.Mutation, error) {
		return svc.ctrl.Deliver(rec, params)
	})
}

func (svc *service) DeliverDirect(ctx context.Context, creds model.Credentials, params model.DeliverParams) (res *model.TransitionResult, err error) {
	const op = "component.service.DeliverDirect"
	defer func() { metrics.ObserveOperation("deliver_direct", err) }()

	return svc.transition(ctx, op, creds, model.RoleSupervisor, params.ID, func(rec model.Record) (model.Mutation, error) {
		return svc.ctrl.DeliverDirect(rec, params)
	})
}

// Purge removes a terminal record. Its attachment is deleted afterwards on
// a best-effort basis.
func (svc *service) Purge(ctx context.Context, creds model.Credentials, params model.PurgeParams) (err error) {
	const op = "component.service.Purge"
	log := logger.With(logger.String("record_id", params.ID.String()))
	defer func() { metrics.ObserveOperation("purge", err) }()

	res, err := svc.transition(ctx, op, creds, model.RoleAdministrator, params.ID, func(rec model.Record) (model.Mutation, error) {
		return svc.ctrl.Purge(rec, params)
	})
	if err != nil {
		return err
	}

	if res.Record.HasImage() {
		if err := svc.attachments.Delete(ctx, res.Record.ImagePath); err != nil {
			log.Warn(ctx, "delete attachment of purged record",
				logger.String("image_path", res.Record.ImagePath),
				logger.ErrorF(err),
			)
		}
	}
	return nil
}

// Image opens the attachment of a record. The caller closes the reader.
func (svc *service) Image(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	const op = "component.service.Image"
	log := logger.With(logger.String("record_id", id.String()))

	records, err := svc.snapshot(ctx)
	if err != nil {
		log.Error(ctx, "store load", logger.ErrorF(err))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	rec, err := lifecycle.Find(records, id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if !rec.HasImage() {
		return nil, "", fmt.Errorf("%s: %w: record %s has no image", op, model.ErrAttachmentNotFound, id)
	}

	rc, err := svc.attachments.Open(ctx, rec.ImagePath)
	if err != nil {
		log.Error(ctx, "open attachment", logger.String("image_path", rec.ImagePath), logger.ErrorF(err))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return rc, rec.ImagePath, nil
}

func (svc *service) Report(ctx context.Context, creds model.Credentials) (*model.StatusReport, error) {
	const op = "component.service.Report"

	if err := svc.authorize(ctx, model.RoleAdministrator, creds); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := svc.snapshot(ctx)
	if err != nil {
		logger.Error(ctx, "store load", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report := svc.ctrl.Report(records)
	return &report, nil
}

// Records returns the full ordered record set for administrator export.
func (svc *service) Records(ctx context.Context, creds model.Credentials) ([]model.Record, error) {
	const op = "component.service.Records"

	if err := svc.authorize(ctx, model.RoleAdministrator, creds); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := svc.snapshot(ctx)
	if err != nil {
		logger.Error(ctx, "store load", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}
