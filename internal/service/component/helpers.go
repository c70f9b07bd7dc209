package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/lifecycle"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

// transition runs authorize -> load -> find -> fn -> apply -> save under
// the service lock.
func (svc *service) transition(
	ctx context.Context,
	op string,
	creds model.Credentials,
	role model.Role,
	id uuid.UUID,
	fn func(rec model.Record) (model.Mutation, error),
) (*model.TransitionResult, error) {
	log := logger.With(
		logger.String("record_id", id.String()),
		logger.String("user", creds.Username),
	)

	if err := svc.authorize(ctx, role, creds); err != nil {
		log.Warn(ctx, "authorize", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.load(ctx)
	if err != nil {
		log.Error(ctx, "store load", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := lifecycle.Find(records, id)
	if err != nil {
		log.Warn(ctx, "find record", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	mut, err := fn(rec)
	if err != nil {
		log.Warn(ctx, "lifecycle transition",
			logger.String("status", string(rec.Status)),
			logger.ErrorF(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.persist(ctx, records, mut); err != nil {
		log.Error(ctx, "persist record", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "record updated",
		logger.String("from", string(rec.Status)),
		logger.String("to", string(mut.Record.Status)),
		logger.String("mutation", string(mut.Kind)),
	)
	return &model.TransitionResult{Record: mut.Record, Warnings: mut.Warnings}, nil
}

func (svc *service) authorize(ctx context.Context, role model.Role, creds model.Credentials) error {
	ok, err := svc.credentials.Authenticate(ctx, role, creds)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q as %s", model.ErrUnauthorized, creds.Username, role)
	}
	return nil
}

func (svc *service) load(ctx context.Context) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	return svc.store.Load(ctx)
}

// snapshot loads under the lock so readers never see a half-written cycle
// of this process.
func (svc *service) snapshot(ctx context.Context) ([]model.Record, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	return svc.load(ctx)
}

func (svc *service) persist(ctx context.Context, records []model.Record, mut model.Mutation) error {
	next, err := lifecycle.Apply(records, mut)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	if ms, ok := svc.store.(MutationStore); ok {
		return ms.ApplyMutation(ctx, mut)
	}
	return svc.store.Save(ctx, next)
}

// storeAttachment writes the upload and checks it can be found again.
func (svc *service) storeAttachment(ctx context.Context, img *model.Upload) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.writeTimeout)
	defer cancel()

	path, err := svc.attachments.Store(ctx, img.Content, img.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	ok, err := svc.attachments.Exists(ctx, path)
	if err != nil {
		return "", &model.OrphanedAttachmentError{Path: path, Err: fmt.Errorf("%w: %w", model.ErrStoreRead, err)}
	}
	if !ok {
		return "", fmt.Errorf("%w: attachment %s missing after store", model.ErrStoreWrite, path)
	}
	return path, nil
}

// orphaned marks err as leaving an attachment behind when one was stored.
func (svc *service) orphaned(path string, err error) error {
	if path == "" {
		return err
	}
	return &model.OrphanedAttachmentError{Path: path, Err: err}
}
