package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RamonCharlles/Gestao-componentes/internal/lifecycle"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/internal/service/mocks"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type deps struct {
	store       *mocks.MockRecordStore
	credentials *mocks.MockCredentialStore
	attachments *mocks.MockAttachmentStore
	notifier    *mocks.MockNotifier
}

func newDeps(t *testing.T) deps {
	return deps{
		store:       mocks.NewMockRecordStore(t),
		credentials: mocks.NewMockCredentialStore(t),
		attachments: mocks.NewMockAttachmentStore(t),
		notifier:    mocks.NewMockNotifier(t),
	}
}

func newSvc(d deps) *service {
	return NewComponentService(
		d.store,
		d.credentials,
		d.attachments,
		d.notifier,
		lifecycle.New(lifecycle.WithClock(func() time.Time { return fixedNow })),
		time.Second,
		time.Second,
	)
}

func validCreateParams() model.CreateParams {
	return model.CreateParams{
		ResponsibleName:    gofakeit.Name(),
		BadgeID:            gofakeit.Numerify("######"),
		PartNumber:         gofakeit.Numerify("PN-####"),
		Description:        gofakeit.ProductName(),
		EquipmentTag:       gofakeit.Numerify("TAG-###"),
		HourMeter:          gofakeit.Float64Range(0, 20000),
		FailureDescription: gofakeit.Sentence(6),
		ServiceScope:       gofakeit.Sentence(4),
		WithdrawalOrder:    gofakeit.Numerify("OS-#####"),
		WithdrawalDate:     "2024-06-01",
	}
}

func recordIn(status model.Status) model.Record {
	rec := model.Record{
		ID:              uuid.New(),
		Version:         2,
		ResponsibleName: gofakeit.Name(),
		PartNumber:      gofakeit.Numerify("PN-####"),
		Description:     gofakeit.ProductName(),
		EquipmentTag:    "CAT-793",
		WithdrawalDate:  "2024-06-01",
		Status:          status,
	}
	switch status {
	case model.StatusDelivered:
		rec.DeliveryDate = "2024-06-11"
	case model.StatusCancelled:
		rec.Cancelled, rec.CancellationReason = true, "sucata"
	}
	return rec
}

var (
	supervisor = model.Credentials{Username: "joao", Secret: "1234"}
	admin      = model.Credentials{Username: "admin", Secret: "root"}
)

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	existing := []model.Record{recordIn(model.StatusAwaitingReturn)}
	const imagePath = "images/uploads/20240615120000_foto_abcd1234.jpg"

	withImage := func() model.CreateParams {
		p := validCreateParams()
		p.Image = &model.Upload{Name: "foto.jpg", Content: strings.NewReader("jpeg")}
		return p
	}

	type testCase struct {
		name   string
		params model.CreateParams
		setup  func(d deps)
		assert func(t *testing.T, res *model.CreateResult, err error, d deps)
	}

	tests := []testCase{
		{
			name:   "validation error: nothing loaded or stored",
			params: model.CreateParams{HourMeter: -1},
			setup:  func(d deps) {},
			assert: func(t *testing.T, res *model.CreateResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
				d.store.AssertNotCalled(t, "Load", mock.Anything)
			},
		},
		{
			name:   "store read error: attachment never written",
			params: withImage(),
			setup: func(d deps) {
				d.store.On("Load", mock.Anything).Return(nil, model.ErrStoreRead).Once()
			},
			assert: func(t *testing.T, res *model.CreateResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrStoreRead)
				assert.Nil(t, res)
				d.attachments.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:   "success without image",
			params: validCreateParams(),
			setup: func(d deps) {
				d.store.On("Load", mock.Anything).Return(existing, nil).Once()
				d.store.On("Save", mock.Anything, mock.MatchedBy(func(rs []model.Record) bool {
					return len(rs) == 2 && rs[0].ID == existing[0].ID &&
						rs[1].Status == model.StatusAwaitingShipment && rs[1].Version == 1
				})).Return(nil).Once()
				d.notifier.On("NotifyRegistered", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.CreateResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.NotEqual(t, uuid.Nil, res.Record.ID)
				assert.False(t, res.Record.HasImage())
				assert.Contains(t, res.Summary, "PN: "+res.Record.PartNumber)
				assert.NoError(t, res.NotificationError)
			},
		},
		{
			name:   "success with image",
			params: withImage(),
			setup: func(d deps) {
				d.store.On("Load", mock.Anything).Return(existing, nil).Once()
				d.attachments.On("Store", mock.Anything, mock.Anything, "foto.jpg").Return(imagePath, nil).Once()
				d.attachments.On("Exists", mock.Anything, imagePath).Return(true, nil).Once()
				d.store.On("Save", mock.Anything, mock.MatchedBy(func(rs []model.Record) bool {
					return len(rs) == 2 && rs[1].ImagePath == imagePath
				})).Return(nil).Once()
				d.notifier.On("NotifyRegistered", mock.Anything, mock.MatchedBy(func(r model.Record) bool {
					return r.ImagePath == imagePath
				})).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.CreateResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, imagePath, res.Record.ImagePath)
			},
		},
		{
			name:   "attachment missing after store",
			params: withImage(),
			setup: func(d deps) {
				d.store.On("Load", mock.Anything).Return(existing, nil).Once()
				d.attachments.On("Store", mock.Anything, mock.Anything, "foto.jpg").Return(imagePath, nil).Once()
				d.attachments.On("Exists", mock.Anything, imagePath).Return(false, nil).Once()
			},
			assert: func(t *testing.T, res *model.CreateResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrStoreWrite)
				assert.Nil(t, res)
				d.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "save fails after attachment stored: orphan surfaced",
			params: withImage(),
			setup: func(d deps) {
				d.store.On("Load", mock.Anything).Return(existing, nil).Once()
				d.attachments.On("Store", mock.Anything, mock.Anything, "foto.jpg").Return(imagePath, nil).Once()
				d.attachments.On("Exists", mock.Anything, imagePath).Return(true, nil).Once()
				d.store.On("Save", mock.Anything, mock.Anything).Return(model.ErrStoreWrite).Once()
			},
			assert: func(t *testing.T, res *model.CreateResult, err error, d deps) {
				require.Error(t, err)
				assert.Nil(t, res)
				assert.ErrorIs(t, err, model.ErrOrphanedAttachment)
				assert.ErrorIs(t, err, model.ErrStoreWrite)

				var orphan *model.OrphanedAttachmentError
				require.ErrorAs(t, err, &orphan)
				assert.Equal(t, imagePath, orphan.Path)
				d.notifier.AssertNotCalled(t, "NotifyRegistered", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "notification failure keeps the record",
			params: validCreateParams(),
			setup: func(d deps) {
				d.store.On("Load", mock.Anything).Return([]model.Record{}, nil).Once()
				d.store.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
				d.notifier.On("NotifyRegistered", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			assert: func(t *testing.T, res *model.CreateResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.ErrorIs(t, res.NotificationError, model.ErrNotification)
				assert.ErrorContains(t, res.NotificationError, "broker down")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			tt.setup(d)

			res, err := newSvc(d).Create(context.Background(), tt.params)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceTransitions(t *testing.T) {
	t.Parallel()

	shipping := recordIn(model.StatusAwaitingShipment)
	returning := recordIn(model.StatusAwaitingReturn)
	delivered := recordIn(model.StatusDelivered)
	records := []model.Record{shipping, returning, delivered}

	ship := func(svc *service, creds model.Credentials) (*model.TransitionResult, error) {
		return svc.Ship(context.Background(), creds, model.ShipParams{
			ID:              shipping.ID,
			ExpectedVersion: shipping.Version,
			Target:          model.StatusSentForRefurbishment,
			Reference:       "RS-77",
			Note:            "NF-12",
			Date:            "2024-06-05",
		})
	}

	type testCase struct {
		name   string
		call   func(svc *service) (*model.TransitionResult, error)
		setup  func(d deps)
		assert func(t *testing.T, res *model.TransitionResult, err error, d deps)
	}

	tests := []testCase{
		{
			name: "unauthorized: store untouched",
			call: func(svc *service) (*model.TransitionResult, error) {
				return ship(svc, model.Credentials{Username: "joao", Secret: "wrong"})
			},
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, mock.Anything).Return(false, nil).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrUnauthorized)
				assert.Nil(t, res)
				d.store.AssertNotCalled(t, "Load", mock.Anything)
			},
		},
		{
			name: "credential store failure is unauthorized",
			call: func(svc *service) (*model.TransitionResult, error) { return ship(svc, supervisor) },
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).
					Return(false, errors.New("file unreadable")).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrUnauthorized)
			},
		},
		{
			name: "ship success",
			call: func(svc *service) (*model.TransitionResult, error) { return ship(svc, supervisor) },
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).Return(true, nil).Once()
				d.store.On("Load", mock.Anything).Return(records, nil).Once()
				d.store.On("Save", mock.Anything, mock.MatchedBy(func(rs []model.Record) bool {
					return len(rs) == 3 && rs[0].Status == model.StatusSentForRefurbishment &&
						rs[0].Version == shipping.Version+1 && rs[1] == returning
				})).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.StatusSentForRefurbishment, res.Record.Status)
				assert.Equal(t, model.Date("2024-06-05"), res.Record.ShipmentDate)
			},
		},
		{
			name: "deliver from wrong state: nothing saved",
			call: func(svc *service) (*model.TransitionResult, error) {
				return svc.Deliver(context.Background(), supervisor, model.DeliverParams{ID: shipping.ID, Date: "2024-06-10"})
			},
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).Return(true, nil).Once()
				d.store.On("Load", mock.Anything).Return(records, nil).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrInvalidTransition)
				d.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			},
		},
		{
			name: "deliver direct from awaiting shipment",
			call: func(svc *service) (*model.TransitionResult, error) {
				return svc.DeliverDirect(context.Background(), supervisor, model.DeliverParams{ID: shipping.ID, Date: "2024-06-10"})
			},
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).Return(true, nil).Once()
				d.store.On("Load", mock.Anything).Return(records, nil).Once()
				d.store.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, model.StatusDelivered, res.Record.Status)
			},
		},
		{
			name: "stale version is a conflict",
			call: func(svc *service) (*model.TransitionResult, error) {
				return svc.Deliver(context.Background(), supervisor, model.DeliverParams{
					ID: returning.ID, ExpectedVersion: returning.Version - 1, Date: "2024-06-10",
				})
			},
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).Return(true, nil).Once()
				d.store.On("Load", mock.Anything).Return(records, nil).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrConflict)
			},
		},
		{
			name: "cancel blank reason",
			call: func(svc *service) (*model.TransitionResult, error) {
				return svc.Cancel(context.Background(), supervisor, model.CancelParams{ID: returning.ID, Reason: "  "})
			},
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).Return(true, nil).Once()
				d.store.On("Load", mock.Anything).Return(records, nil).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrValidation)
			},
		},
		{
			name: "unknown record",
			call: func(svc *service) (*model.TransitionResult, error) {
				return svc.Cancel(context.Background(), supervisor, model.CancelParams{ID: uuid.New(), Reason: "x"})
			},
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).Return(true, nil).Once()
				d.store.On("Load", mock.Anything).Return(records, nil).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrRecordNotFound)
			},
		},
		{
			name: "save failure surfaces store write error",
			call: func(svc *service) (*model.TransitionResult, error) {
				return svc.Cancel(context.Background(), supervisor, model.CancelParams{ID: returning.ID, Reason: "sem conserto"})
			},
			setup: func(d deps) {
				d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).Return(true, nil).Once()
				d.store.On("Load", mock.Anything).Return(records, nil).Once()
				d.store.On("Save", mock.Anything, mock.Anything).Return(model.ErrStoreWrite).Once()
			},
			assert: func(t *testing.T, res *model.TransitionResult, err error, d deps) {
				require.ErrorIs(t, err, model.ErrStoreWrite)
				assert.Nil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			tt.setup(d)

			res, err := tt.call(newSvc(d))
			tt.assert(t, res, err, d)
		})
	}
}

func TestServicePurge(t *testing.T) {
	t.Parallel()

	delivered := recordIn(model.StatusDelivered)
	delivered.ImagePath = "images/uploads/a.png"
	pending := recordIn(model.StatusAwaitingShipment)
	records := []model.Record{pending, delivered}

	t.Run("requires administrator", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleAdministrator, supervisor).Return(false, nil).Once()

		err := newSvc(d).Purge(context.Background(), supervisor, model.PurgeParams{ID: delivered.ID})
		require.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("removes record and attachment", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleAdministrator, admin).Return(true, nil).Once()
		d.store.On("Load", mock.Anything).Return(records, nil).Once()
		d.store.On("Save", mock.Anything, []model.Record{pending}).Return(nil).Once()
		d.attachments.On("Delete", mock.Anything, delivered.ImagePath).Return(errors.New("gone")).Once()

		err := newSvc(d).Purge(context.Background(), admin, model.PurgeParams{ID: delivered.ID})
		require.NoError(t, err, "attachment cleanup is best effort")
	})

	t.Run("non terminal record is kept", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleAdministrator, admin).Return(true, nil).Once()
		d.store.On("Load", mock.Anything).Return(records, nil).Once()

		err := newSvc(d).Purge(context.Background(), admin, model.PurgeParams{ID: pending.ID})
		require.ErrorIs(t, err, model.ErrInvalidTransition)
		d.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestServicePersistsSingleMutationWhenStoreSupportsIt(t *testing.T) {
	t.Parallel()

	shipping := recordIn(model.StatusAwaitingShipment)
	delivered := recordIn(model.StatusDelivered)
	records := []model.Record{shipping, delivered}

	newMutationSvc := func(t *testing.T) (*service, *mocks.MockMutationStore, deps) {
		d := newDeps(t)
		store := mocks.NewMockMutationStore(t)
		svc := NewComponentService(
			store,
			d.credentials,
			d.attachments,
			d.notifier,
			lifecycle.New(lifecycle.WithClock(func() time.Time { return fixedNow })),
			time.Second,
			time.Second,
		)
		return svc, store, d
	}

	t.Run("replace writes only the changed record", func(t *testing.T) {
		t.Parallel()

		svc, store, d := newMutationSvc(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleSupervisor, supervisor).Return(true, nil).Once()
		store.On("Load", mock.Anything).Return(records, nil).Once()
		store.On("ApplyMutation", mock.Anything, mock.MatchedBy(func(m model.Mutation) bool {
			return m.Kind == model.MutationReplace && m.Record.ID == shipping.ID &&
				m.Record.Version == shipping.Version+1
		})).Return(nil).Once()

		res, err := svc.Cancel(context.Background(), supervisor, model.CancelParams{ID: shipping.ID, Reason: "sucata"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Record.Status)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("delete targets the purged record only", func(t *testing.T) {
		t.Parallel()

		svc, store, d := newMutationSvc(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleAdministrator, admin).Return(true, nil).Once()
		store.On("Load", mock.Anything).Return(records, nil).Once()
		store.On("ApplyMutation", mock.Anything, model.Mutation{Kind: model.MutationDelete, Record: delivered}).Return(nil).Once()

		require.NoError(t, svc.Purge(context.Background(), admin, model.PurgeParams{ID: delivered.ID}))
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("conflict from another writer is returned", func(t *testing.T) {
		t.Parallel()

		svc, store, d := newMutationSvc(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleAdministrator, admin).Return(true, nil).Once()
		store.On("Load", mock.Anything).Return(records, nil).Once()
		store.On("ApplyMutation", mock.Anything, mock.Anything).Return(model.ErrConflict).Once()

		err := svc.Purge(context.Background(), admin, model.PurgeParams{ID: delivered.ID})
		require.ErrorIs(t, err, model.ErrConflict)
	})
}

func TestServiceQueries(t *testing.T) {
	t.Parallel()

	a := recordIn(model.StatusAwaitingShipment)
	b := recordIn(model.StatusDelivered)
	b.EquipmentTag = "PC-2000"
	c := recordIn(model.StatusAwaitingReturn)
	c.WithdrawalDate = "sem data"
	records := []model.Record{a, b, c}

	t.Run("nil filter sets mean all", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.store.On("Load", mock.Anything).Return(records, nil).Once()

		views, err := newSvc(d).List(context.Background(), model.RecordsFilter{})
		require.NoError(t, err)
		require.Len(t, views, 2, "record without a readable date is excluded")
		assert.Equal(t, model.ProcessDuration{Days: 14, Known: true}, views[0].Duration)
		assert.Equal(t, model.ProcessDuration{Days: 10, Known: true}, views[1].Duration)
	})

	t.Run("filter by tag", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.store.On("Load", mock.Anything).Return(records, nil).Once()

		views, err := newSvc(d).List(context.Background(), model.RecordsFilter{Tags: []string{"PC-2000"}})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, b.ID, views[0].Record.ID)
	})

	t.Run("record by id", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.store.On("Load", mock.Anything).Return(records, nil).Twice()

		view, err := newSvc(d).RecordByID(context.Background(), c.ID)
		require.NoError(t, err)
		assert.False(t, view.Duration.Known)

		_, err = newSvc(d).RecordByID(context.Background(), uuid.New())
		require.ErrorIs(t, err, model.ErrRecordNotFound)
	})

	t.Run("image of a record without attachment", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.store.On("Load", mock.Anything).Return(records, nil).Once()

		_, _, err := newSvc(d).Image(context.Background(), a.ID)
		require.ErrorIs(t, err, model.ErrAttachmentNotFound)
	})

	t.Run("image download", func(t *testing.T) {
		t.Parallel()

		withImage := a
		withImage.ImagePath = "images/uploads/x.jpg"

		d := newDeps(t)
		d.store.On("Load", mock.Anything).Return([]model.Record{withImage}, nil).Once()
		d.attachments.On("Open", mock.Anything, withImage.ImagePath).
			Return(io.NopCloser(strings.NewReader("img")), nil).Once()

		rc, name, err := newSvc(d).Image(context.Background(), a.ID)
		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, withImage.ImagePath, name)
	})

	t.Run("report needs administrator", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleAdministrator, supervisor).Return(false, nil).Once()

		_, err := newSvc(d).Report(context.Background(), supervisor)
		require.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("report groups by status", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleAdministrator, admin).Return(true, nil).Once()
		d.store.On("Load", mock.Anything).Return(records, nil).Once()

		report, err := newSvc(d).Report(context.Background(), admin)
		require.NoError(t, err)
		assert.Equal(t, model.Date("2024-06-15"), report.Generated)
		require.Len(t, report.Groups, len(model.AllStatuses()))
		assert.Len(t, report.Groups[0].Items, 1)
	})

	t.Run("records for export", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		d.credentials.On("Authenticate", mock.Anything, model.RoleAdministrator, admin).Return(true, nil).Once()
		d.store.On("Load", mock.Anything).Return(records, nil).Once()

		got, err := newSvc(d).Records(context.Background(), admin)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})
}
