// Package lifecycle holds the component state machine. It never persists:
// every operation returns a model.Mutation for the caller to apply and save.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

type Controller struct {
	now   func() time.Time
	newID func() uuid.UUID
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(c *Controller) { c.newID = fn }
}

func New(opts ...Option) *Controller {
	c := &Controller{
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Today is the controller's notion of the current calendar day.
func (c *Controller) Today() model.Date { return model.NewDate(c.now()) }

func invalidTransition(op string, from model.Status) error {
	return fmt.Errorf("%w: cannot %s a record in status %s", model.ErrInvalidTransition, op, from)
}

func checkVersion(rec model.Record, expected int64) error {
	if expected != 0 && expected != rec.Version {
		return fmt.Errorf("%w: record %s is at version %d, expected %d",
			model.ErrConflict, rec.ID, rec.Version, expected)
	}
	return nil
}

// Summary is the text handed back to the technician after registration.
func Summary(rec model.Record) string {
	return fmt.Sprintf("ID: %s\nDescrição: %s\nPN: %s", rec.ID, rec.Description, rec.PartNumber)
}
