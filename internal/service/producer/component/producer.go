package compproducer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/converter"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/kafka"
)

type Converter interface {
	ComponentRegisteredToPayload(e model.ComponentRegistered) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
	now      func() time.Time
}

func NewComponentProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv, now: time.Now}
}

func (s *service) NotifyRegistered(ctx context.Context, rec model.Record) error {
	event := converter.RecordToComponentRegistered(rec, uuid.New(), s.now())

	payload, err := s.conv.ComponentRegisteredToPayload(event)
	if err != nil {
		return fmt.Errorf("converter component_registered_to_payload error: %w", err)
	}

	err = s.producer.Send(ctx, kafka.OutgoingMessage{
		Key:   []byte(rec.ID.String()),
		Value: payload,
		Headers: map[string]string{
			"event_type": converter.EventTypeComponentRegistered,
			"event_id":   event.EventID.String(),
		},
	})
	if err != nil {
		return fmt.Errorf("producer to component registered topic error: %w", err)
	}

	return nil
}
