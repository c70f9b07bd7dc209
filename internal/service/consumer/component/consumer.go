package compconsumer

import (
	"context"
	"fmt"

	"github.com/RamonCharlles/Gestao-componentes/internal/converter"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/kafka"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type ComponentRegisteredConverter interface {
	PayloadToComponentRegistered(data []byte) (model.ComponentRegistered, error)
}

type ComponentRegisteredNotifier interface {
	NotifyComponentRegistered(ctx context.Context, event model.ComponentRegistered) error
}

type compConsumer struct {
	consumer kafka.Consumer
	conv     ComponentRegisteredConverter
	svc      ComponentRegisteredNotifier
}

func NewComponentRegisteredConsumer(
	consumer kafka.Consumer,
	conv ComponentRegisteredConverter,
	svc ComponentRegisteredNotifier,
) *compConsumer {
	return &compConsumer{
		consumer: consumer,
		conv:     conv,
		svc:      svc,
	}
}

func (s *compConsumer) RunComponentRegisteredConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting component registered consumer")

	if err := s.consumer.Consume(ctx, s.componentRegisteredHandler); err != nil {
		logger.Error(ctx, "Consume from component.registered topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

func (s *compConsumer) componentRegisteredHandler(ctx context.Context, msg kafka.Message) error {
	if et := msg.Header("event_type"); et != "" && et != converter.EventTypeComponentRegistered {
		logger.Warn(ctx, "Skipping unexpected event type", logger.String("event_type", et))
		return nil
	}

	event, err := s.conv.PayloadToComponentRegistered(msg.Value)
	if err != nil {
		logger.Error(ctx, "Failed to decode ComponentRegistered", logger.ErrorF(err))
		return fmt.Errorf("%w: converter payload_to_component_registered error: %v", kafka.ErrUnprocessable, err)
	}

	if err := s.svc.NotifyComponentRegistered(ctx, event); err != nil {
		logger.Error(ctx, "Failed to notify about ComponentRegistered",
			logger.String("record_id", event.RecordID.String()),
			logger.ErrorF(err),
		)
		return err
	}

	return nil
}
