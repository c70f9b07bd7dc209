package consumer

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/RamonCharlles/Gestao-componentes/platform/kafka"
)

type retryPolicy struct {
	attempts int
	backoff  time.Duration
}

type groupHandler struct {
	handler kafka.MessageHandler
	logger  Logger
	retry   retryPolicy
}

// newGroupHandler wraps handler with middlewares; the first middleware is the outermost.
//
// Offsets are marked for handled messages and for messages the handler
// rejects with kafka.ErrUnprocessable. Any other failure is retried per
// retry and, once exhausted, left unmarked.
func newGroupHandler(handler kafka.MessageHandler, logger Logger, retry retryPolicy, middlewares ...kafka.Middleware) *groupHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return &groupHandler{
		handler: handler,
		logger:  logger,
		retry:   retry,
	}
}

func (g *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (g *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (g *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				g.logger.Info(session.Context(), "Kafka message channel closed")
				return nil
			}

			msg := kafka.Message{
				Key:            message.Key,
				Value:          message.Value,
				Topic:          message.Topic,
				Partition:      message.Partition,
				Offset:         message.Offset,
				Timestamp:      message.Timestamp,
				BlockTimestamp: message.BlockTimestamp,
				Headers:        extractHeaders(message.Headers),
			}

			err := g.handle(session.Context(), msg)
			switch {
			case err == nil:
			case errors.Is(err, kafka.ErrUnprocessable):
				g.logger.Warn(session.Context(), "Kafka message skipped",
					zap.String("topic", msg.Topic),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			default:
				g.logger.Error(session.Context(), "Kafka handler error",
					zap.String("topic", msg.Topic),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				continue
			}

			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (g *groupHandler) handle(ctx context.Context, msg kafka.Message) error {
	backoff := g.retry.backoff
	for attempt := 0; ; attempt++ {
		err := g.handler(ctx, msg)
		if err == nil || errors.Is(err, kafka.ErrUnprocessable) || attempt >= g.retry.attempts {
			return err
		}

		g.logger.Warn(ctx, "Kafka handler failed, retrying",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func extractHeaders(headers []*sarama.RecordHeader) map[string][]byte {
	result := make(map[string][]byte, len(headers))
	for _, h := range headers {
		if h != nil && h.Key != nil {
			result[string(h.Key)] = h.Value
		}
	}

	return result
}
