package consumer

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/RamonCharlles/Gestao-componentes/platform/kafka"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Warn(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Option func(*consumer)

// WithMiddlewares wraps every handler; the first middleware is the outermost.
func WithMiddlewares(middlewares ...kafka.Middleware) Option {
	return func(c *consumer) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// WithRetry re-runs a failing handler up to attempts more times, doubling
// backoff after each try.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *consumer) {
		c.retry = retryPolicy{attempts: attempts, backoff: backoff}
	}
}

type consumer struct {
	group       sarama.ConsumerGroup
	topics      []string
	logger      Logger
	middlewares []kafka.Middleware
	retry       retryPolicy
}

func NewConsumer(group sarama.ConsumerGroup, topics []string, logger Logger, opts ...Option) *consumer {
	c := &consumer{
		group:  group,
		topics: topics,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Consume blocks until ctx is done or the group is closed.
func (c *consumer) Consume(ctx context.Context, handler kafka.MessageHandler) error {
	groupHandler := newGroupHandler(handler, c.logger, c.retry, c.middlewares...)

	for {
		if err := c.group.Consume(ctx, c.topics, groupHandler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}

			c.logger.Error(ctx, "Kafka consume error",
				zap.Strings("topics", c.topics),
				zap.Error(err),
			)
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.Info(ctx, "Kafka consumer group rebalancing", zap.Strings("topics", c.topics))
	}
}
