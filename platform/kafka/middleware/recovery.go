package middleware

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RamonCharlles/Gestao-componentes/platform/kafka"
)

type ErrorLogger interface {
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

// Recovery turns a panic in the handler into an error so the message is not marked.
func Recovery(logger ErrorLogger) kafka.Middleware {
	return func(next kafka.MessageHandler) kafka.MessageHandler {
		return func(ctx context.Context, msg kafka.Message) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error(ctx, "Recovered from panic in message processing",
						zap.String("topic", msg.Topic),
						zap.Any("panic", r),
					)
					err = fmt.Errorf("panic while handling %s@%d: %v", msg.Topic, msg.Offset, r)
				}
			}()
			return next(ctx, msg)
		}
	}
}
