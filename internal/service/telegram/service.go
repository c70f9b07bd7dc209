package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	converter "github.com/RamonCharlles/Gestao-componentes/internal/converter/telegram"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type service struct {
	client  MessageSender
	mu      sync.RWMutex
	storage map[int64]struct{}
}

// NewTelegramService starts with the configured chats; more join through
// AddChatID.
func NewTelegramService(client MessageSender, chatIDs ...int64) *service {
	storage := make(map[int64]struct{}, len(chatIDs))
	for _, id := range chatIDs {
		storage[id] = struct{}{}
	}
	return &service{client: client, storage: storage}
}

// NotifyComponentRegistered sends to every chat. A failing chat does not stop
// the others; all failures are returned together.
func (svc *service) NotifyComponentRegistered(ctx context.Context, event model.ComponentRegistered) error {
	const op = "telegram.service.NotifyComponentRegistered"

	msg, err := converter.BuildComponentRegistered(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.mu.RLock()
	chats := make([]int64, 0, len(svc.storage))
	for chatID := range svc.storage {
		chats = append(chats, chatID)
	}
	svc.mu.RUnlock()

	if len(chats) == 0 {
		logger.Warn(ctx, "no telegram chats registered, dropping notification",
			logger.String("record_id", event.RecordID.String()),
		)
		return nil
	}

	var errs []error
	for _, chatID := range chats {
		if err := svc.client.SendMessage(ctx, chatID, msg); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	return nil
}

func (svc *service) AddChatID(ctx context.Context, chatID int64) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.storage[chatID] = struct{}{}
}
