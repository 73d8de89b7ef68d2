package repository

import (
	"context"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
)

type ChatHistoryRepository interface {
	Save(ctx context.Context, ex *entity.ChatExchange) error
	Recent(ctx context.Context, userID string, size int) ([]entity.ChatExchange, error)
}
