package chat

import (
	"context"
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type ChatRepo interface {
	Create(ctx context.Context, m *models.ChatMessage) error
	ListSince(ctx context.Context, since time.Time, limit int) ([]models.ChatMessage, error)
	DeleteOwned(ctx context.Context, userID, messageID uuid.UUID) error
}

type SettingsReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.AlertSettings, error)
}

type EventBus interface {
	Publish(ctx context.Context, ev models.BroadcastEvent)
}
