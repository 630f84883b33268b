package emergency

import (
	"context"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type EmergencyRepo interface {
	CreateActive(ctx context.Context, e *models.Emergency) error
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Emergency, error)
	ResolveActiveByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	ResolveOwnedByID(ctx context.Context, userID, emergencyID uuid.UUID) error
	ListActive(ctx context.Context) ([]models.Emergency, error)
}

type SettingsReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.AlertSettings, error)
}

type EventBus interface {
	Publish(ctx context.Context, ev models.BroadcastEvent)
}
