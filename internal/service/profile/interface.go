package profile

import (
	"context"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type SettingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.AlertSettings, error)
	Upsert(ctx context.Context, s *models.AlertSettings) error
}

type LocationRepo interface {
	Upsert(ctx context.Context, loc *models.UserLocation) error
}

type DeviceRepo interface {
	FindBySubscription(ctx context.Context, userID uuid.UUID, subscriptionType string) (*models.DeviceBinding, error)
	FindByDevice(ctx context.Context, userID uuid.UUID, deviceID string) (*models.DeviceBinding, error)
	Upsert(ctx context.Context, b *models.DeviceBinding) error
}
