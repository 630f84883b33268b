package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type DeviceRepo struct {
	db *pgxpool.Pool
}

func NewDeviceRepo(db *pgxpool.Pool) *DeviceRepo {
	return &DeviceRepo{db: db}
}

func (r *DeviceRepo) FindBySubscription(ctx context.Context, userID uuid.UUID, subscriptionType string) (*models.DeviceBinding, error) {
	return r.find(ctx, `WHERE user_id = $1 AND subscription_type = $2`, userID, subscriptionType)
}

func (r *DeviceRepo) FindByDevice(ctx context.Context, userID uuid.UUID, deviceID string) (*models.DeviceBinding, error) {
	return r.find(ctx, `WHERE user_id = $1 AND device_id = $2`, userID, deviceID)
}

func (r *DeviceRepo) find(ctx context.Context, where string, args ...any) (*models.DeviceBinding, error) {
	q := TxorDB(ctx, r.db)

	var b models.DeviceBinding
	query := `SELECT user_id, device_id, device_name, device_brand, subscription_type, expires_at, bound_at
              FROM device_bindings ` + where + `;`

	err := q.QueryRow(ctx, query, args...).Scan(
		&b.UserID, &b.DeviceID, &b.DeviceName, &b.DeviceBrand,
		&b.SubscriptionType, &b.ExpiresAt, &b.BoundAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNoDeviceBinding
		}
		return nil, fmt.Errorf("device repo: find: %w", err)
	}

	return &b, nil
}

func (r *DeviceRepo) Upsert(ctx context.Context, b *models.DeviceBinding) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO device_bindings (user_id, device_id, device_name, device_brand, subscription_type, expires_at, bound_at)
              VALUES ($1, $2, $3, $4, $5, $6, now())
              ON CONFLICT (user_id, subscription_type) DO UPDATE
              SET device_id    = EXCLUDED.device_id,
                  device_name  = EXCLUDED.device_name,
                  device_brand = EXCLUDED.device_brand,
                  expires_at   = EXCLUDED.expires_at,
                  bound_at     = now();`

	if _, err := q.Exec(ctx, query, b.UserID, b.DeviceID, b.DeviceName, b.DeviceBrand, b.SubscriptionType, b.ExpiresAt); err != nil {
		return fmt.Errorf("device repo: Upsert: %w", err)
	}

	return nil
}
