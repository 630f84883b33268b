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

type SettingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepo(db *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context, userID uuid.UUID) (*models.AlertSettings, error) {
	q := TxorDB(ctx, r.db)

	var s models.AlertSettings
	query := `SELECT user_id, emergency_contacts, alert_distance_km, updated_at
              FROM alert_settings WHERE user_id = $1;`

	err := q.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.EmergencyContacts, &s.AlertDistanceKm, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("settings repo: Get: %w", err)
	}

	return &s, nil
}

// Upsert is last-write-wins, a single atomic statement.
func (r *SettingsRepo) Upsert(ctx context.Context, s *models.AlertSettings) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO alert_settings (user_id, emergency_contacts, alert_distance_km, updated_at)
              VALUES ($1, $2, $3, now())
              ON CONFLICT (user_id) DO UPDATE
              SET emergency_contacts = EXCLUDED.emergency_contacts,
                  alert_distance_km  = EXCLUDED.alert_distance_km,
                  updated_at         = now();`

	if _, err := q.Exec(ctx, query, s.UserID, s.EmergencyContacts, s.AlertDistanceKm); err != nil {
		return fmt.Errorf("settings repo: Upsert: %w", err)
	}

	return nil
}
