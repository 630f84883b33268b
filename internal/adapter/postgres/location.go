package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saferide-app/saferide-go/internal/domain/models"
)

type LocationRepo struct {
	db *pgxpool.Pool
}

func NewLocationRepo(db *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{db: db}
}

// Upsert is last-write-wins, one row per user, no history.
func (r *LocationRepo) Upsert(ctx context.Context, loc *models.UserLocation) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO user_locations (user_id, latitude, longitude, updated_at)
              VALUES ($1, $2, $3, now())
              ON CONFLICT (user_id) DO UPDATE
              SET latitude   = EXCLUDED.latitude,
                  longitude  = EXCLUDED.longitude,
                  updated_at = now()
              RETURNING updated_at;`

	err := q.QueryRow(ctx, query, loc.UserID, loc.Latitude, loc.Longitude).Scan(&loc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("location repo: Upsert: %w", err)
	}

	return nil
}
