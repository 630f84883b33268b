package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/postgres"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type EmergencyRepo struct {
	db *pgxpool.Pool
}

func NewEmergencyRepo(db *pgxpool.Pool) *EmergencyRepo {
	return &EmergencyRepo{db: db}
}

// CreateActive inserts a new active emergency. The partial unique index on
// (user_id) WHERE is_active rejects a second active record, so the
// one-active-per-user invariant holds even when two raises run concurrently.
func (r *EmergencyRepo) CreateActive(ctx context.Context, e *models.Emergency) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO emergencies (id, user_id, user_name, vehicle_plate, latitude, longitude, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, TRUE)
              RETURNING created_at;`

	err := q.QueryRow(ctx, query, e.ID, e.UserID, e.UserName, e.VehiclePlate, e.Latitude, e.Longitude).Scan(&e.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return types.ErrActiveEmergencyExists
		}
		return fmt.Errorf("emergency repo: CreateActive: %w", err)
	}

	e.IsActive = true

	return nil
}

func (r *EmergencyRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Emergency, error) {
	q := TxorDB(ctx, r.db)

	var e models.Emergency
	query := `
        SELECT id, user_id, user_name, vehicle_plate, latitude, longitude, created_at, is_active
        FROM emergencies
        WHERE user_id = $1 AND is_active;`

	err := q.QueryRow(ctx, query, userID).Scan(
		&e.ID, &e.UserID, &e.UserName, &e.VehiclePlate,
		&e.Latitude, &e.Longitude, &e.CreatedAt, &e.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrEmergencyNotFound
		}
		return nil, fmt.Errorf("emergency repo: FindActiveByUser: %w", err)
	}

	return &e, nil
}

// ResolveActiveByUser flips the user's active emergency to inactive and
// returns its id in the same statement, so the resolved event always names
// the record this request actually closed.
func (r *EmergencyRepo) ResolveActiveByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	q := TxorDB(ctx, r.db)

	var id uuid.UUID
	query := `UPDATE emergencies SET is_active = FALSE
              WHERE user_id = $1 AND is_active
              RETURNING id;`

	err := q.QueryRow(ctx, query, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.UUID{}, types.ErrEmergencyNotFound
		}
		return uuid.UUID{}, fmt.Errorf("emergency repo: ResolveActiveByUser: %w", err)
	}

	return id, nil
}

// ResolveOwnedByID deactivates a specific record only when it belongs to the
// user and is still active. Not-owned, absent and already-inactive are all
// the same ErrEmergencyNotFound to the caller.
func (r *EmergencyRepo) ResolveOwnedByID(ctx context.Context, userID, emergencyID uuid.UUID) error {
	q := TxorDB(ctx, r.db)

	query := `UPDATE emergencies SET is_active = FALSE
              WHERE id = $1 AND user_id = $2 AND is_active;`

	cmdTag, err := q.Exec(ctx, query, emergencyID, userID)
	if err != nil {
		return fmt.Errorf("emergency repo: ResolveOwnedByID: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return types.ErrEmergencyNotFound
	}

	return nil
}

func (r *EmergencyRepo) ListActive(ctx context.Context) ([]models.Emergency, error) {
	q := TxorDB(ctx, r.db)

	query := `
        SELECT id, user_id, user_name, vehicle_plate, latitude, longitude, created_at, is_active
        FROM emergencies
        WHERE is_active
        ORDER BY created_at DESC;`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("emergency repo: ListActive: %w", err)
	}
	defer rows.Close()

	var emergencies []models.Emergency
	for rows.Next() {
		var e models.Emergency
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.UserName, &e.VehiclePlate,
			&e.Latitude, &e.Longitude, &e.CreatedAt, &e.IsActive,
		); err != nil {
			return nil, fmt.Errorf("emergency repo: ListActive scan: %w", err)
		}
		emergencies = append(emergencies, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("emergency repo: ListActive rows: %w", err)
	}

	return emergencies, nil
}
