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

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO users (id, email, name, vehicle_plate, password_hash)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING created_at;`

	err := q.QueryRow(ctx, query, u.ID, u.Email, u.Name, u.VehiclePlate, u.PasswordHash()).Scan(&u.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return types.ErrEmailAlreadyExists
		}
		return fmt.Errorf("user repo: Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (*models.User, error) {
	q := TxorDB(ctx, r.db)

	var (
		u    models.User
		hash string
	)
	query := `SELECT id, email, name, vehicle_plate, password_hash, created_at FROM users ` + where + `;`

	err := q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Name, &u.VehiclePlate, &hash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("user repo: get: %w", err)
	}

	u.SetPasswordHash(hash)

	return &u, nil
}

func (r *UserRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	q := TxorDB(ctx, r.db)

	query := `UPDATE users SET password_hash = $2 WHERE email = $1;`

	cmdTag, err := q.Exec(ctx, query, email, passwordHash)
	if err != nil {
		return fmt.Errorf("user repo: UpdatePasswordByEmail: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return types.ErrUserNotFound
	}

	return nil
}
