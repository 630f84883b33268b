package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
)

type PasswordResetRepo struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepo(db *pgxpool.Pool) *PasswordResetRepo {
	return &PasswordResetRepo{db: db}
}

func (r *PasswordResetRepo) Create(ctx context.Context, pr *models.PasswordReset) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO password_resets (token_hash, email, expires_at)
              VALUES ($1, $2, $3);`

	if _, err := q.Exec(ctx, query, pr.TokenHash, pr.Email, pr.ExpiresAt); err != nil {
		return fmt.Errorf("password reset repo: Create: %w", err)
	}

	return nil
}

// GetValid returns the reset record only when it is unused and unexpired.
func (r *PasswordResetRepo) GetValid(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordReset, error) {
	q := TxorDB(ctx, r.db)

	var pr models.PasswordReset
	query := `SELECT token_hash, email, expires_at, used, created_at
              FROM password_resets
              WHERE token_hash = $1 AND NOT used AND expires_at > $2;`

	err := q.QueryRow(ctx, query, tokenHash, now).Scan(&pr.TokenHash, &pr.Email, &pr.ExpiresAt, &pr.Used, &pr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("password reset repo: GetValid: %w", err)
	}

	return &pr, nil
}

func (r *PasswordResetRepo) MarkUsed(ctx context.Context, tokenHash string) error {
	q := TxorDB(ctx, r.db)

	query := `UPDATE password_resets SET used = TRUE WHERE token_hash = $1;`

	if _, err := q.Exec(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("password reset repo: MarkUsed: %w", err)
	}

	return nil
}
