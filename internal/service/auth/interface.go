package auth

import (
	"context"
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

type ResetRepo interface {
	Create(ctx context.Context, pr *models.PasswordReset) error
	GetValid(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, tokenHash string) error
}

type TokenProvider interface {
	Generate(user *models.User) (string, time.Time, error)
	Validate(token string) (uuid.UUID, error)
}
