package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/hasher"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/passhash"
	"github.com/saferide-app/saferide-go/pkg/trm"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type AuthService struct {
	users    UserRepo
	resets   ResetRepo
	tokens   TokenProvider
	trm      trm.TxManager
	resetTTL time.Duration

	log logger.Logger
}

func NewAuthService(users UserRepo, resets ResetRepo, tokens TokenProvider, trm trm.TxManager, resetTTL time.Duration, log logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		resets:   resets,
		tokens:   tokens,
		trm:      trm,
		resetTTL: resetTTL,
		log:      log,
	}
}

// Register creates a user and logs them straight in.
func (s *AuthService) Register(ctx context.Context, name, email, vehiclePlate, password string) (*models.User, string, error) {
	ctx = wrap.WithAction(ctx, "register")

	hash, err := passhash.HashPassword(password)
	if err != nil {
		return nil, "", wrap.Error(ctx, fmt.Errorf("could not hash password: %w", err))
	}

	id, err := uuid.New()
	if err != nil {
		return nil, "", wrap.Error(ctx, fmt.Errorf("could not generate user id: %w", err))
	}

	user := &models.User{
		ID:           id,
		Email:        email,
		Name:         name,
		VehiclePlate: vehiclePlate,
	}
	user.SetPasswordHash(hash)

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, types.ErrEmailAlreadyExists) {
				return err
			}
			return wrap.Error(ctx, fmt.Errorf("could not create user: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, _, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", wrap.Error(ctx, err)
	}

	s.log.Info(wrap.WithUserID(ctx, user.ID.String()), "user registered")

	return user, token, nil
}

// Login verifies credentials and issues an access token. An unknown email and
// a wrong password are the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	ctx = wrap.WithAction(ctx, "login")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", wrap.Error(ctx, fmt.Errorf("could not get user: %w", err))
	}

	if ok, err := passhash.VerifyPassword(password, user.PasswordHash()); err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", wrap.Error(ctx, err)
	}

	return user, token, nil
}

// ValidateToken resolves a bearer token to its user. Used by the auth
// middleware on every authenticated request.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, wrap.Error(ctx, fmt.Errorf("could not get user by token: %w", err))
	}

	return user, nil
}

// ForgotPassword issues a reset token for the account. The response is the
// same whether or not the email exists, so the endpoint cannot be used to
// probe accounts. Delivery is a log line; there is no mailer.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	ctx = wrap.WithAction(ctx, "forgot_password")

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil
		}
		return wrap.Error(ctx, fmt.Errorf("could not get user: %w", err))
	}

	tokenID, err := uuid.New()
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("could not generate reset token: %w", err))
	}
	token := tokenID.String()

	reset := &models.PasswordReset{
		Email:     email,
		TokenHash: hasher.Hash(token),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}

	if err := s.resets.Create(ctx, reset); err != nil {
		return wrap.Error(ctx, fmt.Errorf("could not store reset token: %w", err))
	}

	// Stand-in for an email: operators can hand the token over manually.
	s.log.Info(ctx, "password reset token issued", "email", email, "token", token)

	return nil
}

// ResetPassword consumes a reset token and sets the new password. The token
// is single-use; expiry and reuse both come back as ErrResetTokenInvalid.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	ctx = wrap.WithAction(ctx, "reset_password")

	hash, err := passhash.HashPassword(newPassword)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("could not hash password: %w", err))
	}

	tokenHash := hasher.Hash(token)

	return s.trm.Do(ctx, func(ctx context.Context) error {
		reset, err := s.resets.GetValid(ctx, tokenHash, time.Now())
		if err != nil {
			if errors.Is(err, types.ErrResetTokenInvalid) {
				return err
			}
			return wrap.Error(ctx, fmt.Errorf("could not look up reset token: %w", err))
		}

		if err := s.users.UpdatePasswordByEmail(ctx, reset.Email, hash); err != nil {
			return wrap.Error(ctx, fmt.Errorf("could not update password: %w", err))
		}

		if err := s.resets.MarkUsed(ctx, reset.TokenHash); err != nil {
			return wrap.Error(ctx, fmt.Errorf("could not mark reset token used: %w", err))
		}

		return nil
	})
}
