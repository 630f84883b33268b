package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

// TokenService issues and checks HS256 access tokens. There is no refresh
// flow: mobile clients hold one long-lived access token.
type TokenService struct {
	secret    string
	accessTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    secret,
		accessTTL: accessTTL,
	}
}

func (s *TokenService) Generate(user *models.User) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.accessTTL)

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"iat":     issuedAt.Unix(),
		"exp":     expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, ErrTokenGenerateFail
	}

	return signed, expiresAt, nil
}

// Validate checks signature and expiry and returns the subject user id.
func (s *TokenService) Validate(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.UUID{}, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.UUID{}, ErrInvalidToken
	}

	expFloat, ok := mc["exp"].(float64)
	if !ok {
		return uuid.UUID{}, ErrInvalidToken
	}
	if time.Now().UTC().After(time.Unix(int64(expFloat), 0)) {
		return uuid.UUID{}, ErrExpToken
	}

	userIDStr, _ := mc["user_id"].(string)
	if userIDStr == "" {
		return uuid.UUID{}, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.UUID{}, ErrInvalidToken
	}

	return userID, nil
}
