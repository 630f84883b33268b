package models

import (
	"context"
	"time"

	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	VehiclePlate string    `json:"vehicle_plate"`
	passwordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = hash
}

// AnonymousUser is what the auth middleware injects when no token is present.
func AnonymousUser() *User {
	return &User{}
}

func (u *User) IsAnonymous() bool {
	return u == nil || u.ID == uuid.UUID{}
}

type userCtxKey struct{}

var userKey = userCtxKey{}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) *User {
	if u, ok := ctx.Value(userKey).(*User); ok {
		return u
	}
	return nil
}
