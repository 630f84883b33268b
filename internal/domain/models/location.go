package models

import (
	"time"

	"github.com/saferide-app/saferide-go/pkg/uuid"
)

// UserLocation is last-write-wins: one row per user, no history retained.
type UserLocation struct {
	UserID    uuid.UUID `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}
