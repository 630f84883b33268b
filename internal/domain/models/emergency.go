package models

import (
	"time"

	"github.com/saferide-app/saferide-go/pkg/uuid"
)

// Emergency is a distress signal raised by a user. Records are never deleted,
// only flagged inactive, so the history stays available for audit.
type Emergency struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	VehiclePlate string    `json:"vehicle_plate"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}

// NearbyEmergency is an Emergency annotated with its distance to the observer.
type NearbyEmergency struct {
	Emergency
	DistanceKm float64 `json:"distance_km"`
}
