package models

import (
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

// AlertSettings holds the per-user proximity preferences. One row per user,
// upserted; DefaultAlertSettings applies when the user never saved any.
type AlertSettings struct {
	UserID            uuid.UUID `json:"-"`
	EmergencyContacts []string  `json:"emergency_contacts"`
	AlertDistanceKm   float64   `json:"alert_distance_km"`
	UpdatedAt         time.Time `json:"-"`
}

func DefaultAlertSettings(userID uuid.UUID) *AlertSettings {
	return &AlertSettings{
		UserID:            userID,
		EmergencyContacts: []string{},
		AlertDistanceKm:   types.DefaultAlertDistanceKm,
	}
}
