package models

import (
	"time"

	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type DeviceBinding struct {
	UserID           uuid.UUID `json:"user_id"`
	DeviceID         string    `json:"device_id"`
	DeviceName       string    `json:"device_name"`
	DeviceBrand      string    `json:"device_brand"`
	SubscriptionType string    `json:"subscription_type"`
	ExpiresAt        time.Time `json:"expires_at"`
	BoundAt          time.Time `json:"bound_at"`
}

type PasswordReset struct {
	Email     string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
