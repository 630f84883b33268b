package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/validator"
)

type UpdateSettingsRequest struct {
	EmergencyContacts []string `json:"emergency_contacts"`
	AlertDistanceKm   *float64 `json:"alert_distance_km"`
}

func (r *UpdateSettingsRequest) Validate(v *validator.Validator) {
	v.Check(len(r.EmergencyContacts) >= types.MinEmergencyContacts, "emergency_contacts", fmt.Sprintf("must contain at least %d contact", types.MinEmergencyContacts))
	v.Check(len(r.EmergencyContacts) <= types.MaxEmergencyContacts, "emergency_contacts", fmt.Sprintf("must not contain more than %d contacts", types.MaxEmergencyContacts))
	v.Check(validator.Unique(r.EmergencyContacts), "emergency_contacts", "must not contain duplicates")

	for _, contact := range r.EmergencyContacts {
		if !validPhoneNumber(contact) {
			v.AddError("emergency_contacts", fmt.Sprintf("invalid phone number format: %s", contact))
			break
		}
	}

	v.Check(r.AlertDistanceKm != nil, "alert_distance_km", "must be provided")
	if r.AlertDistanceKm != nil {
		v.Check(*r.AlertDistanceKm >= types.MinAlertDistanceKm, "alert_distance_km", fmt.Sprintf("must be at least %v", types.MinAlertDistanceKm))
		v.Check(*r.AlertDistanceKm <= types.MaxAlertDistanceKm, "alert_distance_km", fmt.Sprintf("must not be more than %v", types.MaxAlertDistanceKm))
	}
}

// validPhoneNumber tolerates the usual human formatting: spaces, dashes and
// parentheses are ignored, an optional leading + is allowed, at least 8
// digits remain.
func validPhoneNumber(contact string) bool {
	if strings.TrimSpace(contact) == "" {
		return false
	}

	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	clean := replacer.Replace(contact)
	digits := strings.TrimPrefix(clean, "+")

	if len(digits) < 8 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *UpdateLocationRequest) Validate(v *validator.Validator) {
	ValidateCoordinate(v, r.Latitude, r.Longitude)
}

type BindDeviceRequest struct {
	DeviceID         string     `json:"device_id"`
	DeviceName       string     `json:"device_name"`
	DeviceBrand      string     `json:"device_brand"`
	SubscriptionType string     `json:"subscription_type"`
	ExpiresAt        *time.Time `json:"expires_at"`
}

func (r *BindDeviceRequest) Validate(v *validator.Validator) {
	v.Check(r.DeviceID != "", "device_id", "must be provided")
	v.Check(len(r.DeviceID) <= 128, "device_id", "must not be more than 128 characters long")

	v.Check(len(r.DeviceName) <= 128, "device_name", "must not be more than 128 characters long")
	v.Check(len(r.DeviceBrand) <= 64, "device_brand", "must not be more than 64 characters long")

	v.Check(r.SubscriptionType != "", "subscription_type", "must be provided")
	v.Check(len(r.SubscriptionType) <= 32, "subscription_type", "must not be more than 32 characters long")

	if r.ExpiresAt != nil {
		v.Check(r.ExpiresAt.After(time.Now()), "expires_at", "must be in the future")
	}
}
