package dto

import (
	"github.com/saferide-app/saferide-go/pkg/validator"
)

type RaiseEmergencyRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *RaiseEmergencyRequest) Validate(v *validator.Validator) {
	ValidateCoordinate(v, r.Latitude, r.Longitude)
}

// ValidateCoordinate is shared by every request carrying a position.
func ValidateCoordinate(v *validator.Validator, latitude, longitude *float64) {
	v.Check(latitude != nil, "latitude", "must be provided")
	if latitude != nil {
		v.Check(*latitude >= -90 && *latitude <= 90, "latitude", "must be between -90 and 90")
	}

	v.Check(longitude != nil, "longitude", "must be provided")
	if longitude != nil {
		v.Check(*longitude >= -180 && *longitude <= 180, "longitude", "must be between -180 and 180")
	}
}
