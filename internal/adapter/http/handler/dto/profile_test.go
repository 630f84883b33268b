package dto

import (
	"testing"

	"github.com/saferide-app/saferide-go/pkg/validator"
)

func float64Ptr(f float64) *float64 { return &f }

func TestUpdateSettingsValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       UpdateSettingsRequest
		wantValid bool
		wantField string
	}{
		{
			name: "valid",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"+7 701 123-45-67"},
				AlertDistanceKm:   float64Ptr(5.0),
			},
			wantValid: true,
		},
		{
			name: "no contacts",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{},
				AlertDistanceKm:   float64Ptr(5.0),
			},
			wantField: "emergency_contacts",
		},
		{
			name: "too many contacts",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"+77011111111", "+77012222222", "+77013333333", "+77014444444", "+77015555555", "+77016666666"},
				AlertDistanceKm:   float64Ptr(5.0),
			},
			wantField: "emergency_contacts",
		},
		{
			name: "contact with letters",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"call-mom"},
				AlertDistanceKm:   float64Ptr(5.0),
			},
			wantField: "emergency_contacts",
		},
		{
			name: "contact too short",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"+1234"},
				AlertDistanceKm:   float64Ptr(5.0),
			},
			wantField: "emergency_contacts",
		},
		{
			name: "formatted contact accepted",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"(701) 123-45-67"},
				AlertDistanceKm:   float64Ptr(5.0),
			},
			wantValid: true,
		},
		{
			name: "radius missing",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"+77011234567"},
			},
			wantField: "alert_distance_km",
		},
		{
			name: "radius zero",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"+77011234567"},
				AlertDistanceKm:   float64Ptr(0),
			},
			wantField: "alert_distance_km",
		},
		{
			name: "radius above maximum",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"+77011234567"},
				AlertDistanceKm:   float64Ptr(10.5),
			},
			wantField: "alert_distance_km",
		},
		{
			name: "radius at minimum boundary",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"+77011234567"},
				AlertDistanceKm:   float64Ptr(0.001),
			},
			wantValid: true,
		},
		{
			name: "radius at maximum boundary",
			req: UpdateSettingsRequest{
				EmergencyContacts: []string{"+77011234567"},
				AlertDistanceKm:   float64Ptr(10.0),
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			tt.req.Validate(v)

			if v.Valid() != tt.wantValid {
				t.Fatalf("Valid() = %v, want %v (errors: %v)", v.Valid(), tt.wantValid, v.Errors)
			}
			if !tt.wantValid {
				if _, ok := v.Errors[tt.wantField]; !ok {
					t.Errorf("expected error on field %q, got %v", tt.wantField, v.Errors)
				}
			}
		})
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name      string
		lat, lon  *float64
		wantValid bool
	}{
		{"valid", float64Ptr(43.2), float64Ptr(76.9), true},
		{"missing latitude", nil, float64Ptr(76.9), false},
		{"missing longitude", float64Ptr(43.2), nil, false},
		{"latitude too big", float64Ptr(91), float64Ptr(76.9), false},
		{"latitude too small", float64Ptr(-91), float64Ptr(76.9), false},
		{"longitude too big", float64Ptr(43.2), float64Ptr(181), false},
		{"longitude too small", float64Ptr(43.2), float64Ptr(-181), false},
		{"boundaries", float64Ptr(90), float64Ptr(-180), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateCoordinate(v, tt.lat, tt.lon)
			if v.Valid() != tt.wantValid {
				t.Errorf("Valid() = %v, want %v (errors: %v)", v.Valid(), tt.wantValid, v.Errors)
			}
		})
	}
}

func TestSendMessageValidate(t *testing.T) {
	valid := SendMessageRequest{
		Message:   "watch out near the underpass",
		Latitude:  float64Ptr(43.2),
		Longitude: float64Ptr(76.9),
	}

	v := validator.New()
	valid.Validate(v)
	if !v.Valid() {
		t.Fatalf("expected valid request, got %v", v.Errors)
	}
	if valid.Kind() != "text" {
		t.Errorf("empty message_type should default to text, got %q", valid.Kind())
	}

	bad := valid
	bad.MessageType = "shouting"
	v = validator.New()
	bad.Validate(v)
	if v.Valid() {
		t.Error("unknown message_type should fail validation")
	}
}
