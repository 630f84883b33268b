package dto

import (
	"github.com/saferide-app/saferide-go/pkg/validator"
)

type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	VehiclePlate string `json:"vehicle_plate"`
	Password     string `json:"password"`
}

func (r *RegisterRequest) Validate(v *validator.Validator) {
	v.Check(r.Name != "", "name", "must be provided")
	v.Check(len(r.Name) <= 100, "name", "must not be more than 100 characters long")

	v.Check(r.Email != "", "email", "must be provided")
	if r.Email != "" {
		v.Check(validator.Matches(r.Email, validator.EmailRX), "email", "must be a valid email address")
	}

	v.Check(len(r.VehiclePlate) <= 16, "vehicle_plate", "must not be more than 16 characters long")

	v.Check(r.Password != "", "password", "must be provided")
	v.Check(len(r.Password) >= 8, "password", "must be at least 8 characters long")
	v.Check(len(r.Password) <= 72, "password", "must not be more than 72 characters long")
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate(v *validator.Validator) {
	v.Check(r.Email != "", "email", "must be provided")
	v.Check(r.Password != "", "password", "must be provided")
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate(v *validator.Validator) {
	v.Check(r.Email != "", "email", "must be provided")
	if r.Email != "" {
		v.Check(validator.Matches(r.Email, validator.EmailRX), "email", "must be a valid email address")
	}
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate(v *validator.Validator) {
	v.Check(r.Token != "", "token", "must be provided")
	v.Check(r.NewPassword != "", "new_password", "must be provided")
	v.Check(len(r.NewPassword) >= 8, "new_password", "must be at least 8 characters long")
	v.Check(len(r.NewPassword) <= 72, "new_password", "must not be more than 72 characters long")
}
