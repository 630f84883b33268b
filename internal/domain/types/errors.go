package types

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")

	ErrActiveEmergencyExists = errors.New("you already have an active emergency")
	ErrEmergencyNotFound     = errors.New("no active emergency found")

	ErrMessageNotFound = errors.New("message not found or not authorized")

	ErrDeviceBoundElsewhere = errors.New("subscription already active on another device")
	ErrNoDeviceBinding      = errors.New("no subscription found for this device")

	ErrResetTokenInvalid = errors.New("invalid or expired reset token")

	ErrNotFound = errors.New("requested item not found")
)
