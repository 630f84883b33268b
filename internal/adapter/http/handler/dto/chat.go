package dto

import (
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/validator"
)

type SendMessageRequest struct {
	Message     string   `json:"message"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	MessageType string   `json:"message_type"`
}

func (r *SendMessageRequest) Validate(v *validator.Validator) {
	v.Check(r.Message != "", "message", "must be provided")
	v.Check(len(r.Message) <= 1000, "message", "must not be more than 1000 characters long")

	ValidateCoordinate(v, r.Latitude, r.Longitude)

	if r.MessageType != "" {
		v.Check(types.MessageKind(r.MessageType).IsValid(), "message_type", "must be one of text, emergency or location")
	}
}

// Kind returns the requested message kind, defaulting to text.
func (r *SendMessageRequest) Kind() types.MessageKind {
	if r.MessageType == "" {
		return types.MessageText
	}
	return types.MessageKind(r.MessageType)
}
