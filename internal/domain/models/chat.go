package models

import (
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type ChatMessage struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	UserName    string            `json:"user_name"`
	Message     string            `json:"message"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	MessageType types.MessageKind `json:"message_type"`
	CreatedAt   time.Time         `json:"created_at"`
}

type NearbyChatMessage struct {
	ChatMessage
	DistanceKm float64 `json:"distance_km"`
}
