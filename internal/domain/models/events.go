package models

import (
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

// BroadcastEvent is the closed set of events the bus can carry. Each wire
// event name has exactly one struct, so payload shapes are fixed at compile
// time instead of being ad-hoc maps.
type BroadcastEvent interface {
	EventName() string
}

type EmergencyAlertEvent struct {
	EmergencyID  uuid.UUID `json:"emergency_id"`
	UserName     string    `json:"user_name"`
	VehiclePlate string    `json:"vehicle_plate"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
}

func (EmergencyAlertEvent) EventName() string { return "emergency_alert" }

type EmergencyResolvedEvent struct {
	EmergencyID uuid.UUID `json:"emergency_id"`
}

func (EmergencyResolvedEvent) EventName() string { return "emergency_resolved" }

// NewChatMessageEvent is pushed to every live connection. AlertDistanceKm is
// the sender's configured radius: recipients use it to corroborate relevance
// locally, the server does not pre-filter socket delivery by distance.
type NewChatMessageEvent struct {
	MessageID       uuid.UUID         `json:"message_id"`
	UserName        string            `json:"user_name"`
	Message         string            `json:"message"`
	Latitude        float64           `json:"latitude"`
	Longitude       float64           `json:"longitude"`
	MessageType     types.MessageKind `json:"message_type"`
	CreatedAt       time.Time         `json:"created_at"`
	AlertDistanceKm float64           `json:"alert_distance_km"`
}

func (NewChatMessageEvent) EventName() string { return "new_chat_message" }

type ChatMessageDeletedEvent struct {
	MessageID uuid.UUID `json:"message_id"`
}

func (ChatMessageDeletedEvent) EventName() string { return "chat_message_deleted" }
