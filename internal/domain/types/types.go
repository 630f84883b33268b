package types

// MessageKind классифицирует сообщения в локальном чате.
type MessageKind string

const (
	MessageText      MessageKind = "text"
	MessageEmergency MessageKind = "emergency"
	MessageLocation  MessageKind = "location"
)

func (k MessageKind) IsValid() bool {
	switch k {
	case MessageText, MessageEmergency, MessageLocation:
		return true
	default:
		return false
	}
}

// Default alert settings applied when the user never saved any.
const (
	DefaultAlertDistanceKm = 10.0

	MinAlertDistanceKm = 0.001
	MaxAlertDistanceKm = 10.0

	MinEmergencyContacts = 1
	MaxEmergencyContacts = 5
)
