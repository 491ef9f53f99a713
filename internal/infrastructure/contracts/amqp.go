package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	RoomCode string `json:"roomCode"`
	Data     []byte `json:"data"`
}

// Routing keys - using consistent event/command patterns
const (
	EventRoomCreated   = "room.created"
	EventRoomExpired   = "room.expired"
	EventPlayerJoined  = "room.player_joined"
	EventStatusChanged = "room.status_changed"
)
