package ws

const (
	RoomState     = "room.state"
	RoomExpired   = "room.expired"
	PlayerJoined  = "room.player_joined"
	StatusChanged = "room.status_changed"

	ErrorEvent = "error"
)
