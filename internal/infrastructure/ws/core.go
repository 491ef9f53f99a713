package ws

import (
	"net/http"

	"github.com/gorilla/websocket"

	"quizmatch/internal/domain"
)

// RoomSnapshotFunc resolves the current state of a room for the initial
// event pushed to a new watcher.
type RoomSnapshotFunc func(code string) (*domain.Room, error)

type Core struct {
	roomMgr    *RoomManager
	register   chan *Client
	unregister chan *Client
	broadcast  chan *RoomEvent
	snapshot   RoomSnapshotFunc
}

func NewCore(snapshot RoomSnapshotFunc) *Core {
	return &Core{
		roomMgr:    NewRoomManager(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *RoomEvent, 256),
		snapshot:   snapshot,
	}
}

func (c *Core) Run() {
	for {
		select {
		case cl := <-c.register:
			c.roomMgr.AddClient(cl)

			// ---------- Push current room state ----------
			if c.snapshot != nil {
				room, err := c.snapshot(cl.RoomCode)
				if err != nil {
					cl.Message <- NewError(cl.RoomCode, err.Error())
					break
				}
				cl.Message <- NewRoomState(*room)
			}

		case cl := <-c.unregister:
			c.roomMgr.RemoveClient(cl)

		case msg := <-c.broadcast:
			c.roomMgr.BroadcastToRoom(msg)
		}
	}
}

func (c *Core) Register() chan<- *Client {
	return c.register
}

func (c *Core) Unregister() chan<- *Client {
	return c.unregister
}

func (c *Core) Broadcast() chan<- *RoomEvent {
	return c.broadcast
}

func (c *Core) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return c.roomMgr.Upgrade(w, r)
}

func (c *Core) Watchers(roomCode string) int {
	return c.roomMgr.WatcherCount(roomCode)
}
