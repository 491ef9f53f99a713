package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type feedRoom struct {
	Code    string
	Clients map[string]*Client
}

// RoomManager tracks which clients watch which room code.
type RoomManager struct {
	rooms map[string]*feedRoom // keyed by room code
	mu    sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*feedRoom),
	}
}

func (rm *RoomManager) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (rm *RoomManager) AddClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, ok := rm.rooms[cl.RoomCode]
	if !ok {
		room = &feedRoom{
			Code:    cl.RoomCode,
			Clients: make(map[string]*Client),
		}
		rm.rooms[cl.RoomCode] = room
	}

	if _, exists := room.Clients[cl.ID]; !exists {
		room.Clients[cl.ID] = cl
	}
}

func (rm *RoomManager) RemoveClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if room, ok := rm.rooms[cl.RoomCode]; ok {
		if _, ok := room.Clients[cl.ID]; ok {
			delete(room.Clients, cl.ID)
			close(cl.Message)

			if len(room.Clients) == 0 {
				delete(rm.rooms, cl.RoomCode)
			}
		}
	}
}

func (rm *RoomManager) WatcherCount(roomCode string) int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	room, ok := rm.rooms[roomCode]
	if !ok {
		return 0
	}
	return len(room.Clients)
}

func (rm *RoomManager) BroadcastToRoom(msg *RoomEvent) {
	rm.mu.RLock()
	room, ok := rm.rooms[msg.RoomCode]
	rm.mu.RUnlock()
	if !ok {
		// Nobody is watching this room
		return
	}

	for _, cl := range room.Clients {
		select {
		case cl.Message <- msg:
		default:
			// Client is too slow, drop the message
			log.Printf("client %s buffer full, dropping event", cl.ID)
		}
	}
}
