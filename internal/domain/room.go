package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const (
	// CodeLength is the number of decimal digits in a room code.
	CodeLength = 6

	codeChars = "0123456789"
)

var charsetLen = big.NewInt(int64(len(codeChars)))

// RoomStatus is the fixed vocabulary a room's status must belong to.
type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusReady    RoomStatus = "ready"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

// ValidStatus reports whether s is a member of the status vocabulary.
func ValidStatus(s string) bool {
	switch RoomStatus(s) {
	case StatusWaiting, StatusReady, StatusPlaying, StatusFinished:
		return true
	}
	return false
}

// Room is a matchmaking session keyed by a 6-digit code. The first entry of
// Players is always the host. Rooms are never deleted explicitly; they fall
// out of the table when the expiry sweep evicts them.
type Room struct {
	Code       string     `json:"code"`
	HostName   string     `json:"hostName"`
	Players    []string   `json:"players"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	MaxPlayers int        `json:"maxPlayers"`
	Status     RoomStatus `json:"status"`
}

// NewRoom builds a room with the host as its only player. The caller supplies
// the code; generation and uniqueness live with the store so that check and
// insert happen under one lock acquisition.
func NewRoom(code, hostName string, maxPlayers int, now time.Time, expiry time.Duration) *Room {
	return &Room{
		Code:       code,
		HostName:   hostName,
		Players:    []string{hostName},
		CreatedAt:  now,
		ExpiresAt:  now.Add(expiry),
		MaxPlayers: maxPlayers,
		Status:     StatusWaiting,
	}
}

// Expired reports whether the room is past its expiry instant. The boundary
// is exclusive: a room exactly at ExpiresAt is still live.
func (r *Room) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// HasPlayer does a case-sensitive exact match against the member list.
func (r *Room) HasPlayer(name string) bool {
	for _, p := range r.Players {
		if p == name {
			return true
		}
	}
	return false
}

// AddPlayer appends name to the member list, preserving arrival order.
func (r *Room) AddPlayer(name string) error {
	if r.HasPlayer(name) {
		return ErrDuplicatePlayer
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}
	r.Players = append(r.Players, name)
	return nil
}

// Clone returns a copy that shares no mutable state with the receiver, so
// snapshots handed out by the store cannot alias the table past its lock.
func (r *Room) Clone() *Room {
	c := *r
	c.Players = make([]string, len(r.Players))
	copy(c.Players, r.Players)
	return &c
}

// GenerateRoomCode samples a uniformly random 6-digit code, leading zeros
// allowed. Uniqueness against the room table is the store's job.
func GenerateRoomCode() (string, error) {
	var sb strings.Builder
	sb.Grow(CodeLength)

	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeChars[n.Int64()])
	}

	return sb.String(), nil
}

// ValidCode reports whether code is exactly six ASCII digits.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
