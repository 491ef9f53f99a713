package domain

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found or expired")
	ErrRoomFull          = errors.New("room is full")
	ErrDuplicatePlayer   = errors.New("player name already exists in this room")
	ErrInvalidCodeFormat = errors.New("invalid room code format, must be 6 digits")
	ErrMissingCode       = errors.New("room code is required")
	ErrMissingPlayerName = errors.New("player name is required")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrMissingBody       = errors.New("request body is required")

	ErrQuizNotFound  = errors.New("quiz not found")
	ErrInvalidAnswer = errors.New("answer index out of range")
)
