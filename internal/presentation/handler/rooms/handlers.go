package rooms

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/events"
	"quizmatch/internal/infrastructure/json"
	"quizmatch/internal/infrastructure/metrics"
	"quizmatch/internal/infrastructure/ws"
	"quizmatch/internal/service"
)

type Handler struct {
	rooms         *service.RoomService
	quizzes       *service.QuizService
	core          *ws.Core
	roomPublisher *events.RoomPublisher
	auditLogs     domain.RoomAuditRepository
	metrics       *metrics.Metrics
}

func NewHandler(
	rooms *service.RoomService,
	quizzes *service.QuizService,
	core *ws.Core,
	roomPublisher *events.RoomPublisher,
	auditLogs domain.RoomAuditRepository,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		rooms:         rooms,
		quizzes:       quizzes,
		core:          core,
		roomPublisher: roomPublisher,
		auditLogs:     auditLogs,
		metrics:       m,
	}
}

// CreateRoomHandler godoc
// @Summary      Create a new game room
// @Description  Opens a room with a fresh 6-digit code and the caller as host
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body createRoomRequest false "Room creation parameters"
// @Success      201 {object} createRoomResponse "Room created successfully"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /rooms [post]
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	// Body is optional here; host name and capacity both have defaults.
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil && !errors.Is(err, domain.ErrMissingBody) {
		json.WriteValidationError(w, err)
		return
	}

	room, err := h.rooms.CreateRoom(req.HostName, req.MaxPlayers)
	if err != nil {
		log.Printf("Failed to create room: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	h.metrics.RoomsCreated.Inc()
	h.metrics.ActiveRooms.Set(float64(h.rooms.Count()))

	ctx := r.Context()
	h.audit(ctx, domain.NewRoomCreatedLog(room.Code, room.HostName, room.MaxPlayers, room.ExpiresAt))
	if h.roomPublisher != nil {
		if err := h.roomPublisher.PublishRoomCreated(ctx, *room); err != nil {
			log.Printf("Error publishing room created: %v", err)
		}
	}

	json.Write(w, http.StatusCreated, createRoomResponse{
		Code:       room.Code,
		HostName:   room.HostName,
		CreatedAt:  room.CreatedAt,
		ExpiresAt:  room.ExpiresAt,
		MaxPlayers: room.MaxPlayers,
	})
}

// JoinRoomHandler godoc
// @Summary      Join a game room
// @Description  Adds a player to the room identified by its 6-digit code
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body joinRoomRequest true "Join parameters"
// @Success      200 {object} joinRoomResponse "Joined successfully"
// @Failure      400 {object} map[string]interface{} "Bad request - missing or malformed fields"
// @Failure      403 {object} map[string]interface{} "Room is full"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Failure      409 {object} map[string]interface{} "Player name already taken in this room"
// @Router       /rooms/join [post]
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.Read(r, &req); err != nil {
		h.metrics.RoomJoins.WithLabelValues("invalid").Inc()
		json.WriteValidationError(w, err)
		return
	}

	room, err := h.rooms.JoinRoom(req.Code, req.PlayerName)
	if err != nil {
		h.metrics.RoomJoins.WithLabelValues(joinOutcome(err)).Inc()
		if errors.Is(err, domain.ErrRoomFull) {
			h.audit(r.Context(), domain.NewRoomFullRejectionLog(req.Code, req.PlayerName))
		}
		writeRoomError(w, err)
		return
	}

	h.metrics.RoomJoins.WithLabelValues("ok").Inc()

	ctx := r.Context()
	h.audit(ctx, domain.NewPlayerJoinedLog(room.Code, req.PlayerName, len(room.Players)))
	if h.roomPublisher != nil {
		if err := h.roomPublisher.PublishPlayerJoined(ctx, *room, req.PlayerName); err != nil {
			log.Printf("Error publishing player joined: %v", err)
		}
	}
	h.core.Broadcast() <- ws.NewPlayerJoined(*room, req.PlayerName)

	json.Write(w, http.StatusOK, joinRoomResponse{
		Code:        room.Code,
		PlayerName:  req.PlayerName,
		Players:     room.Players,
		HostName:    room.HostName,
		PlayerCount: len(room.Players),
		MaxPlayers:  room.MaxPlayers,
		Status:      string(room.Status),
	})
}

// GetRoomHandler godoc
// @Summary      Get room details
// @Description  Returns the full state of a room, including its player list
// @Tags         rooms
// @Produce      json
// @Param        code path string true "6-digit room code"
// @Success      200 {object} roomResponse "Room details"
// @Failure      400 {object} map[string]interface{} "Malformed room code"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Router       /rooms/{code} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	room, err := h.rooms.GetRoom(code)
	if err != nil {
		writeRoomError(w, err)
		return
	}

	json.Write(w, http.StatusOK, roomResponse{
		Code:        room.Code,
		HostName:    room.HostName,
		Players:     room.Players,
		PlayerCount: len(room.Players),
		MaxPlayers:  room.MaxPlayers,
		Status:      string(room.Status),
		CreatedAt:   room.CreatedAt,
		ExpiresAt:   room.ExpiresAt,
	})
}

// UpdateStatusHandler godoc
// @Summary      Update room status
// @Description  Overwrites the room status; any status may follow any other
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        code path string true "6-digit room code"
// @Param        request body updateStatusRequest true "New status"
// @Success      200 {object} updateStatusResponse "Status updated"
// @Failure      400 {object} map[string]interface{} "Malformed code, missing body or unknown status"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Router       /rooms/{code} [put]
func (h *Handler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req updateStatusRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	room, err := h.rooms.UpdateStatus(code, req.Status)
	if err != nil {
		writeRoomError(w, err)
		return
	}

	ctx := r.Context()
	h.audit(ctx, domain.NewStatusChangedLog(room.Code, room.Status))
	if h.roomPublisher != nil {
		if err := h.roomPublisher.PublishStatusChanged(ctx, *room, "", req.Status); err != nil {
			log.Printf("Error publishing status changed: %v", err)
		}
	}
	h.core.Broadcast() <- ws.NewStatusChanged(room.Code, "", string(room.Status))

	json.Write(w, http.StatusOK, updateStatusResponse{
		Code:    room.Code,
		Status:  string(room.Status),
		Message: "Room status updated successfully",
	})
}

// ListRoomsHandler godoc
// @Summary      List live rooms
// @Description  Returns a condensed summary of every unexpired room
// @Tags         rooms
// @Produce      json
// @Success      200 {object} listRoomsResponse "Room summaries"
// @Router       /rooms [get]
func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	live := h.rooms.ListRooms()

	summaries := make([]roomSummary, 0, len(live))
	for _, room := range live {
		summaries = append(summaries, roomSummary{
			Code:        room.Code,
			HostName:    room.HostName,
			PlayerCount: len(room.Players),
			MaxPlayers:  room.MaxPlayers,
			Status:      string(room.Status),
		})
	}

	h.metrics.ActiveRooms.Set(float64(len(summaries)))

	json.Write(w, http.StatusOK, listRoomsResponse{
		Rooms: summaries,
		Total: len(summaries),
	})
}

// RoomEventsHandler godoc
// @Summary      Watch room events over WebSocket
// @Description  Streams lifecycle events (joins, status changes, expiry) for one room
// @Tags         rooms
// @Param        code path string true "6-digit room code"
// @Success      101 {object} map[string]interface{} "Switching Protocols"
// @Failure      400 {object} map[string]interface{} "Malformed room code"
// @Failure      404 {object} map[string]interface{} "Room not found or expired"
// @Router       /rooms/{code}/events [get]
func (h *Handler) RoomEventsHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	// Reject before upgrading so plain HTTP clients get a proper status.
	if _, err := h.rooms.GetRoom(code); err != nil {
		writeRoomError(w, err)
		return
	}

	conn, err := h.core.Upgrade(w, r)
	if err != nil {
		log.Printf("WebSocket upgrade failed for room %s: %v", code, err)
		return
	}

	client := ws.NewClient(conn, uuid.NewString(), code)
	h.core.Register() <- client

	go client.WriteMessage()
	go client.ReadMessage(h.core)
}

// AssignQuizHandler godoc
// @Summary      Assign a quiz to a room
// @Description  Points the room at a registered quiz template
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        code path string true "6-digit room code"
// @Param        request body assignQuizRequest true "Quiz to assign"
// @Success      200 {object} assignQuizResponse "Quiz assigned"
// @Failure      400 {object} map[string]interface{} "Malformed code or missing body"
// @Failure      404 {object} map[string]interface{} "Room or quiz not found"
// @Router       /rooms/{code}/quiz [post]
func (h *Handler) AssignQuizHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req assignQuizRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	room, quiz, err := h.quizzes.AssignToRoom(code, req.QuizID)
	if err != nil {
		writeRoomError(w, err)
		return
	}

	data, err := quiz.Data(false)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	data.QuizID = req.QuizID

	json.Write(w, http.StatusOK, assignQuizResponse{
		Code:     room.Code,
		QuizID:   req.QuizID,
		QuizHTML: quiz.Render(false, nil),
		QuizData: data,
		Metadata: quiz.Metadata,
	})
}

// audit persists the entry directly only when no publisher is wired: with
// RabbitMQ enabled the event consumer owns the audit trail, and writing here
// too would duplicate every entry. Room-full rejections are never published,
// so they always go straight to the repository.
func (h *Handler) audit(ctx context.Context, entry *domain.RoomAuditLog) {
	if h.auditLogs == nil {
		return
	}
	if h.roomPublisher != nil && entry.EventType != domain.EventRoomFull {
		return
	}
	if err := h.auditLogs.Log(ctx, entry); err != nil {
		log.Printf("Failed to write audit log for room %s: %v", entry.RoomCode, err)
	}
}

func joinOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicatePlayer):
		return "duplicate"
	case errors.Is(err, domain.ErrRoomFull):
		return "full"
	default:
		return "invalid"
	}
}

func writeRoomError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		json.WriteError(w, http.StatusNotFound, err, "Room not found or expired")
	case errors.Is(err, domain.ErrQuizNotFound):
		json.WriteError(w, http.StatusNotFound, err, "Quiz not found")
	case errors.Is(err, domain.ErrDuplicatePlayer):
		json.WriteError(w, http.StatusConflict, err, "Player name already exists in this room")
	case errors.Is(err, domain.ErrRoomFull):
		json.WriteError(w, http.StatusForbidden, err, "Room is full")
	case errors.Is(err, domain.ErrInvalidCodeFormat):
		json.WriteError(w, http.StatusBadRequest, err, "Invalid room code format. Must be 6 digits")
	case errors.Is(err, domain.ErrMissingCode),
		errors.Is(err, domain.ErrMissingPlayerName),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrMissingBody):
		json.WriteValidationError(w, err)
	default:
		json.WriteInternalError(w, err)
	}
}
