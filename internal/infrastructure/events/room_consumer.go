package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/rabbitmq/amqp091-go"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/contracts"
	"quizmatch/internal/infrastructure/messaging"
)

type roomConsumer struct {
	rabbitmq  *messaging.RabbitMQ
	auditLogs domain.RoomAuditRepository
}

func NewRoomConsumer(rabbitmq *messaging.RabbitMQ, auditLogs domain.RoomAuditRepository) *roomConsumer {
	return &roomConsumer{
		rabbitmq:  rabbitmq,
		auditLogs: auditLogs,
	}
}

func (c *roomConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.RoomsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			return err
		}

		var payload messaging.RoomEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			return err
		}

		if c.auditLogs == nil {
			return nil
		}

		entry := c.auditEntry(msg.RoutingKey, payload)
		if entry == nil {
			log.Printf("Unknown room event routing key: %s", msg.RoutingKey)
			return nil
		}

		return c.auditLogs.Log(ctx, entry)
	})
}

func (c *roomConsumer) auditEntry(routingKey string, payload messaging.RoomEventData) *domain.RoomAuditLog {
	room := payload.Room

	switch routingKey {
	case contracts.EventRoomCreated:
		return domain.NewRoomCreatedLog(room.Code, room.HostName, room.MaxPlayers, room.ExpiresAt)
	case contracts.EventRoomExpired:
		return domain.NewRoomExpiredLog(room.Code)
	case contracts.EventPlayerJoined:
		return domain.NewPlayerJoinedLog(room.Code, payload.PlayerName, len(room.Players))
	case contracts.EventStatusChanged:
		return domain.NewStatusChangedLog(room.Code, domain.RoomStatus(payload.NewStatus))
	default:
		return nil
	}
}
