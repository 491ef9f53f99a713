package events

import (
	"context"
	"encoding/json"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/contracts"
	"quizmatch/internal/infrastructure/messaging"
)

type RoomPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewRoomPublisher(rabbitmq *messaging.RabbitMQ) *RoomPublisher {
	return &RoomPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *RoomPublisher) publish(ctx context.Context, routingKey string, payload messaging.RoomEventData) error {
	roomEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		RoomCode: payload.Room.Code,
		Data:     roomEventJSON,
	})
}

func (p *RoomPublisher) PublishRoomCreated(ctx context.Context, room domain.Room) error {
	return p.publish(ctx, contracts.EventRoomCreated, messaging.RoomEventData{Room: room})
}

func (p *RoomPublisher) PublishRoomExpired(ctx context.Context, room domain.Room) error {
	return p.publish(ctx, contracts.EventRoomExpired, messaging.RoomEventData{Room: room})
}

func (p *RoomPublisher) PublishPlayerJoined(ctx context.Context, room domain.Room, playerName string) error {
	return p.publish(ctx, contracts.EventPlayerJoined, messaging.RoomEventData{
		Room:       room,
		PlayerName: playerName,
	})
}

func (p *RoomPublisher) PublishStatusChanged(ctx context.Context, room domain.Room, oldStatus, newStatus string) error {
	return p.publish(ctx, contracts.EventStatusChanged, messaging.RoomEventData{
		Room:      room,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	})
}
