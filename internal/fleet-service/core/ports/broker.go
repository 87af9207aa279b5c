package ports

import (
	"context"

	messagebrokerdto "fleet-ops/internal/fleet-service/core/domain/message_broker_dto"

	amqp "github.com/rabbitmq/amqp091-go"
)

const TripStatusPattern = "trip.status.*"

type IFleetBroker interface {
	Close() error
	PushTripStatus(ctx context.Context, msg messagebrokerdto.TripStatus) error
	ConsumeTripStatus(ctx context.Context, queue, consumerName string) (<-chan amqp.Delivery, error)
}
