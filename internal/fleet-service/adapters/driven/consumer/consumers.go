package consumer

import (
	"context"
	"encoding/json"

	messagebrokerdto "fleet-ops/internal/fleet-service/core/domain/message_broker_dto"
	websocketdto "fleet-ops/internal/fleet-service/core/domain/websocket_dto"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	boardQueue   = "fleet.board"
	consumerName = "fleet-service"

	// websocket type
	tripStatusUpdate = "trip_status_update"
)

// Notification bridges trip status events from the broker to the
// dispatch board websocket clients.
type Notification struct {
	ctx    context.Context
	mylog  mylogger.Logger
	board  ports.IBoard
	broker ports.IFleetBroker
}

func New(
	ctx context.Context,
	mylog mylogger.Logger,
	board ports.IBoard,
	broker ports.IFleetBroker,
) *Notification {
	return &Notification{
		ctx:    ctx,
		mylog:  mylog,
		board:  board,
		broker: broker,
	}
}

func (n *Notification) Run() error {
	chTripStatus, err := n.broker.ConsumeTripStatus(n.ctx, boardQueue, consumerName)
	if err != nil {
		return err
	}

	go n.work(n.ctx, chTripStatus, n.TripStatusUpdate)

	return nil
}

func (n *Notification) work(
	ctx context.Context,
	ch <-chan amqp091.Delivery,
	Do func(msg amqp091.Delivery) error,
) {
	log := n.mylog.Action("consume")

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			if err := Do(msg); err != nil {
				log.Error("cannot handle delivery", err, "routing-key", msg.RoutingKey)
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		case <-ctx.Done():
			return
		}
	}
}

func (n *Notification) TripStatusUpdate(msg amqp091.Delivery) error {
	m := messagebrokerdto.TripStatus{}

	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}

	update := websocketdto.TripStatusUpdate{
		TripId:        m.TripId,
		Status:        m.Status,
		VehicleId:     m.VehicleId,
		DriverId:      m.DriverId,
		Timestamp:     m.Timestamp,
		CorrelationID: m.CorrelationID,
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return err
	}

	n.board.Broadcast(websocketdto.Event{
		Type: tripStatusUpdate,
		Data: payload,
	})
	return nil
}
