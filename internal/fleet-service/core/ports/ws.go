package ports

import websocketdto "fleet-ops/internal/fleet-service/core/domain/websocket_dto"

// IBoard pushes events to connected dispatch board clients.
type IBoard interface {
	Broadcast(event websocketdto.Event)
}
