package websocketdto

import "encoding/json"

type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// TripStatusUpdate is pushed to dispatch board clients.
type TripStatusUpdate struct {
	TripId        string `json:"trip_id"`
	Status        string `json:"status"`
	VehicleId     string `json:"vehicle_id"`
	DriverId      string `json:"driver_id"`
	Timestamp     string `json:"timestamp"`
	CorrelationID string `json:"correlation_id"`
}
