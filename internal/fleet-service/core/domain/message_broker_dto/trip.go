package messagebrokerdto

// TripStatus is published on the fleet_topic exchange whenever a trip
// leaves or enters a state, routing key trip.status.<status>.
type TripStatus struct {
	TripId        string `json:"trip_id"`
	Status        string `json:"status"`
	VehicleId     string `json:"vehicle_id"`
	DriverId      string `json:"driver_id"`
	Timestamp     string `json:"timestamp"`
	CorrelationID string `json:"correlation_id"`
}
