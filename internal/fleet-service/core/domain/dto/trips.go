package dto

import "fleet-ops/internal/fleet-service/core/domain/model"

type TripCreateRequest struct {
	VehicleId      *string  `json:"vehicle_id"`
	DriverId       *string  `json:"driver_id"`
	CargoWeight    *float64 `json:"cargo_weight"`
	Origin         *string  `json:"origin"`
	Destination    *string  `json:"destination"`
	Distance       *float64 `json:"distance,omitempty"`
	Revenue        *float64 `json:"revenue,omitempty"`
	DriverEarnings *float64 `json:"driver_earnings,omitempty"`
}

type TripCompleteRequest struct {
	OdometerReading *float64 `json:"odometer_reading"`
}

// DriverCredentials is the one-time plaintext pair. The dispatch UI
// shows it once and never stores it.
type DriverCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Message  string `json:"message"`
}

type TripDispatchResponse struct {
	Trip              model.Trip        `json:"trip"`
	DriverCredentials DriverCredentials `json:"driver_credentials"`
}

type TripCompleteResponse struct {
	Trip     model.Trip `json:"trip"`
	Message  string     `json:"message"`
	Odometer float64    `json:"odometer"`
}
