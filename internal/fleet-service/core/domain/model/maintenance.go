package model

import "time"

type MaintenanceLog struct {
	Id              string    `json:"id"`
	VehicleId       string    `json:"vehicle_id"`
	ServiceType     string    `json:"service_type"`
	Description     string    `json:"description"`
	Cost            float64   `json:"cost"`
	ServiceDate     time.Time `json:"service_date"`
	OdometerReading *float64  `json:"odometer_reading,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// MaintenanceDetails joins the serviced vehicle's display fields.
type MaintenanceDetails struct {
	MaintenanceLog
	ModelName    string `json:"model_name"`
	LicensePlate string `json:"license_plate"`
}
