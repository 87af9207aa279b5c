package dto

type MaintenanceCreateRequest struct {
	VehicleId       *string  `json:"vehicle_id"`
	ServiceType     *string  `json:"service_type"`
	Description     *string  `json:"description,omitempty"`
	Cost            *float64 `json:"cost,omitempty"`
	ServiceDate     *string  `json:"service_date"`
	OdometerReading *float64 `json:"odometer_reading,omitempty"`
}

type MaintenanceCompleteRequest struct {
	VehicleId *string `json:"vehicle_id"`
}
