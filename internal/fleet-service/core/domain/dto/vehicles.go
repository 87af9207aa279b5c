package dto

type VehicleCreateRequest struct {
	ModelName       *string  `json:"model_name"`
	LicensePlate    *string  `json:"license_plate"`
	VehicleType     *string  `json:"vehicle_type"`
	MaxLoadCapacity *float64 `json:"max_load_capacity"`
	Region          *string  `json:"region,omitempty"`
	AcquisitionCost *float64 `json:"acquisition_cost,omitempty"`
}

type VehicleUpdateRequest struct {
	ModelName       *string  `json:"model_name"`
	LicensePlate    *string  `json:"license_plate"`
	VehicleType     *string  `json:"vehicle_type"`
	MaxLoadCapacity *float64 `json:"max_load_capacity"`
	Odometer        *float64 `json:"odometer"`
	Region          *string  `json:"region"`
	Status          *string  `json:"status"`
}

type VehicleFilter struct {
	VehicleType string
	Status      string
	Region      string
}
