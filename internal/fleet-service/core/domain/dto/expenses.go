package dto

type ExpenseCreateRequest struct {
	VehicleId       *string  `json:"vehicle_id"`
	ExpenseType     *string  `json:"expense_type"`
	FuelLiters      *float64 `json:"fuel_liters,omitempty"`
	Cost            *float64 `json:"cost"`
	ExpenseDate     *string  `json:"expense_date"`
	OdometerReading *float64 `json:"odometer_reading,omitempty"`
}

type ExpenseFilter struct {
	VehicleId   string
	ExpenseType string
}

type OperationalCost struct {
	FuelCost        float64 `json:"fuel_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	TotalCost       float64 `json:"total_cost"`
}
