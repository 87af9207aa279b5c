package model

import "time"

type Expense struct {
	Id              string    `json:"id"`
	VehicleId       string    `json:"vehicle_id"`
	ExpenseType     string    `json:"expense_type"`
	FuelLiters      *float64  `json:"fuel_liters,omitempty"`
	Cost            float64   `json:"cost"`
	ExpenseDate     time.Time `json:"expense_date"`
	OdometerReading *float64  `json:"odometer_reading,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ExpenseDetails joins the vehicle's display fields.
type ExpenseDetails struct {
	Expense
	ModelName    string `json:"model_name"`
	LicensePlate string `json:"license_plate"`
}
