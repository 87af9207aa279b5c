package dto

import "fleet-ops/internal/fleet-service/core/domain/model"

type DriverCreateRequest struct {
	FullName          *string `json:"full_name"`
	LicenseNumber     *string `json:"license_number"`
	LicenseExpiryDate *string `json:"license_expiry_date"`
	Phone             *string `json:"phone,omitempty"`
}

type DriverUpdateRequest struct {
	FullName          *string  `json:"full_name"`
	LicenseNumber     *string  `json:"license_number"`
	LicenseExpiryDate *string  `json:"license_expiry_date"`
	Phone             *string  `json:"phone"`
	SafetyScore       *float64 `json:"safety_score"`
	Status            *string  `json:"status"`
}

type DriverPerformance struct {
	model.Driver
	TotalTrips     int64   `json:"total_trips"`
	CompletedTrips int64   `json:"completed_trips"`
	CompletionRate float64 `json:"completion_rate"`
}
