package model

import (
	"time"

	"fleet-ops/internal/fleet-service/core/myerrors"
)

type DriverStatus string

const (
	DriverOnDuty    DriverStatus = "On Duty"
	DriverOffDuty   DriverStatus = "Off Duty"
	DriverSuspended DriverStatus = "Suspended"
)

type Driver struct {
	Id                string       `json:"id"`
	FullName          string       `json:"full_name"`
	LicenseNumber     string       `json:"license_number"`
	LicenseExpiryDate time.Time    `json:"license_expiry_date"`
	Phone             string       `json:"phone"`
	SafetyScore       float64      `json:"safety_score"`
	Status            DriverStatus `json:"status"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// CheckEligible rejects drivers whose license lapsed before now, or
// who are suspended.
func (d Driver) CheckEligible(now time.Time) error {
	if d.LicenseExpiryDate.Before(now.Truncate(24 * time.Hour)) {
		return myerrors.ErrLicenseExpired
	}
	if d.Status == DriverSuspended {
		return myerrors.ErrDriverSuspended
	}
	return nil
}
