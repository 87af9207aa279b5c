package model

import (
	"time"

	"fleet-ops/internal/fleet-service/core/myerrors"
)

type TripStatus string

const (
	TripDraft      TripStatus = "Draft"
	TripDispatched TripStatus = "Dispatched"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"
)

// Plausibility band for a reported odometer delta, as a fraction of
// the planned distance. Tolerates detours up to 50% over and
// shortcuts down to 80%.
const (
	OdometerBandLow  = 0.8
	OdometerBandHigh = 1.5
)

type Trip struct {
	Id             string     `json:"id"`
	VehicleId      string     `json:"vehicle_id"`
	DriverId       string     `json:"driver_id"`
	CargoWeight    float64    `json:"cargo_weight"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	Distance       *float64   `json:"distance,omitempty"`
	Revenue        float64    `json:"revenue"`
	DriverEarnings float64    `json:"driver_earnings"`
	Status         TripStatus `json:"status"`
	DriverUserId   *string    `json:"driver_user_id,omitempty"`
	DispatchDate   *time.Time `json:"dispatch_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TripDetails is a trip joined with the display fields of its vehicle
// and driver.
type TripDetails struct {
	Trip
	ModelName    string `json:"model_name"`
	LicensePlate string `json:"license_plate"`
	DriverName   string `json:"driver_name"`
}

func (t Trip) CheckDispatchable() error {
	if t.Status != TripDraft {
		return myerrors.ErrNotDispatchable
	}
	return nil
}

func (t Trip) CheckCompletable() error {
	if t.Status != TripDispatched {
		return myerrors.ErrNotCompletable
	}
	return nil
}

func (t Trip) CheckCancellable() error {
	if t.Status == TripCompleted || t.Status == TripCancelled {
		return myerrors.ErrTripFinished
	}
	return nil
}

// OdometerBand returns the accepted reading range for a completion,
// given the vehicle's current odometer and the planned distance.
func OdometerBand(currentKm, distanceKm float64) (minKm, maxKm float64) {
	return currentKm + distanceKm*OdometerBandLow, currentKm + distanceKm*OdometerBandHigh
}

// CheckOdometer validates a completion reading against the vehicle's
// current odometer: strictly increasing always, and inside the
// plausibility band when the trip has a planned distance.
func (t Trip) CheckOdometer(currentKm, readingKm float64) error {
	if readingKm <= currentKm {
		return &myerrors.OdometerRegressionError{CurrentKm: currentKm}
	}
	if t.Distance != nil {
		minKm, maxKm := OdometerBand(currentKm, *t.Distance)
		if readingKm < minKm || readingKm > maxKm {
			return &myerrors.OdometerImplausibleError{
				ReadingKm:  readingKm,
				DistanceKm: *t.Distance,
				MinKm:      minKm,
				MaxKm:      maxKm,
			}
		}
	}
	return nil
}
