package model

import (
	"time"

	"fleet-ops/internal/fleet-service/core/myerrors"
)

type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "Available"
	VehicleOnTrip    VehicleStatus = "On Trip"
	VehicleInShop    VehicleStatus = "In Shop"
	VehicleRetired   VehicleStatus = "Retired"
)

type Vehicle struct {
	Id              string        `json:"id"`
	ModelName       string        `json:"model_name"`
	LicensePlate    string        `json:"license_plate"`
	VehicleType     string        `json:"vehicle_type"`
	MaxLoadCapacity float64       `json:"max_load_capacity"`
	Odometer        float64       `json:"odometer"`
	Region          string        `json:"region"`
	AcquisitionCost float64       `json:"acquisition_cost"`
	Status          VehicleStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CheckLoad rejects cargo heavier than the rated capacity.
func (v Vehicle) CheckLoad(cargoKg float64) error {
	if cargoKg > v.MaxLoadCapacity {
		return &myerrors.CapacityError{LimitKg: v.MaxLoadCapacity}
	}
	return nil
}

func (v Vehicle) CheckAvailable() error {
	if v.Status != VehicleAvailable {
		return myerrors.ErrVehicleUnavailable
	}
	return nil
}

// CheckServiceable guards the maintenance workflow: a vehicle on a
// dispatched trip or retired never enters the shop.
func (v Vehicle) CheckServiceable() error {
	switch v.Status {
	case VehicleOnTrip:
		return myerrors.ErrVehicleOnTrip
	case VehicleRetired:
		return myerrors.ErrVehicleRetired
	}
	return nil
}

// CheckReleasable guards maintenance completion: only a vehicle that
// is actually in the shop can be released from it.
func (v Vehicle) CheckReleasable() error {
	if v.Status != VehicleInShop {
		return myerrors.ErrVehicleNotInShop
	}
	return nil
}
