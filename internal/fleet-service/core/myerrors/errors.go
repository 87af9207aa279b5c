package myerrors

import (
	"errors"
	"fmt"
)

// Business-rule rejections. All of them are final: the caller has to
// correct the request, retrying changes nothing.
var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrDriverNotFound     = errors.New("driver not found")
	ErrTripNotFound       = errors.New("trip not found")
	ErrVehicleUnavailable = errors.New("vehicle is not available")
	ErrVehicleOnTrip      = errors.New("vehicle is currently on a trip")
	ErrVehicleRetired     = errors.New("vehicle is retired")
	ErrVehicleNotInShop   = errors.New("vehicle is not in the shop")
	ErrLicenseExpired     = errors.New("driver license has expired")
	ErrDriverSuspended    = errors.New("driver is suspended")
	ErrNotDispatchable    = errors.New("trip is not in Draft status")
	ErrNotCompletable     = errors.New("trip is not in Dispatched status")
	ErrTripFinished       = errors.New("trip is already completed or cancelled")

	// Unique violation on the synthetic credential username. The
	// issuer retries with a fresh nonce, so this one never reaches
	// the caller.
	ErrCredentialTaken = errors.New("credential username already taken")
)

// ValidationError marks a malformed or incomplete request payload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type CapacityError struct {
	LimitKg float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cargo weight exceeds vehicle capacity (%.0f kg)", e.LimitKg)
}

type OdometerRegressionError struct {
	CurrentKm float64
}

func (e *OdometerRegressionError) Error() string {
	return fmt.Sprintf("odometer reading must be greater than current reading (%g km)", e.CurrentKm)
}

type OdometerImplausibleError struct {
	ReadingKm  float64
	DistanceKm float64
	MinKm      float64
	MaxKm      float64
}

func (e *OdometerImplausibleError) Error() string {
	return fmt.Sprintf("odometer reading (%g km) seems incorrect for trip distance (%g km), expected range: %.0f-%.0f km",
		e.ReadingKm, e.DistanceKm, e.MinKm, e.MaxKm)
}
