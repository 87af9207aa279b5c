package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-ops/internal/fleet-service/core/myerrors"
)

func TestCheckDispatchable(t *testing.T) {
	assert.NoError(t, Trip{Status: TripDraft}.CheckDispatchable())

	for _, s := range []TripStatus{TripDispatched, TripCompleted, TripCancelled} {
		err := Trip{Status: s}.CheckDispatchable()
		assert.ErrorIs(t, err, myerrors.ErrNotDispatchable, string(s))
	}
}

func TestCheckCompletable(t *testing.T) {
	assert.NoError(t, Trip{Status: TripDispatched}.CheckCompletable())

	for _, s := range []TripStatus{TripDraft, TripCompleted, TripCancelled} {
		err := Trip{Status: s}.CheckCompletable()
		assert.ErrorIs(t, err, myerrors.ErrNotCompletable, string(s))
	}
}

func TestCheckCancellable(t *testing.T) {
	assert.NoError(t, Trip{Status: TripDraft}.CheckCancellable())
	assert.NoError(t, Trip{Status: TripDispatched}.CheckCancellable())
	assert.ErrorIs(t, Trip{Status: TripCompleted}.CheckCancellable(), myerrors.ErrTripFinished)
	assert.ErrorIs(t, Trip{Status: TripCancelled}.CheckCancellable(), myerrors.ErrTripFinished)
}

func TestCheckOdometerRegression(t *testing.T) {
	trip := Trip{Status: TripDispatched}

	for _, reading := range []float64{0, 500, 999.9, 1000} {
		err := trip.CheckOdometer(1000, reading)
		var regErr *myerrors.OdometerRegressionError
		require.True(t, errors.As(err, &regErr), "reading %g", reading)
		assert.Equal(t, 1000.0, regErr.CurrentKm)
		assert.Contains(t, regErr.Error(), "1000 km")
	}
}

func TestCheckOdometerBand(t *testing.T) {
	distance := 100.0
	trip := Trip{Status: TripDispatched, Distance: &distance}

	// vehicle at 1000 km, planned 100 km -> accepted range [1080, 1500]
	minKm, maxKm := OdometerBand(1000, distance)
	assert.Equal(t, 1080.0, minKm)
	assert.Equal(t, 1500.0, maxKm)

	assert.NoError(t, trip.CheckOdometer(1000, 1080))
	assert.NoError(t, trip.CheckOdometer(1000, 1100))
	assert.NoError(t, trip.CheckOdometer(1000, 1500))

	err := trip.CheckOdometer(1000, 1850)
	var impErr *myerrors.OdometerImplausibleError
	require.True(t, errors.As(err, &impErr))
	assert.Equal(t, 1080.0, impErr.MinKm)
	assert.Equal(t, 1500.0, impErr.MaxKm)
	assert.Contains(t, impErr.Error(), "1080-1500")

	err = trip.CheckOdometer(1000, 1050)
	require.True(t, errors.As(err, &impErr))
	assert.Contains(t, impErr.Error(), "1080-1500")
}

func TestCheckOdometerNoDistance(t *testing.T) {
	// without a planned distance only monotonicity is enforced
	trip := Trip{Status: TripDispatched}
	assert.NoError(t, trip.CheckOdometer(1000, 1001))
	assert.NoError(t, trip.CheckOdometer(1000, 99999))
}
