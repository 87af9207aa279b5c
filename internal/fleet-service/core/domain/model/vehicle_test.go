package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-ops/internal/fleet-service/core/myerrors"
)

func TestCheckLoad(t *testing.T) {
	v := Vehicle{MaxLoadCapacity: 2000}

	assert.NoError(t, v.CheckLoad(1500))
	assert.NoError(t, v.CheckLoad(2000))

	err := v.CheckLoad(2500)
	var capErr *myerrors.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 2000.0, capErr.LimitKg)
	assert.Contains(t, capErr.Error(), "2000 kg")
}

func TestCheckAvailable(t *testing.T) {
	assert.NoError(t, Vehicle{Status: VehicleAvailable}.CheckAvailable())

	for _, s := range []VehicleStatus{VehicleOnTrip, VehicleInShop, VehicleRetired} {
		err := Vehicle{Status: s}.CheckAvailable()
		assert.ErrorIs(t, err, myerrors.ErrVehicleUnavailable, string(s))
	}
}

func TestCheckServiceable(t *testing.T) {
	assert.NoError(t, Vehicle{Status: VehicleAvailable}.CheckServiceable())
	assert.NoError(t, Vehicle{Status: VehicleInShop}.CheckServiceable())
	assert.ErrorIs(t, Vehicle{Status: VehicleOnTrip}.CheckServiceable(), myerrors.ErrVehicleOnTrip)
	assert.ErrorIs(t, Vehicle{Status: VehicleRetired}.CheckServiceable(), myerrors.ErrVehicleRetired)
}

func TestCheckReleasable(t *testing.T) {
	assert.NoError(t, Vehicle{Status: VehicleInShop}.CheckReleasable())

	// a vehicle that is not in the shop is a distinct rejection, not a
	// missing vehicle
	for _, s := range []VehicleStatus{VehicleAvailable, VehicleOnTrip, VehicleRetired} {
		err := Vehicle{Status: s}.CheckReleasable()
		assert.ErrorIs(t, err, myerrors.ErrVehicleNotInShop, string(s))
		assert.NotErrorIs(t, err, myerrors.ErrVehicleNotFound, string(s))
	}
}
