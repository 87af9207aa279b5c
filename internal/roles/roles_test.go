package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	r, err := Parse("dispatcher")
	assert.NoError(t, err)
	assert.Equal(t, Dispatcher, r)

	_, err = Parse("superadmin")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestCapabilities(t *testing.T) {
	// dispatch workflow belongs to dispatchers and managers only
	assert.True(t, Dispatcher.Can(CapTripDispatch))
	assert.True(t, FleetManager.Can(CapTripDispatch))
	assert.False(t, SafetyOfficer.Can(CapTripDispatch))
	assert.False(t, FinancialAnalyst.Can(CapTripDispatch))
	assert.False(t, Driver.Can(CapTripDispatch))

	// drivers see their active trip and complete it, nothing else
	assert.True(t, Driver.Can(CapTripActiveView))
	assert.True(t, Driver.Can(CapTripComplete))
	assert.False(t, Driver.Can(CapTripView))
	assert.False(t, Driver.Can(CapVehicleView))

	// user management is fleet_manager only
	assert.True(t, FleetManager.Can(CapUserManage))
	for _, r := range []Role{Dispatcher, SafetyOfficer, FinancialAnalyst, Driver} {
		assert.False(t, r.Can(CapUserManage), string(r))
	}

	// ROI is restricted to financial roles
	assert.True(t, FinancialAnalyst.Can(CapROIView))
	assert.True(t, FleetManager.Can(CapROIView))
	assert.False(t, Dispatcher.Can(CapROIView))

	// every staff role can read the fleet
	for _, r := range []Role{FleetManager, Dispatcher, SafetyOfficer, FinancialAnalyst} {
		assert.True(t, r.Can(CapVehicleView), string(r))
		assert.True(t, r.Can(CapTripView), string(r))
	}
}

func TestUnknownRoleHoldsNothing(t *testing.T) {
	assert.False(t, Role("ghost").Can(CapTripView))
}
