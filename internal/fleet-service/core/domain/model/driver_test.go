package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleet-ops/internal/fleet-service/core/myerrors"
)

func TestCheckEligible(t *testing.T) {
	now := time.Now()

	valid := Driver{Status: DriverOffDuty, LicenseExpiryDate: now.AddDate(1, 0, 0)}
	assert.NoError(t, valid.CheckEligible(now))

	// license still valid on its expiry day
	today := Driver{Status: DriverOffDuty, LicenseExpiryDate: now.Truncate(24 * time.Hour)}
	assert.NoError(t, today.CheckEligible(now))

	expired := Driver{Status: DriverOffDuty, LicenseExpiryDate: now.AddDate(0, 0, -1)}
	assert.ErrorIs(t, expired.CheckEligible(now), myerrors.ErrLicenseExpired)

	suspended := Driver{Status: DriverSuspended, LicenseExpiryDate: now.AddDate(1, 0, 0)}
	assert.ErrorIs(t, suspended.CheckEligible(now), myerrors.ErrDriverSuspended)

	// an on-duty driver with a valid license is still eligible for
	// trip creation; availability is settled at dispatch time
	onDuty := Driver{Status: DriverOnDuty, LicenseExpiryDate: now.AddDate(1, 0, 0)}
	assert.NoError(t, onDuty.CheckEligible(now))
}
