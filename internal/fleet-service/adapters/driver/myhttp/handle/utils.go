package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleet-ops/internal/fleet-service/adapters/driven/db"
	"fleet-ops/internal/fleet-service/core/myerrors"
)

const WaitTime = 10

// jsonResponse writes the given data as a JSON-encoded HTTP response.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// JsonError writes an error response as JSON with the specified HTTP status code.
func JsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}

// businessError maps domain rejections onto HTTP statuses. Anything
// unmapped is a 500.
func businessError(w http.ResponseWriter, err error) {
	var (
		validationErr  *myerrors.ValidationError
		capacityErr    *myerrors.CapacityError
		regressionErr  *myerrors.OdometerRegressionError
		implausibleErr *myerrors.OdometerImplausibleError
	)

	switch {
	case errors.Is(err, myerrors.ErrVehicleNotFound),
		errors.Is(err, myerrors.ErrDriverNotFound),
		errors.Is(err, myerrors.ErrTripNotFound):
		JsonError(w, http.StatusNotFound, err)

	case errors.Is(err, db.ErrPlateRegistered),
		errors.Is(err, db.ErrLicenseNumberRegistered):
		JsonError(w, http.StatusConflict, err)

	case errors.Is(err, myerrors.ErrVehicleUnavailable),
		errors.Is(err, myerrors.ErrVehicleOnTrip),
		errors.Is(err, myerrors.ErrVehicleRetired),
		errors.Is(err, myerrors.ErrVehicleNotInShop),
		errors.Is(err, myerrors.ErrLicenseExpired),
		errors.Is(err, myerrors.ErrDriverSuspended),
		errors.Is(err, myerrors.ErrNotDispatchable),
		errors.Is(err, myerrors.ErrNotCompletable),
		errors.Is(err, myerrors.ErrTripFinished),
		errors.As(err, &validationErr),
		errors.As(err, &capacityErr),
		errors.As(err, &regressionErr),
		errors.As(err, &implausibleErr):
		JsonError(w, http.StatusBadRequest, err)

	default:
		JsonError(w, http.StatusInternalServerError, err)
	}
}
