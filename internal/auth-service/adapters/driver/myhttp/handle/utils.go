package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleet-ops/internal/auth-service/core/myerrors"
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

func authError(w http.ResponseWriter, err error) {
	var validationErr *myerrors.ValidationError

	switch {
	case errors.Is(err, myerrors.ErrInvalidCredentials):
		JsonError(w, http.StatusUnauthorized, err)

	case errors.Is(err, myerrors.ErrUserNotFound):
		JsonError(w, http.StatusNotFound, err)

	case errors.Is(err, myerrors.ErrEmailRegistered),
		errors.Is(err, myerrors.ErrOTPInvalid),
		errors.Is(err, myerrors.ErrOTPExpired),
		errors.Is(err, myerrors.ErrOTPNotFound),
		errors.As(err, &validationErr):
		JsonError(w, http.StatusBadRequest, err)

	default:
		JsonError(w, http.StatusInternalServerError, err)
	}
}
