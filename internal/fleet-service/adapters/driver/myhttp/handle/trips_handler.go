package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type TripsHandler struct {
	tripService ports.ITripService
	mylog       mylogger.Logger
}

func NewTripsHandler(tripService ports.ITripService, mylog mylogger.Logger) *TripsHandler {
	return &TripsHandler{
		tripService: tripService,
		mylog:       mylog,
	}
}

func (th *TripsHandler) ListTrips() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		trips, err := th.tripService.ListTrips(ctx, r.URL.Query().Get("status"))
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, trips)
	}
}

func (th *TripsHandler) CreateTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := th.mylog.Action("CreateTrip")

		req := dto.TripCreateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse trip", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		trip, err := th.tripService.CreateTrip(ctx, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusCreated, trip)
	}
}

func (th *TripsHandler) DispatchTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tripId := r.PathValue("trip_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := th.tripService.DispatchTrip(ctx, tripId)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (th *TripsHandler) CompleteTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := th.mylog.Action("CompleteTrip")

		tripId := r.PathValue("trip_id")

		req := dto.TripCompleteRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse completion", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := th.tripService.CompleteTrip(ctx, tripId, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (th *TripsHandler) CancelTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tripId := r.PathValue("trip_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		trip, err := th.tripService.CancelTrip(ctx, tripId)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, trip)
	}
}

// ActiveTrip answers the logged-in driver's current assignment, keyed
// by the credential the middleware resolved.
func (th *TripsHandler) ActiveTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := r.Header.Get("X-UserId")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		details, found, err := th.tripService.ActiveTripForCredential(ctx, userId)
		if err != nil {
			businessError(w, err)
			return
		}
		if !found {
			jsonResponse(w, http.StatusOK, map[string]interface{}{
				"active_trip": nil,
			})
			return
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"active_trip": details,
		})
	}
}
