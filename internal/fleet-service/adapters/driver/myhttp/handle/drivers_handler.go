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

type DriversHandler struct {
	driverService ports.IDriverService
	mylog         mylogger.Logger
}

func NewDriversHandler(driverService ports.IDriverService, mylog mylogger.Logger) *DriversHandler {
	return &DriversHandler{
		driverService: driverService,
		mylog:         mylog,
	}
}

func (dh *DriversHandler) ListDrivers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		drivers, err := dh.driverService.ListDrivers(ctx, r.URL.Query().Get("status"))
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, drivers)
	}
}

func (dh *DriversHandler) CreateDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := dh.mylog.Action("CreateDriver")

		req := dto.DriverCreateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse driver", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		driver, err := dh.driverService.CreateDriver(ctx, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusCreated, driver)
	}
}

func (dh *DriversHandler) UpdateDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := dh.mylog.Action("UpdateDriver")

		driverId := r.PathValue("driver_id")

		req := dto.DriverUpdateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse driver", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		driver, err := dh.driverService.UpdateDriver(ctx, driverId, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, driver)
	}
}

func (dh *DriversHandler) DriverPerformance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		performance, err := dh.driverService.DriverPerformance(ctx, driverId)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, performance)
	}
}
