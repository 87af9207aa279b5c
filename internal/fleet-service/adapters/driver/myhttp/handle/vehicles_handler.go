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

type VehiclesHandler struct {
	vehicleService ports.IVehicleService
	mylog          mylogger.Logger
}

func NewVehiclesHandler(vehicleService ports.IVehicleService, mylog mylogger.Logger) *VehiclesHandler {
	return &VehiclesHandler{
		vehicleService: vehicleService,
		mylog:          mylog,
	}
}

func (vh *VehiclesHandler) ListVehicles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := dto.VehicleFilter{
			VehicleType: r.URL.Query().Get("vehicle_type"),
			Status:      r.URL.Query().Get("status"),
			Region:      r.URL.Query().Get("region"),
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		vehicles, err := vh.vehicleService.ListVehicles(ctx, filter)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, vehicles)
	}
}

func (vh *VehiclesHandler) CreateVehicle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := vh.mylog.Action("CreateVehicle")

		req := dto.VehicleCreateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse vehicle", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		vehicle, err := vh.vehicleService.CreateVehicle(ctx, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusCreated, vehicle)
	}
}

func (vh *VehiclesHandler) UpdateVehicle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := vh.mylog.Action("UpdateVehicle")

		vehicleId := r.PathValue("vehicle_id")

		req := dto.VehicleUpdateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse vehicle", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		vehicle, err := vh.vehicleService.UpdateVehicle(ctx, vehicleId, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, vehicle)
	}
}

func (vh *VehiclesHandler) RetireVehicle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicleId := r.PathValue("vehicle_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		vehicle, err := vh.vehicleService.RetireVehicle(ctx, vehicleId)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, vehicle)
	}
}

func (vh *VehiclesHandler) DeleteVehicle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicleId := r.PathValue("vehicle_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := vh.vehicleService.DeleteVehicle(ctx, vehicleId); err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusNoContent, nil)
	}
}
