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

type MaintenanceHandler struct {
	maintenanceService ports.IMaintenanceService
	mylog              mylogger.Logger
}

func NewMaintenanceHandler(maintenanceService ports.IMaintenanceService, mylog mylogger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		mylog:              mylog,
	}
}

func (mh *MaintenanceHandler) ListMaintenance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		logs, err := mh.maintenanceService.ListMaintenance(ctx, r.URL.Query().Get("vehicle_id"))
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, logs)
	}
}

func (mh *MaintenanceHandler) CreateMaintenance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := mh.mylog.Action("CreateMaintenance")

		req := dto.MaintenanceCreateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse maintenance", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		entry, err := mh.maintenanceService.CreateMaintenance(ctx, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusCreated, entry)
	}
}

func (mh *MaintenanceHandler) CompleteMaintenance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := mh.mylog.Action("CompleteMaintenance")

		req := dto.MaintenanceCompleteRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse maintenance", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := mh.maintenanceService.CompleteMaintenance(ctx, req); err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": "Maintenance completed, vehicle available",
		})
	}
}
