package services

import (
	"context"
	"strings"
	"time"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type MaintenanceService struct {
	ctx             context.Context
	mylog           mylogger.Logger
	maintenanceRepo ports.IMaintenanceRepo
}

func NewMaintenanceService(ctx context.Context, mylog mylogger.Logger, maintenanceRepo ports.IMaintenanceRepo) ports.IMaintenanceService {
	return &MaintenanceService{
		ctx:             ctx,
		mylog:           mylog,
		maintenanceRepo: maintenanceRepo,
	}
}

func (ms *MaintenanceService) ListMaintenance(ctx context.Context, vehicleId string) ([]model.MaintenanceDetails, error) {
	return ms.maintenanceRepo.List(ctx, vehicleId)
}

// CreateMaintenance opens a service record and pulls the vehicle into
// the shop, provided it is not on an active trip or retired.
func (ms *MaintenanceService) CreateMaintenance(ctx context.Context, req dto.MaintenanceCreateRequest) (model.MaintenanceLog, error) {
	log := ms.mylog.Action("CreateMaintenance")

	if req.VehicleId == nil || *req.VehicleId == "" {
		return model.MaintenanceLog{}, myerrors.Validationf("vehicle_id required")
	}
	if req.ServiceType == nil || strings.TrimSpace(*req.ServiceType) == "" {
		return model.MaintenanceLog{}, myerrors.Validationf("service_type required")
	}
	if req.ServiceDate == nil {
		return model.MaintenanceLog{}, myerrors.Validationf("service_date required")
	}
	serviceDate, err := time.Parse(dateLayout, *req.ServiceDate)
	if err != nil {
		return model.MaintenanceLog{}, myerrors.Validationf("invalid service_date: %v", err)
	}
	if req.Cost != nil && *req.Cost < 0 {
		return model.MaintenanceLog{}, myerrors.Validationf("cost cannot be negative")
	}

	m := model.MaintenanceLog{
		VehicleId:       *req.VehicleId,
		ServiceType:     strings.TrimSpace(*req.ServiceType),
		ServiceDate:     serviceDate,
		OdometerReading: req.OdometerReading,
	}
	if req.Description != nil {
		m.Description = strings.TrimSpace(*req.Description)
	}
	if req.Cost != nil {
		m.Cost = *req.Cost
	}

	entry, err := ms.maintenanceRepo.Create(ctx, m)
	if err != nil {
		log.Warn("maintenance rejected", "vehicle-id", m.VehicleId, "reason", err.Error())
		return model.MaintenanceLog{}, err
	}

	log.Info("vehicle sent to shop", "vehicle-id", entry.VehicleId, "service", entry.ServiceType)
	return entry, nil
}

func (ms *MaintenanceService) CompleteMaintenance(ctx context.Context, req dto.MaintenanceCompleteRequest) error {
	log := ms.mylog.Action("CompleteMaintenance")

	if req.VehicleId == nil || *req.VehicleId == "" {
		return myerrors.Validationf("vehicle_id required")
	}

	if err := ms.maintenanceRepo.Complete(ctx, *req.VehicleId); err != nil {
		log.Warn("maintenance completion failed", "vehicle-id", *req.VehicleId, "reason", err.Error())
		return err
	}
	log.Info("vehicle back from shop", "vehicle-id", *req.VehicleId)
	return nil
}
