package services

import (
	"context"
	"strings"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type VehicleService struct {
	ctx          context.Context
	mylog        mylogger.Logger
	vehiclesRepo ports.IVehiclesRepo
}

func NewVehicleService(ctx context.Context, mylog mylogger.Logger, vehiclesRepo ports.IVehiclesRepo) ports.IVehicleService {
	return &VehicleService{
		ctx:          ctx,
		mylog:        mylog,
		vehiclesRepo: vehiclesRepo,
	}
}

func (vs *VehicleService) ListVehicles(ctx context.Context, filter dto.VehicleFilter) ([]model.Vehicle, error) {
	return vs.vehiclesRepo.List(ctx, filter)
}

func (vs *VehicleService) CreateVehicle(ctx context.Context, req dto.VehicleCreateRequest) (model.Vehicle, error) {
	log := vs.mylog.Action("CreateVehicle")

	if err := validateVehicleCreate(req); err != nil {
		return model.Vehicle{}, err
	}

	m := model.Vehicle{
		ModelName:    strings.TrimSpace(*req.ModelName),
		LicensePlate: strings.TrimSpace(*req.LicensePlate),
		VehicleType:  strings.TrimSpace(*req.VehicleType),
		Status:       model.VehicleAvailable,
	}
	m.MaxLoadCapacity = *req.MaxLoadCapacity
	if req.Region != nil {
		m.Region = strings.TrimSpace(*req.Region)
	}
	if req.AcquisitionCost != nil {
		m.AcquisitionCost = *req.AcquisitionCost
	}

	vehicle, err := vs.vehiclesRepo.Create(ctx, m)
	if err != nil {
		log.Error("cannot create vehicle", err)
		return model.Vehicle{}, err
	}
	log.Info("vehicle created", "vehicle-id", vehicle.Id, "plate", vehicle.LicensePlate)
	return vehicle, nil
}

func (vs *VehicleService) UpdateVehicle(ctx context.Context, vehicleId string, req dto.VehicleUpdateRequest) (model.Vehicle, error) {
	log := vs.mylog.Action("UpdateVehicle")

	if req.ModelName == nil || req.LicensePlate == nil || req.VehicleType == nil ||
		req.MaxLoadCapacity == nil || req.Odometer == nil || req.Status == nil {
		return model.Vehicle{}, myerrors.Validationf("all vehicle fields required")
	}
	if *req.MaxLoadCapacity <= 0 {
		return model.Vehicle{}, myerrors.Validationf("max_load_capacity must be positive")
	}
	switch model.VehicleStatus(*req.Status) {
	case model.VehicleAvailable, model.VehicleOnTrip, model.VehicleInShop, model.VehicleRetired:
	default:
		return model.Vehicle{}, myerrors.Validationf("unknown vehicle status: %q", *req.Status)
	}

	m := model.Vehicle{
		Id:              vehicleId,
		ModelName:       strings.TrimSpace(*req.ModelName),
		LicensePlate:    strings.TrimSpace(*req.LicensePlate),
		VehicleType:     strings.TrimSpace(*req.VehicleType),
		MaxLoadCapacity: *req.MaxLoadCapacity,
		Odometer:        *req.Odometer,
		Status:          model.VehicleStatus(*req.Status),
	}
	if req.Region != nil {
		m.Region = strings.TrimSpace(*req.Region)
	}

	vehicle, err := vs.vehiclesRepo.Update(ctx, m)
	if err != nil {
		log.Warn("vehicle update failed", "vehicle-id", vehicleId, "reason", err.Error())
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

func (vs *VehicleService) RetireVehicle(ctx context.Context, vehicleId string) (model.Vehicle, error) {
	log := vs.mylog.Action("RetireVehicle")

	vehicle, err := vs.vehiclesRepo.Retire(ctx, vehicleId)
	if err != nil {
		log.Warn("vehicle retire failed", "vehicle-id", vehicleId, "reason", err.Error())
		return model.Vehicle{}, err
	}
	log.Info("vehicle retired", "vehicle-id", vehicleId)
	return vehicle, nil
}

func (vs *VehicleService) DeleteVehicle(ctx context.Context, vehicleId string) error {
	return vs.vehiclesRepo.Delete(ctx, vehicleId)
}

func validateVehicleCreate(req dto.VehicleCreateRequest) error {
	if req.ModelName == nil || strings.TrimSpace(*req.ModelName) == "" {
		return myerrors.Validationf("model_name required")
	}
	if req.LicensePlate == nil || strings.TrimSpace(*req.LicensePlate) == "" {
		return myerrors.Validationf("license_plate required")
	}
	if req.VehicleType == nil || strings.TrimSpace(*req.VehicleType) == "" {
		return myerrors.Validationf("vehicle_type required")
	}
	if req.MaxLoadCapacity == nil {
		return myerrors.Validationf("max_load_capacity required")
	}
	if *req.MaxLoadCapacity <= 0 {
		return myerrors.Validationf("max_load_capacity must be positive")
	}
	return nil
}
