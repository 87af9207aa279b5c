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

const dateLayout = "2006-01-02"

type DriverService struct {
	ctx         context.Context
	mylog       mylogger.Logger
	driversRepo ports.IDriversRepo
}

func NewDriverService(ctx context.Context, mylog mylogger.Logger, driversRepo ports.IDriversRepo) ports.IDriverService {
	return &DriverService{
		ctx:         ctx,
		mylog:       mylog,
		driversRepo: driversRepo,
	}
}

func (ds *DriverService) ListDrivers(ctx context.Context, status string) ([]model.Driver, error) {
	return ds.driversRepo.List(ctx, status)
}

func (ds *DriverService) CreateDriver(ctx context.Context, req dto.DriverCreateRequest) (model.Driver, error) {
	log := ds.mylog.Action("CreateDriver")

	if req.FullName == nil || strings.TrimSpace(*req.FullName) == "" {
		return model.Driver{}, myerrors.Validationf("full_name required")
	}
	if req.LicenseNumber == nil || strings.TrimSpace(*req.LicenseNumber) == "" {
		return model.Driver{}, myerrors.Validationf("license_number required")
	}
	if req.LicenseExpiryDate == nil {
		return model.Driver{}, myerrors.Validationf("license_expiry_date required")
	}
	expiry, err := time.Parse(dateLayout, *req.LicenseExpiryDate)
	if err != nil {
		return model.Driver{}, myerrors.Validationf("invalid license_expiry_date: %v", err)
	}

	m := model.Driver{
		FullName:          strings.TrimSpace(*req.FullName),
		LicenseNumber:     strings.TrimSpace(*req.LicenseNumber),
		LicenseExpiryDate: expiry,
		Status:            model.DriverOffDuty,
		SafetyScore:       100,
	}
	if req.Phone != nil {
		m.Phone = strings.TrimSpace(*req.Phone)
	}

	driver, err := ds.driversRepo.Create(ctx, m)
	if err != nil {
		log.Error("cannot create driver", err)
		return model.Driver{}, err
	}
	log.Info("driver created", "driver-id", driver.Id)
	return driver, nil
}

func (ds *DriverService) UpdateDriver(ctx context.Context, driverId string, req dto.DriverUpdateRequest) (model.Driver, error) {
	log := ds.mylog.Action("UpdateDriver")

	if req.FullName == nil || req.LicenseNumber == nil || req.LicenseExpiryDate == nil ||
		req.SafetyScore == nil || req.Status == nil {
		return model.Driver{}, myerrors.Validationf("all driver fields required")
	}
	expiry, err := time.Parse(dateLayout, *req.LicenseExpiryDate)
	if err != nil {
		return model.Driver{}, myerrors.Validationf("invalid license_expiry_date: %v", err)
	}
	switch model.DriverStatus(*req.Status) {
	case model.DriverOnDuty, model.DriverOffDuty, model.DriverSuspended:
	default:
		return model.Driver{}, myerrors.Validationf("unknown driver status: %q", *req.Status)
	}

	m := model.Driver{
		Id:                driverId,
		FullName:          strings.TrimSpace(*req.FullName),
		LicenseNumber:     strings.TrimSpace(*req.LicenseNumber),
		LicenseExpiryDate: expiry,
		SafetyScore:       *req.SafetyScore,
		Status:            model.DriverStatus(*req.Status),
	}
	if req.Phone != nil {
		m.Phone = strings.TrimSpace(*req.Phone)
	}

	driver, err := ds.driversRepo.Update(ctx, m)
	if err != nil {
		log.Warn("driver update failed", "driver-id", driverId, "reason", err.Error())
		return model.Driver{}, err
	}
	return driver, nil
}

func (ds *DriverService) DriverPerformance(ctx context.Context, driverId string) (dto.DriverPerformance, error) {
	return ds.driversRepo.Performance(ctx, driverId)
}
