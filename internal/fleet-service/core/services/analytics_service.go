package services

import (
	"context"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type AnalyticsService struct {
	ctx           context.Context
	mylog         mylogger.Logger
	analyticsRepo ports.IAnalyticsRepo
}

func NewAnalyticsService(ctx context.Context, mylog mylogger.Logger, analyticsRepo ports.IAnalyticsRepo) ports.IAnalyticsService {
	return &AnalyticsService{
		ctx:           ctx,
		mylog:         mylog,
		analyticsRepo: analyticsRepo,
	}
}

func (as *AnalyticsService) DashboardKPIs(ctx context.Context) (dto.DashboardKPIs, error) {
	log := as.mylog.Action("DashboardKPIs")

	kpis, err := as.analyticsRepo.DashboardKPIs(ctx)
	if err != nil {
		log.Error("cannot compute dashboard KPIs", err)
		return dto.DashboardKPIs{}, err
	}
	return kpis, nil
}

func (as *AnalyticsService) FuelEfficiency(ctx context.Context, vehicleId string) ([]dto.FuelEfficiencyRow, error) {
	return as.analyticsRepo.FuelEfficiency(ctx, vehicleId)
}

func (as *AnalyticsService) VehicleROI(ctx context.Context) ([]dto.VehicleROIRow, error) {
	return as.analyticsRepo.VehicleROI(ctx)
}
