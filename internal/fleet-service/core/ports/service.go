package ports

import (
	"context"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
)

type ITripService interface {
	CreateTrip(ctx context.Context, req dto.TripCreateRequest) (model.Trip, error)
	DispatchTrip(ctx context.Context, tripId string) (dto.TripDispatchResponse, error)
	CompleteTrip(ctx context.Context, tripId string, req dto.TripCompleteRequest) (dto.TripCompleteResponse, error)
	CancelTrip(ctx context.Context, tripId string) (model.Trip, error)
	ActiveTripForCredential(ctx context.Context, driverUserId string) (model.TripDetails, bool, error)
	ListTrips(ctx context.Context, status string) ([]model.TripDetails, error)
}

type IVehicleService interface {
	ListVehicles(ctx context.Context, filter dto.VehicleFilter) ([]model.Vehicle, error)
	CreateVehicle(ctx context.Context, req dto.VehicleCreateRequest) (model.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicleId string, req dto.VehicleUpdateRequest) (model.Vehicle, error)
	RetireVehicle(ctx context.Context, vehicleId string) (model.Vehicle, error)
	DeleteVehicle(ctx context.Context, vehicleId string) error
}

type IDriverService interface {
	ListDrivers(ctx context.Context, status string) ([]model.Driver, error)
	CreateDriver(ctx context.Context, req dto.DriverCreateRequest) (model.Driver, error)
	UpdateDriver(ctx context.Context, driverId string, req dto.DriverUpdateRequest) (model.Driver, error)
	DriverPerformance(ctx context.Context, driverId string) (dto.DriverPerformance, error)
}

type IMaintenanceService interface {
	ListMaintenance(ctx context.Context, vehicleId string) ([]model.MaintenanceDetails, error)
	CreateMaintenance(ctx context.Context, req dto.MaintenanceCreateRequest) (model.MaintenanceLog, error)
	CompleteMaintenance(ctx context.Context, req dto.MaintenanceCompleteRequest) error
}

type IExpenseService interface {
	ListExpenses(ctx context.Context, filter dto.ExpenseFilter) ([]model.ExpenseDetails, error)
	CreateExpense(ctx context.Context, req dto.ExpenseCreateRequest) (model.Expense, error)
	TotalOperationalCost(ctx context.Context, vehicleId string) (dto.OperationalCost, error)
}

type IAnalyticsService interface {
	DashboardKPIs(ctx context.Context) (dto.DashboardKPIs, error)
	FuelEfficiency(ctx context.Context, vehicleId string) ([]dto.FuelEfficiencyRow, error)
	VehicleROI(ctx context.Context) ([]dto.VehicleROIRow, error)
}
