package ports

import (
	"context"
	"time"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IDB interface {
	GetPool() *pgxpool.Pool
	IsAlive() error
	Close()
}

// ITripsRepo is the transactional saga boundary of the trip state
// machine. Every method that transitions a trip runs precondition
// checks and writes inside one transaction with the affected rows
// locked, so concurrent transitions on the same trip serialize and
// the loser gets the typed precondition error.
type ITripsRepo interface {
	CreateTrip(ctx context.Context, trip model.Trip, now time.Time) (model.Trip, error)
	GetTrip(ctx context.Context, tripId string) (model.TripDetails, error)
	DispatchTrip(ctx context.Context, tripId string, cred model.Credential, now time.Time) (model.Trip, error)
	CompleteTrip(ctx context.Context, tripId string, odometerReading float64, now time.Time) (model.Trip, error)
	CancelTrip(ctx context.Context, tripId string, now time.Time) (model.Trip, error)
	ActiveTripForCredential(ctx context.Context, driverUserId string) (model.TripDetails, bool, error)
	ListTrips(ctx context.Context, status string) ([]model.TripDetails, error)
}

type IVehiclesRepo interface {
	List(ctx context.Context, filter dto.VehicleFilter) ([]model.Vehicle, error)
	Create(ctx context.Context, vehicle model.Vehicle) (model.Vehicle, error)
	Update(ctx context.Context, vehicle model.Vehicle) (model.Vehicle, error)
	Retire(ctx context.Context, vehicleId string) (model.Vehicle, error)
	Delete(ctx context.Context, vehicleId string) error
}

type IDriversRepo interface {
	List(ctx context.Context, status string) ([]model.Driver, error)
	Create(ctx context.Context, driver model.Driver) (model.Driver, error)
	Update(ctx context.Context, driver model.Driver) (model.Driver, error)
	Performance(ctx context.Context, driverId string) (dto.DriverPerformance, error)
}

type IMaintenanceRepo interface {
	List(ctx context.Context, vehicleId string) ([]model.MaintenanceDetails, error)
	Create(ctx context.Context, log model.MaintenanceLog) (model.MaintenanceLog, error)
	Complete(ctx context.Context, vehicleId string) error
}

type IExpensesRepo interface {
	List(ctx context.Context, filter dto.ExpenseFilter) ([]model.ExpenseDetails, error)
	Create(ctx context.Context, expense model.Expense) (model.Expense, error)
	TotalOperationalCost(ctx context.Context, vehicleId string) (dto.OperationalCost, error)
}

type IAnalyticsRepo interface {
	DashboardKPIs(ctx context.Context) (dto.DashboardKPIs, error)
	FuelEfficiency(ctx context.Context, vehicleId string) ([]dto.FuelEfficiencyRow, error)
	VehicleROI(ctx context.Context) ([]dto.VehicleROIRow, error)
}
