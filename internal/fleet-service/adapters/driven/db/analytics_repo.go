package db

import (
	"context"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/ports"
)

type AnalyticsRepo struct {
	db ports.IDB
}

func NewAnalyticsRepo(db ports.IDB) ports.IAnalyticsRepo {
	return &AnalyticsRepo{
		db: db,
	}
}

// DashboardKPIs aggregates the active, in-shop and available counts
// over the non-retired fleet. Utilization counts vehicles that are
// working or being serviced.
func (ar *AnalyticsRepo) DashboardKPIs(ctx context.Context) (dto.DashboardKPIs, error) {
	q := `SELECT
			COUNT(*) FILTER (WHERE status = 'On Trip') AS active_fleet,
			COUNT(*) FILTER (WHERE status = 'In Shop') AS maintenance_alerts,
			COUNT(*) FILTER (WHERE status = 'Available') AS available_vehicles,
			COUNT(*) AS total_vehicles,
			(SELECT COUNT(*) FROM trips WHERE status = 'Draft') AS pending_cargo
		FROM vehicles
		WHERE status != 'Retired'`

	pool := ar.db.GetPool()
	row := pool.QueryRow(ctx, q)

	var kpis dto.DashboardKPIs
	if err := row.Scan(
		&kpis.ActiveFleet,
		&kpis.MaintenanceAlerts,
		&kpis.AvailableVehicles,
		&kpis.TotalVehicles,
		&kpis.PendingCargo,
	); err != nil {
		return dto.DashboardKPIs{}, err
	}

	if kpis.TotalVehicles > 0 {
		kpis.UtilizationRate = float64(kpis.ActiveFleet+kpis.MaintenanceAlerts) / float64(kpis.TotalVehicles) * 100
	}
	return kpis, nil
}

// FuelEfficiency reports km per liter over the full fuel-expense
// history of each non-retired vehicle. Vehicles with no fuel records
// report zero.
func (ar *AnalyticsRepo) FuelEfficiency(ctx context.Context, vehicleId string) ([]dto.FuelEfficiencyRow, error) {
	q := `SELECT
			v.id,
			v.model_name,
			v.license_plate,
			v.odometer,
			COALESCE(SUM(e.fuel_liters), 0) AS total_fuel
		FROM vehicles v
		LEFT JOIN expenses e ON e.vehicle_id = v.id AND e.expense_type = 'Fuel'
		WHERE v.status != 'Retired'
			AND ($1 = '' OR v.id::text = $1)
		GROUP BY v.id, v.model_name, v.license_plate, v.odometer
		ORDER BY total_fuel DESC`

	pool := ar.db.GetPool()
	rows, err := pool.Query(ctx, q, vehicleId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []dto.FuelEfficiencyRow{}
	for rows.Next() {
		var r dto.FuelEfficiencyRow
		if err := rows.Scan(
			&r.VehicleId,
			&r.ModelName,
			&r.LicensePlate,
			&r.Odometer,
			&r.TotalFuel,
		); err != nil {
			return nil, err
		}
		if r.TotalFuel > 0 {
			r.FuelEfficiency = r.Odometer / r.TotalFuel
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// VehicleROI nets completed-trip revenue against fuel and maintenance
// costs, relative to the acquisition cost.
func (ar *AnalyticsRepo) VehicleROI(ctx context.Context) ([]dto.VehicleROIRow, error) {
	q := `SELECT
			v.id,
			v.model_name,
			v.license_plate,
			v.acquisition_cost,
			COALESCE(SUM(t.revenue), 0) AS total_revenue,
			COALESCE((SELECT SUM(e.cost) FROM expenses e
				WHERE e.vehicle_id = v.id), 0) AS fuel_cost,
			COALESCE((SELECT SUM(m.cost) FROM maintenance_logs m
				WHERE m.vehicle_id = v.id), 0) AS maintenance_cost
		FROM vehicles v
		LEFT JOIN trips t ON t.vehicle_id = v.id AND t.status = 'Completed'
		WHERE v.status != 'Retired'
		GROUP BY v.id, v.model_name, v.license_plate, v.acquisition_cost`

	pool := ar.db.GetPool()
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []dto.VehicleROIRow{}
	for rows.Next() {
		var r dto.VehicleROIRow
		if err := rows.Scan(
			&r.VehicleId,
			&r.ModelName,
			&r.LicensePlate,
			&r.AcquisitionCost,
			&r.TotalRevenue,
			&r.FuelCost,
			&r.MaintenanceCost,
		); err != nil {
			return nil, err
		}
		r.NetProfit = r.TotalRevenue - (r.FuelCost + r.MaintenanceCost)
		if r.AcquisitionCost > 0 {
			r.ROIPercentage = r.NetProfit / r.AcquisitionCost * 100
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
