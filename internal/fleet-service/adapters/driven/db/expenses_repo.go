package db

import (
	"context"
	"errors"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/fleet-service/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

type ExpensesRepo struct {
	db ports.IDB
}

func NewExpensesRepo(db ports.IDB) ports.IExpensesRepo {
	return &ExpensesRepo{
		db: db,
	}
}

func (er *ExpensesRepo) List(ctx context.Context, filter dto.ExpenseFilter) ([]model.ExpenseDetails, error) {
	q := `SELECT
			e.id,
			e.vehicle_id,
			e.expense_type,
			e.fuel_liters,
			e.cost,
			e.expense_date,
			e.odometer_reading,
			e.created_at,
			v.model_name,
			v.license_plate
		FROM expenses e
		JOIN vehicles v ON v.id = e.vehicle_id
		WHERE ($1 = '' OR e.vehicle_id::text = $1)
			AND ($2 = '' OR e.expense_type = $2)
		ORDER BY e.expense_date DESC`

	pool := er.db.GetPool()
	rows, err := pool.Query(ctx, q, filter.VehicleId, filter.ExpenseType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []model.ExpenseDetails{}
	for rows.Next() {
		var ed model.ExpenseDetails
		if err := rows.Scan(
			&ed.Id,
			&ed.VehicleId,
			&ed.ExpenseType,
			&ed.FuelLiters,
			&ed.Cost,
			&ed.ExpenseDate,
			&ed.OdometerReading,
			&ed.CreatedAt,
			&ed.ModelName,
			&ed.LicensePlate,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, ed)
	}
	return expenses, rows.Err()
}

func (er *ExpensesRepo) Create(ctx context.Context, m model.Expense) (model.Expense, error) {
	q := `INSERT INTO expenses(
			vehicle_id,
			expense_type,
			fuel_liters,
			cost,
			expense_date,
			odometer_reading
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, vehicle_id, expense_type, fuel_liters, cost,
			expense_date, odometer_reading, created_at`

	pool := er.db.GetPool()
	row := pool.QueryRow(ctx, q,
		m.VehicleId,
		m.ExpenseType,
		m.FuelLiters,
		m.Cost,
		m.ExpenseDate,
		m.OdometerReading,
	)

	var expense model.Expense
	err := row.Scan(
		&expense.Id,
		&expense.VehicleId,
		&expense.ExpenseType,
		&expense.FuelLiters,
		&expense.Cost,
		&expense.ExpenseDate,
		&expense.OdometerReading,
		&expense.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// foreign key violation on vehicle_id
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.Expense{}, myerrors.ErrVehicleNotFound
		}
		return model.Expense{}, err
	}
	return expense, nil
}

// TotalOperationalCost sums fuel expenses and maintenance costs for
// one vehicle.
func (er *ExpensesRepo) TotalOperationalCost(ctx context.Context, vehicleId string) (dto.OperationalCost, error) {
	q := `SELECT
			COALESCE((SELECT SUM(cost) FROM expenses WHERE vehicle_id = $1), 0) AS fuel_cost,
			COALESCE((SELECT SUM(cost) FROM maintenance_logs WHERE vehicle_id = $1), 0) AS maintenance_cost`

	pool := er.db.GetPool()
	row := pool.QueryRow(ctx, q, vehicleId)

	var cost dto.OperationalCost
	if err := row.Scan(&cost.FuelCost, &cost.MaintenanceCost); err != nil {
		return dto.OperationalCost{}, err
	}
	cost.TotalCost = cost.FuelCost + cost.MaintenanceCost
	return cost, nil
}
