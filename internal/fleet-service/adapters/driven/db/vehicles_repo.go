package db

import (
	"context"
	"errors"
	"fmt"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/fleet-service/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrPlateRegistered = errors.New("license plate already registered")

const vehicleColumns = `
	id,
	model_name,
	license_plate,
	vehicle_type,
	max_load_capacity,
	odometer,
	COALESCE(region, ''),
	acquisition_cost,
	status,
	created_at,
	updated_at`

type VehiclesRepo struct {
	db ports.IDB
}

func NewVehiclesRepo(db ports.IDB) ports.IVehiclesRepo {
	return &VehiclesRepo{
		db: db,
	}
}

func (vr *VehiclesRepo) List(ctx context.Context, filter dto.VehicleFilter) ([]model.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE ($1 = '' OR vehicle_type = $1)
			AND ($2 = '' OR status = $2)
			AND ($3 = '' OR region = $3)
		ORDER BY created_at DESC`

	pool := vr.db.GetPool()
	rows, err := pool.Query(ctx, q, filter.VehicleType, filter.Status, filter.Region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []model.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (vr *VehiclesRepo) Create(ctx context.Context, m model.Vehicle) (model.Vehicle, error) {
	q := `INSERT INTO vehicles(
			model_name,
			license_plate,
			vehicle_type,
			max_load_capacity,
			region,
			acquisition_cost
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING ` + vehicleColumns

	pool := vr.db.GetPool()
	row := pool.QueryRow(ctx, q,
		m.ModelName,
		m.LicensePlate,
		m.VehicleType,
		m.MaxLoadCapacity,
		m.Region,
		m.AcquisitionCost,
	)
	vehicle, err := scanVehicle(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Vehicle{}, ErrPlateRegistered
		}
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

func (vr *VehiclesRepo) Update(ctx context.Context, m model.Vehicle) (model.Vehicle, error) {
	q := `UPDATE vehicles
		SET
			model_name = $2,
			license_plate = $3,
			vehicle_type = $4,
			max_load_capacity = $5,
			odometer = $6,
			region = NULLIF($7, ''),
			status = $8,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + vehicleColumns

	pool := vr.db.GetPool()
	row := pool.QueryRow(ctx, q,
		m.Id,
		m.ModelName,
		m.LicensePlate,
		m.VehicleType,
		m.MaxLoadCapacity,
		m.Odometer,
		m.Region,
		m.Status,
	)
	vehicle, err := scanVehicle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Vehicle{}, myerrors.ErrVehicleNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Vehicle{}, ErrPlateRegistered
		}
		return model.Vehicle{}, err
	}
	return vehicle, nil
}

// Retire locks the row first: a vehicle currently on a trip keeps its
// dispatch invariant and cannot leave the fleet.
func (vr *VehiclesRepo) Retire(ctx context.Context, vehicleId string) (model.Vehicle, error) {
	pool := vr.db.GetPool()
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Vehicle{}, err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	vehicle, err := lockVehicle(ctx, tx, vehicleId)
	if err != nil {
		return model.Vehicle{}, err
	}
	if vehicle.Status == model.VehicleOnTrip {
		return model.Vehicle{}, myerrors.ErrVehicleOnTrip
	}

	q := `UPDATE vehicles SET status = 'Retired', updated_at = now() WHERE id = $1
		RETURNING ` + vehicleColumns

	row := tx.QueryRow(ctx, q, vehicleId)
	vehicle, err = scanVehicle(row)
	if err != nil {
		return model.Vehicle{}, err
	}
	return vehicle, tx.Commit(ctx)
}

func (vr *VehiclesRepo) Delete(ctx context.Context, vehicleId string) error {
	pool := vr.db.GetPool()
	tag, err := pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, vehicleId)
	if err != nil {
		var pgErr *pgconn.PgError
		// foreign key violation: the vehicle has trips or logs, retire instead
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("vehicle has history and cannot be deleted, retire it instead")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrVehicleNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row) (model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(
		&v.Id,
		&v.ModelName,
		&v.LicensePlate,
		&v.VehicleType,
		&v.MaxLoadCapacity,
		&v.Odometer,
		&v.Region,
		&v.AcquisitionCost,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
