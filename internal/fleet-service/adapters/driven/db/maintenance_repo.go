package db

import (
	"context"

	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/ports"

	"github.com/jackc/pgx/v5"
)

type MaintenanceRepo struct {
	db ports.IDB
}

func NewMaintenanceRepo(db ports.IDB) ports.IMaintenanceRepo {
	return &MaintenanceRepo{
		db: db,
	}
}

func (mr *MaintenanceRepo) List(ctx context.Context, vehicleId string) ([]model.MaintenanceDetails, error) {
	q := `SELECT
			m.id,
			m.vehicle_id,
			m.service_type,
			COALESCE(m.description, ''),
			m.cost,
			m.service_date,
			m.odometer_reading,
			m.created_at,
			v.model_name,
			v.license_plate
		FROM maintenance_logs m
		JOIN vehicles v ON v.id = m.vehicle_id
		WHERE ($1 = '' OR m.vehicle_id::text = $1)
		ORDER BY m.service_date DESC`

	pool := mr.db.GetPool()
	rows, err := pool.Query(ctx, q, vehicleId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.MaintenanceDetails{}
	for rows.Next() {
		var md model.MaintenanceDetails
		if err := rows.Scan(
			&md.Id,
			&md.VehicleId,
			&md.ServiceType,
			&md.Description,
			&md.Cost,
			&md.ServiceDate,
			&md.OdometerReading,
			&md.CreatedAt,
			&md.ModelName,
			&md.LicensePlate,
		); err != nil {
			return nil, err
		}
		logs = append(logs, md)
	}
	return logs, rows.Err()
}

// Create inserts the service record and pulls the vehicle into the
// shop in one transaction. The locked row guards against servicing a
// vehicle that a concurrent dispatch just put on the road.
func (mr *MaintenanceRepo) Create(ctx context.Context, m model.MaintenanceLog) (model.MaintenanceLog, error) {
	pool := mr.db.GetPool()
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.MaintenanceLog{}, err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	vehicle, err := lockVehicle(ctx, tx, m.VehicleId)
	if err != nil {
		return model.MaintenanceLog{}, err
	}
	if err := vehicle.CheckServiceable(); err != nil {
		return model.MaintenanceLog{}, err
	}

	q := `INSERT INTO maintenance_logs(
			vehicle_id,
			service_type,
			description,
			cost,
			service_date,
			odometer_reading
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING id, vehicle_id, service_type, COALESCE(description, ''), cost,
			service_date, odometer_reading, created_at`

	var entry model.MaintenanceLog
	row := tx.QueryRow(ctx, q,
		m.VehicleId,
		m.ServiceType,
		m.Description,
		m.Cost,
		m.ServiceDate,
		m.OdometerReading,
	)
	if err := row.Scan(
		&entry.Id,
		&entry.VehicleId,
		&entry.ServiceType,
		&entry.Description,
		&entry.Cost,
		&entry.ServiceDate,
		&entry.OdometerReading,
		&entry.CreatedAt,
	); err != nil {
		return model.MaintenanceLog{}, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE vehicles SET status = 'In Shop', updated_at = now() WHERE id = $1`,
		m.VehicleId); err != nil {
		return model.MaintenanceLog{}, err
	}

	return entry, tx.Commit(ctx)
}

// Complete releases a vehicle from the shop. The locked read keeps
// "unknown vehicle" and "vehicle not in the shop" apart.
func (mr *MaintenanceRepo) Complete(ctx context.Context, vehicleId string) error {
	pool := mr.db.GetPool()
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	vehicle, err := lockVehicle(ctx, tx, vehicleId)
	if err != nil {
		return err
	}
	if err := vehicle.CheckReleasable(); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE vehicles SET status = 'Available', updated_at = now() WHERE id = $1`,
		vehicleId); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
