package db

import (
	"context"
	"errors"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/fleet-service/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrLicenseNumberRegistered = errors.New("driver licence number is already registered")

const driverColumns = `
	id,
	full_name,
	license_number,
	license_expiry_date,
	COALESCE(phone, ''),
	safety_score,
	status,
	created_at,
	updated_at`

type DriversRepo struct {
	db ports.IDB
}

func NewDriversRepo(db ports.IDB) ports.IDriversRepo {
	return &DriversRepo{
		db: db,
	}
}

func (dr *DriversRepo) List(ctx context.Context, status string) ([]model.Driver, error) {
	q := `SELECT ` + driverColumns + `
		FROM drivers
		WHERE ($1 = '' OR status = $1)
		ORDER BY full_name`

	pool := dr.db.GetPool()
	rows, err := pool.Query(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := []model.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (dr *DriversRepo) Create(ctx context.Context, m model.Driver) (model.Driver, error) {
	q := `INSERT INTO drivers(
			full_name,
			license_number,
			license_expiry_date,
			phone,
			safety_score,
			status
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING ` + driverColumns

	pool := dr.db.GetPool()
	row := pool.QueryRow(ctx, q,
		m.FullName,
		m.LicenseNumber,
		m.LicenseExpiryDate,
		m.Phone,
		m.SafetyScore,
		m.Status,
	)
	driver, err := scanDriver(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Driver{}, ErrLicenseNumberRegistered
		}
		return model.Driver{}, err
	}
	return driver, nil
}

func (dr *DriversRepo) Update(ctx context.Context, m model.Driver) (model.Driver, error) {
	q := `UPDATE drivers
		SET
			full_name = $2,
			license_number = $3,
			license_expiry_date = $4,
			phone = NULLIF($5, ''),
			safety_score = $6,
			status = $7,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + driverColumns

	pool := dr.db.GetPool()
	row := pool.QueryRow(ctx, q,
		m.Id,
		m.FullName,
		m.LicenseNumber,
		m.LicenseExpiryDate,
		m.Phone,
		m.SafetyScore,
		m.Status,
	)
	driver, err := scanDriver(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Driver{}, myerrors.ErrDriverNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Driver{}, ErrLicenseNumberRegistered
		}
		return model.Driver{}, err
	}
	return driver, nil
}

func (dr *DriversRepo) Performance(ctx context.Context, driverId string) (dto.DriverPerformance, error) {
	q := `SELECT
			d.id,
			d.full_name,
			d.license_number,
			d.license_expiry_date,
			COALESCE(d.phone, ''),
			d.safety_score,
			d.status,
			d.created_at,
			d.updated_at,
			COUNT(t.id) AS total_trips,
			COUNT(t.id) FILTER (WHERE t.status = 'Completed') AS completed_trips
		FROM drivers d
		LEFT JOIN trips t ON t.driver_id = d.id
		WHERE d.id = $1
		GROUP BY d.id`

	pool := dr.db.GetPool()
	row := pool.QueryRow(ctx, q, driverId)

	var p dto.DriverPerformance
	err := row.Scan(
		&p.Id,
		&p.FullName,
		&p.LicenseNumber,
		&p.LicenseExpiryDate,
		&p.Phone,
		&p.SafetyScore,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.TotalTrips,
		&p.CompletedTrips,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dto.DriverPerformance{}, myerrors.ErrDriverNotFound
	}
	if err != nil {
		return dto.DriverPerformance{}, err
	}

	if p.TotalTrips > 0 {
		p.CompletionRate = float64(p.CompletedTrips) / float64(p.TotalTrips) * 100
	}
	return p, nil
}

func scanDriver(row pgx.Row) (model.Driver, error) {
	var d model.Driver
	err := row.Scan(
		&d.Id,
		&d.FullName,
		&d.LicenseNumber,
		&d.LicenseExpiryDate,
		&d.Phone,
		&d.SafetyScore,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
