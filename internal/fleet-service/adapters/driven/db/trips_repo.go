package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/fleet-service/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const tripColumns = `
	id,
	vehicle_id,
	driver_id,
	cargo_weight,
	origin,
	destination,
	distance,
	revenue,
	driver_earnings,
	status,
	driver_user_id,
	dispatch_date,
	completion_date,
	created_at,
	updated_at`

type TripsRepo struct {
	db ports.IDB
}

func NewTripsRepo(db ports.IDB) ports.ITripsRepo {
	return &TripsRepo{
		db: db,
	}
}

// CreateTrip validates the vehicle and driver under row locks and
// inserts a Draft trip. The locks keep a concurrent dispatch or
// maintenance entry from invalidating the checks mid-insert.
func (tr *TripsRepo) CreateTrip(ctx context.Context, m model.Trip, now time.Time) (model.Trip, error) {
	pool := tr.db.GetPool()
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Trip{}, err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	vehicle, err := lockVehicle(ctx, tx, m.VehicleId)
	if err != nil {
		return model.Trip{}, err
	}
	if err := vehicle.CheckLoad(m.CargoWeight); err != nil {
		return model.Trip{}, err
	}
	if err := vehicle.CheckAvailable(); err != nil {
		return model.Trip{}, err
	}

	driver, err := lockDriver(ctx, tx, m.DriverId)
	if err != nil {
		return model.Trip{}, err
	}
	if err := driver.CheckEligible(now); err != nil {
		return model.Trip{}, err
	}

	q := `INSERT INTO trips(
			vehicle_id,
			driver_id,
			cargo_weight,
			origin,
			destination,
			distance,
			revenue,
			driver_earnings,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'Draft')
		RETURNING ` + tripColumns

	row := tx.QueryRow(ctx, q,
		m.VehicleId,
		m.DriverId,
		m.CargoWeight,
		m.Origin,
		m.Destination,
		m.Distance,
		m.Revenue,
		m.DriverEarnings,
	)
	trip, err := scanTrip(row)
	if err != nil {
		return model.Trip{}, err
	}

	return trip, tx.Commit(ctx)
}

func (tr *TripsRepo) GetTrip(ctx context.Context, tripId string) (model.TripDetails, error) {
	q := `SELECT
			t.id,
			t.vehicle_id,
			t.driver_id,
			t.cargo_weight,
			t.origin,
			t.destination,
			t.distance,
			t.revenue,
			t.driver_earnings,
			t.status,
			t.driver_user_id,
			t.dispatch_date,
			t.completion_date,
			t.created_at,
			t.updated_at,
			v.model_name,
			v.license_plate,
			d.full_name
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		JOIN drivers d ON d.id = t.driver_id
		WHERE t.id = $1`

	pool := tr.db.GetPool()
	row := pool.QueryRow(ctx, q, tripId)

	details, err := scanTripDetails(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TripDetails{}, myerrors.ErrTripNotFound
	}
	if err != nil {
		return model.TripDetails{}, err
	}
	return details, nil
}

// DispatchTrip runs the dispatch saga in one transaction: re-check the
// Draft status on the locked trip row, re-validate vehicle and driver,
// insert the credential row, then cascade the three statuses. A unique
// violation on the credential email maps to ErrCredentialTaken so the
// caller can remint.
func (tr *TripsRepo) DispatchTrip(ctx context.Context, tripId string, cred model.Credential, now time.Time) (model.Trip, error) {
	pool := tr.db.GetPool()
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Trip{}, err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	trip, err := lockTrip(ctx, tx, tripId)
	if err != nil {
		return model.Trip{}, err
	}
	if err := trip.CheckDispatchable(); err != nil {
		return model.Trip{}, err
	}

	vehicle, err := lockVehicle(ctx, tx, trip.VehicleId)
	if err != nil {
		return model.Trip{}, err
	}
	if err := vehicle.CheckLoad(trip.CargoWeight); err != nil {
		return model.Trip{}, err
	}
	if err := vehicle.CheckAvailable(); err != nil {
		return model.Trip{}, err
	}

	driver, err := lockDriver(ctx, tx, trip.DriverId)
	if err != nil {
		return model.Trip{}, err
	}
	if err := driver.CheckEligible(now); err != nil {
		return model.Trip{}, err
	}

	q := `INSERT INTO users(email, password_hash, full_name, role, driver_id, is_active)
		VALUES ($1, $2, $3, 'driver', $4, true)
		RETURNING id`

	row := tx.QueryRow(ctx, q, cred.Email, cred.PasswordHash, cred.FullName, cred.DriverId)
	credentialId := ""
	if err := row.Scan(&credentialId); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Trip{}, myerrors.ErrCredentialTaken
		}
		return model.Trip{}, err
	}

	q = `UPDATE trips
		SET
			status = 'Dispatched',
			driver_user_id = $2,
			dispatch_date = $3,
			updated_at = $3
		WHERE id = $1
		RETURNING ` + tripColumns

	row = tx.QueryRow(ctx, q, tripId, credentialId, now)
	trip, err = scanTrip(row)
	if err != nil {
		return model.Trip{}, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE vehicles SET status = 'On Trip', updated_at = $2 WHERE id = $1`,
		trip.VehicleId, now); err != nil {
		return model.Trip{}, fmt.Errorf("failed to update vehicle status: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE drivers SET status = 'On Duty', updated_at = $2 WHERE id = $1`,
		trip.DriverId, now); err != nil {
		return model.Trip{}, fmt.Errorf("failed to update driver status: %w", err)
	}

	return trip, tx.Commit(ctx)
}

// CompleteTrip validates the odometer reading against the locked
// vehicle row, closes the trip, writes the new odometer, reverts
// vehicle and driver statuses and deactivates the trip credential.
func (tr *TripsRepo) CompleteTrip(ctx context.Context, tripId string, odometerReading float64, now time.Time) (model.Trip, error) {
	pool := tr.db.GetPool()
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Trip{}, err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	trip, err := lockTrip(ctx, tx, tripId)
	if err != nil {
		return model.Trip{}, err
	}
	if err := trip.CheckCompletable(); err != nil {
		return model.Trip{}, err
	}

	vehicle, err := lockVehicle(ctx, tx, trip.VehicleId)
	if err != nil {
		return model.Trip{}, err
	}
	if err := trip.CheckOdometer(vehicle.Odometer, odometerReading); err != nil {
		return model.Trip{}, err
	}

	q := `UPDATE trips
		SET
			status = 'Completed',
			completion_date = $2,
			updated_at = $2
		WHERE id = $1
		RETURNING ` + tripColumns

	row := tx.QueryRow(ctx, q, tripId, now)
	trip, err = scanTrip(row)
	if err != nil {
		return model.Trip{}, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE vehicles SET status = 'Available', odometer = $2, updated_at = $3 WHERE id = $1`,
		trip.VehicleId, odometerReading, now); err != nil {
		return model.Trip{}, fmt.Errorf("failed to update vehicle: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE drivers SET status = 'Off Duty', updated_at = $2 WHERE id = $1`,
		trip.DriverId, now); err != nil {
		return model.Trip{}, fmt.Errorf("failed to update driver status: %w", err)
	}
	if err := deactivateCredential(ctx, tx, trip.DriverUserId, now); err != nil {
		return model.Trip{}, err
	}

	return trip, tx.Commit(ctx)
}

// CancelTrip cancels a non-terminal trip. Cancelling a Dispatched trip
// also reverts the cascaded statuses and deactivates the credential.
func (tr *TripsRepo) CancelTrip(ctx context.Context, tripId string, now time.Time) (model.Trip, error) {
	pool := tr.db.GetPool()
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Trip{}, err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	trip, err := lockTrip(ctx, tx, tripId)
	if err != nil {
		return model.Trip{}, err
	}
	if err := trip.CheckCancellable(); err != nil {
		return model.Trip{}, err
	}

	if trip.Status == model.TripDispatched {
		if _, err := tx.Exec(ctx,
			`UPDATE vehicles SET status = 'Available', updated_at = $2 WHERE id = $1`,
			trip.VehicleId, now); err != nil {
			return model.Trip{}, fmt.Errorf("failed to update vehicle status: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE drivers SET status = 'Off Duty', updated_at = $2 WHERE id = $1`,
			trip.DriverId, now); err != nil {
			return model.Trip{}, fmt.Errorf("failed to update driver status: %w", err)
		}
		if err := deactivateCredential(ctx, tx, trip.DriverUserId, now); err != nil {
			return model.Trip{}, err
		}
	}

	q := `UPDATE trips
		SET
			status = 'Cancelled',
			updated_at = $2
		WHERE id = $1
		RETURNING ` + tripColumns

	row := tx.QueryRow(ctx, q, tripId, now)
	trip, err = scanTrip(row)
	if err != nil {
		return model.Trip{}, err
	}

	return trip, tx.Commit(ctx)
}

// ActiveTripForCredential resolves the Dispatched trip assigned to an
// ephemeral driver login. Not finding one is a normal answer.
func (tr *TripsRepo) ActiveTripForCredential(ctx context.Context, driverUserId string) (model.TripDetails, bool, error) {
	q := `SELECT
			t.id,
			t.vehicle_id,
			t.driver_id,
			t.cargo_weight,
			t.origin,
			t.destination,
			t.distance,
			t.revenue,
			t.driver_earnings,
			t.status,
			t.driver_user_id,
			t.dispatch_date,
			t.completion_date,
			t.created_at,
			t.updated_at,
			v.model_name,
			v.license_plate,
			d.full_name
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		JOIN drivers d ON d.id = t.driver_id
		WHERE t.driver_user_id = $1 AND t.status = 'Dispatched'
		ORDER BY t.dispatch_date DESC
		LIMIT 1`

	pool := tr.db.GetPool()
	row := pool.QueryRow(ctx, q, driverUserId)

	details, err := scanTripDetails(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TripDetails{}, false, nil
	}
	if err != nil {
		return model.TripDetails{}, false, err
	}
	return details, true, nil
}

func (tr *TripsRepo) ListTrips(ctx context.Context, status string) ([]model.TripDetails, error) {
	q := `SELECT
			t.id,
			t.vehicle_id,
			t.driver_id,
			t.cargo_weight,
			t.origin,
			t.destination,
			t.distance,
			t.revenue,
			t.driver_earnings,
			t.status,
			t.driver_user_id,
			t.dispatch_date,
			t.completion_date,
			t.created_at,
			t.updated_at,
			v.model_name,
			v.license_plate,
			d.full_name
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		JOIN drivers d ON d.id = t.driver_id
		WHERE ($1 = '' OR t.status = $1)
		ORDER BY t.created_at DESC`

	pool := tr.db.GetPool()
	rows, err := pool.Query(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []model.TripDetails{}
	for rows.Next() {
		details, err := scanTripDetails(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, details)
	}
	return trips, rows.Err()
}

func lockTrip(ctx context.Context, tx pgx.Tx, tripId string) (model.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 FOR UPDATE`

	row := tx.QueryRow(ctx, q, tripId)
	trip, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Trip{}, myerrors.ErrTripNotFound
	}
	if err != nil {
		return model.Trip{}, err
	}
	return trip, nil
}

func lockVehicle(ctx context.Context, tx pgx.Tx, vehicleId string) (model.Vehicle, error) {
	q := `SELECT id, model_name, license_plate, vehicle_type, max_load_capacity, odometer,
			COALESCE(region, ''), acquisition_cost, status, created_at, updated_at
		FROM vehicles WHERE id = $1 FOR UPDATE`

	var v model.Vehicle
	row := tx.QueryRow(ctx, q, vehicleId)
	err := row.Scan(&v.Id, &v.ModelName, &v.LicensePlate, &v.VehicleType, &v.MaxLoadCapacity,
		&v.Odometer, &v.Region, &v.AcquisitionCost, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Vehicle{}, myerrors.ErrVehicleNotFound
	}
	if err != nil {
		return model.Vehicle{}, err
	}
	return v, nil
}

func lockDriver(ctx context.Context, tx pgx.Tx, driverId string) (model.Driver, error) {
	q := `SELECT id, full_name, license_number, license_expiry_date, COALESCE(phone, ''),
			safety_score, status, created_at, updated_at
		FROM drivers WHERE id = $1 FOR UPDATE`

	var d model.Driver
	row := tx.QueryRow(ctx, q, driverId)
	err := row.Scan(&d.Id, &d.FullName, &d.LicenseNumber, &d.LicenseExpiryDate, &d.Phone,
		&d.SafetyScore, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Driver{}, myerrors.ErrDriverNotFound
	}
	if err != nil {
		return model.Driver{}, err
	}
	return d, nil
}

func deactivateCredential(ctx context.Context, tx pgx.Tx, driverUserId *string, now time.Time) error {
	if driverUserId == nil {
		return nil
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET is_active = false, updated_at = $2 WHERE id = $1`,
		*driverUserId, now); err != nil {
		return fmt.Errorf("failed to deactivate credential: %w", err)
	}
	return nil
}

func scanTrip(row pgx.Row) (model.Trip, error) {
	var t model.Trip
	err := row.Scan(
		&t.Id,
		&t.VehicleId,
		&t.DriverId,
		&t.CargoWeight,
		&t.Origin,
		&t.Destination,
		&t.Distance,
		&t.Revenue,
		&t.DriverEarnings,
		&t.Status,
		&t.DriverUserId,
		&t.DispatchDate,
		&t.CompletionDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func scanTripDetails(row pgx.Row) (model.TripDetails, error) {
	var td model.TripDetails
	err := row.Scan(
		&td.Id,
		&td.VehicleId,
		&td.DriverId,
		&td.CargoWeight,
		&td.Origin,
		&td.Destination,
		&td.Distance,
		&td.Revenue,
		&td.DriverEarnings,
		&td.Status,
		&td.DriverUserId,
		&td.DispatchDate,
		&td.CompletionDate,
		&td.CreatedAt,
		&td.UpdatedAt,
		&td.ModelName,
		&td.LicensePlate,
		&td.DriverName,
	)
	return td, err
}
