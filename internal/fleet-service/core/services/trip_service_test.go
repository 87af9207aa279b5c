package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/mylogger"
)

// fakeTripsRepo is an in-memory stand-in for the Postgres sagas. It
// applies the same precondition checks and status cascades the real
// repo runs inside its transactions.
type fakeTripsRepo struct {
	trips    map[string]*model.Trip
	vehicles map[string]*model.Vehicle
	drivers  map[string]*model.Driver

	creds      map[string]model.Credential // by user id
	credActive map[string]bool
	nextUserId int

	// number of DispatchTrip calls that fail with ErrCredentialTaken
	// before one succeeds
	collisions int
}

func newFakeTripsRepo() *fakeTripsRepo {
	return &fakeTripsRepo{
		trips:      map[string]*model.Trip{},
		vehicles:   map[string]*model.Vehicle{},
		drivers:    map[string]*model.Driver{},
		creds:      map[string]model.Credential{},
		credActive: map[string]bool{},
	}
}

func (f *fakeTripsRepo) CreateTrip(ctx context.Context, trip model.Trip, now time.Time) (model.Trip, error) {
	v, ok := f.vehicles[trip.VehicleId]
	if !ok {
		return model.Trip{}, myerrors.ErrVehicleNotFound
	}
	if err := v.CheckLoad(trip.CargoWeight); err != nil {
		return model.Trip{}, err
	}
	if err := v.CheckAvailable(); err != nil {
		return model.Trip{}, err
	}
	d, ok := f.drivers[trip.DriverId]
	if !ok {
		return model.Trip{}, myerrors.ErrDriverNotFound
	}
	if err := d.CheckEligible(now); err != nil {
		return model.Trip{}, err
	}
	trip.Id = "trip-" + trip.VehicleId
	trip.Status = model.TripDraft
	trip.CreatedAt = now
	f.trips[trip.Id] = &trip
	return trip, nil
}

func (f *fakeTripsRepo) GetTrip(ctx context.Context, tripId string) (model.TripDetails, error) {
	t, ok := f.trips[tripId]
	if !ok {
		return model.TripDetails{}, myerrors.ErrTripNotFound
	}
	return model.TripDetails{
		Trip:         *t,
		LicensePlate: f.vehicles[t.VehicleId].LicensePlate,
		ModelName:    f.vehicles[t.VehicleId].ModelName,
		DriverName:   f.drivers[t.DriverId].FullName,
	}, nil
}

func (f *fakeTripsRepo) DispatchTrip(ctx context.Context, tripId string, cred model.Credential, now time.Time) (model.Trip, error) {
	t, ok := f.trips[tripId]
	if !ok {
		return model.Trip{}, myerrors.ErrTripNotFound
	}
	if err := t.CheckDispatchable(); err != nil {
		return model.Trip{}, err
	}
	if f.collisions > 0 {
		f.collisions--
		return model.Trip{}, myerrors.ErrCredentialTaken
	}
	f.nextUserId++
	userId := "user-" + cred.Username
	f.creds[userId] = cred
	f.credActive[userId] = true

	t.Status = model.TripDispatched
	t.DispatchDate = &now
	t.DriverUserId = &userId
	f.vehicles[t.VehicleId].Status = model.VehicleOnTrip
	f.drivers[t.DriverId].Status = model.DriverOnDuty
	return *t, nil
}

func (f *fakeTripsRepo) CompleteTrip(ctx context.Context, tripId string, odometerReading float64, now time.Time) (model.Trip, error) {
	t, ok := f.trips[tripId]
	if !ok {
		return model.Trip{}, myerrors.ErrTripNotFound
	}
	if err := t.CheckCompletable(); err != nil {
		return model.Trip{}, err
	}
	v := f.vehicles[t.VehicleId]
	if err := t.CheckOdometer(v.Odometer, odometerReading); err != nil {
		return model.Trip{}, err
	}
	t.Status = model.TripCompleted
	t.CompletionDate = &now
	if t.DriverUserId != nil {
		f.credActive[*t.DriverUserId] = false
	}
	v.Status = model.VehicleAvailable
	v.Odometer = odometerReading
	f.drivers[t.DriverId].Status = model.DriverOffDuty
	return *t, nil
}

func (f *fakeTripsRepo) CancelTrip(ctx context.Context, tripId string, now time.Time) (model.Trip, error) {
	t, ok := f.trips[tripId]
	if !ok {
		return model.Trip{}, myerrors.ErrTripNotFound
	}
	if err := t.CheckCancellable(); err != nil {
		return model.Trip{}, err
	}
	if t.Status == model.TripDispatched {
		f.vehicles[t.VehicleId].Status = model.VehicleAvailable
		f.drivers[t.DriverId].Status = model.DriverOffDuty
		if t.DriverUserId != nil {
			f.credActive[*t.DriverUserId] = false
		}
	}
	t.Status = model.TripCancelled
	return *t, nil
}

func (f *fakeTripsRepo) ActiveTripForCredential(ctx context.Context, driverUserId string) (model.TripDetails, bool, error) {
	for _, t := range f.trips {
		if t.Status == model.TripDispatched && t.DriverUserId != nil && *t.DriverUserId == driverUserId {
			return model.TripDetails{Trip: *t}, true, nil
		}
	}
	return model.TripDetails{}, false, nil
}

func (f *fakeTripsRepo) ListTrips(ctx context.Context, status string) ([]model.TripDetails, error) {
	var out []model.TripDetails
	for _, t := range f.trips {
		if status == "" || string(t.Status) == status {
			out = append(out, model.TripDetails{Trip: *t})
		}
	}
	return out, nil
}

func testService(repo *fakeTripsRepo) *TripService {
	log := mylogger.New(mylogger.LevelError, "test")
	return NewTripService(context.Background(), log, repo, nil).(*TripService)
}

func seedFleet(repo *fakeTripsRepo) {
	repo.vehicles["v1"] = &model.Vehicle{
		Id: "v1", ModelName: "Volvo FH16", LicensePlate: "ABC-1234",
		MaxLoadCapacity: 2000, Odometer: 1000, Status: model.VehicleAvailable,
	}
	repo.drivers["d1"] = &model.Driver{
		Id: "d1", FullName: "Askar Nurlanov", Status: model.DriverOffDuty,
		LicenseExpiryDate: time.Now().AddDate(1, 0, 0),
	}
}

func draftRequest(cargo float64) dto.TripCreateRequest {
	vehicleId, driverId := "v1", "d1"
	origin, destination := "Almaty", "Astana"
	distance := 100.0
	return dto.TripCreateRequest{
		VehicleId:   &vehicleId,
		DriverId:    &driverId,
		CargoWeight: &cargo,
		Origin:      &origin,
		Destination: &destination,
		Distance:    &distance,
	}
}

func TestCreateTripOverCapacity(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)

	_, err := svc.CreateTrip(context.Background(), draftRequest(2500))
	var capErr *myerrors.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Contains(t, err.Error(), "2000 kg")
}

func TestCreateTripExpiredLicense(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	repo.drivers["d1"].LicenseExpiryDate = time.Now().AddDate(0, 0, -1)
	svc := testService(repo)

	_, err := svc.CreateTrip(context.Background(), draftRequest(1500))
	assert.ErrorIs(t, err, myerrors.ErrLicenseExpired)
}

func TestCreateTripVehicleUnavailable(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	repo.vehicles["v1"].Status = model.VehicleInShop
	svc := testService(repo)

	_, err := svc.CreateTrip(context.Background(), draftRequest(1500))
	assert.ErrorIs(t, err, myerrors.ErrVehicleUnavailable)
}

func TestDispatchMintsCredential(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)

	res, err := svc.DispatchTrip(ctx, trip.Id)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ABC1234_\d+$`), res.DriverCredentials.Username)
	assert.GreaterOrEqual(t, len(res.DriverCredentials.Password), 8)
	assert.Equal(t, model.TripDispatched, res.Trip.Status)
	assert.NotNil(t, res.Trip.DispatchDate)
	assert.Equal(t, model.VehicleOnTrip, repo.vehicles["v1"].Status)
	assert.Equal(t, model.DriverOnDuty, repo.drivers["d1"].Status)

	// stored hash matches the returned plaintext and nothing else
	cred := repo.creds[*res.Trip.DriverUserId]
	assert.NoError(t, bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(res.DriverCredentials.Password)))

	// a second dispatch loses the race against the first
	_, err = svc.DispatchTrip(ctx, trip.Id)
	assert.ErrorIs(t, err, myerrors.ErrNotDispatchable)
}

func TestDispatchRetriesOnUsernameCollision(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	repo.collisions = 2
	svc := testService(repo)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)

	res, err := svc.DispatchTrip(ctx, trip.Id)
	require.NoError(t, err)
	assert.Equal(t, model.TripDispatched, res.Trip.Status)
}

func TestDispatchCollisionExhaustion(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	repo.collisions = 100
	svc := testService(repo)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)

	_, err = svc.DispatchTrip(ctx, trip.Id)
	assert.ErrorIs(t, err, myerrors.ErrCredentialTaken)
}

func TestCompleteRoundTrip(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)
	dispatched, err := svc.DispatchTrip(ctx, trip.Id)
	require.NoError(t, err)
	userId := *dispatched.Trip.DriverUserId

	reading := 1100.0
	res, err := svc.CompleteTrip(ctx, trip.Id, dto.TripCompleteRequest{OdometerReading: &reading})
	require.NoError(t, err)

	assert.Equal(t, model.TripCompleted, res.Trip.Status)
	assert.NotNil(t, res.Trip.CompletionDate)
	assert.Equal(t, model.VehicleAvailable, repo.vehicles["v1"].Status)
	assert.Equal(t, 1100.0, repo.vehicles["v1"].Odometer)
	assert.Equal(t, model.DriverOffDuty, repo.drivers["d1"].Status)
	assert.False(t, repo.credActive[userId], "credential must be revoked on completion")

	// terminal: neither completion nor dispatch applies again
	_, err = svc.CompleteTrip(ctx, trip.Id, dto.TripCompleteRequest{OdometerReading: &reading})
	assert.ErrorIs(t, err, myerrors.ErrNotCompletable)
}

func TestCompleteOdometerRegression(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)
	_, err = svc.DispatchTrip(ctx, trip.Id)
	require.NoError(t, err)

	for _, reading := range []float64{900, 1000} {
		r := reading
		_, err = svc.CompleteTrip(ctx, trip.Id, dto.TripCompleteRequest{OdometerReading: &r})
		var regErr *myerrors.OdometerRegressionError
		assert.True(t, errors.As(err, &regErr), "reading %g", reading)
	}
}

func TestCompleteOdometerImplausible(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)
	_, err = svc.DispatchTrip(ctx, trip.Id)
	require.NoError(t, err)

	reading := 1850.0
	_, err = svc.CompleteTrip(ctx, trip.Id, dto.TripCompleteRequest{OdometerReading: &reading})
	var impErr *myerrors.OdometerImplausibleError
	require.True(t, errors.As(err, &impErr))
	assert.Contains(t, err.Error(), "1080-1500")
}

func TestCancelDispatchedTrip(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)
	dispatched, err := svc.DispatchTrip(ctx, trip.Id)
	require.NoError(t, err)
	userId := *dispatched.Trip.DriverUserId

	cancelled, err := svc.CancelTrip(ctx, trip.Id)
	require.NoError(t, err)

	assert.Equal(t, model.TripCancelled, cancelled.Status)
	assert.Equal(t, model.VehicleAvailable, repo.vehicles["v1"].Status)
	assert.Equal(t, model.DriverOffDuty, repo.drivers["d1"].Status)
	assert.False(t, repo.credActive[userId], "credential must be revoked on cancel")

	_, err = svc.CancelTrip(ctx, trip.Id)
	assert.ErrorIs(t, err, myerrors.ErrTripFinished)
}

func TestCancelDraftTripNoSideEffects(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)

	cancelled, err := svc.CancelTrip(ctx, trip.Id)
	require.NoError(t, err)
	assert.Equal(t, model.TripCancelled, cancelled.Status)
	assert.Equal(t, model.VehicleAvailable, repo.vehicles["v1"].Status)
	assert.Equal(t, model.DriverOffDuty, repo.drivers["d1"].Status)
}

func TestActiveTripForCredential(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)
	ctx := context.Background()

	_, found, err := svc.ActiveTripForCredential(ctx, "user-nobody")
	require.NoError(t, err)
	assert.False(t, found)

	trip, err := svc.CreateTrip(ctx, draftRequest(1500))
	require.NoError(t, err)
	dispatched, err := svc.DispatchTrip(ctx, trip.Id)
	require.NoError(t, err)

	active, found, err := svc.ActiveTripForCredential(ctx, *dispatched.Trip.DriverUserId)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, trip.Id, active.Id)
}

func TestCreateTripValidation(t *testing.T) {
	repo := newFakeTripsRepo()
	seedFleet(repo)
	svc := testService(repo)
	ctx := context.Background()

	req := draftRequest(1500)
	req.VehicleId = nil
	_, err := svc.CreateTrip(ctx, req)
	assert.Error(t, err)

	req = draftRequest(-5)
	_, err = svc.CreateTrip(ctx, req)
	assert.Error(t, err)

	req = draftRequest(1500)
	empty := "  "
	req.Origin = &empty
	_, err = svc.CreateTrip(ctx, req)
	assert.Error(t, err)
}
