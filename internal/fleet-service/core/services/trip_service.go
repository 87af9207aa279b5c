package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	messagebrokerdto "fleet-ops/internal/fleet-service/core/domain/message_broker_dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"

	"github.com/google/uuid"
)

const CredentialsMessage = "Share these credentials with the driver. They will be deactivated after trip completion."

type TripService struct {
	ctx         context.Context
	mylog       mylogger.Logger
	tripsRepo   ports.ITripsRepo
	fleetBroker ports.IFleetBroker
}

func NewTripService(ctx context.Context,
	mylog mylogger.Logger,
	tripsRepo ports.ITripsRepo,
	fleetBroker ports.IFleetBroker,
) ports.ITripService {
	return &TripService{
		ctx:         ctx,
		mylog:       mylog,
		tripsRepo:   tripsRepo,
		fleetBroker: fleetBroker,
	}
}

func (ts *TripService) CreateTrip(ctx context.Context, req dto.TripCreateRequest) (model.Trip, error) {
	log := ts.mylog.Action("CreateTrip")

	if err := validateTripCreate(req); err != nil {
		return model.Trip{}, err
	}

	m := model.Trip{
		VehicleId:   *req.VehicleId,
		DriverId:    *req.DriverId,
		CargoWeight: *req.CargoWeight,
		Origin:      strings.TrimSpace(*req.Origin),
		Destination: strings.TrimSpace(*req.Destination),
		Distance:    req.Distance,
		Status:      model.TripDraft,
	}
	if req.Revenue != nil {
		m.Revenue = *req.Revenue
	}
	if req.DriverEarnings != nil {
		m.DriverEarnings = *req.DriverEarnings
	}

	trip, err := ts.tripsRepo.CreateTrip(ctx, m, time.Now())
	if err != nil {
		log.Warn("trip creation rejected", "reason", err.Error())
		return model.Trip{}, err
	}

	log.Info("trip created", "trip-id", trip.Id, "vehicle-id", trip.VehicleId, "driver-id", trip.DriverId)
	return trip, nil
}

// DispatchTrip activates a Draft trip: mints a one-shot driver
// credential, flips the trip to Dispatched and cascades vehicle/driver
// statuses, all in one transaction. The plaintext pair is returned
// exactly once.
func (ts *TripService) DispatchTrip(ctx context.Context, tripId string) (dto.TripDispatchResponse, error) {
	log := ts.mylog.Action("DispatchTrip")

	details, err := ts.tripsRepo.GetTrip(ctx, tripId)
	if err != nil {
		return dto.TripDispatchResponse{}, err
	}
	// early reject; the authoritative re-check happens on the locked
	// row inside DispatchTrip
	if err := details.CheckDispatchable(); err != nil {
		return dto.TripDispatchResponse{}, err
	}

	var (
		trip     model.Trip
		username string
		password string
	)
	for attempt := 1; ; attempt++ {
		username = mintUsername(details.LicensePlate, time.Now())
		password, err = generatePassword()
		if err != nil {
			return dto.TripDispatchResponse{}, err
		}
		hash, hashErr := hashSecret(password)
		if hashErr != nil {
			return dto.TripDispatchResponse{}, fmt.Errorf("cannot hash credential secret: %w", hashErr)
		}

		cred := model.Credential{
			Username:     username,
			Email:        credentialEmail(username),
			PasswordHash: hash,
			FullName:     details.DriverName,
			DriverId:     details.DriverId,
		}

		trip, err = ts.tripsRepo.DispatchTrip(ctx, tripId, cred, time.Now())
		if errors.Is(err, myerrors.ErrCredentialTaken) && attempt < maxMintAttempts {
			log.Warn("credential username collision, reminting", "username", username, "attempt", attempt)
			continue
		}
		break
	}
	if err != nil {
		log.Warn("dispatch rejected", "trip-id", tripId, "reason", err.Error())
		return dto.TripDispatchResponse{}, err
	}

	log.Info("trip dispatched", "trip-id", trip.Id, "username", username)
	ts.publishStatus(trip)

	return dto.TripDispatchResponse{
		Trip: trip,
		DriverCredentials: dto.DriverCredentials{
			Username: username,
			Password: password,
			Message:  CredentialsMessage,
		},
	}, nil
}

// CompleteTrip closes out a Dispatched trip against a validated
// odometer reading, revokes the driver credential and returns the
// vehicle and driver to their idle statuses.
func (ts *TripService) CompleteTrip(ctx context.Context, tripId string, req dto.TripCompleteRequest) (dto.TripCompleteResponse, error) {
	log := ts.mylog.Action("CompleteTrip")

	if req.OdometerReading == nil {
		return dto.TripCompleteResponse{}, myerrors.Validationf("odometer_reading required")
	}

	trip, err := ts.tripsRepo.CompleteTrip(ctx, tripId, *req.OdometerReading, time.Now())
	if err != nil {
		log.Warn("completion rejected", "trip-id", tripId, "reason", err.Error())
		return dto.TripCompleteResponse{}, err
	}

	log.Info("trip completed", "trip-id", trip.Id, "odometer", *req.OdometerReading)
	ts.publishStatus(trip)

	return dto.TripCompleteResponse{
		Trip:     trip,
		Message:  "Trip completed successfully",
		Odometer: *req.OdometerReading,
	}, nil
}

// CancelTrip cancels any non-terminal trip. A Dispatched trip also
// reverts vehicle/driver statuses and revokes its credential: a
// cancelled trip must leave no usable driver login behind.
func (ts *TripService) CancelTrip(ctx context.Context, tripId string) (model.Trip, error) {
	log := ts.mylog.Action("CancelTrip")

	trip, err := ts.tripsRepo.CancelTrip(ctx, tripId, time.Now())
	if err != nil {
		log.Warn("cancellation rejected", "trip-id", tripId, "reason", err.Error())
		return model.Trip{}, err
	}

	log.Info("trip cancelled", "trip-id", trip.Id)
	ts.publishStatus(trip)
	return trip, nil
}

// ActiveTripForCredential resolves what the driver behind the given
// ephemeral credential is assigned to. No active trip is a normal
// answer, not an error.
func (ts *TripService) ActiveTripForCredential(ctx context.Context, driverUserId string) (model.TripDetails, bool, error) {
	return ts.tripsRepo.ActiveTripForCredential(ctx, driverUserId)
}

func (ts *TripService) ListTrips(ctx context.Context, status string) ([]model.TripDetails, error) {
	return ts.tripsRepo.ListTrips(ctx, status)
}

// publishStatus emits a trip status event for the dispatch board.
// The transition is already committed, so a broker failure is logged
// and swallowed rather than failing the request.
func (ts *TripService) publishStatus(trip model.Trip) {
	if ts.fleetBroker == nil {
		return
	}
	log := ts.mylog.Action("publishStatus")

	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*5)
	defer cancel()

	msg := messagebrokerdto.TripStatus{
		TripId:        trip.Id,
		Status:        string(trip.Status),
		VehicleId:     trip.VehicleId,
		DriverId:      trip.DriverId,
		Timestamp:     time.Now().Format(time.RFC3339),
		CorrelationID: uuid.NewString(),
	}
	if err := ts.fleetBroker.PushTripStatus(ctx, msg); err != nil {
		log.Error("cannot publish trip status", err, "trip-id", trip.Id, "status", trip.Status)
	}
}

func validateTripCreate(req dto.TripCreateRequest) error {
	if req.VehicleId == nil || *req.VehicleId == "" {
		return myerrors.Validationf("vehicle_id required")
	}
	if req.DriverId == nil || *req.DriverId == "" {
		return myerrors.Validationf("driver_id required")
	}
	if req.CargoWeight == nil {
		return myerrors.Validationf("cargo_weight required")
	}
	if *req.CargoWeight <= 0 {
		return myerrors.Validationf("cargo_weight must be positive")
	}
	if req.Origin == nil || strings.TrimSpace(*req.Origin) == "" {
		return myerrors.Validationf("origin required")
	}
	if req.Destination == nil || strings.TrimSpace(*req.Destination) == "" {
		return myerrors.Validationf("destination required")
	}
	if req.Distance != nil && *req.Distance <= 0 {
		return myerrors.Validationf("distance must be positive when set")
	}
	return nil
}
