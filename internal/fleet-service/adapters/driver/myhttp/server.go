package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"fleet-ops/internal/config"
	"fleet-ops/internal/fleet-service/adapters/driven/bm"
	"fleet-ops/internal/fleet-service/adapters/driven/consumer"
	"fleet-ops/internal/fleet-service/adapters/driven/db"
	"fleet-ops/internal/fleet-service/adapters/driver/myhttp/handle"
	"fleet-ops/internal/fleet-service/adapters/driver/myhttp/middleware"
	"fleet-ops/internal/fleet-service/adapters/driver/myhttp/ws"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/fleet-service/core/services"
	"fleet-ops/internal/mylogger"
	"fleet-ops/internal/roles"
)

var ErrServerClosed = errors.New("Server closed")

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	mb     ports.IFleetBroker
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
	wg     sync.WaitGroup
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	s := &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}

	return s
}

// Run initializes routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	// Initialize database connection
	db, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	mylog.Info("Successful database connection")

	// Initialize RabbitMQ connection
	mb, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	mylog.Info("Successful message broker connection")

	// Configure routes and handlers
	if err := s.Configure(); err != nil {
		return err
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.FleetServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.FleetServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	s.wg.Wait()

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Error("Failed to close message broker", err)
		}
	}

	if s.db != nil {
		s.db.Close()
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires repositories, services, handlers and routes. Every
// route is gated on the capability it needs, not on a role string.
func (s *Server) Configure() error {
	// Repositories
	tripsRepo := db.NewTripsRepo(s.db)
	vehiclesRepo := db.NewVehiclesRepo(s.db)
	driversRepo := db.NewDriversRepo(s.db)
	maintenanceRepo := db.NewMaintenanceRepo(s.db)
	expensesRepo := db.NewExpensesRepo(s.db)
	analyticsRepo := db.NewAnalyticsRepo(s.db)

	// services
	tripService := services.NewTripService(s.appCtx, s.mylog, tripsRepo, s.mb)
	vehicleService := services.NewVehicleService(s.appCtx, s.mylog, vehiclesRepo)
	driverService := services.NewDriverService(s.appCtx, s.mylog, driversRepo)
	maintenanceService := services.NewMaintenanceService(s.appCtx, s.mylog, maintenanceRepo)
	expenseService := services.NewExpenseService(s.appCtx, s.mylog, expensesRepo)
	analyticsService := services.NewAnalyticsService(s.appCtx, s.mylog, analyticsRepo)

	// handlers
	tripsHandler := handle.NewTripsHandler(tripService, s.mylog)
	vehiclesHandler := handle.NewVehiclesHandler(vehicleService, s.mylog)
	driversHandler := handle.NewDriversHandler(driverService, s.mylog)
	maintenanceHandler := handle.NewMaintenanceHandler(maintenanceService, s.mylog)
	expensesHandler := handle.NewExpensesHandler(expenseService, s.mylog)
	analyticsHandler := handle.NewAnalyticsHandler(analyticsService, s.mylog)

	auth := middleware.NewAuthMiddleware(s.cfg.App.PublicJwtSecret)

	// dispatch board
	dispatcher := ws.NewDispatcher(s.appCtx, s.mylog)
	notification := consumer.New(s.appCtx, s.mylog, dispatcher, s.mb)
	if err := notification.Run(); err != nil {
		return fmt.Errorf("failed to start trip status consumer: %w", err)
	}

	// Register routes
	s.mux.Handle("GET /trips", auth.Require(roles.CapTripView, tripsHandler.ListTrips()))
	s.mux.Handle("POST /trips", auth.Require(roles.CapTripCreate, tripsHandler.CreateTrip()))
	s.mux.Handle("GET /trips/active", auth.Require(roles.CapTripActiveView, tripsHandler.ActiveTrip()))
	s.mux.Handle("POST /trips/{trip_id}/dispatch", auth.Require(roles.CapTripDispatch, tripsHandler.DispatchTrip()))
	s.mux.Handle("POST /trips/{trip_id}/complete", auth.Require(roles.CapTripComplete, tripsHandler.CompleteTrip()))
	s.mux.Handle("POST /trips/{trip_id}/cancel", auth.Require(roles.CapTripCancel, tripsHandler.CancelTrip()))

	s.mux.Handle("GET /vehicles", auth.Require(roles.CapVehicleView, vehiclesHandler.ListVehicles()))
	s.mux.Handle("POST /vehicles", auth.Require(roles.CapVehicleManage, vehiclesHandler.CreateVehicle()))
	s.mux.Handle("PUT /vehicles/{vehicle_id}", auth.Require(roles.CapVehicleManage, vehiclesHandler.UpdateVehicle()))
	s.mux.Handle("POST /vehicles/{vehicle_id}/retire", auth.Require(roles.CapVehicleManage, vehiclesHandler.RetireVehicle()))
	s.mux.Handle("DELETE /vehicles/{vehicle_id}", auth.Require(roles.CapVehicleManage, vehiclesHandler.DeleteVehicle()))

	s.mux.Handle("GET /drivers", auth.Require(roles.CapDriverView, driversHandler.ListDrivers()))
	s.mux.Handle("POST /drivers", auth.Require(roles.CapDriverManage, driversHandler.CreateDriver()))
	s.mux.Handle("PUT /drivers/{driver_id}", auth.Require(roles.CapDriverManage, driversHandler.UpdateDriver()))
	s.mux.Handle("GET /drivers/{driver_id}/performance", auth.Require(roles.CapDriverView, driversHandler.DriverPerformance()))

	s.mux.Handle("GET /maintenance", auth.Require(roles.CapMaintenanceView, maintenanceHandler.ListMaintenance()))
	s.mux.Handle("POST /maintenance", auth.Require(roles.CapMaintenanceManage, maintenanceHandler.CreateMaintenance()))
	s.mux.Handle("POST /maintenance/complete", auth.Require(roles.CapMaintenanceManage, maintenanceHandler.CompleteMaintenance()))

	s.mux.Handle("GET /expenses", auth.Require(roles.CapExpenseView, expensesHandler.ListExpenses()))
	s.mux.Handle("POST /expenses", auth.Require(roles.CapExpenseCreate, expensesHandler.CreateExpense()))
	s.mux.Handle("GET /expenses/{vehicle_id}/total", auth.Require(roles.CapExpenseView, expensesHandler.TotalOperationalCost()))

	s.mux.Handle("GET /analytics/dashboard", auth.Require(roles.CapAnalyticsView, analyticsHandler.DashboardKPIs()))
	s.mux.Handle("GET /analytics/fuel-efficiency", auth.Require(roles.CapAnalyticsView, analyticsHandler.FuelEfficiency()))
	s.mux.Handle("GET /analytics/roi", auth.Require(roles.CapROIView, analyticsHandler.VehicleROI()))

	// websocket routes
	s.mux.Handle("/ws/board", auth.Require(roles.CapBoardWatch, dispatcher.BoardHandler()))

	s.mux.HandleFunc("GET /health", s.health)

	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.db.IsAlive(); err != nil {
		handle.JsonError(w, http.StatusServiceUnavailable, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
