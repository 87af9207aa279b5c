package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"fleet-ops/internal/auth-service/adapters/driven/db"
	"fleet-ops/internal/auth-service/adapters/driver/myhttp/handle"
	"fleet-ops/internal/auth-service/adapters/driver/myhttp/middleware"
	"fleet-ops/internal/auth-service/core/services"
	"fleet-ops/internal/config"
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

	// Configure routes and handlers
	if err := s.Configure(); err != nil {
		return err
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.AuthServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.AuthServicePort)

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

// Configure wires repositories, services, handlers and routes. The auth
// endpoints are public, user administration is capability-gated.
func (s *Server) Configure() error {
	authRepo := db.NewAuthRepo(s.db)
	usersRepo := db.NewUsersRepo(s.db)

	authService := services.NewAuthService(s.appCtx, s.cfg, s.mylog, authRepo)
	userService := services.NewUserService(s.appCtx, s.mylog, usersRepo)

	authHandler := handle.NewAuthHandler(authService, s.mylog)
	usersHandler := handle.NewUsersHandler(userService, s.mylog)

	auth := middleware.NewAuthMiddleware(s.cfg.App.PublicJwtSecret)

	// Register routes
	s.mux.Handle("POST /auth/login", authHandler.Login())
	s.mux.Handle("POST /auth/forgot-password", authHandler.ForgotPassword())
	s.mux.Handle("POST /auth/verify-otp", authHandler.VerifyOTP())
	s.mux.Handle("POST /auth/reset-password", authHandler.ResetPassword())

	s.mux.Handle("GET /users", auth.Require(roles.CapUserManage, usersHandler.ListUsers()))
	s.mux.Handle("POST /users", auth.Require(roles.CapUserManage, usersHandler.CreateUser()))
	s.mux.Handle("DELETE /users/{user_id}", auth.Require(roles.CapUserManage, usersHandler.DeleteUser()))

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
