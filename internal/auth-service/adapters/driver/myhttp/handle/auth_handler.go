package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fleet-ops/internal/auth-service/core/domain/dto"
	"fleet-ops/internal/auth-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type AuthHandler struct {
	authService ports.IAuthService
	mylog       mylogger.Logger
}

func NewAuthHandler(authService ports.IAuthService, mylog mylogger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		mylog:       mylog,
	}
}

func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := ah.mylog.Action("Login")

		req := dto.LoginRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse auth", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := ah.authService.Login(ctx, req)
		if err != nil {
			authError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (ah *AuthHandler) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := ah.mylog.Action("ForgotPassword")

		req := dto.ForgotPasswordRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse request", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		res, err := ah.authService.ForgotPassword(ctx, req)
		if err != nil {
			authError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (ah *AuthHandler) VerifyOTP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := ah.mylog.Action("VerifyOTP")

		req := dto.VerifyOTPRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse request", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := ah.authService.VerifyOTP(ctx, req); err != nil {
			authError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": "OTP verified successfully",
		})
	}
}

func (ah *AuthHandler) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := ah.mylog.Action("ResetPassword")

		req := dto.ResetPasswordRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse request", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := ah.authService.ResetPassword(ctx, req); err != nil {
			authError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": "Password reset successfully",
		})
	}
}
