package dto

import "fleet-ops/internal/auth-service/core/domain/model"

// LoginRequest carries either a staff email or a driver credential
// username as the identifier.
type LoginRequest struct {
	Identifier *string `json:"identifier"`
	Password   *string `json:"password"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type ForgotPasswordRequest struct {
	Email *string `json:"email"`
}

type ForgotPasswordResponse struct {
	Message string `json:"message"`
	// Returned only because no mail transport is wired up yet.
	// TODO: drop once SMTP delivery lands.
	OTP string `json:"otp,omitempty"`
}

type VerifyOTPRequest struct {
	Email *string `json:"email"`
	OTP   *string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email       *string `json:"email"`
	OTP         *string `json:"otp"`
	NewPassword *string `json:"new_password"`
}
