package ports

import (
	"context"

	"fleet-ops/internal/auth-service/core/domain/dto"
	"fleet-ops/internal/auth-service/core/domain/model"
)

type IAuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (dto.ForgotPasswordResponse, error)
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

type IUserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, req dto.UserCreateRequest) (model.User, error)
	DeleteUser(ctx context.Context, userId string) error
}
