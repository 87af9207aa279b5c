package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet-ops/internal/auth-service/core/domain/dto"
	"fleet-ops/internal/auth-service/core/myerrors"
	"fleet-ops/internal/auth-service/core/ports"
	"fleet-ops/internal/config"
	"fleet-ops/internal/mylogger"

	"github.com/golang-jwt/jwt"
)

type AuthService struct {
	ctx      context.Context
	cfg      *config.Config
	mylog    mylogger.Logger
	authRepo ports.IAuthRepo
}

func NewAuthService(
	ctx context.Context,
	cfg *config.Config,
	mylog mylogger.Logger,
	authRepo ports.IAuthRepo,
) ports.IAuthService {
	return &AuthService{
		ctx:      ctx,
		cfg:      cfg,
		mylog:    mylog,
		authRepo: authRepo,
	}
}

// Login authenticates a staff email or a driver credential username.
// Unknown identifier and wrong password come back as the same error.
func (as *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	mylog := as.mylog.Action("Login")

	if req.Identifier == nil || strings.TrimSpace(*req.Identifier) == "" {
		return dto.LoginResponse{}, myerrors.Validationf("identifier required")
	}
	if req.Password == nil || *req.Password == "" {
		return dto.LoginResponse{}, myerrors.Validationf("password required")
	}

	email := resolveIdentifier(strings.TrimSpace(*req.Identifier))

	user, err := as.authRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, myerrors.ErrUserNotFound) {
			mylog.Warn("login with unknown identifier")
			return dto.LoginResponse{}, myerrors.ErrInvalidCredentials
		}
		mylog.Error("cannot fetch user", err)
		return dto.LoginResponse{}, err
	}

	// A revoked driver credential or a deactivated staff account is
	// indistinguishable from a wrong password on the wire.
	if !user.IsActive {
		mylog.Warn("login on deactivated account", "user-id", user.Id)
		return dto.LoginResponse{}, myerrors.ErrInvalidCredentials
	}

	if !checkSecret(user.PasswordHash, *req.Password) {
		mylog.Debug("login with wrong password", "user-id", user.Id)
		return dto.LoginResponse{}, myerrors.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.Id,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * time.Duration(as.cfg.App.TokenTTLHours)).Unix(),
	}
	if user.DriverId != nil {
		claims["driver_id"] = *user.DriverId
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString([]byte(as.cfg.App.PublicJwtSecret))
	if err != nil {
		mylog.Error("error to create jwt token", err)
		return dto.LoginResponse{}, err
	}

	mylog.Info("User login successfully", "user-id", user.Id, "role", user.Role)
	return dto.LoginResponse{
		Token: accessTokenString,
		User:  user,
	}, nil
}

// ForgotPassword mints a 6-digit OTP and stores its hash with a TTL.
// Only the hash persists, the plaintext code goes to the caller.
func (as *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (dto.ForgotPasswordResponse, error) {
	mylog := as.mylog.Action("ForgotPassword")

	if req.Email == nil {
		return dto.ForgotPasswordResponse{}, myerrors.Validationf("email required")
	}
	if err := validateEmail(*req.Email); err != nil {
		return dto.ForgotPasswordResponse{}, myerrors.Validationf("invalid email: %v", err)
	}

	if _, err := as.authRepo.GetByEmail(ctx, *req.Email); err != nil {
		return dto.ForgotPasswordResponse{}, err
	}

	otp, err := generateOTP()
	if err != nil {
		return dto.ForgotPasswordResponse{}, fmt.Errorf("cannot generate OTP: %w", err)
	}
	otpHash, err := hashSecret(otp)
	if err != nil {
		return dto.ForgotPasswordResponse{}, fmt.Errorf("cannot hash OTP: %w", err)
	}

	expiresAt := time.Now().Add(time.Minute * time.Duration(as.cfg.App.OtpTTLMinutes))
	if err := as.authRepo.SaveOTP(ctx, *req.Email, otpHash, expiresAt); err != nil {
		mylog.Error("cannot save OTP", err)
		return dto.ForgotPasswordResponse{}, err
	}

	mylog.Info("OTP issued", "email", *req.Email)
	return dto.ForgotPasswordResponse{
		Message: "OTP sent to email",
		OTP:     otp,
	}, nil
}

func (as *AuthService) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) error {
	if req.Email == nil || req.OTP == nil {
		return myerrors.Validationf("email and otp required")
	}
	return as.checkOTP(ctx, *req.Email, *req.OTP)
}

// ResetPassword re-verifies the OTP, rewrites the password hash and
// burns the code.
func (as *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	mylog := as.mylog.Action("ResetPassword")

	if req.Email == nil || req.OTP == nil || req.NewPassword == nil {
		return myerrors.Validationf("email, otp and new_password required")
	}
	if err := validatePassword(*req.NewPassword); err != nil {
		return myerrors.Validationf("%v", err)
	}

	if err := as.checkOTP(ctx, *req.Email, *req.OTP); err != nil {
		return err
	}

	passwordHash, err := hashSecret(*req.NewPassword)
	if err != nil {
		return fmt.Errorf("cannot hash password: %w", err)
	}

	if err := as.authRepo.UpdatePassword(ctx, *req.Email, passwordHash); err != nil {
		mylog.Error("cannot update password", err)
		return err
	}

	if err := as.authRepo.DeleteOTP(ctx, *req.Email); err != nil {
		mylog.Warn("cannot burn OTP", "reason", err.Error())
	}

	mylog.Info("password reset", "email", *req.Email)
	return nil
}

// checkOTP validates the stored code. Expiry is checked on every read.
func (as *AuthService) checkOTP(ctx context.Context, email, otp string) error {
	otpHash, expiresAt, err := as.authRepo.GetOTP(ctx, email)
	if err != nil {
		return err
	}

	if time.Now().After(expiresAt) {
		_ = as.authRepo.DeleteOTP(ctx, email)
		return myerrors.ErrOTPExpired
	}

	if !checkSecret(otpHash, otp) {
		return myerrors.ErrOTPInvalid
	}
	return nil
}
