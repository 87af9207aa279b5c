package services

import (
	"context"
	"fmt"
	"strings"

	"fleet-ops/internal/auth-service/core/domain/dto"
	"fleet-ops/internal/auth-service/core/domain/model"
	"fleet-ops/internal/auth-service/core/myerrors"
	"fleet-ops/internal/auth-service/core/ports"
	"fleet-ops/internal/mylogger"
	"fleet-ops/internal/roles"
)

type UserService struct {
	ctx       context.Context
	mylog     mylogger.Logger
	usersRepo ports.IUsersRepo
}

func NewUserService(ctx context.Context, mylog mylogger.Logger, usersRepo ports.IUsersRepo) ports.IUserService {
	return &UserService{
		ctx:       ctx,
		mylog:     mylog,
		usersRepo: usersRepo,
	}
}

func (us *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return us.usersRepo.List(ctx)
}

// CreateUser provisions a staff account. Driver credentials are never
// created here, they are minted by trip dispatch.
func (us *UserService) CreateUser(ctx context.Context, req dto.UserCreateRequest) (model.User, error) {
	mylog := us.mylog.Action("CreateUser")

	if req.Email == nil {
		return model.User{}, myerrors.Validationf("email required")
	}
	if err := validateEmail(*req.Email); err != nil {
		return model.User{}, myerrors.Validationf("invalid email: %v", err)
	}
	if strings.HasSuffix(*req.Email, CredentialDomain) {
		return model.User{}, myerrors.Validationf("the %s domain is reserved for trip credentials", CredentialDomain)
	}
	if req.Password == nil {
		return model.User{}, myerrors.Validationf("password required")
	}
	if err := validatePassword(*req.Password); err != nil {
		return model.User{}, myerrors.Validationf("%v", err)
	}
	if req.FullName == nil || strings.TrimSpace(*req.FullName) == "" {
		return model.User{}, myerrors.Validationf("full_name required")
	}
	if req.Role == nil {
		return model.User{}, myerrors.Validationf("role required")
	}
	role, err := roles.Parse(*req.Role)
	if err != nil {
		return model.User{}, myerrors.Validationf("%v", err)
	}
	if role == roles.Driver {
		return model.User{}, myerrors.Validationf("driver accounts are minted by trip dispatch")
	}

	passwordHash, err := hashSecret(*req.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("cannot hash password: %w", err)
	}

	user, err := us.usersRepo.Create(ctx, model.User{
		Email:        *req.Email,
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(*req.FullName),
		Role:         string(role),
		IsActive:     true,
	})
	if err != nil {
		mylog.Warn("user creation rejected", "reason", err.Error())
		return model.User{}, err
	}

	mylog.Info("user created", "user-id", user.Id, "role", user.Role)
	return user, nil
}

func (us *UserService) DeleteUser(ctx context.Context, userId string) error {
	mylog := us.mylog.Action("DeleteUser")

	if err := us.usersRepo.Delete(ctx, userId); err != nil {
		mylog.Warn("user deletion failed", "user-id", userId, "reason", err.Error())
		return err
	}
	mylog.Info("user deleted", "user-id", userId)
	return nil
}
