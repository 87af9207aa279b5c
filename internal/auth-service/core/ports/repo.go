package ports

import (
	"context"
	"time"

	"fleet-ops/internal/auth-service/core/domain/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IDB interface {
	GetPool() *pgxpool.Pool
	IsAlive() error
	Close()
}

type IAuthRepo interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	UpdatePassword(ctx context.Context, email string, passwordHash []byte) error
	SaveOTP(ctx context.Context, email string, otpHash []byte, expiresAt time.Time) error
	GetOTP(ctx context.Context, email string) (otpHash []byte, expiresAt time.Time, err error)
	DeleteOTP(ctx context.Context, email string) error
}

type IUsersRepo interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, user model.User) (model.User, error)
	Delete(ctx context.Context, userId string) error
}
