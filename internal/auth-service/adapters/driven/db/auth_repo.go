package db

import (
	"context"
	"errors"
	"time"

	"fleet-ops/internal/auth-service/core/domain/model"
	"fleet-ops/internal/auth-service/core/myerrors"
	"fleet-ops/internal/auth-service/core/ports"

	"github.com/jackc/pgx/v5"
)

const userColumns = `
	id,
	email,
	password_hash,
	full_name,
	role,
	driver_id,
	is_active,
	created_at,
	updated_at`

type AuthRepo struct {
	db ports.IDB
}

func NewAuthRepo(db ports.IDB) ports.IAuthRepo {
	return &AuthRepo{
		db: db,
	}
}

func (ar *AuthRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	pool := ar.db.GetPool()
	row := pool.QueryRow(ctx, q, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, myerrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (ar *AuthRepo) UpdatePassword(ctx context.Context, email string, passwordHash []byte) error {
	q := `UPDATE users SET password_hash = $2, updated_at = now() WHERE email = $1`

	pool := ar.db.GetPool()
	tag, err := pool.Exec(ctx, q, email, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrUserNotFound
	}
	return nil
}

// SaveOTP upserts: a fresh request replaces any previous code for the
// same email.
func (ar *AuthRepo) SaveOTP(ctx context.Context, email string, otpHash []byte, expiresAt time.Time) error {
	q := `INSERT INTO password_resets (email, otp_hash, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET
			otp_hash = EXCLUDED.otp_hash,
			expires_at = EXCLUDED.expires_at,
			created_at = now()`

	pool := ar.db.GetPool()
	_, err := pool.Exec(ctx, q, email, otpHash, expiresAt)
	return err
}

func (ar *AuthRepo) GetOTP(ctx context.Context, email string) ([]byte, time.Time, error) {
	q := `SELECT otp_hash, expires_at FROM password_resets WHERE email = $1`

	pool := ar.db.GetPool()
	row := pool.QueryRow(ctx, q, email)

	var (
		otpHash   []byte
		expiresAt time.Time
	)
	err := row.Scan(&otpHash, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, time.Time{}, myerrors.ErrOTPNotFound
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	return otpHash, expiresAt, nil
}

func (ar *AuthRepo) DeleteOTP(ctx context.Context, email string) error {
	pool := ar.db.GetPool()
	_, err := pool.Exec(ctx, `DELETE FROM password_resets WHERE email = $1`, email)
	return err
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.Id,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Role,
		&u.DriverId,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
