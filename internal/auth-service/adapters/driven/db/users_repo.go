package db

import (
	"context"
	"errors"

	"fleet-ops/internal/auth-service/core/domain/model"
	"fleet-ops/internal/auth-service/core/myerrors"
	"fleet-ops/internal/auth-service/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

type UsersRepo struct {
	db ports.IDB
}

func NewUsersRepo(db ports.IDB) ports.IUsersRepo {
	return &UsersRepo{
		db: db,
	}
}

func (ur *UsersRepo) List(ctx context.Context) ([]model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	pool := ur.db.GetPool()
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (ur *UsersRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	q := `INSERT INTO users (email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	pool := ur.db.GetPool()
	row := pool.QueryRow(ctx, q,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Role,
		user.IsActive,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, myerrors.ErrEmailRegistered
		}
		return model.User{}, err
	}
	return created, nil
}

func (ur *UsersRepo) Delete(ctx context.Context, userId string) error {
	pool := ur.db.GetPool()
	tag, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrUserNotFound
	}
	return nil
}
