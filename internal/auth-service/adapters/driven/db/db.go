package db

import (
	"context"
	"fmt"

	"fleet-ops/internal/config"
	"fleet-ops/internal/mylogger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	ctx   context.Context
	cfg   *config.DBconfig
	mylog mylogger.Logger
	pool  *pgxpool.Pool
}

func New(ctx context.Context, dbCfg *config.DBconfig, mylog mylogger.Logger) (*DB, error) {
	d := &DB{
		cfg:   dbCfg,
		ctx:   ctx,
		mylog: mylog,
	}

	if err := d.connect(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *DB) GetPool() *pgxpool.Pool {
	return d.pool
}

func (d *DB) Close() {
	d.pool.Close()
}

// IsAlive pings the DB to verify it's responsive
func (d *DB) IsAlive() error {
	if d.pool == nil {
		return fmt.Errorf("DB is not initialized")
	}
	if err := d.pool.Ping(d.ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

func (d *DB) connect() error {
	pool, err := pgxpool.New(d.ctx, fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",

		d.cfg.User,
		d.cfg.Password,
		d.cfg.Host,
		d.cfg.Port,
		d.cfg.Database,
	))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}
	d.pool = pool
	return nil
}
