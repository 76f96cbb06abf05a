package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		host:     env.GetVariableOrDefault(ctx, "POSTGRES_HOST", ""),
		user:     env.GetVariableOrDefault(ctx, "POSTGRES_USER", ""),
		password: env.GetVariableOrDefault(ctx, "POSTGRES_PASSWORD", ""),
		port:     env.GetVariableOrDefault(ctx, "POSTGRES_PORT", "5432"),
		dbname:   env.GetVariableOrDefault(ctx, "POSTGRES_DBNAME", "fm"),
		sslmode:  env.GetVariableOrDefault(ctx, "POSTGRES_SSLMODE", "disable"),
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows      = errors.New("no rows in result set")
	ErrQueryRow    = errors.New("could not execute query")
	ErrStoreFailed = errors.New("could not store data")
	ErrNoID        = errors.New("data contains no id")
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.CreateTables(ctx)
}

func (s *Storage) CreateTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tags (
			tag_id		TEXT NOT NULL,
			value		TEXT NULL,
			updated_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_tags_unique PRIMARY KEY (tag_id)
		);

		CREATE TABLE IF NOT EXISTS devices (
			device_id	TEXT 	NOT NULL,
			device_type	TEXT 	NOT NULL DEFAULT 'WebAPI',
			enabled		BOOLEAN	NOT NULL DEFAULT FALSE,
			polling		NUMERIC	NOT NULL DEFAULT 5000,
			data 		JSONB	NOT NULL,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_devices_unique PRIMARY KEY (device_id)
		);

		CREATE TABLE IF NOT EXISTS alarms (
			alarm_id 	TEXT NOT NULL,
			name		TEXT NOT NULL,
			alarm_type 	TEXT NOT NULL,
			enabled		BOOLEAN NOT NULL DEFAULT FALSE,
			tag_id		TEXT NOT NULL,
			subproperty	JSONB NOT NULL,
			status		TEXT NOT NULL DEFAULT '',
			ontime		timestamp with time zone NULL,
			offtime		timestamp with time zone NULL,
			acktime		timestamp with time zone NULL,
			ackuser		TEXT NULL,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_alarms_unique PRIMARY KEY (alarm_id)
		);

		CREATE TABLE IF NOT EXISTS alarm_history (
			history_id	TEXT NOT NULL,
			alarm_id 	TEXT NOT NULL,
			name		TEXT NOT NULL,
			alarm_type 	TEXT NOT NULL,
			status		TEXT NOT NULL,
			ontime		timestamp with time zone NULL,
			offtime		timestamp with time zone NULL,
			acktime		timestamp with time zone NULL,
			ackuser		TEXT NULL,
			text		TEXT NULL,
			grp			TEXT NULL,
			recorded_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_alarm_history_unique PRIMARY KEY (history_id)
		);

		CREATE INDEX IF NOT EXISTS alarms_tag_idx ON alarms (tag_id);
		CREATE INDEX IF NOT EXISTS alarm_history_recorded_idx ON alarm_history (recorded_on DESC);
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
