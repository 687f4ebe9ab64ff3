package infra

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/golang-migrate/migrate/v4"
	migratePsql "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"arogya/queue-service/internal/config"
)

// migrationsSource is resolved relative to the working directory the
// binary is launched from.
const migrationsSource = "file://migrations/postgres"

type PostgresClient struct {
	db *gorm.DB
}

// NewPostgresClient opens the connection and pings it, so a bad DSN fails
// at startup rather than on the first request.
func NewPostgresClient(ctx context.Context, cfg config.Postgres) (*PostgresClient, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		cfg.Host,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.Port,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "postgres: failed to open connection")
	}

	conn, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "postgres: failed to access connection pool")
	}
	if err := conn.PingContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "postgres: %s:%d unreachable", cfg.Host, cfg.Port)
	}

	return &PostgresClient{db: db.WithContext(ctx)}, nil
}

func (p *PostgresClient) GetDb() *gorm.DB {
	return p.db
}

func (p *PostgresClient) MigrateUp(dbName string) error {
	m, err := p.prepareConnection(dbName)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		return err
	}

	return nil
}

func (p *PostgresClient) MigrateDown(dbName string) error {
	m, err := p.prepareConnection(dbName)
	if err != nil {
		return err
	}

	if err := m.Down(); err != nil {
		return err
	}

	return nil
}

func (p *PostgresClient) prepareConnection(dbName string) (*migrate.Migrate, error) {
	conn, err := p.db.DB()
	if err != nil {
		return nil, err
	}

	driver, err := migratePsql.WithInstance(conn, &migratePsql.Config{})
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsSource, dbName, driver)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load migrations from %s", migrationsSource)
	}
	return m, nil
}
