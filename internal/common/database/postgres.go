package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"feasibility-workers/internal/common/config"
)

// documentAuditSchema records that a document was produced. Answer-set
// content never goes to Postgres.
const documentAuditSchema = `
CREATE TABLE IF NOT EXISTS document_audit (
	id            UUID PRIMARY KEY,
	document_type TEXT        NOT NULL,
	filename      TEXT        NOT NULL,
	score         INTEGER     NOT NULL,
	page_count    INTEGER     NOT NULL,
	size_bytes    INTEGER     NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// NewPostgresFromDB wraps an already opened handle.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{DB: db}
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

// Migrate creates the tables the workers write to.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, documentAuditSchema); err != nil {
		return fmt.Errorf("create document_audit: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// GetDB returns the underlying *sql.DB handed to workers.
func (c *PostgresClient) GetDB() *sql.DB {
	return c.DB
}
