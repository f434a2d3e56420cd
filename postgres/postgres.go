// Package postgres provides PostgreSQL-based storage implementations for
// pressdoc services using sqlx and lib/pq.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Pool defaults.
const (
	DefaultMinConns    = 1
	DefaultMaxConns    = 10
	DefaultConnMaxLife = 5 * time.Minute
	DefaultPingTimeout = 5 * time.Second
)

// Config holds connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// MinConns and MaxConns size the connection pool.
	MinConns int
	MaxConns int
}

// DSN returns the lib/pq connection string for the config.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslMode)
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxConns, minConns := cfg.MaxConns, cfg.MinConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	if minConns <= 0 {
		minConns = DefaultMinConns
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(min(minConns, maxConns))
	db.SetConnMaxLifetime(DefaultConnMaxLife)

	ctx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS articles (
		id UUID PRIMARY KEY,
		url TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		body JSONB,
		tables JSONB NOT NULL DEFAULT '[]',
		attachments JSONB NOT NULL DEFAULT '[]',
		content TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at);
`

// Migrate creates the tables if they don't exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
