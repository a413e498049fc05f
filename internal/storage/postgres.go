// Package storage holds the database and cache bootstrap code.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id               BIGINT PRIMARY KEY,
	name                  TEXT NOT NULL DEFAULT '',
	current_position      TEXT NOT NULL DEFAULT '',
	skills                TEXT[] NOT NULL DEFAULT '{}',
	preferred_roles       TEXT[] NOT NULL DEFAULT '{}',
	target_countries      TEXT[] NOT NULL DEFAULT '{}',
	notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
	contact_address       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS postings (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT NOT NULL,
	title       TEXT NOT NULL,
	company     TEXT NOT NULL,
	location    TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	tags        TEXT[] NOT NULL DEFAULT '{}',
	posted_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	status      TEXT NOT NULL DEFAULT 'new',
	UNIQUE (user_id, url)
);

CREATE INDEX IF NOT EXISTS idx_postings_user_status ON postings (user_id, status);
`

// NewPool connects to PostgreSQL and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the tables when they do not exist yet. The unique
// constraint on (user_id, url) is what makes job ingestion idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
