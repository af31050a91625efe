package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bootstrap creates the application tables when they do not exist yet.
// Statements are idempotent so it is safe to run on every startup.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			public_key    TEXT NOT NULL DEFAULT '',
			is_online     BOOLEAN NOT NULL DEFAULT FALSE,
			last_seen     TIMESTAMPTZ NOT NULL DEFAULT now(),
			endpoint_ip   TEXT,
			endpoint_port INT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id         BIGSERIAL PRIMARY KEY,
			owner_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			target_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status     TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (owner_id, target_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id           BIGSERIAL PRIMARY KEY,
			sender_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			recipient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			payload      TEXT NOT NULL,
			transport    TEXT NOT NULL DEFAULT 'live',
			delivered    BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_owner ON contacts (owner_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages (sender_id, recipient_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_undelivered ON messages (recipient_id, created_at) WHERE NOT delivered`,
		`CREATE INDEX IF NOT EXISTS idx_users_stale ON users (last_seen) WHERE is_online`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: bootstrap schema: %w", err)
		}
	}
	return nil
}
