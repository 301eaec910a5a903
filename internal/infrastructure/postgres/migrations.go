package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate aplica el esquema de forma idempotente al arrancar.
//
// Dos constraints cierran las carreras del núcleo a nivel de store:
//   - uq_time_entries_running: índice único parcial sobre (user_id) WHERE
//     end_time IS NULL. Dos Start concurrentes no pueden dejar dos
//     temporizadores en curso para el mismo usuario; el perdedor recibe 23505.
//   - invoices.number UNIQUE: respaldo del contador atómico; un número
//     duplicado nunca llega a confirmarse.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'owner',
			hourly_rate   NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id         UUID PRIMARY KEY,
			user_id    UUID NOT NULL REFERENCES users(id),
			name       TEXT NOT NULL,
			email      TEXT,
			address    TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id         UUID PRIMARY KEY,
			client_id  UUID NOT NULL REFERENCES clients(id),
			user_id    UUID NOT NULL REFERENCES users(id),
			name       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id         UUID PRIMARY KEY,
			project_id UUID NOT NULL REFERENCES projects(id),
			user_id    UUID NOT NULL REFERENCES users(id),
			title      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS time_entries (
			id               UUID PRIMARY KEY,
			user_id          UUID NOT NULL REFERENCES users(id),
			task_id          UUID NOT NULL REFERENCES tasks(id),
			start_time       TIMESTAMPTZ NOT NULL,
			end_time         TIMESTAMPTZ,
			duration_seconds BIGINT NOT NULL DEFAULT 0 CHECK (duration_seconds >= 0),
			note             TEXT,
			billable         BOOLEAN NOT NULL DEFAULT TRUE,
			approved         BOOLEAN NOT NULL DEFAULT FALSE,
			deleted_at       TIMESTAMPTZ,
			created_at       TIMESTAMPTZ NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL
		)`,
		// A lo sumo un temporizador en curso por usuario.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_time_entries_running
			ON time_entries (user_id) WHERE end_time IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_time_entries_task_start
			ON time_entries (task_id, start_time)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id          UUID PRIMARY KEY,
			project_id  UUID NOT NULL REFERENCES projects(id),
			user_id     UUID NOT NULL REFERENCES users(id),
			date        DATE NOT NULL,
			amount      NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
			category    TEXT NOT NULL,
			description TEXT,
			billable    BOOLEAN NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id         UUID PRIMARY KEY,
			user_id    UUID NOT NULL REFERENCES users(id),
			client_id  UUID NOT NULL REFERENCES clients(id),
			project_id UUID REFERENCES projects(id),
			number     TEXT NOT NULL UNIQUE,
			issue_date TIMESTAMPTZ NOT NULL,
			due_date   TIMESTAMPTZ NOT NULL,
			status     TEXT NOT NULL DEFAULT 'DRAFT',
			subtotal   NUMERIC(12,2) NOT NULL,
			tax        NUMERIC(12,2) NOT NULL,
			discount   NUMERIC(12,2) NOT NULL DEFAULT 0,
			total      NUMERIC(12,2) NOT NULL,
			currency   TEXT NOT NULL,
			notes      TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
			id          UUID PRIMARY KEY,
			invoice_id  UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			position    INT NOT NULL DEFAULT 1,
			description TEXT NOT NULL,
			quantity    NUMERIC(12,2) NOT NULL,
			unit_rate   NUMERIC(12,2) NOT NULL,
			amount      NUMERIC(12,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS invoice_counters (
			year     INT PRIMARY KEY,
			last_seq INT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración: %w", err)
		}
	}
	return nil
}
