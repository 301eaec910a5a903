package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tempo-api/internal/domain"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

// TimeEntryRepo implementación de TimeEntryRepository sobre PostgreSQL
// (usable con pool o tx). El índice único parcial uq_time_entries_running
// hace cumplir el singleton del temporizador a nivel de store.
type TimeEntryRepo struct {
	q Querier
}

// NewTimeEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTimeEntryRepository(q Querier) *TimeEntryRepo {
	return &TimeEntryRepo{q: q}
}

const entryColumns = `id, user_id, task_id, start_time, end_time, duration_seconds,
	COALESCE(note, ''), billable, approved, deleted_at, created_at, updated_at`

// Create inserta la entrada. Si está en curso y el usuario ya tiene un
// temporizador corriendo, el índice único parcial dispara 23505 y se
// devuelve ErrConflict: la carrera check-then-insert muere aquí.
func (r *TimeEntryRepo) Create(entry *entity.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, user_id, task_id, start_time, end_time, duration_seconds, note, billable, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.UserID, entry.TaskID, entry.StartTime, entry.EndTime,
		entry.DurationSeconds, nullIfEmpty(entry.Note), entry.Billable, entry.Approved,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("temporizador en curso: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

// Update actualiza inicio, fin, duración, nota, billable y approved.
func (r *TimeEntryRepo) Update(entry *entity.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET start_time       = $2,
		    end_time         = $3,
		    duration_seconds = $4,
		    note             = $5,
		    billable         = $6,
		    approved         = $7,
		    updated_at       = $8
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.StartTime, entry.EndTime, entry.DurationSeconds,
		nullIfEmpty(entry.Note), entry.Billable, entry.Approved, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	return nil
}

// SoftDelete marca la entrada como borrada. Nunca se borra físicamente:
// las filas que financiaron una línea de factura conservan su auditoría.
func (r *TimeEntryRepo) SoftDelete(id string, when time.Time) error {
	query := `UPDATE time_entries SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, when)
	if err != nil {
		return fmt.Errorf("soft delete time entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID. Devuelve nil si no existe.
func (r *TimeEntryRepo) GetByID(id string) (*entity.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetRunningByUser devuelve la entrada en curso del usuario, o nil.
// Lectura sin lock: se sirve desde el snapshot confirmado.
func (r *TimeEntryRepo) GetRunningByUser(userID string) (*entity.TimeEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND end_time IS NULL AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID))
}

// ListByUser lista entradas no borradas del usuario; from/to opcionales.
func (r *TimeEntryRepo) ListByUser(userID string, from, to *time.Time) ([]*entity.TimeEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND deleted_at IS NULL
		  AND ($2::timestamptz IS NULL OR start_time >= $2)
		  AND ($3::timestamptz IS NULL OR start_time < $3)
		ORDER BY start_time`
	rows, err := r.q.Query(context.Background(), query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return r.scanAll(rows)
}

// ListBillableApproved selecciona las entradas elegibles para facturar:
// billable, aprobadas, no borradas, de las tareas dadas y con inicio en
// [from, to).
func (r *TimeEntryRepo) ListBillableApproved(taskIDs []string, from, to time.Time) ([]*entity.TimeEntry, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + entryColumns + `
		FROM time_entries
		WHERE task_id = ANY($1)
		  AND billable AND approved AND deleted_at IS NULL AND end_time IS NOT NULL
		  AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`
	rows, err := r.q.Query(context.Background(), query, taskIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("list billable entries: %w", err)
	}
	return r.scanAll(rows)
}

func (r *TimeEntryRepo) scanOne(row pgx.Row) (*entity.TimeEntry, error) {
	var e entity.TimeEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.TaskID, &e.StartTime, &e.EndTime, &e.DurationSeconds,
		&e.Note, &e.Billable, &e.Approved, &e.DeletedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time entry: %w", err)
	}
	return &e, nil
}

func (r *TimeEntryRepo) scanAll(rows pgx.Rows) ([]*entity.TimeEntry, error) {
	defer rows.Close()
	var list []*entity.TimeEntry
	for rows.Next() {
		var e entity.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.TaskID, &e.StartTime, &e.EndTime, &e.DurationSeconds,
			&e.Note, &e.Billable, &e.Approved, &e.DeletedAt, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
