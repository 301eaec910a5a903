package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación de TaskRepository (usable con pool o tx).
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// Create persiste la tarea.
func (r *TaskRepo) Create(task *entity.Task) error {
	query := `
		INSERT INTO tasks (id, project_id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.ProjectID, task.UserID, task.Title, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID. Devuelve nil si no existe.
func (r *TaskRepo) GetByID(id string) (*entity.Task, error) {
	query := `
		SELECT id, project_id, user_id, title, created_at, updated_at
		FROM tasks WHERE id = $1`
	var t entity.Task
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ProjectID, &t.UserID, &t.Title, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// ListByProject lista las tareas de un proyecto.
func (r *TaskRepo) ListByProject(projectID string) ([]*entity.Task, error) {
	query := `
		SELECT id, project_id, user_id, title, created_at, updated_at
		FROM tasks WHERE project_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.UserID, &t.Title, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
