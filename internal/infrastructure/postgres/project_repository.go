package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create persiste el proyecto.
func (r *ProjectRepo) Create(project *entity.Project) error {
	query := `
		INSERT INTO projects (id, client_id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.ClientID, project.UserID, project.Name,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID. Devuelve nil si no existe.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `
		SELECT id, client_id, user_id, name, created_at, updated_at
		FROM projects WHERE id = $1`
	var p entity.Project
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ClientID, &p.UserID, &p.Name, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListByUser lista los proyectos del usuario.
func (r *ProjectRepo) ListByUser(userID string) ([]*entity.Project, error) {
	query := `
		SELECT id, client_id, user_id, name, created_at, updated_at
		FROM projects WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.ClientID, &p.UserID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
