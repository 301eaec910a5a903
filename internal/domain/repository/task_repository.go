package repository

import "github.com/jhoicas/Tempo-api/internal/domain/entity"

// TaskRepository puerto de persistencia para tareas.
type TaskRepository interface {
	Create(task *entity.Task) error
	GetByID(id string) (*entity.Task, error)
	ListByProject(projectID string) ([]*entity.Task, error)
}
