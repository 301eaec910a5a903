package repository

import "github.com/jhoicas/Tempo-api/internal/domain/entity"

// ProjectRepository puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	ListByUser(userID string) ([]*entity.Project, error)
}
