package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tempo-api/internal/application/dto"
	"github.com/jhoicas/Tempo-api/internal/domain"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

// UseCase alta y listado de clientes, proyectos y tareas. Capa fina de
// datos: el pipeline tiempo-a-ingreso solo necesita resolver propiedad y
// títulos, así que no hay más superficie que esta.
type UseCase struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(clientRepo repository.ClientRepository, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *UseCase {
	return &UseCase{clientRepo: clientRepo, projectRepo: projectRepo, taskRepo: taskRepo, now: time.Now}
}

// CreateClient crea un cliente del usuario.
func (uc *UseCase) CreateClient(ctx context.Context, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return &dto.ClientResponse{ID: client.ID, Name: client.Name, Email: client.Email, Address: client.Address}, nil
}

// ListClients lista los clientes del usuario.
func (uc *UseCase) ListClients(ctx context.Context, userID string) ([]dto.ClientResponse, error) {
	clients, err := uc.clientRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ClientResponse{ID: c.ID, Name: c.Name, Email: c.Email, Address: c.Address})
	}
	return out, nil
}

// CreateProject crea un proyecto para un cliente propio.
func (uc *UseCase) CreateProject(ctx context.Context, userID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.ClientID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.UserID != userID {
		return nil, fmt.Errorf("cliente %s: %w", in.ClientID, domain.ErrNotFound)
	}
	now := uc.now()
	project := &entity.Project{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		UserID:    userID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.projectRepo.Create(project); err != nil {
		return nil, err
	}
	return &dto.ProjectResponse{ID: project.ID, ClientID: project.ClientID, Name: project.Name}, nil
}

// ListProjects lista los proyectos del usuario.
func (uc *UseCase) ListProjects(ctx context.Context, userID string) ([]dto.ProjectResponse, error) {
	projects, err := uc.projectRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.ProjectResponse{ID: p.ID, ClientID: p.ClientID, Name: p.Name})
	}
	return out, nil
}

// CreateTask crea una tarea en un proyecto propio.
func (uc *UseCase) CreateTask(ctx context.Context, userID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if in.ProjectID == "" || in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, fmt.Errorf("proyecto %s: %w", in.ProjectID, domain.ErrNotFound)
	}
	now := uc.now()
	task := &entity.Task{
		ID:        uuid.New().String(),
		ProjectID: in.ProjectID,
		UserID:    userID,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return &dto.TaskResponse{ID: task.ID, ProjectID: task.ProjectID, Title: task.Title}, nil
}

// ListTasks lista las tareas de un proyecto propio.
func (uc *UseCase) ListTasks(ctx context.Context, userID, projectID string) ([]dto.TaskResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, fmt.Errorf("proyecto %s: %w", projectID, domain.ErrNotFound)
	}
	tasks, err := uc.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.TaskResponse{ID: t.ID, ProjectID: t.ProjectID, Title: t.Title})
	}
	return out, nil
}
