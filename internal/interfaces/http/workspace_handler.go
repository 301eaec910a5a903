package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tempo-api/internal/application/dto"
	"github.com/jhoicas/Tempo-api/internal/application/workspace"
)

// WorkspaceHandler alta y listado de clientes, proyectos y tareas (protegido).
type WorkspaceHandler struct {
	uc *workspace.UseCase
}

// NewWorkspaceHandler construye el handler.
func NewWorkspaceHandler(uc *workspace.UseCase) *WorkspaceHandler {
	return &WorkspaceHandler{uc: uc}
}

// CreateClient crea un cliente.
// POST /api/clients
func (h *WorkspaceHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.CreateClient(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// ListClients lista los clientes del usuario.
// GET /api/clients
func (h *WorkspaceHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.uc.ListClients(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(clients)
}

// CreateProject crea un proyecto.
// POST /api/projects
func (h *WorkspaceHandler) CreateProject(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	project, err := h.uc.CreateProject(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// ListProjects lista los proyectos del usuario.
// GET /api/projects
func (h *WorkspaceHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.uc.ListProjects(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(projects)
}

// CreateTask crea una tarea.
// POST /api/tasks
func (h *WorkspaceHandler) CreateTask(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	task, err := h.uc.CreateTask(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// ListTasks lista las tareas de un proyecto (?project_id=).
// GET /api/tasks
func (h *WorkspaceHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.uc.ListTasks(c.Context(), GetUserID(c), c.Query("project_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tasks)
}
