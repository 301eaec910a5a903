package dto

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateProjectRequest body para POST /api/projects.
type CreateProjectRequest struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
}

// ProjectResponse proyecto en respuestas.
type ProjectResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
}

// CreateTaskRequest body para POST /api/tasks.
type CreateTaskRequest struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
}

// TaskResponse tarea en respuestas.
type TaskResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
}
