package entity

import "time"

// Task unidad de trabajo dentro de un proyecto. Las entradas de tiempo
// se registran contra una tarea.
type Task struct {
	ID        string
	ProjectID string
	UserID    string // dueño (coincide con el dueño del proyecto)
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
