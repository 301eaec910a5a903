package entity

import "time"

// Project agrupa tareas de un cliente; es la unidad que se factura.
type Project struct {
	ID        string
	ClientID  string
	UserID    string // dueño
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
