package entity

import "time"

// TimeEntry representa un tramo de trabajo registrado, en curso o terminado.
// Invariante: como máximo una entrada por usuario puede tener EndTime == nil
// (el temporizador en curso). DurationSeconds es autoritativo una vez fijado
// EndTime y debe ser 0 mientras el temporizador corre.
type TimeEntry struct {
	ID              string
	UserID          string
	TaskID          string
	StartTime       time.Time
	EndTime         *time.Time // nil = temporizador en curso
	DurationSeconds int64
	Note            string
	Billable        bool
	Approved        bool       // revisada y bloqueada; precondición para facturar
	DeletedAt       *time.Time // borrado lógico; nunca se borra físicamente
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Running indica si la entrada sigue en curso (sin EndTime).
func (e *TimeEntry) Running() bool {
	return e.EndTime == nil
}

// Deleted indica si la entrada fue borrada lógicamente.
func (e *TimeEntry) Deleted() bool {
	return e.DeletedAt != nil
}
