package dto

// StartTimerRequest body para POST /api/timer/start.
type StartTimerRequest struct {
	TaskID string `json:"task_id"`
	Note   string `json:"note,omitempty"`
}

// TimeEntryResponse entrada de tiempo en respuestas.
// ElapsedSeconds solo se rellena en la consulta del temporizador en curso;
// es un valor derivado (now - start) que nunca se persiste.
type TimeEntryResponse struct {
	ID              string `json:"id"`
	TaskID          string `json:"task_id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time,omitempty"`
	DurationSeconds int64  `json:"duration_seconds"`
	ElapsedSeconds  int64  `json:"elapsed_seconds,omitempty"`
	Note            string `json:"note,omitempty"`
	Billable        bool   `json:"billable"`
	Approved        bool   `json:"approved"`
}

// CreateEntryRequest body para POST /api/entries (entrada manual:
// inicio y fin suministrados juntos).
type CreateEntryRequest struct {
	TaskID    string `json:"task_id"`
	StartTime string `json:"start_time"` // RFC 3339
	EndTime   string `json:"end_time"`   // RFC 3339
	Note      string `json:"note,omitempty"`
	Billable  *bool  `json:"billable,omitempty"` // por defecto true
}

// UpdateEntryRequest body para PUT /api/entries/:id. Campos nil no cambian.
type UpdateEntryRequest struct {
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Note      *string `json:"note,omitempty"`
	Billable  *bool   `json:"billable,omitempty"`
}
