package repository

import (
	"time"

	"github.com/jhoicas/Tempo-api/internal/domain/entity"
)

// TimeEntryRepository puerto de persistencia para el libro de tiempos.
// El store es append-only con borrado lógico: SoftDelete marca DeletedAt
// y ninguna operación elimina filas físicamente.
type TimeEntryRepository interface {
	// Create inserta la entrada. Si la entrada está en curso (EndTime nil)
	// y el usuario ya tiene un temporizador corriendo, el índice único
	// parcial del store lo rechaza y se devuelve domain.ErrConflict.
	Create(entry *entity.TimeEntry) error
	Update(entry *entity.TimeEntry) error
	SoftDelete(id string, when time.Time) error
	GetByID(id string) (*entity.TimeEntry, error)
	// GetRunningByUser devuelve la entrada en curso del usuario, o nil.
	GetRunningByUser(userID string) (*entity.TimeEntry, error)
	// ListByUser lista entradas no borradas del usuario; from/to opcionales
	// filtran por StartTime.
	ListByUser(userID string, from, to *time.Time) ([]*entity.TimeEntry, error)
	// ListBillableApproved selecciona las entradas elegibles para facturar:
	// billable, aprobadas, no borradas, de las tareas dadas y con StartTime
	// dentro de [from, to].
	ListBillableApproved(taskIDs []string, from, to time.Time) ([]*entity.TimeEntry, error)
}
