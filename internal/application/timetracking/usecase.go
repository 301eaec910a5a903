package timetracking

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tempo-api/internal/application/dto"
	"github.com/jhoicas/Tempo-api/internal/domain"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

// UseCase casos de uso del temporizador y del libro de tiempos.
//
// Invariante del temporizador: como máximo una entrada en curso por usuario.
// La ventana check-then-insert se cierra en el store con un índice único
// parcial sobre (user_id) WHERE end_time IS NULL; la comprobación previa de
// este caso de uso solo da un error más amable en el camino sin carrera.
type UseCase struct {
	entryRepo repository.TimeEntryRepository
	taskRepo  repository.TaskRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(entryRepo repository.TimeEntryRepository, taskRepo repository.TaskRepository) *UseCase {
	return &UseCase{entryRepo: entryRepo, taskRepo: taskRepo, now: time.Now}
}

// Start arranca un temporizador para el usuario sobre una tarea propia.
// ErrConflict si ya hay un temporizador en curso; ErrNotFound si la tarea
// no existe o no es del usuario.
func (uc *UseCase) Start(ctx context.Context, userID string, in dto.StartTimerRequest) (*dto.TimeEntryResponse, error) {
	if in.TaskID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.ownedTask(userID, in.TaskID); err != nil {
		return nil, err
	}
	running, err := uc.entryRepo.GetRunningByUser(userID)
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, fmt.Errorf("ya hay un temporizador en curso: %w", domain.ErrConflict)
	}
	now := uc.now()
	entry := &entity.TimeEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    in.TaskID,
		StartTime: now,
		Note:      in.Note,
		Billable:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// El índice único parcial convierte la carrera entre dos Start
	// concurrentes en ErrConflict para el perdedor.
	if err := uc.entryRepo.Create(entry); err != nil {
		return nil, err
	}
	return toEntryResponse(entry, 0), nil
}

// Stop detiene el temporizador en curso. ErrNotFound si no hay ninguno.
// ErrInvalidState si la duración calculada fuera ≤ 0 (reloj hacia atrás);
// en ese caso la entrada queda corriendo y el llamador debe reintentar o
// corregirla manualmente.
func (uc *UseCase) Stop(ctx context.Context, userID string) (*dto.TimeEntryResponse, error) {
	entry, err := uc.entryRepo.GetRunningByUser(userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("no hay temporizador en curso: %w", domain.ErrNotFound)
	}
	now := uc.now()
	secs := roundSeconds(entry.StartTime, now)
	if secs <= 0 {
		return nil, fmt.Errorf("duración no positiva: %w", domain.ErrInvalidState)
	}
	entry.EndTime = &now
	entry.DurationSeconds = secs
	entry.UpdatedAt = now
	if err := uc.entryRepo.Update(entry); err != nil {
		return nil, err
	}
	return toEntryResponse(entry, 0), nil
}

// Current devuelve el temporizador en curso con el tiempo transcurrido
// derivado (nunca persistido), o nil si no hay ninguno.
func (uc *UseCase) Current(ctx context.Context, userID string) (*dto.TimeEntryResponse, error) {
	entry, err := uc.entryRepo.GetRunningByUser(userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	elapsed := roundSeconds(entry.StartTime, uc.now())
	if elapsed < 0 {
		elapsed = 0
	}
	return toEntryResponse(entry, elapsed), nil
}

// CreateManual crea una entrada con inicio y fin suministrados juntos.
// No pasa por el singleton del temporizador, pero exige end > start.
func (uc *UseCase) CreateManual(ctx context.Context, userID string, in dto.CreateEntryRequest) (*dto.TimeEntryResponse, error) {
	if in.TaskID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.ownedTask(userID, in.TaskID); err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339, in.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", domain.ErrInvalidInput)
	}
	end, err := time.Parse(time.RFC3339, in.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", domain.ErrInvalidInput)
	}
	secs := roundSeconds(start, end)
	if secs <= 0 {
		return nil, fmt.Errorf("el fin debe ser posterior al inicio: %w", domain.ErrInvalidState)
	}
	billable := true
	if in.Billable != nil {
		billable = *in.Billable
	}
	now := uc.now()
	entry := &entity.TimeEntry{
		ID:              uuid.New().String(),
		UserID:          userID,
		TaskID:          in.TaskID,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: secs,
		Note:            in.Note,
		Billable:        billable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.entryRepo.Create(entry); err != nil {
		return nil, err
	}
	return toEntryResponse(entry, 0), nil
}

// Update edita una entrada terminada y no aprobada. Un temporizador en curso
// debe detenerse antes de poder editarse; una entrada aprobada está bloqueada.
func (uc *UseCase) Update(ctx context.Context, userID, entryID string, in dto.UpdateEntryRequest) (*dto.TimeEntryResponse, error) {
	entry, err := uc.ownedEntry(userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Running() {
		return nil, fmt.Errorf("el temporizador sigue en curso, deténgalo primero: %w", domain.ErrInvalidState)
	}
	if entry.Approved {
		return nil, fmt.Errorf("entrada aprobada: %w", domain.ErrInvalidState)
	}
	start := entry.StartTime
	end := *entry.EndTime
	if in.StartTime != nil {
		if start, err = time.Parse(time.RFC3339, *in.StartTime); err != nil {
			return nil, fmt.Errorf("start_time: %w", domain.ErrInvalidInput)
		}
	}
	if in.EndTime != nil {
		if end, err = time.Parse(time.RFC3339, *in.EndTime); err != nil {
			return nil, fmt.Errorf("end_time: %w", domain.ErrInvalidInput)
		}
	}
	secs := roundSeconds(start, end)
	if secs <= 0 {
		return nil, fmt.Errorf("el fin debe ser posterior al inicio: %w", domain.ErrInvalidState)
	}
	entry.StartTime = start
	entry.EndTime = &end
	entry.DurationSeconds = secs
	if in.Note != nil {
		entry.Note = *in.Note
	}
	if in.Billable != nil {
		entry.Billable = *in.Billable
	}
	entry.UpdatedAt = uc.now()
	if err := uc.entryRepo.Update(entry); err != nil {
		return nil, err
	}
	return toEntryResponse(entry, 0), nil
}

// Delete borra lógicamente una entrada terminada y no aprobada. Las filas
// nunca se eliminan físicamente: las entradas que ya financiaron una línea
// de factura conservan su rastro de auditoría.
func (uc *UseCase) Delete(ctx context.Context, userID, entryID string) error {
	entry, err := uc.ownedEntry(userID, entryID)
	if err != nil {
		return err
	}
	if entry.Running() {
		return fmt.Errorf("el temporizador sigue en curso, deténgalo primero: %w", domain.ErrInvalidState)
	}
	if entry.Approved {
		return fmt.Errorf("entrada aprobada: %w", domain.ErrInvalidState)
	}
	return uc.entryRepo.SoftDelete(entry.ID, uc.now())
}

// Approve marca una entrada terminada como aprobada (revisada y bloqueada),
// precondición para que el generador de facturas la tenga en cuenta.
func (uc *UseCase) Approve(ctx context.Context, userID, entryID string) (*dto.TimeEntryResponse, error) {
	entry, err := uc.ownedEntry(userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Running() {
		return nil, fmt.Errorf("no se puede aprobar un temporizador en curso: %w", domain.ErrInvalidState)
	}
	if !entry.Approved {
		entry.Approved = true
		entry.UpdatedAt = uc.now()
		if err := uc.entryRepo.Update(entry); err != nil {
			return nil, err
		}
	}
	return toEntryResponse(entry, 0), nil
}

// List lista las entradas del usuario; from/to opcionales (2006-01-02).
func (uc *UseCase) List(ctx context.Context, userID, from, to string) ([]dto.TimeEntryResponse, error) {
	var fromT, toT *time.Time
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("from: %w", domain.ErrInvalidInput)
		}
		fromT = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("to: %w", domain.ErrInvalidInput)
		}
		toT = &t
	}
	entries, err := uc.entryRepo.ListByUser(userID, fromT, toT)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, *toEntryResponse(e, 0))
	}
	return out, nil
}

func (uc *UseCase) ownedTask(userID, taskID string) (*entity.Task, error) {
	task, err := uc.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.UserID != userID {
		return nil, fmt.Errorf("tarea %s: %w", taskID, domain.ErrNotFound)
	}
	return task, nil
}

func (uc *UseCase) ownedEntry(userID, entryID string) (*entity.TimeEntry, error) {
	entry, err := uc.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.UserID != userID || entry.Deleted() {
		return nil, fmt.Errorf("entrada %s: %w", entryID, domain.ErrNotFound)
	}
	return entry, nil
}

// roundSeconds redondea (end - start) a segundos enteros.
func roundSeconds(start, end time.Time) int64 {
	return int64(math.Round(end.Sub(start).Seconds()))
}

func toEntryResponse(e *entity.TimeEntry, elapsed int64) *dto.TimeEntryResponse {
	resp := &dto.TimeEntryResponse{
		ID:              e.ID,
		TaskID:          e.TaskID,
		StartTime:       e.StartTime.Format(time.RFC3339),
		DurationSeconds: e.DurationSeconds,
		ElapsedSeconds:  elapsed,
		Note:            e.Note,
		Billable:        e.Billable,
		Approved:        e.Approved,
	}
	if e.EndTime != nil {
		resp.EndTime = e.EndTime.Format(time.RFC3339)
	}
	return resp
}
