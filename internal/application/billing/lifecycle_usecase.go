package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Tempo-api/internal/application/dto"
	"github.com/jhoicas/Tempo-api/internal/domain"
	domainbilling "github.com/jhoicas/Tempo-api/internal/domain/billing"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

// LifecycleUseCase gobierna los cambios de estado de una factura y la regla
// de inmutabilidad: una vez PAID ningún campo distinto del estado puede
// mutarse, y del estado PAID no se sale.
type LifecycleUseCase struct {
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(invoiceRepo repository.InvoiceRepository) *LifecycleUseCase {
	return &LifecycleUseCase{invoiceRepo: invoiceRepo, now: time.Now}
}

// UpdateStatus aplica una transición de estado legal según la tabla
// DRAFT:[SENT] SENT:[PAID,OVERDUE] OVERDUE:[PAID] PAID:[].
func (uc *LifecycleUseCase) UpdateStatus(ctx context.Context, ownerID, invoiceID string, in dto.UpdateStatusRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := domainbilling.Transition(inv.Status, in.Status); err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.invoiceRepo.UpdateStatus(inv.ID, in.Status, now); err != nil {
		return nil, err
	}
	inv.Status = in.Status
	inv.UpdatedAt = now
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// UpdateNotes muta las notas de la factura. ErrImmutable si ya está pagada.
func (uc *LifecycleUseCase) UpdateNotes(ctx context.Context, ownerID, invoiceID string, in dto.UpdateNotesRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == entity.StatusPaid {
		return nil, fmt.Errorf("factura %s pagada: %w", inv.Number, domain.ErrImmutable)
	}
	now := uc.now()
	if err := uc.invoiceRepo.UpdateNotes(inv.ID, in.Notes, now); err != nil {
		return nil, err
	}
	inv.Notes = in.Notes
	inv.UpdatedAt = now
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

func (uc *LifecycleUseCase) ownedInvoice(ownerID, invoiceID string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.UserID != ownerID {
		return nil, fmt.Errorf("factura %s: %w", invoiceID, domain.ErrNotFound)
	}
	return inv, nil
}
