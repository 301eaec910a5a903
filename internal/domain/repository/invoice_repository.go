package repository

import (
	"time"

	"github.com/jhoicas/Tempo-api/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByUser(userID string) ([]*entity.Invoice, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	UpdateNotes(id, notes string, updatedAt time.Time) error
}

// CounterRepository puerto del asignador de números de factura.
// Next debe ser seguro bajo concurrencia: dos generaciones simultáneas nunca
// reciben la misma secuencia. Se invoca siempre sobre un repo atado a la
// misma transacción que inserta la factura.
type CounterRepository interface {
	// Next incrementa en 1 el contador del año (creándolo en 1 si no existe)
	// y devuelve la secuencia asignada.
	Next(year int) (int, error)
}
