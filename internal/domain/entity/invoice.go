package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura.
const (
	StatusDraft   = "DRAFT"   // Creada, aún editable
	StatusSent    = "SENT"    // Enviada al cliente
	StatusPaid    = "PAID"    // Pagada; inmutable a partir de aquí
	StatusOverdue = "OVERDUE" // Vencida sin pago (promoción desde SENT)
)

// Invoice representa la cabecera de una factura.
// Number sigue el formato <año>-<secuencia de 4 dígitos> (ej. 2025-0003),
// único y con secuencia que se reinicia por año calendario.
// Subtotal, Tax y Total se persisten ya redondeados a 2 decimales y no se
// recalculan en lecturas: las facturas históricas son estables aunque las
// tarifas cambien después.
type Invoice struct {
	ID        string
	UserID    string // dueño (quien emite)
	ClientID  string
	ProjectID string // opcional; vacío en facturas manuales sin proyecto
	Number    string
	IssueDate time.Time
	DueDate   time.Time
	Status    string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Currency  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
