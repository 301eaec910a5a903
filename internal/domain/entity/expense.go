package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto imputable a un proyecto. Entrada de solo lectura para la
// generación de facturas.
type Expense struct {
	ID          string
	ProjectID   string
	UserID      string
	Date        time.Time
	Amount      decimal.Decimal // 2 decimales
	Category    string
	Description string
	Billable    bool
	CreatedAt   time.Time
}
