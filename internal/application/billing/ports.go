package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una única transacción con los
// repositorios que participan en la generación de facturas. La selección de
// entradas y gastos, la asignación del número y la escritura de la factura
// con sus líneas confirman o revierten juntas: una aplicación parcial nunca
// es observable.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		entryRepo repository.TimeEntryRepository,
		expenseRepo repository.ExpenseRepository,
		counterRepo repository.CounterRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// Config parámetros de facturación.
type Config struct {
	TaxRate  decimal.Decimal // tipo impositivo plano (por defecto 0.25)
	Currency string
	DueDays  int // plazo de pago por defecto al emitir
}
