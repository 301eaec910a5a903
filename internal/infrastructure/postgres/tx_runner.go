package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Tempo-api/internal/application/billing"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.BillingTxRunner.
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción con los repos de facturación (selección
// de entradas y gastos, contador de números, factura y líneas) y hace Commit
// o Rollback. Todo lo que fn escribe confirma o revierte junto: si la
// inserción de líneas falla, el número asignado se pierde con el rollback
// (hueco seguro); si el commit confirma, el número nunca se repite.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	entryRepo repository.TimeEntryRepository,
	expenseRepo repository.ExpenseRepository,
	counterRepo repository.CounterRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entryRepo := NewTimeEntryRepository(tx)
	expenseRepo := NewExpenseRepository(tx)
	counterRepo := NewCounterRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(entryRepo, expenseRepo, counterRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
