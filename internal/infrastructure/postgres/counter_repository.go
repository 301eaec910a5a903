package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo asignador de números de factura sobre invoice_counters.
// Debe usarse atado a la misma transacción que inserta la factura (ver
// TxRunner.RunBilling): si la tx confirma el número queda consumido; si
// revierte, el incremento se revierte con ella.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa en 1 el contador del año y devuelve la secuencia asignada.
// Una sola sentencia atómica: el upsert bloquea la fila del año, de modo que
// dos generaciones concurrentes se serializan en el store y nunca reciben la
// misma secuencia. "Find max + 1" sobre invoices sería inseguro aquí.
func (r *CounterRepo) Next(year int) (int, error) {
	query := `
		INSERT INTO invoice_counters (year, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (year)
		DO UPDATE SET last_seq = invoice_counters.last_seq + 1
		RETURNING last_seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return seq, nil
}
