package billing

import (
	"fmt"

	"github.com/jhoicas/Tempo-api/internal/domain"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
)

// Máquina de estados del ciclo de vida de una factura.
// DRAFT → SENT → {PAID, OVERDUE} → PAID. Ninguna transición sale de PAID
// ni vuelve a DRAFT.
var transitions = map[string][]string{
	entity.StatusDraft:   {entity.StatusSent},
	entity.StatusSent:    {entity.StatusPaid, entity.StatusOverdue},
	entity.StatusOverdue: {entity.StatusPaid},
	entity.StatusPaid:    {},
}

// ValidStatus indica si s es un estado de factura conocido.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition indica si el cambio from → to está permitido.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition valida el cambio de estado y devuelve ErrInvalidTransition si
// no está permitido.
func Transition(from, to string) error {
	if !ValidStatus(from) || !ValidStatus(to) {
		return fmt.Errorf("estado desconocido %q -> %q: %w", from, to, domain.ErrInvalidTransition)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, domain.ErrInvalidTransition)
	}
	return nil
}
