package repository

import (
	"time"

	"github.com/jhoicas/Tempo-api/internal/domain/entity"
)

// ExpenseRepository puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	ListByProject(projectID string) ([]*entity.Expense, error)
	// ListBillableByProject selecciona los gastos facturables del proyecto
	// con fecha dentro de [from, to].
	ListBillableByProject(projectID string, from, to time.Time) ([]*entity.Expense, error)
}
