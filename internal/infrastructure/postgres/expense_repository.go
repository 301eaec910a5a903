package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste el gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, project_id, user_id, date, amount, category, description, billable, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.ProjectID, expense.UserID, expense.Date, expense.Amount,
		expense.Category, nullIfEmpty(expense.Description), expense.Billable, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ListByProject lista todos los gastos de un proyecto.
func (r *ExpenseRepo) ListByProject(projectID string) ([]*entity.Expense, error) {
	query := `
		SELECT id, project_id, user_id, date, amount, category, COALESCE(description, ''), billable, created_at
		FROM expenses WHERE project_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return r.scanAll(rows)
}

// ListBillableByProject selecciona los gastos facturables con fecha en [from, to).
func (r *ExpenseRepo) ListBillableByProject(projectID string, from, to time.Time) ([]*entity.Expense, error) {
	query := `
		SELECT id, project_id, user_id, date, amount, category, COALESCE(description, ''), billable, created_at
		FROM expenses
		WHERE project_id = $1 AND billable AND date >= $2 AND date < $3
		ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, projectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list billable expenses: %w", err)
	}
	return r.scanAll(rows)
}

func (r *ExpenseRepo) scanAll(rows pgx.Rows) ([]*entity.Expense, error) {
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(
			&e.ID, &e.ProjectID, &e.UserID, &e.Date, &e.Amount,
			&e.Category, &e.Description, &e.Billable, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
