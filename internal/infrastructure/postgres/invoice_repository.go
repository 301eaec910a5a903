package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tempo-api/internal/domain"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, client_id, COALESCE(project_id::text, ''), number,
	issue_date, due_date, status, subtotal, tax, discount, total, currency,
	COALESCE(notes, ''), created_at, updated_at`

// Create persiste la cabecera de la factura. El UNIQUE de number respalda
// al contador atómico: un duplicado nunca llega a confirmarse.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, client_id, project_id, number, issue_date, due_date, status, subtotal, tax, discount, total, currency, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.UserID, invoice.ClientID, nullIfEmpty(invoice.ProjectID),
		invoice.Number, invoice.IssueDate, invoice.DueDate, invoice.Status,
		invoice.Subtotal, invoice.Tax, invoice.Discount, invoice.Total,
		invoice.Currency, nullIfEmpty(invoice.Notes), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura %s duplicado: %w", invoice.Number, domain.ErrConflict)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, quantity, unit_rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Position, item.Description, item.Quantity, item.UnitRate, item.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve nil si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.UserID, &inv.ClientID, &inv.ProjectID, &inv.Number,
		&inv.IssueDate, &inv.DueDate, &inv.Status, &inv.Subtotal, &inv.Tax,
		&inv.Discount, &inv.Total, &inv.Currency, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID obtiene todas las líneas de una factura.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	// Las líneas salen en el mismo orden en que se emitieron.
	query := `
		SELECT id, invoice_id, position, description, quantity, unit_rate, amount
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Quantity, &it.UnitRate, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByUser lista las facturas del emisor, más recientes primero.
func (r *InvoiceRepo) ListByUser(userID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY number DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.ClientID, &inv.ProjectID, &inv.Number,
			&inv.IssueDate, &inv.DueDate, &inv.Status, &inv.Subtotal, &inv.Tax,
			&inv.Discount, &inv.Total, &inv.Currency, &inv.Notes,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza solo el estado de la factura.
func (r *InvoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	query := `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// UpdateNotes actualiza solo las notas de la factura.
func (r *InvoiceRepo) UpdateNotes(id, notes string, updatedAt time.Time) error {
	query := `UPDATE invoices SET notes = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, nullIfEmpty(notes), updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice notes: %w", err)
	}
	return nil
}
