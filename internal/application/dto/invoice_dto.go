package dto

import "github.com/shopspring/decimal"

// GenerateInvoiceRequest body para POST /api/invoices (generación automática
// sobre un proyecto y un rango de fechas).
type GenerateInvoiceRequest struct {
	ProjectID string `json:"project_id"`
	StartDate string `json:"start_date"` // 2006-01-02
	EndDate   string `json:"end_date"`   // 2006-01-02
	DueDate   string `json:"due_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ManualInvoiceRequest body para POST /api/invoices/manual: el emisor
// suministra las líneas directamente.
type ManualInvoiceRequest struct {
	ClientID  string               `json:"client_id"`
	ProjectID string               `json:"project_id,omitempty"`
	DueDate   string               `json:"due_date,omitempty"`
	Status    string               `json:"status,omitempty"` // por defecto DRAFT
	Discount  *decimal.Decimal     `json:"discount,omitempty"`
	Tax       *decimal.Decimal     `json:"tax,omitempty"`
	Total     *decimal.Decimal     `json:"total,omitempty"` // si falta: subtotal + tax - discount
	Notes     string               `json:"notes,omitempty"`
	Items     []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea suministrada en una factura manual.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
}

// UpdateStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateNotesRequest body para PATCH /api/invoices/:id/notes.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// InvoiceResponse factura con líneas.
type InvoiceResponse struct {
	ID        string                `json:"id"`
	Number    string                `json:"number"`
	ClientID  string                `json:"client_id"`
	ProjectID string                `json:"project_id,omitempty"`
	IssueDate string                `json:"issue_date"`
	DueDate   string                `json:"due_date"`
	Status    string                `json:"status"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
	Tax       decimal.Decimal       `json:"tax"`
	Discount  decimal.Decimal       `json:"discount"`
	Total     decimal.Decimal       `json:"total"`
	Currency  string                `json:"currency"`
	Notes     string                `json:"notes,omitempty"`
	Items     []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse línea en la respuesta.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	ProjectID   string          `json:"project_id"`
	Date        string          `json:"date"` // 2006-01-02
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Billable    *bool           `json:"billable,omitempty"` // por defecto true
}

// ExpenseResponse gasto en respuestas.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Billable    bool            `json:"billable"`
}
