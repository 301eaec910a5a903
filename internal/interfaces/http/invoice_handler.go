package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tempo-api/internal/application/billing"
	"github.com/jhoicas/Tempo-api/internal/application/dto"
)

// InvoiceHandler maneja generación, lectura y ciclo de vida de facturas (protegido).
type InvoiceHandler struct {
	generateUC  *billing.GenerateInvoiceUseCase
	lifecycleUC *billing.LifecycleUseCase
	expenseUC   *billing.ExpenseUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(generateUC *billing.GenerateInvoiceUseCase, lifecycleUC *billing.LifecycleUseCase, expenseUC *billing.ExpenseUseCase) *InvoiceHandler {
	return &InvoiceHandler{generateUC: generateUC, lifecycleUC: lifecycleUC, expenseUC: expenseUC}
}

// Generate genera una factura desde el libro de tiempos y los gastos.
// POST /api/invoices
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.generateUC.Generate(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// CreateManual crea una factura con líneas suministradas.
// POST /api/invoices/manual
func (h *InvoiceHandler) CreateManual(c *fiber.Ctx) error {
	var in dto.ManualInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.generateUC.CreateManual(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetByID obtiene una factura con sus líneas.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.generateUC.GetInvoice(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// List lista las facturas del emisor.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.generateUC.ListInvoices(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoices)
}

// UpdateStatus aplica una transición de estado.
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.lifecycleUC.UpdateStatus(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// UpdateNotes muta las notas (rechazado si la factura está pagada).
// PATCH /api/invoices/:id/notes
func (h *InvoiceHandler) UpdateNotes(c *fiber.Ctx) error {
	var in dto.UpdateNotesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.lifecycleUC.UpdateNotes(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// CreateExpense registra un gasto en un proyecto.
// POST /api/expenses
func (h *InvoiceHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expense, err := h.expenseUC.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// ListExpenses lista los gastos de un proyecto (?project_id=).
// GET /api/expenses
func (h *InvoiceHandler) ListExpenses(c *fiber.Ctx) error {
	expenses, err := h.expenseUC.ListByProject(c.Context(), GetUserID(c), c.Query("project_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(expenses)
}
