package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tempo-api/internal/application/dto"
	"github.com/jhoicas/Tempo-api/internal/domain"
	domainbilling "github.com/jhoicas/Tempo-api/internal/domain/billing"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

// GenerateInvoiceUseCase genera facturas a partir del libro de tiempos y los
// gastos de un proyecto, y cubre también la vía manual y las lecturas.
type GenerateInvoiceUseCase struct {
	txRunner    BillingTxRunner
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	invoiceRepo repository.InvoiceRepository
	cfg         Config
	now         func() time.Time
}

// NewGenerateInvoiceUseCase construye el caso de uso.
func NewGenerateInvoiceUseCase(
	txRunner BillingTxRunner,
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	invoiceRepo repository.InvoiceRepository,
	cfg Config,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		txRunner:    txRunner,
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Generate agrega las entradas elegibles (billable + aprobadas + no borradas)
// y los gastos facturables del proyecto en [start_date, end_date], y persiste
// una factura DRAFT numerada, todo en una transacción. ErrInvalidState si no
// hay nada que facturar: nunca se crea una factura vacía.
func (uc *GenerateInvoiceUseCase) Generate(ctx context.Context, ownerID string, in dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	from, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", domain.ErrInvalidInput)
	}
	endDay, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", domain.ErrInvalidInput)
	}
	if endDay.Before(from) {
		return nil, fmt.Errorf("end_date anterior a start_date: %w", domain.ErrInvalidInput)
	}
	// Rango inclusivo por días: [from, endDay] -> medio abierto [from, to).
	to := endDay.AddDate(0, 0, 1)

	// Resolución de proyecto, cliente y tarifa (solo lectura, fuera de la tx).
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != ownerID {
		return nil, fmt.Errorf("proyecto %s: %w", in.ProjectID, domain.ErrNotFound)
	}
	client, err := uc.clientRepo.GetByID(project.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente del proyecto: %w", domain.ErrNotFound)
	}
	owner, err := uc.userRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	tasks, err := uc.taskRepo.ListByProject(project.ID)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(tasks))
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
		taskIDs = append(taskIDs, t.ID)
	}

	issue := uc.now()
	due := issue.AddDate(0, 0, uc.cfg.DueDays)
	if in.DueDate != "" {
		if due, err = time.Parse("2006-01-02", in.DueDate); err != nil {
			return nil, fmt.Errorf("due_date: %w", domain.ErrInvalidInput)
		}
	}

	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err = uc.txRunner.RunBilling(ctx, func(
		entryRepo repository.TimeEntryRepository,
		expenseRepo repository.ExpenseRepository,
		counterRepo repository.CounterRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		entries, err := entryRepo.ListBillableApproved(taskIDs, from, to)
		if err != nil {
			return err
		}
		expenses, err := expenseRepo.ListBillableByProject(project.ID, from, to)
		if err != nil {
			return err
		}
		if len(entries) == 0 && len(expenses) == 0 {
			return fmt.Errorf("nada que facturar en el rango: %w", domain.ErrInvalidState)
		}

		// Una línea por tarea: los segundos crudos se suman antes de
		// convertir a horas (redondear por entrada cambiaría los totales).
		var lines []entity.InvoiceItem
		for _, w := range domainbilling.GroupByTask(entries) {
			w.Title = titles[w.TaskID]
			lines = append(lines, domainbilling.TaskLine(w, owner.HourlyRate))
		}
		for _, e := range expenses {
			lines = append(lines, domainbilling.ExpenseLine(e))
		}
		subtotal, tax, total := domainbilling.Totals(lines, uc.cfg.TaxRate)

		// Número dentro de la misma tx que la factura: si la inserción
		// falla todo se revierte; si el commit falla tras asignar, el
		// número queda consumido (hueco seguro, duplicado jamás).
		seq, err := counterRepo.Next(issue.Year())
		if err != nil {
			return err
		}

		inv = &entity.Invoice{
			ID:        uuid.New().String(),
			UserID:    ownerID,
			ClientID:  client.ID,
			ProjectID: project.ID,
			Number:    domainbilling.FormatNumber(issue.Year(), seq),
			IssueDate: issue,
			DueDate:   due,
			Status:    entity.StatusDraft,
			Subtotal:  subtotal,
			Tax:       tax,
			Discount:  decimal.Zero,
			Total:     total,
			Currency:  uc.cfg.Currency,
			Notes:     in.Notes,
			CreatedAt: issue,
			UpdatedAt: issue,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for i := range lines {
			item := lines[i]
			item.ID = uuid.New().String()
			item.InvoiceID = inv.ID
			item.Position = i + 1
			if err := invoiceRepo.CreateItem(&item); err != nil {
				return err
			}
			items = append(items, &item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// CreateManual crea una factura con líneas suministradas por el emisor.
// Cuando no se indica total se calcula total = subtotal + tax - discount,
// con la misma política de redondeo que la vía automática.
func (uc *GenerateInvoiceUseCase) CreateManual(ctx context.Context, ownerID string, in dto.ManualInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.UserID != ownerID {
		return nil, fmt.Errorf("cliente %s: %w", in.ClientID, domain.ErrNotFound)
	}
	if in.ProjectID != "" {
		project, err := uc.projectRepo.GetByID(in.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil || project.UserID != ownerID {
			return nil, fmt.Errorf("proyecto %s: %w", in.ProjectID, domain.ErrNotFound)
		}
	}
	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}
	if !domainbilling.ValidStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}

	var lines []entity.InvoiceItem
	for _, it := range in.Items {
		if it.Description == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, entity.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitRate:    it.UnitRate,
			Amount:      it.Quantity.Mul(it.UnitRate).Round(2),
		})
	}
	subtotal, tax, _ := domainbilling.Totals(lines, uc.cfg.TaxRate)
	if in.Tax != nil {
		tax = in.Tax.Round(2)
	}
	discount := decimal.Zero
	if in.Discount != nil {
		discount = in.Discount.Round(2)
	}
	total := subtotal.Add(tax).Sub(discount).Round(2)
	if in.Total != nil {
		total = in.Total.Round(2)
	}

	issue := uc.now()
	due := issue.AddDate(0, 0, uc.cfg.DueDays)
	if in.DueDate != "" {
		if due, err = time.Parse("2006-01-02", in.DueDate); err != nil {
			return nil, fmt.Errorf("due_date: %w", domain.ErrInvalidInput)
		}
	}

	var inv *entity.Invoice
	var items []*entity.InvoiceItem
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.TimeEntryRepository,
		_ repository.ExpenseRepository,
		counterRepo repository.CounterRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		seq, err := counterRepo.Next(issue.Year())
		if err != nil {
			return err
		}
		inv = &entity.Invoice{
			ID:        uuid.New().String(),
			UserID:    ownerID,
			ClientID:  client.ID,
			ProjectID: in.ProjectID,
			Number:    domainbilling.FormatNumber(issue.Year(), seq),
			IssueDate: issue,
			DueDate:   due,
			Status:    status,
			Subtotal:  subtotal,
			Tax:       tax,
			Discount:  discount,
			Total:     total,
			Currency:  uc.cfg.Currency,
			Notes:     in.Notes,
			CreatedAt: issue,
			UpdatedAt: issue,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for i := range lines {
			item := lines[i]
			item.ID = uuid.New().String()
			item.InvoiceID = inv.ID
			item.Position = i + 1
			if err := invoiceRepo.CreateItem(&item); err != nil {
				return err
			}
			items = append(items, &item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// GetInvoice obtiene una factura propia con sus líneas. Aplica la promoción
// consultiva SENT -> OVERDUE si ya venció (se persiste con el mejor esfuerzo,
// nunca falla la lectura).
func (uc *GenerateInvoiceUseCase) GetInvoice(ctx context.Context, ownerID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.UserID != ownerID {
		return nil, fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	uc.promoteIfOverdue(inv)
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// ListInvoices lista las facturas del emisor aplicando la promoción
// consultiva de vencidas.
func (uc *GenerateInvoiceUseCase) ListInvoices(ctx context.Context, ownerID string) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListByUser(ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		uc.promoteIfOverdue(inv)
		out = append(out, *toInvoiceResponse(inv, nil))
	}
	return out, nil
}

// promoteIfOverdue promociona SENT -> OVERDUE cuando now > due_date.
// Es consultiva: si la persistencia falla la lectura continúa igualmente.
func (uc *GenerateInvoiceUseCase) promoteIfOverdue(inv *entity.Invoice) {
	if inv.Status != entity.StatusSent || !uc.now().After(inv.DueDate) {
		return
	}
	now := uc.now()
	inv.Status = entity.StatusOverdue
	inv.UpdatedAt = now
	_ = uc.invoiceRepo.UpdateStatus(inv.ID, entity.StatusOverdue, now)
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:        inv.ID,
		Number:    inv.Number,
		ClientID:  inv.ClientID,
		ProjectID: inv.ProjectID,
		IssueDate: inv.IssueDate.Format("2006-01-02"),
		DueDate:   inv.DueDate.Format("2006-01-02"),
		Status:    inv.Status,
		Subtotal:  inv.Subtotal,
		Tax:       inv.Tax,
		Discount:  inv.Discount,
		Total:     inv.Total,
		Currency:  inv.Currency,
		Notes:     inv.Notes,
		Items:     make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitRate:    it.UnitRate,
			Amount:      it.Amount,
		})
	}
	return resp
}
