package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Tempo-api/internal/domain"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de facturación. Reproducen los
// contratos del store real que importan aquí: números de factura únicos,
// contador atómico por año y selección de entradas elegibles.

type memUserRepo struct{ users map[string]*entity.User }

func (r *memUserRepo) Create(u *entity.User) error                 { r.users[u.ID] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error)     { return r.users[id], nil }
func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type memClientRepo struct{ clients map[string]*entity.Client }

func (r *memClientRepo) Create(c *entity.Client) error             { r.clients[c.ID] = c; return nil }
func (r *memClientRepo) GetByID(id string) (*entity.Client, error) { return r.clients[id], nil }
func (r *memClientRepo) ListByUser(userID string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memProjectRepo struct{ projects map[string]*entity.Project }

func (r *memProjectRepo) Create(p *entity.Project) error             { r.projects[p.ID] = p; return nil }
func (r *memProjectRepo) GetByID(id string) (*entity.Project, error) { return r.projects[id], nil }
func (r *memProjectRepo) ListByUser(userID string) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memTaskRepo struct{ tasks map[string]*entity.Task }

func (r *memTaskRepo) Create(t *entity.Task) error             { r.tasks[t.ID] = t; return nil }
func (r *memTaskRepo) GetByID(id string) (*entity.Task, error) { return r.tasks[id], nil }
func (r *memTaskRepo) ListByProject(projectID string) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memEntryRepo struct {
	mu      sync.Mutex
	entries []*entity.TimeEntry
}

func (r *memEntryRepo) Create(e *entity.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}
func (r *memEntryRepo) Update(*entity.TimeEntry) error          { return nil }
func (r *memEntryRepo) SoftDelete(string, time.Time) error      { return nil }
func (r *memEntryRepo) GetByID(string) (*entity.TimeEntry, error) { return nil, nil }
func (r *memEntryRepo) GetRunningByUser(string) (*entity.TimeEntry, error) {
	return nil, nil
}
func (r *memEntryRepo) ListByUser(string, *time.Time, *time.Time) ([]*entity.TimeEntry, error) {
	return nil, nil
}
func (r *memEntryRepo) ListBillableApproved(taskIDs []string, from, to time.Time) ([]*entity.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		ids[id] = true
	}
	var out []*entity.TimeEntry
	for _, e := range r.entries {
		if !ids[e.TaskID] || !e.Billable || !e.Approved || e.DeletedAt != nil || e.EndTime == nil {
			continue
		}
		if e.StartTime.Before(from) || !e.StartTime.Before(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type memExpenseRepo struct{ expenses []*entity.Expense }

func (r *memExpenseRepo) Create(e *entity.Expense) error { r.expenses = append(r.expenses, e); return nil }
func (r *memExpenseRepo) ListByProject(projectID string) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *memExpenseRepo) ListBillableByProject(projectID string, from, to time.Time) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.ProjectID != projectID || !e.Billable {
			continue
		}
		if e.Date.Before(from) || !e.Date.Before(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// memCounterRepo contador por año con la misma garantía que el upsert
// atómico del store: secuencias estrictamente crecientes, sin duplicados.
type memCounterRepo struct {
	mu   sync.Mutex
	seqs map[int]int
}

func newMemCounterRepo() *memCounterRepo { return &memCounterRepo{seqs: make(map[int]int)} }

func (r *memCounterRepo) Next(year int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seqs[year]++
	return r.seqs[year], nil
}

type memInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
	numbers  map[string]bool
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		items:    make(map[string][]*entity.InvoiceItem),
		numbers:  make(map[string]bool),
	}
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.numbers[inv.Number] {
		return fmt.Errorf("número %s duplicado: %w", inv.Number, domain.ErrConflict)
	}
	r.numbers[inv.Number] = true
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.InvoiceID] = append(r.items[item.InvoiceID], &cp)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[invoiceID], nil
}

func (r *memInvoiceRepo) ListByUser(userID string) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *memInvoiceRepo) UpdateNotes(id, notes string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Notes = notes
	inv.UpdatedAt = updatedAt
	return nil
}

// memTxRunner pasa los repos en memoria a la función; los fakes ya son
// seguros bajo concurrencia, así que no hay transacción que simular.
type memTxRunner struct {
	entryRepo   repository.TimeEntryRepository
	expenseRepo repository.ExpenseRepository
	counterRepo repository.CounterRepository
	invoiceRepo repository.InvoiceRepository
}

func (r *memTxRunner) RunBilling(ctx context.Context, fn func(
	entryRepo repository.TimeEntryRepository,
	expenseRepo repository.ExpenseRepository,
	counterRepo repository.CounterRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return fn(r.entryRepo, r.expenseRepo, r.counterRepo, r.invoiceRepo)
}
