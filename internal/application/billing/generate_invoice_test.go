package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tempo-api/internal/application/dto"
	"github.com/jhoicas/Tempo-api/internal/domain"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
)

type billingFixture struct {
	uc       *GenerateInvoiceUseCase
	entries  *memEntryRepo
	expenses *memExpenseRepo
	counters *memCounterRepo
	invoices *memInvoiceRepo
}

func newBillingFixture() *billingFixture {
	users := &memUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Email: "ana@tempo.dev", HourlyRate: decimal.RequireFromString("50")},
	}}
	clients := &memClientRepo{clients: map[string]*entity.Client{
		"client-1": {ID: "client-1", UserID: "user-1", Name: "ACME"},
	}}
	projects := &memProjectRepo{projects: map[string]*entity.Project{
		"proj-1": {ID: "proj-1", ClientID: "client-1", UserID: "user-1", Name: "Web"},
	}}
	tasks := &memTaskRepo{tasks: map[string]*entity.Task{
		"task-1": {ID: "task-1", ProjectID: "proj-1", UserID: "user-1", Title: "Diseño"},
		"task-2": {ID: "task-2", ProjectID: "proj-1", UserID: "user-1", Title: "Backend"},
	}}
	entries := &memEntryRepo{}
	expenses := &memExpenseRepo{}
	counters := newMemCounterRepo()
	invoices := newMemInvoiceRepo()

	runner := &memTxRunner{
		entryRepo:   entries,
		expenseRepo: expenses,
		counterRepo: counters,
		invoiceRepo: invoices,
	}
	cfg := Config{
		TaxRate:  decimal.RequireFromString("0.25"),
		Currency: "EUR",
		DueDays:  14,
	}
	uc := NewGenerateInvoiceUseCase(runner, projects, clients, tasks, users, invoices, cfg)
	uc.now = func() time.Time { return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC) }

	return &billingFixture{uc: uc, entries: entries, expenses: expenses, counters: counters, invoices: invoices}
}

func (f *billingFixture) addEntry(taskID string, day time.Time, minutes int64) {
	end := day.Add(time.Duration(minutes) * time.Minute)
	f.entries.entries = append(f.entries.entries, &entity.TimeEntry{
		ID:              taskID + day.Format("20060102150405"),
		UserID:          "user-1",
		TaskID:          taskID,
		StartTime:       day,
		EndTime:         &end,
		DurationSeconds: minutes * 60,
		Billable:        true,
		Approved:        true,
	})
}

func TestGenerate_EjemploCompleto(t *testing.T) {
	f := newBillingFixture()
	june := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	// 120 min + 180 min en la misma tarea -> una línea de 5 horas a 50/h
	f.addEntry("task-1", june, 120)
	f.addEntry("task-1", june.Add(24*time.Hour), 180)

	resp, err := f.uc.Generate(context.Background(), "user-1", dto.GenerateInvoiceRequest{
		ProjectID: "proj-1",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-0001", resp.Number)
	assert.Equal(t, entity.StatusDraft, resp.Status)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, "2025-06-30", resp.IssueDate)
	assert.Equal(t, "2025-07-14", resp.DueDate, "vencimiento = emisión + 14 días")

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, "work on task: Diseño", item.Description)
	assert.True(t, item.Quantity.Equal(decimal.RequireFromString("5")), "horas: %s", item.Quantity)
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("250")), "monto: %s", item.Amount)

	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("250")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(decimal.RequireFromString("62.50")), "impuesto: %s", resp.Tax)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("312.50")), "total: %s", resp.Total)
}

func TestGenerate_IncluyeGastosFacturables(t *testing.T) {
	f := newBillingFixture()
	june := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	f.addEntry("task-1", june, 60)
	f.expenses.expenses = append(f.expenses.expenses,
		&entity.Expense{ID: "e1", ProjectID: "proj-1", Date: june, Amount: decimal.RequireFromString("30"), Category: "hosting", Description: "junio", Billable: true},
		&entity.Expense{ID: "e2", ProjectID: "proj-1", Date: june, Amount: decimal.RequireFromString("99"), Category: "comida", Billable: false},
	)

	resp, err := f.uc.Generate(context.Background(), "user-1", dto.GenerateInvoiceRequest{
		ProjectID: "proj-1",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	})

	require.NoError(t, err)
	require.Len(t, resp.Items, 2, "una línea de tarea + una de gasto; el no facturable se omite")
	assert.Equal(t, "hosting: junio", resp.Items[1].Description)
	// 1 h * 50 + 30 = 80; impuesto 20; total 100
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("80")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("100")), "total: %s", resp.Total)
}

func TestGenerate_IgnoraEntradasNoElegibles(t *testing.T) {
	f := newBillingFixture()
	june := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	f.addEntry("task-1", june, 60)

	// no aprobada
	end := june.Add(time.Hour)
	f.entries.entries = append(f.entries.entries, &entity.TimeEntry{
		ID: "x1", UserID: "user-1", TaskID: "task-1", StartTime: june, EndTime: &end,
		DurationSeconds: 3600, Billable: true, Approved: false,
	})
	// no facturable
	f.entries.entries = append(f.entries.entries, &entity.TimeEntry{
		ID: "x2", UserID: "user-1", TaskID: "task-1", StartTime: june, EndTime: &end,
		DurationSeconds: 3600, Billable: false, Approved: true,
	})
	// borrada lógicamente
	f.entries.entries = append(f.entries.entries, &entity.TimeEntry{
		ID: "x3", UserID: "user-1", TaskID: "task-1", StartTime: june, EndTime: &end,
		DurationSeconds: 3600, Billable: true, Approved: true, DeletedAt: &june,
	})
	// fuera de rango
	f.addEntry("task-1", time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC), 600)

	resp, err := f.uc.Generate(context.Background(), "user-1", dto.GenerateInvoiceRequest{
		ProjectID: "proj-1",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Quantity.Equal(decimal.RequireFromString("1")), "solo la hora elegible: %s", resp.Items[0].Quantity)
}

func TestGenerate_RangoVacioNoCreaFactura(t *testing.T) {
	f := newBillingFixture()

	_, err := f.uc.Generate(context.Background(), "user-1", dto.GenerateInvoiceRequest{
		ProjectID: "proj-1",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, f.invoices.invoices, "no debe quedar factura vacía")
	assert.Empty(t, f.counters.seqs, "el contador no debe consumirse")
}

func TestGenerate_ProyectoAjenoEsNotFound(t *testing.T) {
	f := newBillingFixture()

	_, err := f.uc.Generate(context.Background(), "user-2", dto.GenerateInvoiceRequest{
		ProjectID: "proj-1",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_FechasInvalidas(t *testing.T) {
	f := newBillingFixture()

	_, err := f.uc.Generate(context.Background(), "user-1", dto.GenerateInvoiceRequest{
		ProjectID: "proj-1", StartDate: "01/06/2025", EndDate: "2025-06-30",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Generate(context.Background(), "user-1", dto.GenerateInvoiceRequest{
		ProjectID: "proj-1", StartDate: "2025-06-30", EndDate: "2025-06-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerate_NumeracionPorAnio(t *testing.T) {
	f := newBillingFixture()
	june := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	req := dto.GenerateInvoiceRequest{ProjectID: "proj-1", StartDate: "2025-06-01", EndDate: "2025-06-30"}

	// el contador de 2025 ya va por 2
	_, err := f.counters.Next(2025)
	require.NoError(t, err)
	_, err = f.counters.Next(2025)
	require.NoError(t, err)

	f.addEntry("task-1", june, 60)
	resp, err := f.uc.Generate(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, "2025-0003", resp.Number)

	resp, err = f.uc.Generate(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, "2025-0004", resp.Number)

	// año nuevo: la secuencia reinicia en 1
	f.uc.now = func() time.Time { return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC) }
	resp, err = f.uc.Generate(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, "2026-0001", resp.Number)
}

func TestGenerate_ConcurrenteNumerosDistintos(t *testing.T) {
	f := newBillingFixture()
	june := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	f.addEntry("task-1", june, 60)
	req := dto.GenerateInvoiceRequest{ProjectID: "proj-1", StartDate: "2025-06-01", EndDate: "2025-06-30"}

	const n = 50
	var wg sync.WaitGroup
	numbers := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.uc.Generate(context.Background(), "user-1", req)
			if err == nil {
				numbers[i] = resp.Number
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i, num := range numbers {
		require.NotEmpty(t, num, "la generación %d falló", i)
		assert.False(t, seen[num], "número duplicado %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestCreateManual_TotalesDerivados(t *testing.T) {
	f := newBillingFixture()
	discount := decimal.RequireFromString("10")

	resp, err := f.uc.CreateManual(context.Background(), "user-1", dto.ManualInvoiceRequest{
		ClientID: "client-1",
		Discount: &discount,
		Items: []dto.InvoiceItemRequest{
			{Description: "consultoría", Quantity: decimal.RequireFromString("2"), UnitRate: decimal.RequireFromString("100")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-0001", resp.Number)
	assert.Equal(t, entity.StatusDraft, resp.Status)
	// subtotal 200, impuesto 50, descuento 10 -> total 240
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("200")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(decimal.RequireFromString("50")), "impuesto: %s", resp.Tax)
	assert.True(t, resp.Discount.Equal(discount))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("240")), "total: %s", resp.Total)
}

func TestCreateManual_TotalSuministradoManda(t *testing.T) {
	f := newBillingFixture()
	total := decimal.RequireFromString("99.99")
	tax := decimal.Zero

	resp, err := f.uc.CreateManual(context.Background(), "user-1", dto.ManualInvoiceRequest{
		ClientID: "client-1",
		Tax:      &tax,
		Total:    &total,
		Status:   entity.StatusSent,
		Items: []dto.InvoiceItemRequest{
			{Description: "ajuste", Quantity: decimal.NewFromInt(1), UnitRate: decimal.RequireFromString("100")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, resp.Status)
	assert.True(t, resp.Tax.IsZero())
	assert.True(t, resp.Total.Equal(total))
}

func TestCreateManual_Validaciones(t *testing.T) {
	f := newBillingFixture()

	_, err := f.uc.CreateManual(context.Background(), "user-1", dto.ManualInvoiceRequest{ClientID: "client-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.uc.CreateManual(context.Background(), "user-1", dto.ManualInvoiceRequest{
		ClientID: "client-1",
		Status:   "CANCELLED",
		Items:    []dto.InvoiceItemRequest{{Description: "x", Quantity: decimal.NewFromInt(1), UnitRate: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido")

	_, err = f.uc.CreateManual(context.Background(), "user-1", dto.ManualInvoiceRequest{
		ClientID: "client-1",
		Items:    []dto.InvoiceItemRequest{{Description: "x", Quantity: decimal.Zero, UnitRate: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = f.uc.CreateManual(context.Background(), "user-2", dto.ManualInvoiceRequest{
		ClientID: "client-1",
		Items:    []dto.InvoiceItemRequest{{Description: "x", Quantity: decimal.NewFromInt(1), UnitRate: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente ajeno")
}

func TestGetInvoice_PromueveVencidas(t *testing.T) {
	f := newBillingFixture()
	f.invoices.invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", UserID: "user-1", ClientID: "client-1", Number: "2025-0001",
		Status: entity.StatusSent, DueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	f.invoices.numbers["2025-0001"] = true

	// now = 2025-06-30, posterior al vencimiento
	resp, err := f.uc.GetInvoice(context.Background(), "user-1", "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOverdue, resp.Status)

	// la promoción se persistió
	stored, _ := f.invoices.GetByID("inv-1")
	assert.Equal(t, entity.StatusOverdue, stored.Status)
}

func TestGetInvoice_NoPromueveAntesDelVencimiento(t *testing.T) {
	f := newBillingFixture()
	f.invoices.invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", UserID: "user-1", Number: "2025-0001",
		Status: entity.StatusSent, DueDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	}

	resp, err := f.uc.GetInvoice(context.Background(), "user-1", "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, resp.Status)
}

func TestGetInvoice_AjenaEsNotFound(t *testing.T) {
	f := newBillingFixture()
	f.invoices.invoices["inv-1"] = &entity.Invoice{ID: "inv-1", UserID: "user-1", Status: entity.StatusDraft}

	_, err := f.uc.GetInvoice(context.Background(), "user-2", "inv-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
