package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tempo-api/internal/application/dto"
	"github.com/jhoicas/Tempo-api/internal/domain"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
	"github.com/jhoicas/Tempo-api/internal/domain/repository"
)

// ExpenseUseCase alta y listado de gastos de proyecto (entrada de solo
// lectura para el generador de facturas).
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository, projectRepo repository.ProjectRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo, projectRepo: projectRepo, now: time.Now}
}

// Create registra un gasto en un proyecto propio.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.ProjectID == "" || in.Category == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, fmt.Errorf("proyecto %s: %w", in.ProjectID, domain.ErrNotFound)
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", domain.ErrInvalidInput)
	}
	billable := true
	if in.Billable != nil {
		billable = *in.Billable
	}
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		UserID:      userID,
		Date:        date,
		Amount:      in.Amount.Round(2),
		Category:    in.Category,
		Description: in.Description,
		Billable:    billable,
		CreatedAt:   uc.now(),
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListByProject lista los gastos de un proyecto propio.
func (uc *ExpenseUseCase) ListByProject(ctx context.Context, userID, projectID string) ([]dto.ExpenseResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, fmt.Errorf("proyecto %s: %w", projectID, domain.ErrNotFound)
	}
	expenses, err := uc.expenseRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Date:        e.Date.Format("2006-01-02"),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Billable:    e.Billable,
	}
}
