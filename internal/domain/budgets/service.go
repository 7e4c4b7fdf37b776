package budgets

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	maxNameLen = 100

	defaultLimit = 50
	maxLimit     = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create does not require EndDate >= StartDate; a budget with an inverted
// window simply matches no transactions.
func (s *Service) Create(ctx context.Context, input CreateBudgetInput) (*Budget, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	budget := &Budget{
		UserID:    input.UserID,
		Name:      name,
		Limit:     input.Limit,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.repo.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *Service) Get(ctx context.Context, userID, budgetID uint) (*Budget, error) {
	return s.repo.GetByID(ctx, userID, budgetID)
}

func (s *Service) List(ctx context.Context, userID uint, filter ListFilter) ([]Budget, int64, ListFilter, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, filter, err
	}
	return items, total, filter, nil
}

// Update applies only the supplied fields. The read and write share one
// store transaction so a concurrent delete cannot slip between them.
func (s *Service) Update(ctx context.Context, input UpdateBudgetInput) (*Budget, error) {
	var name string
	if input.Name != nil {
		validated, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = validated
	}

	var updated Budget
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		budget, err := tx.GetByID(ctx, input.UserID, input.ID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			budget.Name = name
		}
		if input.Limit != nil {
			budget.Limit = *input.Limit
		}
		if input.StartDate != nil {
			budget.StartDate = *input.StartDate
		}
		if input.EndDate != nil {
			budget.EndDate = *input.EndDate
		}
		budget.UpdatedAt = time.Now().UTC()

		if err := tx.Update(ctx, budget); err != nil {
			return err
		}
		updated = *budget
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, budgetID uint) error {
	deleted, err := s.repo.Delete(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

// Status computes spend against the budget window. Remaining goes negative
// once the limit is exceeded.
func (s *Service) Status(ctx context.Context, userID, budgetID uint) (*Status, error) {
	budget, err := s.repo.GetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	totalExpense, err := s.repo.SumExpenses(ctx, userID, budgetID, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, err
	}

	remaining := budget.Limit.Sub(totalExpense)
	return &Status{
		Budget:       *budget,
		TotalExpense: totalExpense,
		Remaining:    remaining,
		Exceeded:     remaining.IsNegative(),
	}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLen {
		return "", fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, maxNameLen)
	}
	return name, nil
}
