package inmemory

import (
	"context"
	"sort"
	"time"

	budgetsdomain "budget-app-go/internal/domain/budgets"
	ledgerdomain "budget-app-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

type budgetsRepo struct {
	store *Store
}

// Transaction runs fn directly; the in-memory store has no rollback.
func (r *budgetsRepo) Transaction(ctx context.Context, fn func(budgetsdomain.Repository) error) error {
	return fn(r)
}

func (r *budgetsRepo) Create(ctx context.Context, budget *budgetsdomain.Budget) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	budget.ID = r.store.sequence()
	copied := *budget
	r.store.budgets[budget.ID] = &copied
	return nil
}

func (r *budgetsRepo) GetByID(ctx context.Context, userID, budgetID uint) (*budgetsdomain.Budget, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	budget, ok := r.store.budgets[budgetID]
	if !ok || budget.UserID != userID {
		return nil, budgetsdomain.ErrBudgetNotFound
	}
	copied := *budget
	return &copied, nil
}

func (r *budgetsRepo) List(ctx context.Context, userID uint, filter budgetsdomain.ListFilter) ([]budgetsdomain.Budget, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]budgetsdomain.Budget, 0)
	for _, budget := range r.store.budgets {
		if budget.UserID == userID {
			items = append(items, *budget)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].StartDate.Equal(items[j].StartDate) {
			return items[i].StartDate.After(items[j].StartDate)
		}
		return items[i].ID > items[j].ID
	})

	total := int64(len(items))
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []budgetsdomain.Budget{}, total, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, total, nil
}

func (r *budgetsRepo) Update(ctx context.Context, budget *budgetsdomain.Budget) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.budgets[budget.ID]
	if !ok || existing.UserID != budget.UserID {
		return budgetsdomain.ErrBudgetNotFound
	}
	copied := *budget
	r.store.budgets[budget.ID] = &copied
	return nil
}

func (r *budgetsRepo) Delete(ctx context.Context, userID, budgetID uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	budget, ok := r.store.budgets[budgetID]
	if !ok || budget.UserID != userID {
		return false, nil
	}
	delete(r.store.budgets, budgetID)

	// Referencing transactions are detached, not deleted, matching the
	// ON DELETE SET NULL constraint in the schema.
	for _, transaction := range r.store.transactions {
		if transaction.BudgetID != nil && *transaction.BudgetID == budgetID {
			transaction.BudgetID = nil
		}
	}
	return true, nil
}

func (r *budgetsRepo) SumExpenses(ctx context.Context, userID, budgetID uint, from, to time.Time) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	total := decimal.Zero
	for _, transaction := range r.store.transactions {
		if transaction.UserID != userID || transaction.Type != ledgerdomain.TypeExpense {
			continue
		}
		if transaction.BudgetID == nil || *transaction.BudgetID != budgetID {
			continue
		}
		if transaction.Date.Before(from) || transaction.Date.After(to) {
			continue
		}
		total = total.Add(transaction.Amount)
	}
	return total, nil
}
