package inmemory

import (
	"context"
	"sort"

	ledgerdomain "budget-app-go/internal/domain/ledger"
)

type ledgerRepo struct {
	store *Store
}

// Transaction runs fn directly; the in-memory store has no rollback.
func (r *ledgerRepo) Transaction(ctx context.Context, fn func(ledgerdomain.Repository) error) error {
	return fn(r)
}

func (r *ledgerRepo) CreateCategory(ctx context.Context, category *ledgerdomain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.categories {
		if existing.UserID == category.UserID && existing.Name == category.Name {
			return ledgerdomain.ErrCategoryNameTaken
		}
	}

	category.ID = r.store.sequence()
	copied := *category
	r.store.categories[category.ID] = &copied
	return nil
}

func (r *ledgerRepo) ListCategories(ctx context.Context, userID uint) ([]ledgerdomain.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]ledgerdomain.Category, 0)
	for _, category := range r.store.categories {
		if category.UserID == userID {
			items = append(items, *category)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *ledgerRepo) GetCategoryByID(ctx context.Context, userID, categoryID uint) (*ledgerdomain.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category, ok := r.store.categories[categoryID]
	if !ok || category.UserID != userID {
		return nil, ledgerdomain.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *ledgerRepo) DeleteCategory(ctx context.Context, userID, categoryID uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category, ok := r.store.categories[categoryID]
	if !ok || category.UserID != userID {
		return false, nil
	}
	delete(r.store.categories, categoryID)
	return true, nil
}

func (r *ledgerRepo) CountCategoriesByName(ctx context.Context, userID uint, name string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, category := range r.store.categories {
		if category.UserID == userID && category.Name == name {
			count++
		}
	}
	return count, nil
}

func (r *ledgerRepo) CountTransactionsByCategoryID(ctx context.Context, userID, categoryID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, transaction := range r.store.transactions {
		if transaction.UserID == userID && transaction.CategoryID != nil && *transaction.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *ledgerRepo) CreateTransaction(ctx context.Context, transaction *ledgerdomain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transaction.ID = r.store.sequence()
	copied := *transaction
	r.store.transactions[transaction.ID] = &copied
	return nil
}

func (r *ledgerRepo) GetTransactionByID(ctx context.Context, userID, transactionID uint) (*ledgerdomain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transaction, ok := r.store.transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return nil, ledgerdomain.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (r *ledgerRepo) ListTransactions(ctx context.Context, userID uint, filter ledgerdomain.ListFilter) ([]ledgerdomain.Transaction, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]ledgerdomain.Transaction, 0)
	for _, transaction := range r.store.transactions {
		if transaction.UserID != userID || !matchesFilter(transaction, filter) {
			continue
		}
		items = append(items, *transaction)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID > items[j].ID
	})

	total := int64(len(items))
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []ledgerdomain.Transaction{}, total, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, total, nil
}

func (r *ledgerRepo) UpdateTransaction(ctx context.Context, transaction *ledgerdomain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.transactions[transaction.ID]
	if !ok || existing.UserID != transaction.UserID {
		return ledgerdomain.ErrTransactionNotFound
	}
	copied := *transaction
	r.store.transactions[transaction.ID] = &copied
	return nil
}

func (r *ledgerRepo) DeleteTransaction(ctx context.Context, userID, transactionID uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transaction, ok := r.store.transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return false, nil
	}
	delete(r.store.transactions, transactionID)
	return true, nil
}

func (r *ledgerRepo) CountBudgetsByID(ctx context.Context, userID, budgetID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if budget, ok := r.store.budgets[budgetID]; ok && budget.UserID == userID {
		return 1, nil
	}
	return 0, nil
}

func matchesFilter(transaction *ledgerdomain.Transaction, filter ledgerdomain.ListFilter) bool {
	if filter.From != nil && transaction.Date.Before(*filter.From) {
		return false
	}
	if filter.To != nil && transaction.Date.After(*filter.To) {
		return false
	}
	if filter.CategoryID != nil && (transaction.CategoryID == nil || *transaction.CategoryID != *filter.CategoryID) {
		return false
	}
	if filter.Type != nil && transaction.Type != *filter.Type {
		return false
	}
	if filter.AmountMin != nil && transaction.Amount.LessThan(*filter.AmountMin) {
		return false
	}
	if filter.AmountMax != nil && transaction.Amount.GreaterThan(*filter.AmountMax) {
		return false
	}
	return true
}
