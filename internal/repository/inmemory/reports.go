package inmemory

import (
	"context"
	"sort"
	"time"

	ledgerdomain "budget-app-go/internal/domain/ledger"
	reportsdomain "budget-app-go/internal/domain/reports"
	"github.com/shopspring/decimal"
)

type reportsRepo struct {
	store *Store
}

func (r *reportsRepo) matching(userID uint, from, to *time.Time) []*ledgerdomain.Transaction {
	items := make([]*ledgerdomain.Transaction, 0)
	for _, transaction := range r.store.transactions {
		if transaction.UserID != userID {
			continue
		}
		if from != nil && transaction.Date.Before(*from) {
			continue
		}
		if to != nil && transaction.Date.After(*to) {
			continue
		}
		items = append(items, transaction)
	}
	return items
}

func (r *reportsRepo) SumByType(ctx context.Context, userID uint, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	income, expense := decimal.Zero, decimal.Zero
	for _, transaction := range r.matching(userID, from, to) {
		switch transaction.Type {
		case ledgerdomain.TypeIncome:
			income = income.Add(transaction.Amount)
		case ledgerdomain.TypeExpense:
			expense = expense.Add(transaction.Amount)
		}
	}
	return income, expense, nil
}

func (r *reportsRepo) SumByCategory(ctx context.Context, userID uint, from, to *time.Time) ([]reportsdomain.CategoryGroup, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	grouped := make(map[uint]*reportsdomain.CategoryGroup)
	var uncategorized *reportsdomain.CategoryGroup

	for _, transaction := range r.matching(userID, from, to) {
		var group *reportsdomain.CategoryGroup
		if transaction.CategoryID == nil {
			if uncategorized == nil {
				uncategorized = &reportsdomain.CategoryGroup{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
			}
			group = uncategorized
		} else {
			id := *transaction.CategoryID
			if grouped[id] == nil {
				entry := &reportsdomain.CategoryGroup{CategoryID: &id, TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
				if category, ok := r.store.categories[id]; ok {
					name := category.Name
					entry.CategoryName = &name
				}
				grouped[id] = entry
			}
			group = grouped[id]
		}
		if transaction.Type == ledgerdomain.TypeIncome {
			group.TotalIncome = group.TotalIncome.Add(transaction.Amount)
		} else {
			group.TotalExpense = group.TotalExpense.Add(transaction.Amount)
		}
	}

	groups := make([]reportsdomain.CategoryGroup, 0, len(grouped)+1)
	for _, group := range grouped {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool { return *groups[i].CategoryID < *groups[j].CategoryID })
	if uncategorized != nil {
		groups = append(groups, *uncategorized)
	}
	return groups, nil
}

func (r *reportsRepo) ListForExport(ctx context.Context, userID uint, filter reportsdomain.ExportFilter) ([]ledgerdomain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]ledgerdomain.Transaction, 0)
	for _, transaction := range r.matching(userID, filter.From, filter.To) {
		if filter.CategoryID != nil && (transaction.CategoryID == nil || *transaction.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Type != nil && transaction.Type != *filter.Type {
			continue
		}
		if filter.AmountMin != nil && transaction.Amount.LessThan(*filter.AmountMin) {
			continue
		}
		if filter.AmountMax != nil && transaction.Amount.GreaterThan(*filter.AmountMax) {
			continue
		}
		items = append(items, *transaction)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
