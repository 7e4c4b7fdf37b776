package reports

import (
	"context"

	"budget-app-go/internal/domain/ledger"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summary(ctx context.Context, userID uint, filter SummaryFilter) (*Summary, error) {
	income, expense, err := s.repo.SumByType(ctx, userID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		From: filter.From,
		To:   filter.To,
		Totals: Totals{
			TotalIncome:  income,
			TotalExpense: expense,
			Net:          income.Sub(expense),
		},
	}

	if filter.GroupByCategory {
		groups, err := s.repo.SumByCategory(ctx, userID, filter.From, filter.To)
		if err != nil {
			return nil, err
		}
		// Absent, not empty, when there is nothing to group.
		if len(groups) > 0 {
			summary.ByCategory = groups
		}
	}

	return summary, nil
}

func (s *Service) Export(ctx context.Context, userID uint, filter ExportFilter) ([]ledger.Transaction, error) {
	return s.repo.ListForExport(ctx, userID, filter)
}
