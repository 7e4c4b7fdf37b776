package reports

import (
	"context"
	"time"

	"budget-app-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// SumByType returns the user's income and expense totals inside the
	// optional inclusive date bounds. Both are exact zero when nothing
	// matches.
	SumByType(ctx context.Context, userID uint, from, to *time.Time) (income, expense decimal.Decimal, err error)

	// SumByCategory partitions the same range per category; uncategorized
	// transactions come back as a row with a nil category id.
	SumByCategory(ctx context.Context, userID uint, from, to *time.Time) ([]CategoryGroup, error)

	// ListForExport returns matching transactions ordered by date
	// ascending, id ascending.
	ListForExport(ctx context.Context, userID uint, filter ExportFilter) ([]ledger.Transaction, error)
}
