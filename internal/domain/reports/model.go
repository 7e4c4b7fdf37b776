package reports

import (
	"time"

	"budget-app-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

type SummaryFilter struct {
	From            *time.Time
	To              *time.Time
	GroupByCategory bool
}

type Totals struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Net          decimal.Decimal
}

// CategoryGroup sums one category's transactions; a nil CategoryID groups
// the uncategorized ones.
type CategoryGroup struct {
	CategoryID   *uint
	CategoryName *string
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

type Summary struct {
	From       *time.Time
	To         *time.Time
	Totals     Totals
	ByCategory []CategoryGroup // nil unless grouping was requested and produced groups
}

// ExportFilter mirrors the transaction list filters without pagination.
type ExportFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID *uint
	Type       *ledger.EntryType
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
}
