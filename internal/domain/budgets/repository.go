package budgets

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Transaction runs fn against a store transaction; any error rolls
	// back every write made inside fn.
	Transaction(ctx context.Context, fn func(Repository) error) error

	Create(ctx context.Context, budget *Budget) error
	GetByID(ctx context.Context, userID, budgetID uint) (*Budget, error)
	List(ctx context.Context, userID uint, filter ListFilter) ([]Budget, int64, error)
	Update(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, userID, budgetID uint) (bool, error)

	// SumExpenses totals the user's expense transactions linked to the
	// budget with dates inside [from, to] inclusive.
	SumExpenses(ctx context.Context, userID, budgetID uint, from, to time.Time) (decimal.Decimal, error)
}
