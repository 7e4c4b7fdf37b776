package budgets

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpense struct {
	userID   uint
	budgetID uint
	date     time.Time
	amount   decimal.Decimal
}

type fakeBudgetsRepo struct {
	budgets  map[uint]*Budget
	expenses []fakeExpense
	nextID   uint
	txCalls  int
}

func newFakeBudgetsRepo() *fakeBudgetsRepo {
	return &fakeBudgetsRepo{budgets: make(map[uint]*Budget)}
}

func (r *fakeBudgetsRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	r.txCalls++
	return fn(r)
}

func (r *fakeBudgetsRepo) Create(ctx context.Context, budget *Budget) error {
	r.nextID++
	budget.ID = r.nextID
	r.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetsRepo) GetByID(ctx context.Context, userID, budgetID uint) (*Budget, error) {
	budget, ok := r.budgets[budgetID]
	if !ok || budget.UserID != userID {
		return nil, ErrBudgetNotFound
	}
	copied := *budget
	return &copied, nil
}

func (r *fakeBudgetsRepo) List(ctx context.Context, userID uint, filter ListFilter) ([]Budget, int64, error) {
	items := make([]Budget, 0)
	for _, budget := range r.budgets {
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
			return []Budget{}, total, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, total, nil
}

func (r *fakeBudgetsRepo) Update(ctx context.Context, budget *Budget) error {
	if _, ok := r.budgets[budget.ID]; !ok {
		return ErrBudgetNotFound
	}
	copied := *budget
	r.budgets[budget.ID] = &copied
	return nil
}

func (r *fakeBudgetsRepo) Delete(ctx context.Context, userID, budgetID uint) (bool, error) {
	budget, ok := r.budgets[budgetID]
	if !ok || budget.UserID != userID {
		return false, nil
	}
	delete(r.budgets, budgetID)
	return true, nil
}

func (r *fakeBudgetsRepo) SumExpenses(ctx context.Context, userID, budgetID uint, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, expense := range r.expenses {
		if expense.userID != userID || expense.budgetID != budgetID {
			continue
		}
		if expense.date.Before(from) || expense.date.After(to) {
			continue
		}
		total = total.Add(expense.amount)
	}
	return total, nil
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func newTestBudget(t *testing.T, repo *fakeBudgetsRepo, userID uint, limit string) *Budget {
	t.Helper()
	budget, err := NewService(repo).Create(context.Background(), CreateBudgetInput{
		UserID:    userID,
		Name:      "Monthly budget",
		Limit:     mustDecimal(t, limit),
		StartDate: date(t, "2025-01-01"),
		EndDate:   date(t, "2025-01-31"),
	})
	require.NoError(t, err)
	return budget
}

func TestStatusWithinLimit(t *testing.T) {
	repo := newFakeBudgetsRepo()
	budget := newTestBudget(t, repo, 1, "500.00")

	repo.expenses = []fakeExpense{
		{userID: 1, budgetID: budget.ID, date: date(t, "2025-01-05"), amount: mustDecimal(t, "100.00")},
		{userID: 1, budgetID: budget.ID, date: date(t, "2025-01-20"), amount: mustDecimal(t, "50.00")},
	}

	status, err := NewService(repo).Status(context.Background(), 1, budget.ID)
	require.NoError(t, err)

	assert.True(t, status.TotalExpense.Equal(mustDecimal(t, "150.00")), "total_expense=%s", status.TotalExpense)
	assert.True(t, status.Remaining.Equal(mustDecimal(t, "350.00")), "remaining=%s", status.Remaining)
	assert.False(t, status.Exceeded)
}

func TestStatusExceeded(t *testing.T) {
	repo := newFakeBudgetsRepo()
	budget := newTestBudget(t, repo, 1, "500.00")

	repo.expenses = []fakeExpense{
		{userID: 1, budgetID: budget.ID, date: date(t, "2025-01-05"), amount: mustDecimal(t, "100.00")},
		{userID: 1, budgetID: budget.ID, date: date(t, "2025-01-20"), amount: mustDecimal(t, "50.00")},
		{userID: 1, budgetID: budget.ID, date: date(t, "2025-01-25"), amount: mustDecimal(t, "400.00")},
	}

	status, err := NewService(repo).Status(context.Background(), 1, budget.ID)
	require.NoError(t, err)

	assert.True(t, status.TotalExpense.Equal(mustDecimal(t, "550.00")))
	assert.True(t, status.Remaining.Equal(mustDecimal(t, "-50.00")))
	assert.True(t, status.Exceeded)
}

func TestStatusIgnoresExpensesOutsideWindow(t *testing.T) {
	repo := newFakeBudgetsRepo()
	budget := newTestBudget(t, repo, 1, "500.00")

	repo.expenses = []fakeExpense{
		{userID: 1, budgetID: budget.ID, date: date(t, "2024-12-31"), amount: mustDecimal(t, "100.00")},
		{userID: 1, budgetID: budget.ID, date: date(t, "2025-02-01"), amount: mustDecimal(t, "100.00")},
		// Boundary dates are inclusive.
		{userID: 1, budgetID: budget.ID, date: date(t, "2025-01-01"), amount: mustDecimal(t, "10.00")},
		{userID: 1, budgetID: budget.ID, date: date(t, "2025-01-31"), amount: mustDecimal(t, "15.00")},
	}

	status, err := NewService(repo).Status(context.Background(), 1, budget.ID)
	require.NoError(t, err)
	assert.True(t, status.TotalExpense.Equal(mustDecimal(t, "25.00")))
}

func TestStatusOtherUsersBudgetIsNotFound(t *testing.T) {
	repo := newFakeBudgetsRepo()
	budget := newTestBudget(t, repo, 1, "500.00")

	_, err := NewService(repo).Status(context.Background(), 2, budget.ID)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestCreateAllowsInvertedWindow(t *testing.T) {
	repo := newFakeBudgetsRepo()
	svc := NewService(repo)

	// End before start is accepted; the window just matches nothing.
	budget, err := svc.Create(context.Background(), CreateBudgetInput{
		UserID:    1,
		Name:      "Weird window",
		Limit:     mustDecimal(t, "100.00"),
		StartDate: date(t, "2025-02-01"),
		EndDate:   date(t, "2025-01-01"),
	})
	require.NoError(t, err)

	status, err := svc.Status(context.Background(), 1, budget.ID)
	require.NoError(t, err)
	assert.True(t, status.TotalExpense.IsZero())
}

func TestUpdatePartial(t *testing.T) {
	repo := newFakeBudgetsRepo()
	budget := newTestBudget(t, repo, 1, "500.00")

	newLimit := mustDecimal(t, "750.00")
	updated, err := NewService(repo).Update(context.Background(), UpdateBudgetInput{
		UserID: 1,
		ID:     budget.ID,
		Limit:  &newLimit,
	})
	require.NoError(t, err)

	assert.True(t, updated.Limit.Equal(newLimit))
	assert.Equal(t, "Monthly budget", updated.Name)
	assert.True(t, updated.StartDate.Equal(budget.StartDate))
}

func TestUpdateRunsInsideTransaction(t *testing.T) {
	repo := newFakeBudgetsRepo()
	budget := newTestBudget(t, repo, 1, "500.00")
	require.Zero(t, repo.txCalls)

	name := "Renamed"
	_, err := NewService(repo).Update(context.Background(), UpdateBudgetInput{
		UserID: 1,
		ID:     budget.ID,
		Name:   &name,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.txCalls)
}

func TestListOrderAndPagination(t *testing.T) {
	repo := newFakeBudgetsRepo()
	svc := NewService(repo)

	for _, start := range []string{"2025-01-01", "2025-03-01", "2025-02-01"} {
		_, err := svc.Create(context.Background(), CreateBudgetInput{
			UserID:    1,
			Name:      "Budget " + start,
			Limit:     mustDecimal(t, "100.00"),
			StartDate: date(t, start),
			EndDate:   date(t, "2025-12-31"),
		})
		require.NoError(t, err)
	}

	items, total, filter, err := svc.List(context.Background(), 1, ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, 2, filter.Limit)
	require.Len(t, items, 2)
	assert.True(t, items[0].StartDate.After(items[1].StartDate))
}
