package budgets

import (
	"context"
	"errors"
	"time"

	budgetsdomain "budget-app-go/internal/domain/budgets"
	ledgerdomain "budget-app-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(budgetsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, budget *budgetsdomain.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, budgetID uint) (*budgetsdomain.Budget, error) {
	var budget budgetsdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, budgetID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetsdomain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID uint, filter budgetsdomain.ListFilter) ([]budgetsdomain.Budget, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("start_date desc, id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []budgetsdomain.Budget
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, budget *budgetsdomain.Budget) error {
	return r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
		Updates(map[string]interface{}{
			"name":         budget.Name,
			"limit_amount": budget.Limit,
			"start_date":   budget.StartDate,
			"end_date":     budget.EndDate,
			"updated_at":   budget.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, budgetID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&budgetsdomain.Budget{}, "user_id = ? AND id = ?", userID, budgetID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SumExpenses(ctx context.Context, userID, budgetID uint, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND budget_id = ? AND type = ?", userID, budgetID, ledgerdomain.TypeExpense).
		Where("date >= ? AND date <= ?", from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
