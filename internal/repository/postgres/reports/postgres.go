package reports

import (
	"context"
	"time"

	ledgerdomain "budget-app-go/internal/domain/ledger"
	reportsdomain "budget-app-go/internal/domain/reports"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SumByType(ctx context.Context, userID uint, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
	}

	query := r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Select(
			"COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS total_income, "+
				"COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS total_expense").
		Where("user_id = ?", userID)
	query = applyDateBounds(query, from, to)

	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.TotalIncome, row.TotalExpense, nil
}

func (r *PostgresRepository) SumByCategory(ctx context.Context, userID uint, from, to *time.Time) ([]reportsdomain.CategoryGroup, error) {
	var rows []struct {
		CategoryID   *uint
		CategoryName *string
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
	}

	query := r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Select(
			"transactions.category_id AS category_id, "+
				"categories.name AS category_name, "+
				"COALESCE(SUM(transactions.amount) FILTER (WHERE transactions.type = 'income'), 0) AS total_income, "+
				"COALESCE(SUM(transactions.amount) FILTER (WHERE transactions.type = 'expense'), 0) AS total_expense").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Group("transactions.category_id, categories.name").
		Order("transactions.category_id ASC NULLS LAST")
	query = applyDateBounds(query, from, to)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	groups := make([]reportsdomain.CategoryGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, reportsdomain.CategoryGroup{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			TotalIncome:  row.TotalIncome,
			TotalExpense: row.TotalExpense,
		})
	}
	return groups, nil
}

func (r *PostgresRepository) ListForExport(ctx context.Context, userID uint, filter reportsdomain.ExportFilter) ([]ledgerdomain.Transaction, error) {
	query := r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Where("user_id = ?", userID)
	query = applyDateBounds(query, filter.From, filter.To)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.AmountMin != nil {
		query = query.Where("amount >= ?", *filter.AmountMin)
	}
	if filter.AmountMax != nil {
		query = query.Where("amount <= ?", *filter.AmountMax)
	}

	// Exports read chronologically, the reverse of the list default.
	var items []ledgerdomain.Transaction
	if err := query.Order("date asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func applyDateBounds(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	return query
}
