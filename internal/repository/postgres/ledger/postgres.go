package ledger

import (
	"context"
	"errors"

	budgetsdomain "budget-app-go/internal/domain/budgets"
	ledgerdomain "budget-app-go/internal/domain/ledger"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(ledgerdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *ledgerdomain.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		// Composite unique index on (user_id, name) backs the
		// application-level duplicate check under concurrency.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ledgerdomain.ErrCategoryNameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context, userID uint) ([]ledgerdomain.Category, error) {
	var categories []ledgerdomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, userID, categoryID uint) (*ledgerdomain.Category, error) {
	var category ledgerdomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledgerdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, userID, categoryID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&ledgerdomain.Category{}, "user_id = ? AND id = ?", userID, categoryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountCategoriesByName(ctx context.Context, userID uint, name string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledgerdomain.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountTransactionsByCategoryID(ctx context.Context, userID, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, transaction *ledgerdomain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *PostgresRepository) GetTransactionByID(ctx context.Context, userID, transactionID uint) (*ledgerdomain.Transaction, error) {
	var transaction ledgerdomain.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, transactionID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledgerdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID uint, filter ledgerdomain.ListFilter) ([]ledgerdomain.Transaction, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Where("user_id = ?", userID)
	query = applyTransactionFilters(query, filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date desc, id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []ledgerdomain.Transaction
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, transaction *ledgerdomain.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(map[string]interface{}{
			"amount":      transaction.Amount,
			"description": transaction.Description,
			"date":        transaction.Date,
			"type":        transaction.Type,
			"category_id": transaction.CategoryID,
			"budget_id":   transaction.BudgetID,
			"updated_at":  transaction.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, userID, transactionID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&ledgerdomain.Transaction{}, "user_id = ? AND id = ?", userID, transactionID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountBudgetsByID(ctx context.Context, userID, budgetID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("user_id = ? AND id = ?", userID, budgetID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyTransactionFilters(query *gorm.DB, filter ledgerdomain.ListFilter) *gorm.DB {
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
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
	return query
}
