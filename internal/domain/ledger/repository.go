package ledger

import "context"

type Repository interface {
	// Transaction runs fn against a store transaction; any error rolls
	// back every write made inside fn.
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context, userID uint) ([]Category, error)
	GetCategoryByID(ctx context.Context, userID, categoryID uint) (*Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID uint) (bool, error)
	CountCategoriesByName(ctx context.Context, userID uint, name string) (int64, error)
	CountTransactionsByCategoryID(ctx context.Context, userID, categoryID uint) (int64, error)

	CreateTransaction(ctx context.Context, transaction *Transaction) error
	GetTransactionByID(ctx context.Context, userID, transactionID uint) (*Transaction, error)
	ListTransactions(ctx context.Context, userID uint, filter ListFilter) ([]Transaction, int64, error)
	UpdateTransaction(ctx context.Context, transaction *Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID uint) (bool, error)

	CountBudgetsByID(ctx context.Context, userID, budgetID uint) (int64, error)
}
