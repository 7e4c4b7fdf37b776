package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 255

	defaultLimit = 50
	maxLimit     = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len([]rune(name)) > maxNameLen {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, maxNameLen)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
	}

	category := &Category{
		UserID: input.UserID,
		Name:   name,
		Type:   input.Type,
	}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		count, err := tx.CountCategoriesByName(ctx, input.UserID, name)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryNameTaken
		}
		return tx.CreateCategory(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *Service) ListCategories(ctx context.Context, userID uint) ([]Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

func (s *Service) GetCategory(ctx context.Context, userID, categoryID uint) (*Category, error) {
	return s.repo.GetCategoryByID(ctx, userID, categoryID)
}

// DeleteCategory refuses to delete a category that transactions still
// reference. Not a cascade.
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCategoryByID(ctx, userID, categoryID); err != nil {
			return err
		}

		inUse, err := tx.CountTransactionsByCategoryID(ctx, userID, categoryID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrCategoryInUse
		}

		deleted, err := tx.DeleteCategory(ctx, userID, categoryID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}
		return nil
	})
}

func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
	}
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	transaction := &Transaction{
		UserID:      input.UserID,
		Amount:      input.Amount,
		Description: description,
		Date:        input.Date,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
		BudgetID:    input.BudgetID,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := s.checkReferences(ctx, tx, input.UserID, input.CategoryID, input.BudgetID); err != nil {
			return err
		}
		return tx.CreateTransaction(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *Service) GetTransaction(ctx context.Context, userID, transactionID uint) (*Transaction, error) {
	return s.repo.GetTransactionByID(ctx, userID, transactionID)
}

func (s *Service) ListTransactions(ctx context.Context, userID uint, filter ListFilter) ([]Transaction, int64, ListFilter, error) {
	filter = clampFilter(filter)
	items, total, err := s.repo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, 0, filter, err
	}
	return items, total, filter, nil
}

// UpdateTransaction applies only the supplied fields. Supplied references
// are re-validated against the same user inside the write transaction.
func (s *Service) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*Transaction, error) {
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	if input.Type != nil && !input.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
	}

	var description *string
	if input.Description.Set {
		normalized, err := normalizeDescription(input.Description.Value)
		if err != nil {
			return nil, err
		}
		description = normalized
	}

	var updated Transaction
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		transaction, err := tx.GetTransactionByID(ctx, input.UserID, input.ID)
		if err != nil {
			return err
		}

		var categoryID, budgetID *uint
		if input.CategoryID.Set {
			categoryID = input.CategoryID.Value
		}
		if input.BudgetID.Set {
			budgetID = input.BudgetID.Value
		}
		if err := s.checkReferences(ctx, tx, input.UserID, categoryID, budgetID); err != nil {
			return err
		}

		if input.Amount != nil {
			transaction.Amount = *input.Amount
		}
		if input.Description.Set {
			transaction.Description = description
		}
		if input.Date != nil {
			transaction.Date = *input.Date
		}
		if input.Type != nil {
			transaction.Type = *input.Type
		}
		if input.CategoryID.Set {
			transaction.CategoryID = input.CategoryID.Value
		}
		if input.BudgetID.Set {
			transaction.BudgetID = input.BudgetID.Value
		}
		transaction.UpdatedAt = time.Now().UTC()

		if err := tx.UpdateTransaction(ctx, transaction); err != nil {
			return err
		}

		updated = *transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID uint) error {
	deleted, err := s.repo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, tx Repository, userID uint, categoryID, budgetID *uint) error {
	if categoryID != nil {
		if _, err := tx.GetCategoryByID(ctx, userID, *categoryID); err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return ErrInvalidReference
			}
			return err
		}
	}
	if budgetID != nil {
		count, err := tx.CountBudgetsByID(ctx, userID, *budgetID)
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrInvalidReference
		}
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	return nil
}

func normalizeDescription(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	description := strings.TrimSpace(*value)
	if description == "" {
		return nil, nil
	}
	if len([]rune(description)) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxDescriptionLen)
	}
	return &description, nil
}

func clampFilter(filter ListFilter) ListFilter {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}
