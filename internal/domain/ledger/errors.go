package ledger

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameTaken   = errors.New("category with this name already exists")
	ErrCategoryInUse       = errors.New("cannot delete category with existing transactions")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidReference    = errors.New("referenced resource does not exist")
	ErrInvalidInput        = errors.New("invalid input")
)
