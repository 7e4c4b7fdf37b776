package budgets

import "errors"

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrInvalidInput   = errors.New("invalid input")
)
