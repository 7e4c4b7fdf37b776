package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	TypeIncome  EntryType = "income"
	TypeExpense EntryType = "expense"
)

func (t EntryType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

type Category struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_categories_user_name"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_categories_user_name"`
	Type      EntryType `gorm:"size:10;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Category) TableName() string { return "categories" }

type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description *string         `gorm:"size:255"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Type        EntryType       `gorm:"size:10;not null"`
	CategoryID  *uint           `gorm:"index"`
	BudgetID    *uint           `gorm:"index"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string { return "transactions" }

// ListFilter narrows a user's transactions. Date bounds are inclusive.
type ListFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID *uint
	Type       *EntryType
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	Limit      int
	Offset     int
}

type CreateCategoryInput struct {
	UserID uint
	Name   string
	Type   EntryType
}

type CreateTransactionInput struct {
	UserID      uint
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	Type        EntryType
	CategoryID  *uint
	BudgetID    *uint
}

// Optional wrappers distinguish "absent" from "set to null" in partial
// updates.
type OptionalString struct {
	Set   bool
	Value *string
}

type OptionalRef struct {
	Set   bool
	Value *uint
}

type UpdateTransactionInput struct {
	UserID      uint
	ID          uint
	Amount      *decimal.Decimal
	Description OptionalString
	Date        *time.Time
	Type        *EntryType
	CategoryID  OptionalRef
	BudgetID    OptionalRef
}
