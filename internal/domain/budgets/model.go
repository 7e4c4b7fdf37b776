package budgets

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Name      string          `gorm:"size:100;not null"`
	Limit     decimal.Decimal `gorm:"column:limit_amount;type:numeric(12,2);not null"`
	StartDate time.Time       `gorm:"type:date;not null"`
	EndDate   time.Time       `gorm:"type:date;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (Budget) TableName() string { return "budgets" }

type CreateBudgetInput struct {
	UserID    uint
	Name      string
	Limit     decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
}

type UpdateBudgetInput struct {
	UserID    uint
	ID        uint
	Name      *string
	Limit     *decimal.Decimal
	StartDate *time.Time
	EndDate   *time.Time
}

type ListFilter struct {
	Limit  int
	Offset int
}

// Status carries the derived spend figures for one budget.
type Status struct {
	Budget       Budget
	TotalExpense decimal.Decimal
	Remaining    decimal.Decimal
	Exceeded     bool
}
