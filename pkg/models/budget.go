package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/currency"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a spending ceiling for one category over a date range.
//
// Spent is maintained by reconciliation whenever expense transactions
// in the same category and range are created, edited or deleted.
type Budget struct {
	DefaultModel `bson:",inline"`
	Name         string          `json:"name" bson:"name" example:"Groceries March"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" bson:"amount" example:"400"`
	Spent        decimal.Decimal `json:"spent" gorm:"type:DECIMAL(20,8)" bson:"spent" example:"123.45"`
	Category     string          `json:"category" gorm:"index" bson:"category" example:"Food & Dining"`
	Period       types.Period    `json:"period" bson:"period" example:"monthly"`
	StartDate    time.Time       `json:"startDate" gorm:"index" bson:"start_date" example:"2024-03-01T00:00:00Z"`
	EndDate      time.Time       `json:"endDate" bson:"end_date" example:"2024-03-31T00:00:00Z"`
	Currency     string          `json:"currency" bson:"currency" example:"USD"`
}

// Range returns the inclusive date range the budget covers.
func (b Budget) Range() types.DateRange {
	return types.DateRange{From: b.StartDate, Until: b.EndDate}
}

// Covers reports whether an expense in category at date counts towards the budget.
func (b Budget) Covers(category string, date time.Time) bool {
	return b.Category == category && b.Range().Contains(date)
}

// Remaining is the amount left before the ceiling is reached. Negative when overspent.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// Progress is the spent share of the amount in percent, rounded to two places.
func (b Budget) Progress() decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}

	return b.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Round(2)
}

// Overspent reports if more than the amount has been spent.
func (b Budget) Overspent() bool {
	return b.Spent.GreaterThan(b.Amount)
}

// FillRange sets missing start and end dates from the period.
//
// A set start date is used as reference for the period, otherwise ref is.
func (b *Budget) FillRange(ref time.Time) {
	if !b.StartDate.IsZero() {
		ref = b.StartDate
	}

	start, end := b.Period.Range(ref)
	if b.StartDate.IsZero() {
		b.StartDate = start
	}

	if b.EndDate.IsZero() {
		b.EndDate = end
	}
}

// Normalize
//   - sets the timezone for all dates to UTC
//   - upper-cases the currency code
//   - trims whitespace from string fields
func (b *Budget) Normalize() {
	b.DefaultModel.utc()
	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)
	b.Name = strings.TrimSpace(b.Name)
	b.Category = strings.TrimSpace(b.Category)
	b.Currency = currency.Normalize(b.Currency)
}

// Validate checks the budget for consistency.
func (b Budget) Validate() error {
	if b.Owner == "" {
		return fmt.Errorf("%w: the budget must have an owner", ErrValidation)
	}

	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: the name must not be empty", ErrValidation)
	}

	if b.Amount.IsNegative() {
		return fmt.Errorf("%w: the amount must not be negative", ErrValidation)
	}

	if b.Spent.IsNegative() {
		return fmt.Errorf("%w: the spent amount must not be negative", ErrValidation)
	}

	if strings.TrimSpace(b.Category) == "" {
		return fmt.Errorf("%w: the category must not be empty", ErrValidation)
	}

	if !b.Period.Valid() {
		return fmt.Errorf("%w: %s", ErrValidation, types.ErrInvalidPeriod)
	}

	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end date must be set", ErrValidation)
	}

	if !b.Range().Valid() {
		return fmt.Errorf("%w: the end date must not be before the start date", ErrValidation)
	}

	if !currency.Valid(b.Currency) {
		return fmt.Errorf("%w: '%s' is not a valid currency code", ErrValidation, b.Currency)
	}

	return nil
}

// Clone returns a copy of the budget.
func (b Budget) Clone() Budget {
	return b
}

// BeforeSave normalizes the budget.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Normalize()
	return nil
}

// AfterFind updates the timestamps to use UTC.
func (b *Budget) AfterFind(_ *gorm.DB) error {
	b.Normalize()
	return nil
}

// BudgetPatch holds the fields of a partial budget update. Nil fields are left untouched.
type BudgetPatch struct {
	Name      *string          `json:"name" example:"Groceries March"`
	Amount    *decimal.Decimal `json:"amount" example:"400"`
	Spent     *decimal.Decimal `json:"spent" example:"0"`
	Category  *string          `json:"category" example:"Food & Dining"`
	Period    *types.Period    `json:"period" example:"monthly"`
	StartDate *time.Time       `json:"startDate" example:"2024-03-01T00:00:00Z"`
	EndDate   *time.Time       `json:"endDate" example:"2024-03-31T00:00:00Z"`
	Currency  *string          `json:"currency" example:"USD"`
}

// Apply returns a copy of b with all set fields of the patch merged in.
//
// When the period changes and no explicit dates are given, the range is
// recomputed from the new period starting at the current start date.
func (p BudgetPatch) Apply(b Budget) Budget {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Spent != nil {
		b.Spent = *p.Spent
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Currency != nil {
		b.Currency = *p.Currency
	}
	if p.StartDate != nil {
		b.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		b.EndDate = *p.EndDate
	}
	if p.Period != nil && *p.Period != b.Period {
		b.Period = *p.Period
		if p.EndDate == nil {
			b.EndDate = time.Time{}
			b.FillRange(b.StartDate)
		}
	}

	return b
}
