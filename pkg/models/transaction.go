package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/pocketledger/backend/pkg/currency"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports if the type is known.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction is a single income or expense.
//
// The sign is carried by Type, Amount is never negative.
type Transaction struct {
	DefaultModel     `bson:",inline"`
	Amount           decimal.Decimal  `json:"amount" gorm:"type:DECIMAL(20,8)" bson:"amount" example:"14.03"`
	Type             TransactionType  `json:"type" bson:"type" example:"expense"`
	Category         string           `json:"category" gorm:"index" bson:"category" example:"Food & Dining"`
	Description      string           `json:"description" bson:"description" example:"Lunch"`
	Date             time.Time        `json:"date" gorm:"index" bson:"date" example:"2024-03-15T12:00:00Z"`
	Tags             []string         `json:"tags" gorm:"serializer:json" bson:"tags"`
	Currency         string           `json:"currency" bson:"currency" example:"USD"`
	OriginalAmount   *decimal.Decimal `json:"originalAmount,omitempty" gorm:"type:DECIMAL(20,8)" bson:"original_amount,omitempty" example:"12.90"`
	OriginalCurrency string           `json:"originalCurrency,omitempty" bson:"original_currency,omitempty" example:"EUR"`
}

// IsExpense reports if the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == Expense
}

// Signed returns the amount with the sign given by the type.
func (t Transaction) Signed() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Normalize
//   - sets the timezone for all dates to UTC
//   - upper-cases currency codes
//   - trims whitespace from string fields
func (t *Transaction) Normalize() {
	t.DefaultModel.utc()
	t.Date = t.Date.In(time.UTC)
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)
	t.Currency = currency.Normalize(t.Currency)
	t.OriginalCurrency = currency.Normalize(t.OriginalCurrency)

	if t.Tags == nil {
		t.Tags = []string{}
	}
}

// Validate checks the transaction for consistency.
func (t Transaction) Validate() error {
	if t.Owner == "" {
		return fmt.Errorf("%w: the transaction must have an owner", ErrValidation)
	}

	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: the amount must not be negative", ErrValidation)
	}

	if !t.Type.Valid() {
		return fmt.Errorf("%w: the type must be '%s' or '%s'", ErrValidation, Income, Expense)
	}

	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: the category must not be empty", ErrValidation)
	}

	if t.Date.IsZero() {
		return fmt.Errorf("%w: the date must be set", ErrValidation)
	}

	if !currency.Valid(t.Currency) {
		return fmt.Errorf("%w: '%s' is not a valid currency code", ErrValidation, t.Currency)
	}

	if t.OriginalAmount != nil && t.OriginalAmount.IsNegative() {
		return fmt.Errorf("%w: the original amount must not be negative", ErrValidation)
	}

	if t.OriginalCurrency != "" && !currency.Valid(t.OriginalCurrency) {
		return fmt.Errorf("%w: '%s' is not a valid currency code", ErrValidation, t.OriginalCurrency)
	}

	return nil
}

// BeforeSave normalizes the transaction.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Normalize()
	return nil
}

// AfterFind updates the timestamps to use UTC.
func (t *Transaction) AfterFind(_ *gorm.DB) error {
	t.Normalize()
	return nil
}

// TransactionPatch holds the fields of a partial update. Nil fields are left untouched.
type TransactionPatch struct {
	Amount           *decimal.Decimal `json:"amount" example:"14.03"`
	Type             *TransactionType `json:"type" example:"expense"`
	Category         *string          `json:"category" example:"Food & Dining"`
	Description      *string          `json:"description" example:"Lunch"`
	Date             *time.Time       `json:"date" example:"2024-03-15T12:00:00Z"`
	Tags             *[]string        `json:"tags"`
	Currency         *string          `json:"currency" example:"USD"`
	OriginalAmount   *decimal.Decimal `json:"originalAmount" example:"12.90"`
	OriginalCurrency *string          `json:"originalCurrency" example:"EUR"`
}

// Apply returns a copy of t with all set fields of the patch merged in.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Tags != nil {
		t.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Currency != nil {
		t.Currency = *p.Currency
	}
	if p.OriginalAmount != nil {
		amount := *p.OriginalAmount
		t.OriginalAmount = &amount
	}
	if p.OriginalCurrency != nil {
		t.OriginalCurrency = *p.OriginalCurrency
	}

	return t
}

// Clone returns a deep copy of the transaction.
func (t Transaction) Clone() Transaction {
	if t.Tags != nil {
		t.Tags = append([]string{}, t.Tags...)
	}

	if t.OriginalAmount != nil {
		amount := *t.OriginalAmount
		t.OriginalAmount = &amount
	}

	return t
}
