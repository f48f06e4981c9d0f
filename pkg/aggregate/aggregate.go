// Package aggregate computes read-only summaries over an owner's transactions.
package aggregate

import (
	"context"
	"strings"

	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Transactions lists an owner's transactions.
type Transactions interface {
	List(ctx context.Context, owner string, filter ledger.TransactionFilter) ([]models.Transaction, error)
}

// Converter converts amounts between currencies and never fails.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal
}

// Aggregator sums transactions in a target currency.
//
// Every transaction is converted from its own currency with the
// converter, unknown pairs count 1:1.
type Aggregator struct {
	transactions Transactions
	converter    Converter
}

func New(transactions Transactions, converter Converter) *Aggregator {
	return &Aggregator{
		transactions: transactions,
		converter:    converter,
	}
}

// Totals are the summed income and expenses of a range.
type Totals struct {
	Currency string          `json:"currency" example:"USD"`
	Income   decimal.Decimal `json:"income" example:"2500"`
	Expense  decimal.Decimal `json:"expense" example:"1234.56"`
	Net      decimal.Decimal `json:"net" example:"1265.44"`
}

// CategoryAmount is the sum for one category.
type CategoryAmount struct {
	Category string          `json:"category" example:"Food & Dining"`
	Amount   decimal.Decimal `json:"amount" example:"123.45"`
}

// Balance is the sum of all income minus all expenses of the owner.
func (a *Aggregator) Balance(ctx context.Context, owner, target string) (decimal.Decimal, error) {
	transactions, err := a.transactions.List(ctx, owner, ledger.TransactionFilter{})
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, t := range transactions {
		amount := a.converter.Convert(ctx, t.Amount, t.Currency, target)
		if t.IsExpense() {
			amount = amount.Neg()
		}
		balance = balance.Add(amount)
	}

	return balance, nil
}

// SpendingByCategory sums the expenses in the inclusive range per category.
// Categories without expenses are not part of the result.
func (a *Aggregator) SpendingByCategory(ctx context.Context, owner string, rng types.DateRange, target string) (map[string]decimal.Decimal, error) {
	return a.byCategory(ctx, owner, models.Expense, rng, target)
}

// IncomeByCategory sums the income in the inclusive range per category.
func (a *Aggregator) IncomeByCategory(ctx context.Context, owner string, rng types.DateRange, target string) (map[string]decimal.Decimal, error) {
	return a.byCategory(ctx, owner, models.Income, rng, target)
}

// Totals sums income and expenses in the inclusive range.
func (a *Aggregator) Totals(ctx context.Context, owner string, rng types.DateRange, target string) (Totals, error) {
	transactions, err := a.transactions.List(ctx, owner, ledger.TransactionFilter{Range: rng})
	if err != nil {
		return Totals{}, err
	}

	totals := Totals{Currency: target, Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range transactions {
		amount := a.converter.Convert(ctx, t.Amount, t.Currency, target)
		if t.IsExpense() {
			totals.Expense = totals.Expense.Add(amount)
		} else {
			totals.Income = totals.Income.Add(amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expense)

	return totals, nil
}

func (a *Aggregator) byCategory(ctx context.Context, owner string, typ models.TransactionType, rng types.DateRange, target string) (map[string]decimal.Decimal, error) {
	transactions, err := a.transactions.List(ctx, owner, ledger.TransactionFilter{Range: rng, Type: typ})
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		sums[t.Category] = sums[t.Category].Add(a.converter.Convert(ctx, t.Amount, t.Currency, target))
	}

	return sums, nil
}

// Sorted returns the category sums with the largest amount first.
// Equal amounts are ordered by category name.
func Sorted(sums map[string]decimal.Decimal) []CategoryAmount {
	categories := maps.Keys(sums)
	slices.SortFunc(categories, func(a, b string) int {
		if c := sums[b].Cmp(sums[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	result := make([]CategoryAmount, 0, len(categories))
	for _, category := range categories {
		result = append(result, CategoryAmount{Category: category, Amount: sums[category]})
	}

	return result
}
