// Package reconcile keeps the spent amounts of budgets in line with
// the expense transactions they cover.
package reconcile

import (
	"context"
	"time"

	"github.com/pocketledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Budgets is the part of the budget ledger reconciliation works with.
type Budgets interface {
	Matching(ctx context.Context, owner, category string, date time.Time) ([]models.Budget, error)
	AdjustSpent(ctx context.Context, id string, delta decimal.Decimal) (models.Budget, error)
}

// Converter converts amounts between currencies and never fails.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal
}

// Engine applies transaction changes to budgets.
//
// None of its methods return errors. Failures are logged and the
// remaining budgets are still processed. There is no rollback.
type Engine struct {
	budgets   Budgets
	converter Converter
}

func New(budgets Budgets, converter Converter) *Engine {
	return &Engine{
		budgets:   budgets,
		converter: converter,
	}
}

// Created adds a new expense to all budgets it falls into.
func (e *Engine) Created(ctx context.Context, s Snapshot) {
	if s.IsExpense() {
		e.apply(ctx, s, false)
	}
}

// Deleted removes a deleted expense from all budgets it fell into.
func (e *Engine) Deleted(ctx context.Context, s Snapshot) {
	if s.IsExpense() {
		e.apply(ctx, s, true)
	}
}

// Updated reverses before and applies after.
//
// Both passes look up their budgets independently, so a budget matching
// both states is first decremented and then incremented.
func (e *Engine) Updated(ctx context.Context, before, after Snapshot) {
	if !before.Affects(after) {
		return
	}

	if before.IsExpense() {
		e.apply(ctx, before, true)
	}

	if after.IsExpense() {
		e.apply(ctx, after, false)
	}
}

func (e *Engine) apply(ctx context.Context, s Snapshot, reverse bool) {
	budgets, err := e.budgets.Matching(ctx, s.Owner, s.Category, s.Date)
	if err != nil {
		log.Error().Err(err).Str("transaction", s.ID).Msg("could not look up budgets for reconciliation")
		return
	}

	for _, budget := range budgets {
		delta := e.converter.Convert(ctx, s.Amount, s.Currency, budget.Currency)
		if reverse {
			delta = delta.Neg()
		}

		updated, err := e.budgets.AdjustSpent(ctx, budget.ID, delta)
		if err != nil {
			log.Error().Err(err).Str("transaction", s.ID).Str("budget", budget.ID).Msg("could not adjust budget")
			continue
		}

		log.Debug().
			Str("transaction", s.ID).
			Str("budget", budget.ID).
			Str("delta", delta.String()).
			Str("spent", updated.Spent.String()).
			Msg("budget reconciled")
	}
}
