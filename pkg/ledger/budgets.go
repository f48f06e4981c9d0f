package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BudgetFilter restricts a budget listing. Zero fields match everything.
type BudgetFilter struct {
	Category string
	Period   types.Period
	Active   time.Time // only budgets whose range contains this day
}

func (f BudgetFilter) matches(b models.Budget) bool {
	if f.Category != "" && b.Category != f.Category {
		return false
	}

	if f.Period != "" && b.Period != f.Period {
		return false
	}

	if !f.Active.IsZero() && !b.Range().Contains(f.Active) {
		return false
	}

	return true
}

// Converter converts amounts between currencies.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal
}

// Budgets is the budget ledger.
//
// Budget mutations do not trigger reconciliation. Spent is changed by
// AdjustSpent and Recalculate.
type Budgets struct {
	repo        *Repository[models.Budget]
	converter   Converter
	preferences Preferences
	now         func() time.Time
}

// NewBudgets creates the ledger. preferences may be nil.
func NewBudgets(remote store.Store[models.Budget], converter Converter, preferences Preferences) *Budgets {
	return &Budgets{
		repo:        NewRepository(remote),
		converter:   converter,
		preferences: preferences,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new budget for the owner and returns its ID.
//
// Missing start and end dates are derived from the period.
func (l *Budgets) Create(ctx context.Context, owner string, b models.Budget) (string, error) {
	l.repo.lock()
	defer l.repo.unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	} else if err := checkNew(ctx, l.repo, b.ID); err != nil {
		return "", err
	}

	now := l.now()
	b.Owner = owner
	b.CreatedAt = now
	b.UpdatedAt = now

	if b.Currency == "" {
		b.Currency = defaultCurrency(ctx, l.preferences, owner)
	}

	if b.Period.Valid() {
		b.FillRange(now)
	}

	b.Normalize()
	err := b.Validate()
	if err != nil {
		return "", err
	}

	err = l.repo.Put(ctx, b)
	if err != nil {
		return "", err
	}

	return b.ID, nil
}

// Update applies the patch to the budget and returns the result.
func (l *Budgets) Update(ctx context.Context, owner, id string, patch models.BudgetPatch) (models.Budget, error) {
	l.repo.lock()
	defer l.repo.unlock()

	before, detached, err := l.repo.current(ctx, owner, id)
	if err != nil {
		return models.Budget{}, err
	}

	after := patch.Apply(before.Clone())
	if after.Period.Valid() {
		after.FillRange(l.now())
	}
	after.UpdatedAt = l.now()
	after.Normalize()

	err = after.Validate()
	if err != nil {
		return models.Budget{}, err
	}

	err = l.repo.Put(ctx, after)
	if err != nil {
		return models.Budget{}, err
	}

	if detached {
		log.Warn().Str("budget", id).Msg("budget was missing remotely, updated from cache")
	}

	return after, nil
}

// Delete removes the budget.
func (l *Budgets) Delete(ctx context.Context, owner, id string) error {
	l.repo.lock()
	defer l.repo.unlock()

	_, err := l.repo.Get(ctx, owner, id)
	if err != nil {
		l.repo.evictStale(owner, id, err)
		return err
	}

	return l.repo.Delete(ctx, id)
}

func (l *Budgets) Get(ctx context.Context, owner, id string) (models.Budget, error) {
	return l.repo.Get(ctx, owner, id)
}

// List returns the owner's budgets matching the filter, latest start date first.
func (l *Budgets) List(ctx context.Context, owner string, filter BudgetFilter) ([]models.Budget, error) {
	all, err := l.repo.All(ctx, owner)
	if err != nil {
		return nil, err
	}

	budgets := make([]models.Budget, 0, len(all))
	for _, b := range all {
		if filter.matches(b) {
			budgets = append(budgets, b)
		}
	}

	slices.SortStableFunc(budgets, func(a, b models.Budget) int {
		if c := b.StartDate.Compare(a.StartDate); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return budgets, nil
}

// Matching returns the owner's budgets for the category whose range contains date.
func (l *Budgets) Matching(ctx context.Context, owner, category string, date time.Time) ([]models.Budget, error) {
	all, err := l.repo.All(ctx, owner)
	if err != nil {
		return nil, err
	}

	budgets := make([]models.Budget, 0)
	for _, b := range all {
		if b.Covers(category, date) {
			budgets = append(budgets, b)
		}
	}

	slices.SortFunc(budgets, func(a, b models.Budget) int {
		return strings.Compare(a.ID, b.ID)
	})

	return budgets, nil
}

// AdjustSpent adds delta to the spent amount of the budget, clamping the result at zero.
//
// Only spent and the update time are written to the remote store.
func (l *Budgets) AdjustSpent(ctx context.Context, id string, delta decimal.Decimal) (models.Budget, error) {
	l.repo.lock()
	defer l.repo.unlock()

	b, err := l.repo.remote.Get(ctx, id)
	if err != nil {
		return models.Budget{}, err
	}

	spent := b.Spent.Add(delta)
	if spent.IsNegative() {
		log.Debug().Str("budget", id).Str("spent", spent.String()).Msg("clamping spent at zero")
		spent = decimal.Zero
	}

	return l.setSpent(ctx, b, spent)
}

// Recalculate rebuilds the spent amount of the budget from the given transactions.
//
// Only expenses of the budget's owner in its category and range are counted,
// converted to the budget currency with the current rates.
func (l *Budgets) Recalculate(ctx context.Context, owner, id string, transactions []models.Transaction) (models.Budget, error) {
	l.repo.lock()
	defer l.repo.unlock()

	b, err := l.repo.Get(ctx, owner, id)
	if err != nil {
		return models.Budget{}, err
	}

	spent := decimal.Zero
	for _, t := range transactions {
		if t.Owner != owner || !t.IsExpense() || !b.Covers(t.Category, t.Date) {
			continue
		}

		spent = spent.Add(l.converter.Convert(ctx, t.Amount, t.Currency, b.Currency))
	}

	log.Info().Str("budget", id).Str("before", b.Spent.String()).Str("after", spent.String()).Msg("budget recalculated")
	return l.setSpent(ctx, b, spent)
}

func (l *Budgets) setSpent(ctx context.Context, b models.Budget, spent decimal.Decimal) (models.Budget, error) {
	b.Spent = spent
	b.UpdatedAt = l.now()

	err := l.repo.Patch(ctx, b, map[string]any{
		"spent":      b.Spent,
		"updated_at": b.UpdatedAt,
	})
	if err != nil {
		return models.Budget{}, err
	}

	return b, nil
}
