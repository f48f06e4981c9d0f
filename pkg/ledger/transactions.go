package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/reconcile"
	"github.com/pocketledger/backend/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// TransactionFilter restricts a transaction listing. Zero fields match everything.
type TransactionFilter struct {
	Range       types.DateRange
	Type        models.TransactionType
	Category    string
	Description string // glob pattern, '*' matches any sequence, case insensitive
	Tag         string
}

func (f TransactionFilter) matches(t models.Transaction) bool {
	if !f.Range.Contains(t.Date) {
		return false
	}

	if f.Type != "" && t.Type != f.Type {
		return false
	}

	if f.Category != "" && t.Category != f.Category {
		return false
	}

	if f.Description != "" && !glob.Glob(strings.ToLower(f.Description), strings.ToLower(t.Description)) {
		return false
	}

	if f.Tag != "" && !slices.Contains(t.Tags, f.Tag) {
		return false
	}

	return true
}

// Transactions is the transaction ledger.
type Transactions struct {
	repo        *Repository[models.Transaction]
	reconciler  Reconciler
	preferences Preferences
	now         func() time.Time
}

// NewTransactions creates the ledger. preferences may be nil.
func NewTransactions(remote store.Store[models.Transaction], reconciler Reconciler, preferences Preferences) *Transactions {
	return &Transactions{
		repo:        NewRepository(remote),
		reconciler:  reconciler,
		preferences: preferences,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new transaction for the owner and returns its ID.
//
// A missing currency is filled in from the owner's default currency,
// a missing date with the current time.
func (l *Transactions) Create(ctx context.Context, owner string, t models.Transaction) (string, error) {
	l.repo.lock()
	defer l.repo.unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	} else if err := checkNew(ctx, l.repo, t.ID); err != nil {
		return "", err
	}

	now := l.now()
	t.Owner = owner
	t.CreatedAt = now
	t.UpdatedAt = now

	if t.Currency == "" {
		t.Currency = defaultCurrency(ctx, l.preferences, owner)
	}

	if t.Date.IsZero() {
		t.Date = now
	}

	t.Normalize()
	err := t.Validate()
	if err != nil {
		return "", err
	}

	err = l.repo.Put(ctx, t)
	if err != nil {
		return "", err
	}

	l.reconciler.Created(ctx, reconcile.SnapshotOf(t))
	return t.ID, nil
}

// Update applies the patch to the transaction and returns the result.
func (l *Transactions) Update(ctx context.Context, owner, id string, patch models.TransactionPatch) (models.Transaction, error) {
	l.repo.lock()
	defer l.repo.unlock()

	before, detached, err := l.repo.current(ctx, owner, id)
	if err != nil {
		return models.Transaction{}, err
	}

	after := patch.Apply(before.Clone())
	after.UpdatedAt = l.now()
	after.Normalize()

	err = after.Validate()
	if err != nil {
		return models.Transaction{}, err
	}

	err = l.repo.Put(ctx, after)
	if err != nil {
		return models.Transaction{}, err
	}

	if detached {
		log.Warn().Str("transaction", id).Msg("transaction was missing remotely, updated from cache without reconciling budgets")
		return after, nil
	}

	l.reconciler.Updated(ctx, reconcile.SnapshotOf(before), reconcile.SnapshotOf(after))
	return after, nil
}

// Delete removes the transaction.
func (l *Transactions) Delete(ctx context.Context, owner, id string) error {
	l.repo.lock()
	defer l.repo.unlock()

	before, err := l.repo.Get(ctx, owner, id)
	if err != nil {
		l.repo.evictStale(owner, id, err)
		return err
	}

	err = l.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	l.reconciler.Deleted(ctx, reconcile.SnapshotOf(before))
	return nil
}

func (l *Transactions) Get(ctx context.Context, owner, id string) (models.Transaction, error) {
	return l.repo.Get(ctx, owner, id)
}

// List returns the owner's transactions matching the filter, newest first.
func (l *Transactions) List(ctx context.Context, owner string, filter TransactionFilter) ([]models.Transaction, error) {
	all, err := l.repo.All(ctx, owner)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if filter.matches(t) {
			transactions = append(transactions, t)
		}
	}

	slices.SortStableFunc(transactions, func(a, b models.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return transactions, nil
}
