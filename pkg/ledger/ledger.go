package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocketledger/backend/pkg/currency"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/reconcile"
)

// Reconciler is notified about every successful transaction mutation.
type Reconciler interface {
	Created(ctx context.Context, s reconcile.Snapshot)
	Updated(ctx context.Context, before, after reconcile.Snapshot)
	Deleted(ctx context.Context, s reconcile.Snapshot)
}

// Preferences provides per-owner defaults.
type Preferences interface {
	DefaultCurrency(ctx context.Context, owner string) string
}

func defaultCurrency(ctx context.Context, preferences Preferences, owner string) string {
	if preferences == nil {
		return currency.Reference
	}

	return preferences.DefaultCurrency(ctx, owner)
}

// checkNew rejects client supplied IDs that are already taken.
func checkNew[T Record[T]](ctx context.Context, repo *Repository[T], id string) error {
	_, err := repo.remote.Get(ctx, id)
	if err == nil {
		return fmt.Errorf("%w: a resource with the ID '%s' already exists", models.ErrValidation, id)
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return nil
	}

	return err
}
