package reconcile

import (
	"time"

	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Snapshot is an immutable copy of the transaction fields that affect budgets.
type Snapshot struct {
	ID       string
	Owner    string
	Type     models.TransactionType
	Category string
	Amount   decimal.Decimal
	Currency string
	Date     time.Time
}

// SnapshotOf captures the state of a transaction.
func SnapshotOf(t models.Transaction) Snapshot {
	return Snapshot{
		ID:       t.ID,
		Owner:    t.Owner,
		Type:     t.Type,
		Category: t.Category,
		Amount:   t.Amount,
		Currency: t.Currency,
		Date:     types.DayOf(t.Date),
	}
}

func (s Snapshot) IsExpense() bool {
	return s.Type == models.Expense
}

// Affects reports whether moving from s to other can change any budget.
//
// Description and tags are not part of a snapshot and never do.
func (s Snapshot) Affects(other Snapshot) bool {
	return s.Type != other.Type ||
		s.Category != other.Category ||
		!s.Amount.Equal(other.Amount) ||
		s.Currency != other.Currency ||
		!s.Date.Equal(other.Date)
}
