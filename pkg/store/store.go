// Package store defines the remote document store the ledgers persist to.
package store

import "context"

// Collection names.
const (
	Transactions = "transactions"
	Budgets      = "budgets"
)

// Query selects all documents where Field equals Value, sorted by OrderBy.
// Field names are the storage names, e.g. "owner" or "start_date".
type Query struct {
	Field      string
	Value      any
	OrderBy    string
	Descending bool
}

// Store is a collection of documents of type T keyed by an opaque id.
//
// Get, Patch and Delete return an error wrapping models.ErrResourceNotFound
// when there is no document for the id. All other failures wrap models.ErrRemote.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Put(ctx context.Context, id string, doc T) error
	Patch(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q Query) ([]T, error)
}
