// Package ledger implements the transaction and budget ledgers on top of
// a remote store with a local, owner-scoped cache.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/store"
)

// Record is a document that can be held by a Repository.
type Record[T any] interface {
	GetID() string
	GetOwner() string
	Clone() T
}

// Repository keeps a local index of the documents of a remote collection.
//
// Writes go to the remote store first and are applied to the index after they
// succeeded. The documents of an owner are loaded on first access.
// Callers serialize read-modify-write sequences with lock and unlock.
type Repository[T Record[T]] struct {
	remote store.Store[T]

	mutation sync.Mutex

	mu     sync.RWMutex
	index  map[string]T
	loaded map[string]bool
}

// NewRepository returns an empty repository for the remote store.
func NewRepository[T Record[T]](remote store.Store[T]) *Repository[T] {
	return &Repository[T]{
		remote: remote,
		index:  make(map[string]T),
		loaded: make(map[string]bool),
	}
}

func (r *Repository[T]) lock() {
	r.mutation.Lock()
}

func (r *Repository[T]) unlock() {
	r.mutation.Unlock()
}

// Get reads the document from the remote store and refreshes the index.
//
// Documents of other owners are reported as not found.
func (r *Repository[T]) Get(ctx context.Context, owner, id string) (T, error) {
	doc, err := r.remote.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}

	if doc.GetOwner() != owner {
		var zero T
		return zero, fmt.Errorf("get %s: %w", id, models.ErrResourceNotFound)
	}

	r.set(doc)
	return doc.Clone(), nil
}

// current returns the document as it is before a mutation.
//
// If the remote store does not have the document but the index still
// does, the cached copy is returned and detached is true.
func (r *Repository[T]) current(ctx context.Context, owner, id string) (doc T, detached bool, err error) {
	doc, err = r.Get(ctx, owner, id)
	if err == nil {
		return doc, false, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return doc, false, err
	}

	cached, ok := r.Cached(id)
	if !ok || cached.GetOwner() != owner {
		return doc, false, err
	}

	return cached, true, nil
}

// Cached returns a copy of the indexed document.
func (r *Repository[T]) Cached(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.index[id]
	if !ok {
		return doc, false
	}

	return doc.Clone(), true
}

// Put writes the full document remotely, then indexes it.
func (r *Repository[T]) Put(ctx context.Context, doc T) error {
	err := r.remote.Put(ctx, doc.GetID(), doc)
	if err != nil {
		return err
	}

	r.set(doc)
	return nil
}

// Patch writes fields remotely and indexes updated, which must carry the same changes.
func (r *Repository[T]) Patch(ctx context.Context, updated T, fields map[string]any) error {
	err := r.remote.Patch(ctx, updated.GetID(), fields)
	if err != nil {
		return err
	}

	r.set(updated)
	return nil
}

// Delete removes the document remotely and from the index.
//
// A document the remote store does not know is evicted from the index as well.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	err := r.remote.Delete(ctx, id)
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		return err
	}

	r.mu.Lock()
	delete(r.index, id)
	r.mu.Unlock()

	return err
}

// All returns copies of all documents of the owner.
func (r *Repository[T]) All(ctx context.Context, owner string) ([]T, error) {
	err := r.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]T, 0)
	for _, doc := range r.index {
		if doc.GetOwner() == owner {
			docs = append(docs, doc.Clone())
		}
	}

	return docs, nil
}

// load fetches the owner's documents once.
//
// The index stays write locked during the query so that concurrent writes
// are applied after the loaded state.
func (r *Repository[T]) load(ctx context.Context, owner string) error {
	r.mu.RLock()
	loaded := r.loaded[owner]
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded[owner] {
		return nil
	}

	docs, err := r.remote.Query(ctx, store.Query{Field: "owner", Value: owner})
	if err != nil {
		return err
	}

	for _, doc := range docs {
		r.index[doc.GetID()] = doc
	}
	r.loaded[owner] = true

	return nil
}

// evictStale drops the owner's cached document when err reports it missing remotely.
func (r *Repository[T]) evictStale(owner, id string, err error) {
	if !errors.Is(err, models.ErrResourceNotFound) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if doc, ok := r.index[id]; ok && doc.GetOwner() == owner {
		delete(r.index, id)
	}
}

func (r *Repository[T]) set(doc T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.index[doc.GetID()] = doc.Clone()
}
