// Package gormstore implements store.Store on top of gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a gorm backed collection. The table is derived from T.
type Store[T any] struct {
	db *gorm.DB
}

var (
	_ store.Store[models.Transaction] = (*Store[models.Transaction])(nil)
	_ store.Store[models.Budget]      = (*Store[models.Budget])(nil)
)

// New returns a store for documents of type T.
func New[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		return doc, wrap(err)
	}

	return doc, nil
}

// Put writes the full document, replacing any stored version.
//
// All columns are taken from doc, including the timestamps.
func (s *Store[T]) Put(ctx context.Context, _ string, doc T) error {
	columns, err := s.columns()
	if err != nil {
		return wrap(err)
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&doc).Error
	if err != nil {
		return wrap(err)
	}

	return nil
}

// columns returns the names of all columns of T except the primary key.
func (s *Store[T]) columns() ([]string, error) {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(stmt.Schema.DBNames))
	for _, name := range stmt.Schema.DBNames {
		if stmt.Schema.FieldsByDBName[name].PrimaryKey {
			continue
		}
		columns = append(columns, name)
	}

	return columns, nil
}

func (s *Store[T]) Patch(ctx context.Context, id string, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return wrap(result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("patch %s: %w", id, models.ErrResourceNotFound)
	}

	return nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return wrap(result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %s: %w", id, models.ErrResourceNotFound)
	}

	return nil
}

func (s *Store[T]) Query(ctx context.Context, q store.Query) ([]T, error) {
	tx := s.db.WithContext(ctx).Where(map[string]any{q.Field: q.Value})
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: q.Descending})
	}

	docs := make([]T, 0)
	err := tx.Find(&docs).Error
	if err != nil {
		return nil, wrap(err)
	}

	return docs, nil
}

// Ping checks that the underlying database is reachable.
func (s *Store[T]) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrap(err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return wrap(err)
	}

	return nil
}

// wrap translates gorm errors to the store error contract.
func wrap(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", models.ErrResourceNotFound, err)
	}

	return fmt.Errorf("%w: %w", models.ErrRemote, err)
}
