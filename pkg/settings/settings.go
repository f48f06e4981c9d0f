// Package settings persists per-owner preferences in the local database.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pocketledger/backend/pkg/currency"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	keyDefaultCurrency = "default_currency"
	keyHistory         = "conversion_history"
)

// HistorySize is the number of conversions kept per owner.
const HistorySize = 10

// Conversion is a currency conversion the owner performed.
type Conversion struct {
	Amount decimal.Decimal `json:"amount" example:"100"`
	From   string          `json:"from" example:"USD"`
	To     string          `json:"to" example:"EUR"`
	Rate   decimal.Decimal `json:"rate" example:"0.92"`
	Result decimal.Decimal `json:"result" example:"92"`
	At     time.Time       `json:"at" example:"2024-03-15T12:00:00Z"`
}

// Store reads and writes settings.
type Store struct {
	db       *gorm.DB
	fallback string
}

// New returns a settings store. fallback is the default currency for owners without a preference.
func New(db *gorm.DB, fallback string) *Store {
	if fallback == "" {
		fallback = currency.Reference
	}

	return &Store{db: db, fallback: fallback}
}

// DefaultCurrency returns the owner's default currency.
//
// Read errors are logged and the fallback currency is returned.
func (s *Store) DefaultCurrency(ctx context.Context, owner string) string {
	value, err := s.get(ctx, owner, keyDefaultCurrency)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Str("owner", owner).Msg("could not read default currency")
		}
		return s.fallback
	}

	return value
}

// SetDefaultCurrency stores the owner's default currency.
func (s *Store) SetDefaultCurrency(ctx context.Context, owner, code string) error {
	code = currency.Normalize(code)
	if !currency.Valid(code) {
		return fmt.Errorf("%w: '%s' is not a valid currency code", models.ErrValidation, code)
	}

	return s.set(ctx, owner, keyDefaultCurrency, code)
}

// History returns the owner's recent conversions, newest first.
func (s *Store) History(ctx context.Context, owner string) ([]Conversion, error) {
	history := make([]Conversion, 0)

	value, err := s.get(ctx, owner, keyHistory)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return history, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrGeneral, err)
	}

	err = json.Unmarshal([]byte(value), &history)
	if err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("discarding unreadable conversion history")
		return make([]Conversion, 0), nil
	}

	return history, nil
}

// AddConversion records a conversion and returns the updated history.
func (s *Store) AddConversion(ctx context.Context, owner string, c Conversion) ([]Conversion, error) {
	history, err := s.History(ctx, owner)
	if err != nil {
		return nil, err
	}

	history = append([]Conversion{c}, history...)
	if len(history) > HistorySize {
		history = history[:HistorySize]
	}

	value, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrGeneral, err)
	}

	err = s.set(ctx, owner, keyHistory, string(value))
	if err != nil {
		return nil, err
	}

	return history, nil
}

// Ping checks that the settings database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrRemote, err)
	}

	return nil
}

func (s *Store) get(ctx context.Context, owner, key string) (string, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).Where(&models.Setting{Owner: owner, Key: key}).First(&setting).Error
	if err != nil {
		return "", err
	}

	return setting.Value, nil
}

func (s *Store) set(ctx context.Context, owner, key, value string) error {
	setting := models.Setting{Owner: owner, Key: key, Value: value}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrGeneral, err)
	}

	return nil
}
