// Package rates provides exchange rates and currency conversion.
package rates

import (
	"context"
	"errors"

	"github.com/pocketledger/backend/pkg/currency"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrNoRate is returned by a Source that does not know the requested pair.
var ErrNoRate = errors.New("no exchange rate known for the currency pair")

// Places is the number of decimal places converted amounts are rounded to.
const Places = 8

// Source looks up the rate to multiply an amount in from with to get the amount in to.
type Source interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Converter converts amounts between currencies.
//
// Conversion never fails. If no rate can be found, the amount is returned unchanged.
type Converter struct {
	source Source
}

// NewConverter returns a converter using the given rate source.
func NewConverter(source Source) *Converter {
	return &Converter{source: source}
}

// Rate returns the effective rate from one currency to another.
//
// A direct rate is preferred, then a two-hop rate via the reference currency.
// The second return value is false when the identity rate was used as a fallback.
func (c *Converter) Rate(ctx context.Context, from, to string) (decimal.Decimal, bool) {
	from = currency.Normalize(from)
	to = currency.Normalize(to)

	if from == to {
		return decimal.NewFromInt(1), true
	}

	rate, err := c.source.Rate(ctx, from, to)
	if err == nil {
		return rate, true
	}

	if from != currency.Reference && to != currency.Reference {
		toReference, errFrom := c.source.Rate(ctx, from, currency.Reference)
		fromReference, errTo := c.source.Rate(ctx, currency.Reference, to)
		if errFrom == nil && errTo == nil {
			return toReference.Mul(fromReference), true
		}
	}

	log.Warn().Str("from", from).Str("to", to).Err(err).Msg("no exchange rate, converting 1:1")
	return decimal.NewFromInt(1), false
}

// Convert converts amount from one currency to another, rounded to Places.
//
// Equal codes return the amount exactly, even for unknown currencies.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	if currency.Normalize(from) == currency.Normalize(to) {
		return amount
	}

	rate, ok := c.Rate(ctx, from, to)
	if !ok {
		return amount
	}

	return amount.Mul(rate).Round(Places)
}
