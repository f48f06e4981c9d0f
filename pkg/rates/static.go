package rates

import (
	"context"
	"fmt"

	"github.com/pocketledger/backend/pkg/currency"
	"github.com/shopspring/decimal"
)

// Static is an offline rate table keyed by source and target currency.
type Static map[string]map[string]decimal.Decimal

// DefaultStatic returns a table with approximate rates of all known
// currencies against the reference currency.
func DefaultStatic() Static {
	usd := map[string]string{
		"EUR": "0.92",
		"GBP": "0.79",
		"JPY": "149.50",
		"CAD": "1.36",
		"AUD": "1.53",
		"CHF": "0.88",
		"CNY": "7.24",
		"INR": "83.12",
		"MXN": "17.05",
		"BRL": "4.97",
		"KRW": "1330.00",
		"SGD": "1.34",
		"HKD": "7.82",
		"NZD": "1.64",
		"SEK": "10.42",
		"NOK": "10.55",
		"ZAR": "18.65",
		"TRY": "32.20",
	}

	row := make(map[string]decimal.Decimal, len(usd))
	for code, rate := range usd {
		row[code] = decimal.RequireFromString(rate)
	}

	return Static{currency.Reference: row}
}

// Rate looks up the pair directly, then as the inverse of the reverse pair.
func (s Static) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	if rate, ok := s[from][to]; ok {
		return rate, nil
	}

	if rate, ok := s[to][from]; ok && !rate.IsZero() {
		return decimal.NewFromInt(1).DivRound(rate, 16), nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s to %s", ErrNoRate, from, to)
}
