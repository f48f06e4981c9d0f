// Package currency holds the static currency reference data.
package currency

import (
	"strings"

	"golang.org/x/text/currency"
)

// Reference is the currency all offline rates are expressed against.
const Reference = "USD"

// Currency is a currency that can be selected for transactions and budgets.
type Currency struct {
	Code   string `json:"code" example:"EUR"`  // ISO 4217 code
	Name   string `json:"name" example:"Euro"` // Display name
	Symbol string `json:"symbol" example:"€"`  // Display symbol
}

var table = []Currency{
	{"USD", "US Dollar", "$"},
	{"EUR", "Euro", "€"},
	{"GBP", "British Pound", "£"},
	{"JPY", "Japanese Yen", "¥"},
	{"CAD", "Canadian Dollar", "C$"},
	{"AUD", "Australian Dollar", "A$"},
	{"CHF", "Swiss Franc", "CHF"},
	{"CNY", "Chinese Yuan", "¥"},
	{"INR", "Indian Rupee", "₹"},
	{"MXN", "Mexican Peso", "$"},
	{"BRL", "Brazilian Real", "R$"},
	{"KRW", "South Korean Won", "₩"},
	{"SGD", "Singapore Dollar", "S$"},
	{"HKD", "Hong Kong Dollar", "HK$"},
	{"NZD", "New Zealand Dollar", "NZ$"},
	{"SEK", "Swedish Krona", "kr"},
	{"NOK", "Norwegian Krone", "kr"},
	{"ZAR", "South African Rand", "R"},
	{"TRY", "Turkish Lira", "₺"},
}

var byCode = func() map[string]Currency {
	m := make(map[string]Currency, len(table))
	for _, c := range table {
		m[c.Code] = c
	}
	return m
}()

// All returns the currency table in display order.
func All() []Currency {
	out := make([]Currency, len(table))
	copy(out, table)
	return out
}

// Lookup returns the table entry for code.
func Lookup(code string) (Currency, bool) {
	c, ok := byCode[Normalize(code)]
	return c, ok
}

// Normalize trims and upper-cases a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code is an ISO 4217 currency code.
//
// Codes outside the table are valid as long as ISO knows them, conversion
// for them falls back to the identity rate.
func Valid(code string) bool {
	code = Normalize(code)
	if len(code) != 3 {
		return false
	}

	_, err := currency.ParseISO(code)
	return err == nil
}

// Symbol returns the display symbol for code, or the code itself for
// currencies outside the table.
func Symbol(code string) string {
	if c, ok := Lookup(code); ok {
		return c.Symbol
	}
	return Normalize(code)
}
