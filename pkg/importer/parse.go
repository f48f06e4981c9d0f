// Package importer reads transactions from CSV files in the YNAB import format.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Columns of the YNAB import format.
const (
	Date = iota
	Payee
	Memo
	Outflow
	Inflow
)

// DateLayout is the date format of the YNAB import format.
const DateLayout = "01/02/2006"

// namespace for the IDs of imported transactions.
var namespace = uuid.MustParse("1c3b8f0e-6f43-4d0a-9a41-5d2f1b8e0c27")

// Options controls how lines are turned into transactions.
type Options struct {
	Category string // Category for all transactions, "Other" when empty
	Currency string // Currency for all transactions, the ledger default when empty
}

// Parse parses a YNAB import CSV file into transactions of owner.
//
// Outflows become expenses, inflows become income. The ID of each
// transaction is derived from the owner and the line, importing the
// same line twice results in the same ID.
func Parse(f io.Reader, owner string, opts Options) ([]models.Transaction, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true
	reader.FieldsPerRecord = 5

	category := opts.Category
	if strings.TrimSpace(category) == "" {
		category = "Other"
	}

	transactions := make([]models.Transaction, 0)

	// Skip the header line
	_, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return transactions, nil
	}
	if err != nil {
		return csvReadError(reader, fmt.Errorf("could not read header: %w", err))
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		date, err := time.Parse(DateLayout, record[Date])
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse time: %w", err))
		}

		t := models.Transaction{
			DefaultModel: models.DefaultModel{
				ID: uuid.NewSHA1(namespace, []byte(owner+"\n"+strings.Join(record, ","))).String(),
			},
			Category:    category,
			Description: description(record[Payee], record[Memo]),
			Date:        date,
			Currency:    opts.Currency,
		}

		var amount string
		switch {
		case record[Outflow] != "" && record[Inflow] != "":
			return csvReadError(reader, errors.New("both outflow and inflow are set for the transaction"))
		case record[Outflow] == "" && record[Inflow] == "":
			return csvReadError(reader, errors.New("no amount is set for the transaction"))
		case record[Outflow] != "":
			t.Type = models.Expense
			amount = record[Outflow]
		default:
			t.Type = models.Income
			amount = record[Inflow]
		}

		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return csvReadError(reader, fmt.Errorf("%s could not be parsed to a decimal", t.Type))
		}

		if !t.Amount.IsPositive() {
			return csvReadError(reader, errors.New("the amount for a transaction must be positive"))
		}

		transactions = append(transactions, t)
	}

	return transactions, nil
}

func description(payee, memo string) string {
	payee, memo = strings.TrimSpace(payee), strings.TrimSpace(memo)
	if payee == "" || memo == "" {
		return payee + memo
	}

	return payee + ": " + memo
}

// csvReadError returns an error including the line of the input the error occurred in.
func csvReadError(r *csv.Reader, err error) ([]models.Transaction, error) {
	var line int

	// Records are not returned for most parse errors, FieldPos would panic
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		line = parseErr.StartLine
	} else {
		// always use the first field, we are only interested in the line
		line, _ = r.FieldPos(0)
	}

	return []models.Transaction{}, fmt.Errorf("%w: error in line %d of the CSV: %w", models.ErrValidation, line, err)
}
