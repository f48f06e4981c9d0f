package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// TransactionEditable contains the fields of a transaction a client can set on creation.
type TransactionEditable struct {
	ID               string                 `json:"id,omitempty" example:"65392deb-5e92-4268-b114-297faad6cdce"` // Optional, generated when empty
	Amount           decimal.Decimal        `json:"amount" example:"14.03"`                                      // The amount, never negative
	Type             models.TransactionType `json:"type" example:"expense"`                                      // income or expense
	Category         string                 `json:"category" example:"Food & Dining"`                            // Free text category
	Description      string                 `json:"description" example:"Lunch"`                                 // Optional description
	Date             time.Time              `json:"date" example:"2024-03-15T12:00:00Z"`                         // Date of the transaction, defaults to now
	Tags             []string               `json:"tags" example:"work"`                                         // Tags in the order given
	Currency         string                 `json:"currency" example:"USD"`                                      // ISO 4217 code, defaults to the owner's default currency
	OriginalAmount   *decimal.Decimal       `json:"originalAmount,omitempty" example:"12.90"`                    // Amount in the original currency
	OriginalCurrency string                 `json:"originalCurrency,omitempty" example:"EUR"`                    // Original currency
}

func (e TransactionEditable) model() models.Transaction {
	return models.Transaction{
		DefaultModel:     models.DefaultModel{ID: e.ID},
		Amount:           e.Amount,
		Type:             e.Type,
		Category:         e.Category,
		Description:      e.Description,
		Date:             e.Date,
		Tags:             e.Tags,
		Currency:         e.Currency,
		OriginalAmount:   e.OriginalAmount,
		OriginalCurrency: e.OriginalCurrency,
	}
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.Transaction
	Links TransactionLinks `json:"links"`
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/65392deb-5e92-4268-b114-297faad6cdce"` // The transaction itself
}

func newTransaction(c *gin.Context, t models.Transaction) Transaction {
	return Transaction{
		Transaction: t,
		Links: TransactionLinks{
			Self: link(c, "/v1/transactions/"+t.ID),
		},
	}
}

type TransactionResponse struct {
	Data Transaction `json:"data"`
}

type TransactionListResponse struct {
	Data []Transaction `json:"data"`
}

// TransactionQueryFilter contains the query parameters for transaction listings.
type TransactionQueryFilter struct {
	Type        string `form:"type" example:"expense"`        // Filter by type
	Category    string `form:"category" example:"Travel"`     // Filter by category
	Description string `form:"description" example:"*lunch*"` // Glob on the description, case insensitive
	Tag         string `form:"tag" example:"work"`            // Only transactions with this tag
}
