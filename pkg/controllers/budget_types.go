package controllers

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// BudgetEditable contains the fields of a budget a client can set on creation.
type BudgetEditable struct {
	ID        string          `json:"id,omitempty" example:"4f3a6c4b-41f5-4c2a-9a6c-2c0dd5b5f93e"` // Optional, generated when empty
	Name      string          `json:"name" example:"Groceries March"`                              // Name of the budget
	Amount    decimal.Decimal `json:"amount" example:"400"`                                        // The spending ceiling
	Category  string          `json:"category" example:"Food & Dining"`                            // Expenses in this category count towards the budget
	Period    types.Period    `json:"period" example:"monthly"`                                    // daily, weekly, monthly or yearly
	StartDate time.Time       `json:"startDate" example:"2024-03-01T00:00:00Z"`                    // First day, derived from the period when empty
	EndDate   time.Time       `json:"endDate" example:"2024-03-31T00:00:00Z"`                      // Last day, derived from the period when empty
	Currency  string          `json:"currency" example:"USD"`                                      // ISO 4217 code, defaults to the owner's default currency
}

func (e BudgetEditable) model() models.Budget {
	return models.Budget{
		DefaultModel: models.DefaultModel{ID: e.ID},
		Name:         e.Name,
		Amount:       e.Amount,
		Category:     e.Category,
		Period:       e.Period,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Currency:     e.Currency,
	}
}

// Budget is the API representation of a budget with its derived values.
type Budget struct {
	models.Budget
	Remaining decimal.Decimal `json:"remaining" example:"276.55"` // Amount left, negative when overspent
	Progress  decimal.Decimal `json:"progress" example:"30.86"`   // Spent share of the amount in percent
	Overspent bool            `json:"overspent" example:"false"`  // More than the amount has been spent
	Links     BudgetLinks     `json:"links"`
}

type BudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/budgets/4f3a6c4b-41f5-4c2a-9a6c-2c0dd5b5f93e"`                    // The budget itself
	Recalculate  string `json:"recalculate" example:"https://example.com/api/v1/budgets/4f3a6c4b-41f5-4c2a-9a6c-2c0dd5b5f93e/recalculate"` // Rebuilds the spent amount
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=Groceries&type=expense"`            // Expenses counting towards the budget
}

func newBudget(c *gin.Context, b models.Budget) Budget {
	self := link(c, "/v1/budgets/"+b.ID)

	return Budget{
		Budget:    b,
		Remaining: b.Remaining(),
		Progress:  b.Progress(),
		Overspent: b.Overspent(),
		Links: BudgetLinks{
			Self:         self,
			Recalculate:  self + "/recalculate",
			Transactions: link(c, "/v1/transactions?"+url.Values{
				"type":      {string(models.Expense)},
				"category":  {b.Category},
				"fromDate":  {b.StartDate.Format(time.DateOnly)},
				"untilDate": {b.EndDate.Format(time.DateOnly)},
			}.Encode()),
		},
	}
}

type BudgetResponse struct {
	Data Budget `json:"data"`
}

type BudgetListResponse struct {
	Data []Budget `json:"data"`
}

// BudgetQueryFilter contains the query parameters for budget listings.
type BudgetQueryFilter struct {
	Category string `form:"category" example:"Food & Dining"` // Filter by category
	Period   string `form:"period" example:"monthly"`        // Filter by period
	Active   string `form:"active" example:"2024-03-15"`     // Only budgets covering this day
}
