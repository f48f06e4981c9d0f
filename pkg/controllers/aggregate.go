package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/aggregate"
	"github.com/pocketledger/backend/pkg/currency"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/shopspring/decimal"
)

type Balance struct {
	Currency string          `json:"currency" example:"USD"`    // Currency all amounts were converted to
	Balance  decimal.Decimal `json:"balance" example:"1265.44"` // All income minus all expenses
}

type BalanceResponse struct {
	Data Balance `json:"data"`
}

type CategoryAmountsResponse struct {
	Currency string                     `json:"currency" example:"USD"` // Currency all amounts were converted to
	Data     []aggregate.CategoryAmount `json:"data"`                   // Sums per category, largest first
}

type TotalsResponse struct {
	Data aggregate.Totals `json:"data"`
}

// RegisterAggregateRoutes registers the routes for aggregates with
// the RouterGroup that is passed.
func (co Controller) RegisterAggregateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/balance", co.OptionsAggregate)
	r.GET("/balance", co.GetBalance)
	r.OPTIONS("/spending", co.OptionsAggregate)
	r.GET("/spending", co.GetSpending)
	r.OPTIONS("/income", co.OptionsAggregate)
	r.GET("/income", co.GetIncome)
	r.OPTIONS("/totals", co.OptionsAggregate)
	r.GET("/totals", co.GetTotals)
}

// OptionsAggregate returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Aggregates
//	@Success		204
//	@Router			/v1/aggregates/balance [options]
//	@Router			/v1/aggregates/spending [options]
//	@Router			/v1/aggregates/income [options]
//	@Router			/v1/aggregates/totals [options]
func (co Controller) OptionsAggregate(c *gin.Context) {
	httputil.OptionsGet(c)
}

// targetCurrency returns the currency query parameter, defaulting to
// the owner's default currency.
func (co Controller) targetCurrency(c *gin.Context) (string, error) {
	code := c.Query("currency")
	if code == "" {
		return co.Settings.DefaultCurrency(c.Request.Context(), httputil.Owner(c)), nil
	}

	if !currency.Valid(code) {
		return "", errCurrencyInvalid
	}

	return currency.Normalize(code), nil
}

// GetBalance returns the balance of the owner
//
//	@Summary		Balance
//	@Description	Returns all income minus all expenses, converted to the target currency
//	@Tags			Aggregates
//	@Produce		json
//	@Success		200			{object}	BalanceResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			currency	query		string	false	"Target currency, defaults to the owner's default currency"
//	@Security		BearerAuth
//	@Router			/v1/aggregates/balance [get]
func (co Controller) GetBalance(c *gin.Context) {
	target, err := co.targetCurrency(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	balance, err := co.Aggregator.Balance(c.Request.Context(), httputil.Owner(c), target)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{Data: Balance{Currency: target, Balance: balance}})
}

// GetSpending returns the expenses per category
//
//	@Summary		Spending by category
//	@Description	Returns the summed expenses per category in the date range, converted to the target currency
//	@Tags			Aggregates
//	@Produce		json
//	@Success		200			{object}	CategoryAmountsResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			fromDate	query		string	false	"First day to include, YYYY-MM-DD"
//	@Param			untilDate	query		string	false	"Last day to include, YYYY-MM-DD"
//	@Param			currency	query		string	false	"Target currency, defaults to the owner's default currency"
//	@Security		BearerAuth
//	@Router			/v1/aggregates/spending [get]
func (co Controller) GetSpending(c *gin.Context) {
	co.categoryAmounts(c, co.Aggregator.SpendingByCategory)
}

// GetIncome returns the income per category
//
//	@Summary		Income by category
//	@Description	Returns the summed income per category in the date range, converted to the target currency
//	@Tags			Aggregates
//	@Produce		json
//	@Success		200			{object}	CategoryAmountsResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			fromDate	query		string	false	"First day to include, YYYY-MM-DD"
//	@Param			untilDate	query		string	false	"Last day to include, YYYY-MM-DD"
//	@Param			currency	query		string	false	"Target currency, defaults to the owner's default currency"
//	@Security		BearerAuth
//	@Router			/v1/aggregates/income [get]
func (co Controller) GetIncome(c *gin.Context) {
	co.categoryAmounts(c, co.Aggregator.IncomeByCategory)
}

type categorySums func(ctx context.Context, owner string, rng types.DateRange, target string) (map[string]decimal.Decimal, error)

func (co Controller) categoryAmounts(c *gin.Context, sum categorySums) {
	rng, err := httputil.DateRange(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	target, err := co.targetCurrency(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	sums, err := sum(c.Request.Context(), httputil.Owner(c), rng, target)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryAmountsResponse{Currency: target, Data: aggregate.Sorted(sums)})
}

// GetTotals returns income, expenses and net for a range
//
//	@Summary		Totals
//	@Description	Returns the summed income and expenses in the date range and their difference, converted to the target currency
//	@Tags			Aggregates
//	@Produce		json
//	@Success		200			{object}	TotalsResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			fromDate	query		string	false	"First day to include, YYYY-MM-DD"
//	@Param			untilDate	query		string	false	"Last day to include, YYYY-MM-DD"
//	@Param			currency	query		string	false	"Target currency, defaults to the owner's default currency"
//	@Security		BearerAuth
//	@Router			/v1/aggregates/totals [get]
func (co Controller) GetTotals(c *gin.Context) {
	rng, err := httputil.DateRange(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	target, err := co.targetCurrency(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	totals, err := co.Aggregator.Totals(c.Request.Context(), httputil.Owner(c), rng, target)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, TotalsResponse{Data: totals})
}
