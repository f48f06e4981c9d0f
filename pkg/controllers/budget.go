package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
		r.OPTIONS("/:id/recalculate", co.OptionsBudgetRecalculate)
		r.POST("/:id/recalculate", co.RecalculateBudget)
	}
}

// OptionsBudgetList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Router			/v1/budgets [options]
func (co Controller) OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsBudgetDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	_, err := co.Budgets.Get(c.Request.Context(), httputil.Owner(c), c.Param("id"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// OptionsBudgetRecalculate returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/budgets/{id}/recalculate [options]
func (co Controller) OptionsBudgetRecalculate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreateBudget creates a new budget
//
//	@Summary		Create budget
//	@Description	Creates a new budget. Missing start and end dates are derived from the period. The spent amount starts at zero, existing transactions are not counted until the budget is recalculated.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	BudgetResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Security		BearerAuth
//	@Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	owner := httputil.Owner(c)
	id, err := co.Budgets.Create(c.Request.Context(), owner, editable.model())
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	budget, err := co.Budgets.Get(c.Request.Context(), owner, id)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: newBudget(c, budget)})
}

// GetBudgets returns the budgets of the owner
//
//	@Summary		List budgets
//	@Description	Returns the budgets of the owner, newest start date first
//	@Tags			Budgets
//	@Produce		json
//	@Success		200			{object}	BudgetListResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			category	query		string	false	"Filter by category"
//	@Param			period		query		string	false	"Filter by period"
//	@Param			active		query		string	false	"Only budgets covering this day, YYYY-MM-DD"
//	@Security		BearerAuth
//	@Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	var query BudgetQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.ShouldBindQuery(&query)

	filter := ledger.BudgetFilter{
		Category: query.Category,
	}

	if query.Period != "" {
		period, err := types.ParsePeriod(query.Period)
		if err != nil {
			httputil.ErrorHandler(c, errors.Join(errPeriodInvalid, err))
			return
		}
		filter.Period = period
	}

	if query.Active != "" {
		active, err := types.ParseDate(query.Active)
		if err != nil {
			httputil.ErrorHandler(c, errors.Join(httputil.ErrInvalidQueryString, err))
			return
		}
		filter.Active = active
	}

	budgets, err := co.Budgets.List(c.Request.Context(), httputil.Owner(c), filter)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		data = append(data, newBudget(c, b))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// GetBudget returns a single budget
//
//	@Summary		Get budget
//	@Description	Returns a specific budget with its remaining amount and progress
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	BudgetResponse
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	budget, err := co.Budgets.Get(c.Request.Context(), httputil.Owner(c), c.Param("id"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(c, budget)})
}

// UpdateBudget applies a partial update to a budget
//
//	@Summary		Update budget
//	@Description	Updates an existing budget. Only values to be updated need to be specified. Changing the period without dates recomputes the range from the start date.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			id		path		string				true	"ID formatted as string"
//	@Param			budget	body		models.BudgetPatch	true	"Budget"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	var patch models.BudgetPatch
	if err := httputil.BindData(c, &patch); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	budget, err := co.Budgets.Update(c.Request.Context(), httputil.Owner(c), c.Param("id"), patch)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(c, budget)})
}

// DeleteBudget deletes a budget
//
//	@Summary		Delete budget
//	@Description	Deletes a budget. Transactions are not touched.
//	@Tags			Budgets
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	err := co.Budgets.Delete(c.Request.Context(), httputil.Owner(c), c.Param("id"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecalculateBudget rebuilds the spent amount of a budget
//
//	@Summary		Recalculate budget
//	@Description	Rebuilds the spent amount from all expenses of the owner in the category and range of the budget
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	BudgetResponse
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/budgets/{id}/recalculate [post]
func (co Controller) RecalculateBudget(c *gin.Context) {
	owner := httputil.Owner(c)

	transactions, err := co.Transactions.List(c.Request.Context(), owner, ledger.TransactionFilter{Type: models.Expense})
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	budget, err := co.Budgets.Recalculate(c.Request.Context(), owner, c.Param("id"), transactions)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(c, budget)})
}
