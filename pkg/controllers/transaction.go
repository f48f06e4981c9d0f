package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Import
	{
		r.OPTIONS("/import", co.OptionsImport)
		r.POST("/import", co.ImportTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// OptionsTransactionList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Router			/v1/transactions [options]
func (co Controller) OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsTransactionDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	_, err := co.Transactions.Get(c.Request.Context(), httputil.Owner(c), c.Param("id"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateTransaction creates a transaction and reconciles the budgets it falls into
//
//	@Summary		Create transaction
//	@Description	Creates a new transaction. Expenses update the spent amount of all budgets they fall into.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	TransactionResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			transaction	body		TransactionEditable	true	"Transaction"
//	@Security		BearerAuth
//	@Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	owner := httputil.Owner(c)
	id, err := co.Transactions.Create(c.Request.Context(), owner, editable.model())
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	transaction, err := co.Transactions.Get(c.Request.Context(), owner, id)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: newTransaction(c, transaction)})
}

// GetTransactions returns the filtered transactions of the owner
//
//	@Summary		List transactions
//	@Description	Returns the transactions of the owner, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Success		200			{object}	TransactionListResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			fromDate	query		string	false	"First day to include, YYYY-MM-DD"
//	@Param			untilDate	query		string	false	"Last day to include, YYYY-MM-DD"
//	@Param			type		query		string	false	"Filter by type"
//	@Param			category	query		string	false	"Filter by category"
//	@Param			description	query		string	false	"Glob pattern on the description"
//	@Param			tag			query		string	false	"Filter by tag"
//	@Security		BearerAuth
//	@Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.ShouldBindQuery(&query)

	rng, err := httputil.DateRange(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	filter := ledger.TransactionFilter{
		Range:       rng,
		Type:        models.TransactionType(query.Type),
		Category:    query.Category,
		Description: query.Description,
		Tag:         query.Tag,
	}

	if filter.Type != "" && !filter.Type.Valid() {
		httputil.ErrorHandler(c, errTransactionTypeInvalid)
		return
	}

	transactions, err := co.Transactions.List(c.Request.Context(), httputil.Owner(c), filter)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, newTransaction(c, t))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// GetTransaction returns a single transaction
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	transaction, err := co.Transactions.Get(c.Request.Context(), httputil.Owner(c), c.Param("id"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(c, transaction)})
}

// UpdateTransaction applies a partial update to a transaction
//
//	@Summary		Update transaction
//	@Description	Updates an existing transaction. Only values to be updated need to be specified.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	TransactionResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			id			path		string					true	"ID formatted as string"
//	@Param			transaction	body		models.TransactionPatch	true	"Transaction"
//	@Security		BearerAuth
//	@Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	var patch models.TransactionPatch
	if err := httputil.BindData(c, &patch); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	transaction, err := co.Transactions.Update(c.Request.Context(), httputil.Owner(c), c.Param("id"), patch)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(c, transaction)})
}

// DeleteTransaction deletes a transaction
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction and removes it from all budgets it counted towards
//	@Tags			Transactions
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Security		BearerAuth
//	@Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	err := co.Transactions.Delete(c.Request.Context(), httputil.Owner(c), c.Param("id"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
