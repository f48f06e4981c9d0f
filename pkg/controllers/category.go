package controllers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
)

// Categories lists category names for one transaction type.
type Categories struct {
	Suggested []string `json:"suggested" example:"Food & Dining"` // Predefined categories
	Used      []string `json:"used" example:"Coffee"`             // Categories of the owner's transactions that are not suggested, sorted
}

type CategoryListResponse struct {
	Data map[models.TransactionType]Categories `json:"data"`
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsCategories)
	r.GET("", co.GetCategories)
}

// OptionsCategories returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Success		204
//	@Router			/v1/categories [options]
func (co Controller) OptionsCategories(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetCategories returns the category names per transaction type
//
//	@Summary		List categories
//	@Description	Returns the suggested categories and the other categories the owner used, per transaction type
//	@Tags			Categories
//	@Produce		json
//	@Success		200		{object}	CategoryListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			type	query		string	false	"Only this transaction type"
//	@Security		BearerAuth
//	@Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	typ := models.TransactionType(c.Query("type"))
	if typ != "" && !typ.Valid() {
		httputil.ErrorHandler(c, errTransactionTypeInvalid)
		return
	}

	transactions, err := co.Transactions.List(c.Request.Context(), httputil.Owner(c), ledger.TransactionFilter{Type: typ})
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	data := make(map[models.TransactionType]Categories)
	for _, t := range []models.TransactionType{models.Expense, models.Income} {
		if typ != "" && t != typ {
			continue
		}

		suggested := models.SuggestedCategories[t]
		used := make([]string, 0)
		for _, transaction := range transactions {
			if transaction.Type != t || slices.Contains(suggested, transaction.Category) || slices.Contains(used, transaction.Category) {
				continue
			}
			used = append(used, transaction.Category)
		}
		slices.Sort(used)

		data[t] = Categories{
			Suggested: slices.Clone(suggested),
			Used:      used,
		}
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}
