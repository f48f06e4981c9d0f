package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/currency"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/importer"
)

type ImportResponse struct {
	Data importer.Result `json:"data"`
}

// ImportQuery contains the query parameters for imports.
type ImportQuery struct {
	Category string `form:"category" example:"Imported"` // Category for all transactions, defaults to "Other"
	Currency string `form:"currency" example:"EUR"`      // Currency for all transactions, defaults to the owner's default currency
}

// getUploadedFile returns the form file.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFile
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(strings.ToLower(formFile.Filename), suffix) {
		return nil, fmt.Errorf("%w: this endpoint only supports %s files", httputil.ErrInvalidBody, suffix)
	}

	return formFile.Open()
}

// OptionsImport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Import
//	@Success		204
//	@Router			/v1/transactions/import [options]
func (co Controller) OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// ImportTransactions imports transactions from a CSV file
//
//	@Summary		Import transactions
//	@Description	Imports transactions from a CSV file in the YNAB import format. Lines that were imported before are skipped. Expenses update the budgets they fall into.
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		201			{object}	ImportResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			file		formData	file	true	"File to import"
//	@Param			category	query		string	false	"Category for all transactions"
//	@Param			currency	query		string	false	"Currency for all transactions"
//	@Security		BearerAuth
//	@Router			/v1/transactions/import [post]
func (co Controller) ImportTransactions(c *gin.Context) {
	var query ImportQuery

	// Every parameter is bound into a string, so this will always succeed
	_ = c.ShouldBindQuery(&query)

	if query.Currency != "" && !currency.Valid(query.Currency) {
		httputil.ErrorHandler(c, errCurrencyInvalid)
		return
	}

	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}
	defer f.Close()

	owner := httputil.Owner(c)
	transactions, err := importer.Parse(f, owner, importer.Options{
		Category: query.Category,
		Currency: query.Currency,
	})
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	result, err := importer.Import(c.Request.Context(), co.Transactions, owner, transactions)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: result})
}
