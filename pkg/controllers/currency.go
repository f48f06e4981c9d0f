package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/currency"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/rates"
	"github.com/pocketledger/backend/pkg/settings"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CurrencyListResponse struct {
	Data []currency.Currency `json:"data"`
}

// Conversion is the result of a conversion.
type Conversion struct {
	settings.Conversion
	Estimated bool `json:"estimated" example:"false"` // No rate was available, the amount was converted 1:1
}

type ConversionResponse struct {
	Data Conversion `json:"data"`
}

type ConversionHistoryResponse struct {
	Data []settings.Conversion `json:"data"` // Newest first
}

// RegisterCurrencyRoutes registers the routes for currencies with
// the RouterGroup that is passed.
func (co Controller) RegisterCurrencyRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsCurrencies)
	r.GET("", co.GetCurrencies)
	r.OPTIONS("/convert", co.OptionsCurrencies)
	r.GET("/convert", co.ConvertCurrency)
	r.OPTIONS("/history", co.OptionsCurrencies)
	r.GET("/history", co.GetConversionHistory)
}

// OptionsCurrencies returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Currencies
//	@Success		204
//	@Router			/v1/currencies [options]
//	@Router			/v1/currencies/convert [options]
//	@Router			/v1/currencies/history [options]
func (co Controller) OptionsCurrencies(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetCurrencies returns the supported currencies
//
//	@Summary		List currencies
//	@Description	Returns all currencies that can be used for transactions and budgets
//	@Tags			Currencies
//	@Produce		json
//	@Success		200	{object}	CurrencyListResponse
//	@Router			/v1/currencies [get]
func (co Controller) GetCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, CurrencyListResponse{Data: currency.All()})
}

// ConvertCurrency converts an amount and records the conversion
//
//	@Summary		Convert
//	@Description	Converts an amount between two currencies. The conversion is added to the owner's history.
//	@Tags			Currencies
//	@Produce		json
//	@Success		200		{object}	ConversionResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Param			amount	query		string	true	"Amount to convert"
//	@Param			from	query		string	true	"Source currency"
//	@Param			to		query		string	true	"Target currency"
//	@Security		BearerAuth
//	@Router			/v1/currencies/convert [get]
func (co Controller) ConvertCurrency(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		httputil.ErrorHandler(c, errFromToNotSet)
		return
	}

	if !currency.Valid(from) || !currency.Valid(to) {
		httputil.ErrorHandler(c, errCurrencyInvalid)
		return
	}

	amount, err := decimal.NewFromString(c.DefaultQuery("amount", "1"))
	if err != nil {
		httputil.ErrorHandler(c, errors.Join(errAmountInvalid, err))
		return
	}

	ctx := c.Request.Context()
	from, to = currency.Normalize(from), currency.Normalize(to)
	rate, ok := co.Converter.Rate(ctx, from, to)

	result := amount
	if ok && from != to {
		result = amount.Mul(rate).Round(rates.Places)
	}

	conversion := settings.Conversion{
		Amount: amount,
		From:   from,
		To:     to,
		Rate:   rate,
		Result: result,
		At:     time.Now().UTC(),
	}

	// The history is a convenience, a failed write does not fail the conversion
	if _, err := co.Settings.AddConversion(ctx, httputil.Owner(c), conversion); err != nil {
		log.Warn().Err(err).Str("owner", httputil.Owner(c)).Msg("could not record conversion")
	}

	c.JSON(http.StatusOK, ConversionResponse{Data: Conversion{Conversion: conversion, Estimated: !ok}})
}

// GetConversionHistory returns the recent conversions of the owner
//
//	@Summary		Conversion history
//	@Description	Returns the most recent conversions of the owner, newest first
//	@Tags			Currencies
//	@Produce		json
//	@Success		200	{object}	ConversionHistoryResponse
//	@Failure		500	{object}	httputil.HTTPError
//	@Security		BearerAuth
//	@Router			/v1/currencies/history [get]
func (co Controller) GetConversionHistory(c *gin.Context) {
	history, err := co.Settings.History(c.Request.Context(), httputil.Owner(c))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, ConversionHistoryResponse{Data: history})
}
