// Package controllers implements the HTTP handlers of the API.
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/aggregate"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/rates"
	"github.com/pocketledger/backend/pkg/reconcile"
	"github.com/pocketledger/backend/pkg/settings"
	"github.com/pocketledger/backend/pkg/store"
)

// Controller holds the services the handlers work with.
type Controller struct {
	Transactions *ledger.Transactions
	Budgets      *ledger.Budgets
	Aggregator   *aggregate.Aggregator
	Converter    *rates.Converter
	Settings     *settings.Store

	pingers []Pinger
}

// New wires the ledgers, reconciliation and aggregation on top of the remote stores.
func New(transactions store.Store[models.Transaction], budgets store.Store[models.Budget], source rates.Source, preferences *settings.Store) Controller {
	converter := rates.NewConverter(source)
	budgetLedger := ledger.NewBudgets(budgets, converter, preferences)
	transactionLedger := ledger.NewTransactions(transactions, reconcile.New(budgetLedger, converter), preferences)

	return Controller{
		Transactions: transactionLedger,
		Budgets:      budgetLedger,
		Aggregator:   aggregate.New(transactionLedger, converter),
		Converter:    converter,
		Settings:     preferences,
		pingers:      pingers(transactions, budgets, preferences),
	}
}

// RegisterRoutes registers all API routes with the v1 group.
func (co Controller) RegisterRoutes(v1 *gin.RouterGroup) {
	co.RegisterTransactionRoutes(v1.Group("/transactions"))
	co.RegisterBudgetRoutes(v1.Group("/budgets"))
	co.RegisterAggregateRoutes(v1.Group("/aggregates"))
	co.RegisterCurrencyRoutes(v1.Group("/currencies"))
	co.RegisterSettingRoutes(v1.Group("/settings"))
	co.RegisterCategoryRoutes(v1.Group("/categories"))
}

// link returns the absolute URL for path below the API root.
func link(c *gin.Context, path string) string {
	return c.GetString(string(httputil.ContextURL)) + path
}
