package controllers_test

import (
	"net/http"
	"testing"

	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSettings() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/settings", "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("USD", response.Data.DefaultCurrency)

	tests := []struct {
		name     string
		body     any
		status   int
		currency string
	}{
		{"Set", `{"defaultCurrency": "gbp"}`, http.StatusOK, "GBP"},
		{"Empty object keeps the value", `{}`, http.StatusOK, "GBP"},
		{"Invalid currency", `{"defaultCurrency": "XYZ"}`, http.StatusBadRequest, "GBP"},
		{"Empty body", "", http.StatusBadRequest, "GBP"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPatch, "http://example.com/api/v1/settings", tt.body)
			assertHTTPStatus(t, &r, tt.status)

			r = test.Request(suite.controller, t, http.MethodGet, "http://example.com/api/v1/settings", "")
			var response controllers.SettingsResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.currency, response.Data.DefaultCurrency)
		})
	}

	transaction := suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(1)})
	suite.Assert().Equal("GBP", transaction.Currency, "new transactions use the default currency")

	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{})
	suite.Assert().Equal("GBP", budget.Currency, "new budgets use the default currency")
}

func (suite *TestSuiteStandard) TestSettingsOptions() {
	r := test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/api/v1/settings", "")
	assertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH", r.Header().Get("allow"))
}
