package controllers_test

import (
	"net/http"
	"testing"

	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createAggregateFixtures() {
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(1000), Type: models.Income, Category: "Salary", Date: day("2024-03-01")})
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(200), Category: "Housing", Date: day("2024-03-02")})
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(46), Currency: "EUR", Category: "Food & Dining", Date: day("2024-03-15")})
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(30), Category: "Food & Dining", Date: day("2024-04-01")})
}

func (suite *TestSuiteStandard) TestBalance() {
	suite.createAggregateFixtures()

	tests := []struct {
		name     string
		query    string
		currency string
		balance  string
		status   int
	}{
		{"Default currency", "", "USD", "720", http.StatusOK},
		{"Lower case currency", "?currency=usd", "USD", "720", http.StatusOK},
		{"Converted", "?currency=EUR", "EUR", "662.4", http.StatusOK},
		{"Invalid currency", "?currency=XYZ", "", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodGet, "http://example.com/api/v1/aggregates/balance"+tt.query, "")
			assertHTTPStatus(t, &r, tt.status)

			if tt.status != http.StatusOK {
				return
			}

			var response controllers.BalanceResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.currency, response.Data.Currency)
			assertDecimal(t, tt.balance, response.Data.Balance)
		})
	}
}

func (suite *TestSuiteStandard) TestSpendingAndIncome() {
	suite.createAggregateFixtures()

	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/aggregates/spending?fromDate=2024-03-01&untilDate=2024-03-31", "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var spending controllers.CategoryAmountsResponse
	test.DecodeResponse(suite.T(), &r, &spending)
	suite.Assert().Equal("USD", spending.Currency)
	suite.Require().Len(spending.Data, 2)
	suite.Assert().Equal("Housing", spending.Data[0].Category)
	assertDecimal(suite.T(), "200", spending.Data[0].Amount)
	suite.Assert().Equal("Food & Dining", spending.Data[1].Category)
	assertDecimal(suite.T(), "50", spending.Data[1].Amount)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/aggregates/income?untilDate=2024-02-28", "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var income controllers.CategoryAmountsResponse
	test.DecodeResponse(suite.T(), &r, &income)
	suite.Assert().Empty(income.Data)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/aggregates/spending?fromDate=yesterday", "")
	assertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTotals() {
	suite.createAggregateFixtures()

	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/aggregates/totals?fromDate=2024-03-01&untilDate=2024-03-31", "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var totals controllers.TotalsResponse
	test.DecodeResponse(suite.T(), &r, &totals)
	suite.Assert().Equal("USD", totals.Data.Currency)
	assertDecimal(suite.T(), "1000", totals.Data.Income)
	assertDecimal(suite.T(), "250", totals.Data.Expense)
	assertDecimal(suite.T(), "750", totals.Data.Net)
}

func (suite *TestSuiteStandard) TestAggregatesUseDefaultCurrency() {
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(100), Type: models.Income, Category: "Salary", Currency: "USD"})

	r := test.Request(suite.controller, suite.T(), http.MethodPatch, "http://example.com/api/v1/settings", `{"defaultCurrency": "EUR"}`)
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/aggregates/balance", "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("EUR", response.Data.Currency)
	assertDecimal(suite.T(), "92", response.Data.Balance)
}
