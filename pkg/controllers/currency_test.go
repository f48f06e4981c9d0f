package controllers_test

import (
	"net/http"
	"testing"

	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/pkg/currency"
	"github.com/pocketledger/backend/pkg/settings"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCurrencies() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/currencies", "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.CurrencyListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(currency.All(), response.Data)
}

func (suite *TestSuiteStandard) TestConvert() {
	tests := []struct {
		name   string
		query  string
		result string
		status int
	}{
		{"Direct rate", "amount=100&from=USD&to=EUR", "92", http.StatusOK},
		{"Inverse rate", "amount=92&from=eur&to=usd", "100", http.StatusOK},
		{"Same currency", "amount=12.345&from=JPY&to=JPY", "12.345", http.StatusOK},
		{"Amount defaults to one", "from=USD&to=GBP", "0.79", http.StatusOK},
		{"Missing target", "amount=1&from=USD", "", http.StatusBadRequest},
		{"Unknown currency", "amount=1&from=USD&to=XYZ", "", http.StatusBadRequest},
		{"Invalid amount", "amount=ten&from=USD&to=EUR", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodGet, "http://example.com/api/v1/currencies/convert?"+tt.query, "")
			assertHTTPStatus(t, &r, tt.status)

			if tt.status != http.StatusOK {
				return
			}

			var response controllers.ConversionResponse
			test.DecodeResponse(t, &r, &response)
			assertDecimal(t, tt.result, response.Data.Result)
			assert.False(t, response.Data.Estimated)
		})
	}
}

func (suite *TestSuiteStandard) TestConversionHistory() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/currencies/history", "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var history controllers.ConversionHistoryResponse
	test.DecodeResponse(suite.T(), &r, &history)
	suite.Assert().Empty(history.Data)

	for _, to := range []string{"EUR", "GBP", "CHF", "JPY", "CAD", "AUD", "CNY", "INR", "MXN", "BRL", "KRW", "SGD"} {
		r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/currencies/convert?amount=1&from=USD&to="+to, "")
		assertHTTPStatus(suite.T(), &r, http.StatusOK)
	}

	r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/v1/currencies/history", "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &history)

	suite.Require().Len(history.Data, settings.HistorySize)
	suite.Assert().Equal("SGD", history.Data[0].To)
	suite.Assert().Equal("CHF", history.Data[settings.HistorySize-1].To)
}
