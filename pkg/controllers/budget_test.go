package controllers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetCreate() {
	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{
		Amount:    decimal.NewFromInt(400),
		StartDate: day("2024-02-10"),
	})

	suite.Assert().Equal(day("2024-02-10"), budget.StartDate)
	suite.Assert().Equal(day("2024-02-29"), budget.EndDate)
	suite.Assert().Equal("USD", budget.Currency)
	assertDecimal(suite.T(), "0", budget.Spent)
	assertDecimal(suite.T(), "400", budget.Remaining)
	assertDecimal(suite.T(), "0", budget.Progress)
	suite.Assert().False(budget.Overspent)
	suite.Assert().Equal("http://example.com/api/v1/budgets/"+budget.ID+"/recalculate", budget.Links.Recalculate)
	suite.Assert().Contains(budget.Links.Transactions, "fromDate=2024-02-10")
}

func (suite *TestSuiteStandard) TestBudgetCreateInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"Empty body", ""},
		{"No name", `{"amount": "100", "category": "Food", "period": "monthly"}`},
		{"Unknown period", `{"name": "x", "amount": "100", "category": "Food", "period": "fortnightly"}`},
		{"End before start", `{"name": "x", "amount": "100", "category": "Food", "period": "monthly", "startDate": "2024-03-10T00:00:00Z", "endDate": "2024-03-01T00:00:00Z"}`},
		{"Negative amount", `{"name": "x", "amount": "-1", "category": "Food", "period": "monthly"}`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/api/v1/budgets", tt.body)
			assertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestBudgetFollowsTransactions verifies that the spent amount of a budget
// follows the life cycle of the expenses in its category and range.
func (suite *TestSuiteStandard) TestBudgetFollowsTransactions() {
	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{Amount: decimal.NewFromInt(100)})
	other := suite.createTestBudget(suite.T(), controllers.BudgetEditable{Amount: decimal.NewFromInt(100), Category: "Travel"})

	transaction := suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(40)})
	assertDecimal(suite.T(), "40", suite.getBudget(suite.T(), budget.ID).Spent)

	tests := []struct {
		name       string
		patch      any
		spent      string
		spentOther string
		remaining  string
		overspent  bool
	}{
		{"Amount raised", `{"amount": "150"}`, "150", "0", "-50", true},
		{"Description only", `{"description": "Groceries"}`, "150", "0", "-50", true},
		{"Category changed", `{"category": "Travel"}`, "0", "150", "100", false},
		{"Moved out of range", `{"date": "2024-04-02T00:00:00Z"}`, "0", "0", "100", false},
		{"Moved back as income", `{"date": "2024-03-31T23:00:00Z", "type": "income"}`, "0", "0", "100", false},
		{"Expense again", `{"type": "expense", "amount": "25"}`, "0", "25", "100", false},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPatch, "http://example.com/api/v1/transactions/"+transaction.ID, tt.patch)
			assertHTTPStatus(t, &r, http.StatusOK)

			b := suite.getBudget(t, budget.ID)
			assertDecimal(t, tt.spent, b.Spent, "food budget")
			assertDecimal(t, tt.remaining, b.Remaining)
			assert.Equal(t, tt.overspent, b.Overspent)
			assertDecimal(t, tt.spentOther, suite.getBudget(t, other.ID).Spent, "travel budget")
		})
	}

	r := test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/api/v1/transactions/"+transaction.ID, "")
	assertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assertDecimal(suite.T(), "0", suite.getBudget(suite.T(), other.ID).Spent)
}

func (suite *TestSuiteStandard) TestBudgetConvertsExpenses() {
	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{Amount: decimal.NewFromInt(100), Currency: "EUR"})
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(50), Currency: "USD"})

	b := suite.getBudget(suite.T(), budget.ID)
	assertDecimal(suite.T(), "46", b.Spent)
	assertDecimal(suite.T(), "46", b.Progress)
}

func (suite *TestSuiteStandard) TestBudgetRecalculate() {
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(30)})
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(12), Date: day("2024-03-31")})
	suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(99), Date: day("2024-04-01")})

	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{Amount: decimal.NewFromInt(100)})
	assertDecimal(suite.T(), "0", budget.Spent, "existing expenses are not counted on creation")

	r := test.Request(suite.controller, suite.T(), http.MethodPost, budget.Links.Recalculate, "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assertDecimal(suite.T(), "42", response.Data.Spent)

	r = test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/api/v1/budgets/"+uuid.NewString()+"/recalculate", "")
	assertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetUpdate() {
	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{Amount: decimal.NewFromInt(100)})

	r := test.Request(suite.controller, suite.T(), http.MethodPatch, "http://example.com/api/v1/budgets/"+budget.ID, `{"name": "Food", "period": "weekly", "startDate": "2024-03-04T00:00:00Z"}`)
	assertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Food", response.Data.Name)
	suite.Assert().Equal(types.Weekly, response.Data.Period)
	suite.Assert().Equal(day("2024-03-10"), response.Data.EndDate)

	r = test.Request(suite.controller, suite.T(), http.MethodPatch, "http://example.com/api/v1/budgets/"+budget.ID, `{"currency": "ABC"}`)
	assertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{Amount: decimal.NewFromInt(100)})
	transaction := suite.createTestTransaction(suite.T(), controllers.TransactionEditable{Amount: decimal.NewFromInt(5)})

	r := test.Request(suite.controller, suite.T(), http.MethodDelete, budget.Links.Self, "")
	assertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, budget.Links.Self, "")
	assertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, transaction.Links.Self, "")
	assertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestBudgetOptions() {
	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{})

	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"List", "", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Existing budget", "/" + budget.ID, http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{"No budget with this ID", "/" + uuid.NewString(), http.StatusNotFound, ""},
		{"Recalculate", "/" + budget.ID + "/recalculate", http.StatusNoContent, "OPTIONS, POST"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodOptions, "http://example.com/api/v1/budgets"+tt.path, "")
			assertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetList() {
	suite.createTestBudget(suite.T(), controllers.BudgetEditable{Name: "March food"})
	suite.createTestBudget(suite.T(), controllers.BudgetEditable{Name: "April food", StartDate: day("2024-04-01")})
	suite.createTestBudget(suite.T(), controllers.BudgetEditable{Name: "Trip", Category: "Travel", Period: types.Yearly, StartDate: day("2024-01-01")})

	tests := []struct {
		name   string
		query  string
		names  []string
		status int
	}{
		{"All, newest start first", "", []string{"April food", "March food", "Trip"}, http.StatusOK},
		{"Category", "category=Travel", []string{"Trip"}, http.StatusOK},
		{"Period", "period=monthly", []string{"April food", "March food"}, http.StatusOK},
		{"Active", "active=2024-03-31", []string{"March food", "Trip"}, http.StatusOK},
		{"Invalid period", "period=fortnightly", nil, http.StatusBadRequest},
		{"Invalid active date", "active=tomorrow", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodGet, "http://example.com/api/v1/budgets?"+tt.query, "")
			assertHTTPStatus(t, &r, tt.status)

			if tt.status != http.StatusOK {
				return
			}

			var list controllers.BudgetListResponse
			test.DecodeResponse(t, &r, &list)

			names := make([]string, 0, len(list.Data))
			for _, b := range list.Data {
				names = append(names, b.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetOtherOwnerExpense() {
	budget := suite.createTestBudget(suite.T(), controllers.BudgetEditable{Amount: decimal.NewFromInt(100)})

	_, err := suite.controller.Transactions.Create(suite.T().Context(), "someone-else", models.Transaction{
		Amount:   decimal.NewFromInt(10),
		Type:     models.Expense,
		Category: "Food & Dining",
		Date:     day("2024-03-10"),
	})
	suite.Require().Nil(err)

	assertDecimal(suite.T(), "0", suite.getBudget(suite.T(), budget.ID).Spent)
}
