package ledger_test

import (
	"time"

	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateTransactionDefaults() {
	id, err := suite.transactions.Create(suite.ctx, "eve", models.Transaction{
		Amount:   decimal.NewFromInt(12),
		Type:     models.Expense,
		Category: " Shopping ",
	})
	suite.Require().Nil(err)
	suite.Assert().NotEmpty(id)

	t, err := suite.transactions.Get(suite.ctx, "eve", id)
	suite.Require().Nil(err)
	suite.Assert().Equal("EUR", t.Currency, "Currency must default to the owner's preference")
	suite.Assert().Equal("Shopping", t.Category)
	suite.Assert().Equal("eve", t.Owner)
	suite.Assert().False(t.Date.IsZero())
	suite.Assert().False(t.CreatedAt.IsZero())
	suite.Assert().Equal([]string{}, t.Tags)
}

func (suite *TestSuiteStandard) TestCreateTransactionKeepsClientID() {
	t := models.Transaction{
		DefaultModel: models.DefaultModel{ID: "my-id"},
		Amount:       decimal.NewFromInt(1),
		Type:         models.Income,
		Category:     "Salary",
		Currency:     "USD",
		Date:         day("2024-03-01"),
	}

	id, err := suite.transactions.Create(suite.ctx, owner, t)
	suite.Require().Nil(err)
	suite.Assert().Equal("my-id", id)

	_, err = suite.transactions.Create(suite.ctx, owner, t)
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestCreateTransactionValidation() {
	tests := []struct {
		name string
		t    models.Transaction
	}{
		{"Negative amount", models.Transaction{Amount: decimal.NewFromInt(-1), Type: models.Expense, Category: "Other"}},
		{"Unknown type", models.Transaction{Amount: decimal.NewFromInt(1), Type: "transfer", Category: "Other"}},
		{"No category", models.Transaction{Amount: decimal.NewFromInt(1), Type: models.Expense}},
		{"Invalid currency", models.Transaction{Amount: decimal.NewFromInt(1), Type: models.Expense, Category: "Other", Currency: "DOLLARS"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.transactions.Create(suite.ctx, owner, tt.t)
			suite.Assert().ErrorIs(err, models.ErrValidation)
		})
	}

	all, err := suite.transactions.List(suite.ctx, owner, ledger.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(all, 0, "Invalid transactions must not be stored")
}

func (suite *TestSuiteStandard) TestOwnerScoping() {
	id := suite.createExpense(10, "Other", "USD", "2024-03-01")

	_, err := suite.transactions.Get(suite.ctx, "mallory", id)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = suite.transactions.Update(suite.ctx, "mallory", id, models.TransactionPatch{Description: ptr("mine")})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	err = suite.transactions.Delete(suite.ctx, "mallory", id)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	list, err := suite.transactions.List(suite.ctx, "mallory", ledger.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(list, 0)

	_, err = suite.transactions.Get(suite.ctx, owner, id)
	suite.Assert().Nil(err, "The transaction must still exist for its owner")
}

func (suite *TestSuiteStandard) TestUpdateMissingRemoteUsesCache() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	// Load the cache, then remove the record behind the ledger's back
	_, err := suite.transactions.List(suite.ctx, owner, ledger.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Nil(suite.db.Where("id = ?", id).Delete(&models.Transaction{}).Error)

	updated, err := suite.transactions.Update(suite.ctx, owner, id, models.TransactionPatch{Amount: ptr(decimal.NewFromInt(300))})
	suite.Require().Nil(err)
	suite.Assert().True(updated.Amount.Equal(decimal.NewFromInt(300)))

	// Written back remotely, budgets untouched
	t, err := suite.transactions.Get(suite.ctx, owner, id)
	suite.Require().Nil(err)
	suite.Assert().True(t.Amount.Equal(decimal.NewFromInt(300)))
	suite.assertSpent(budget, "100")
}

func (suite *TestSuiteStandard) TestUpdateMissingEverywhere() {
	_, err := suite.transactions.Update(suite.ctx, owner, "does-not-exist", models.TransactionPatch{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteMissingRemoteEvictsCache() {
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")
	_, err := suite.transactions.List(suite.ctx, owner, ledger.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Nil(suite.db.Where("id = ?", id).Delete(&models.Transaction{}).Error)

	err = suite.transactions.Delete(suite.ctx, owner, id)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	list, err := suite.transactions.List(suite.ctx, owner, ledger.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(list, 0)
}

func (suite *TestSuiteStandard) TestUpdateValidation() {
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	_, err := suite.transactions.Update(suite.ctx, owner, id, models.TransactionPatch{Amount: ptr(decimal.NewFromInt(-5))})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	t, err := suite.transactions.Get(suite.ctx, owner, id)
	suite.Require().Nil(err)
	suite.Assert().True(t.Amount.Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestRemoteFailure() {
	suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")
	_, err := suite.transactions.List(suite.ctx, owner, ledger.TransactionFilter{})
	suite.Require().Nil(err)

	suite.CloseDB()

	_, err = suite.transactions.Create(suite.ctx, owner, models.Transaction{
		Amount:   decimal.NewFromInt(1),
		Type:     models.Expense,
		Category: "Other",
		Currency: "USD",
	})
	suite.Assert().ErrorIs(err, models.ErrRemote)

	// The cache is untouched
	list, err := suite.transactions.List(suite.ctx, owner, ledger.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(list, 1)
}

func (suite *TestSuiteStandard) TestListFiltersAndOrder() {
	create := func(typ models.TransactionType, category, description, date string, tags ...string) string {
		id, err := suite.transactions.Create(suite.ctx, owner, models.Transaction{
			Amount:      decimal.NewFromInt(1),
			Type:        typ,
			Category:    category,
			Description: description,
			Date:        day(date),
			Currency:    "USD",
			Tags:        tags,
		})
		suite.Require().Nil(err)
		return id
	}

	lunch := create(models.Expense, "Food & Dining", "Lunch at Joe's", "2024-03-15", "work")
	salary := create(models.Income, "Salary", "March salary", "2024-03-31")
	train := create(models.Expense, "Transportation", "Train ticket", "2024-02-10", "work", "travel")
	dinner := create(models.Expense, "Food & Dining", "Dinner", "2024-04-01")

	ids := func(filter ledger.TransactionFilter) []string {
		list, err := suite.transactions.List(suite.ctx, owner, filter)
		suite.Require().Nil(err)

		result := make([]string, 0, len(list))
		for _, t := range list {
			result = append(result, t.ID)
		}
		return result
	}

	tests := []struct {
		name   string
		filter ledger.TransactionFilter
		want   []string
	}{
		{"All, newest first", ledger.TransactionFilter{}, []string{dinner, salary, lunch, train}},
		{"Inclusive range", ledger.TransactionFilter{Range: types.DateRange{From: day("2024-03-15"), Until: day("2024-03-31")}}, []string{salary, lunch}},
		{"Open end", ledger.TransactionFilter{Range: types.DateRange{From: day("2024-03-31")}}, []string{dinner, salary}},
		{"Type", ledger.TransactionFilter{Type: models.Income}, []string{salary}},
		{"Category", ledger.TransactionFilter{Category: "Food & Dining"}, []string{dinner, lunch}},
		{"Description glob", ledger.TransactionFilter{Description: "*joe*"}, []string{lunch}},
		{"Tag", ledger.TransactionFilter{Tag: "work"}, []string{lunch, train}},
		{"No match", ledger.TransactionFilter{Tag: "none"}, []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Assert().Equal(tt.want, ids(tt.filter))
		})
	}
}

func (suite *TestSuiteStandard) TestListLoadsFromRemote() {
	// A record written by another process
	t := models.Transaction{
		DefaultModel: models.DefaultModel{ID: "external", Owner: owner},
		Amount:       decimal.NewFromInt(7),
		Type:         models.Expense,
		Category:     "Other",
		Currency:     "USD",
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.Require().Nil(suite.db.Create(&t).Error)

	list, err := suite.transactions.List(suite.ctx, owner, ledger.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal("external", list[0].ID)
}
