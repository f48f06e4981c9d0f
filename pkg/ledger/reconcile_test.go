package ledger_test

import (
	"sync"

	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func ptr[T any](v T) *T {
	return &v
}

func (suite *TestSuiteStandard) TestCreateAndDeleteExpense() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")

	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")
	suite.assertSpent(budget, "100")

	suite.Require().Nil(suite.transactions.Delete(suite.ctx, owner, id))
	suite.assertSpent(budget, "0")
}

func (suite *TestSuiteStandard) TestRangeIsInclusive() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")

	suite.createExpense(10, "Food & Dining", "USD", "2024-03-01")
	suite.createExpense(20, "Food & Dining", "USD", "2024-03-31")
	suite.createExpense(40, "Food & Dining", "USD", "2024-04-01")
	suite.createExpense(80, "Food & Dining", "USD", "2024-02-29")

	suite.assertSpent(budget, "30")
}

func (suite *TestSuiteStandard) TestIncomeAndOtherCategoriesDoNotCount() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")

	_, err := suite.transactions.Create(suite.ctx, owner, models.Transaction{
		Amount:   decimal.NewFromInt(500),
		Type:     models.Income,
		Category: "Food & Dining",
		Currency: "USD",
		Date:     day("2024-03-10"),
	})
	suite.Require().Nil(err)
	suite.createExpense(50, "Travel", "USD", "2024-03-10")

	suite.assertSpent(budget, "0")
}

func (suite *TestSuiteStandard) TestConversionIntoBudgetCurrency() {
	budget := suite.createBudget("Travel", "USD", "2024-03-01", "2024-03-31")

	suite.createExpense(92, "Travel", "EUR", "2024-03-10")
	suite.assertSpent(budget, "100")
}

func (suite *TestSuiteStandard) TestMultipleBudgetsMatch() {
	monthly := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")
	yearly := suite.createBudget("Food & Dining", "EUR", "2024-01-01", "2024-12-31")

	suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	suite.assertSpent(monthly, "100")
	suite.assertSpent(yearly, "92")
}

func (suite *TestSuiteStandard) TestMetadataOnlyUpdate() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	updated, err := suite.transactions.Update(suite.ctx, owner, id, models.TransactionPatch{
		Description: ptr("Dinner with friends"),
		Tags:        ptr([]string{"friends", "dinner"}),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("Dinner with friends", updated.Description)
	suite.Assert().Equal([]string{"friends", "dinner"}, updated.Tags)

	suite.assertSpent(budget, "100")
}

func (suite *TestSuiteStandard) TestCategoryChange() {
	food := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")
	travel := suite.createBudget("Travel", "USD", "2024-03-01", "2024-03-31")
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	_, err := suite.transactions.Update(suite.ctx, owner, id, models.TransactionPatch{Category: ptr("Travel")})
	suite.Require().Nil(err)

	suite.assertSpent(food, "0")
	suite.assertSpent(travel, "100")
}

func (suite *TestSuiteStandard) TestAmountChangeInSameBudget() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	_, err := suite.transactions.Update(suite.ctx, owner, id, models.TransactionPatch{Amount: ptr(decimal.NewFromInt(150))})
	suite.Require().Nil(err)

	suite.assertSpent(budget, "150")
}

func (suite *TestSuiteStandard) TestTypeChange() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	_, err := suite.transactions.Update(suite.ctx, owner, id, models.TransactionPatch{Type: ptr(models.Income)})
	suite.Require().Nil(err)
	suite.assertSpent(budget, "0")

	_, err = suite.transactions.Update(suite.ctx, owner, id, models.TransactionPatch{Type: ptr(models.Expense)})
	suite.Require().Nil(err)
	suite.assertSpent(budget, "100")
}

func (suite *TestSuiteStandard) TestDateMovesOutOfRange() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	_, err := suite.transactions.Update(suite.ctx, owner, id, models.TransactionPatch{Date: ptr(day("2024-04-02"))})
	suite.Require().Nil(err)

	suite.assertSpent(budget, "0")
}

func (suite *TestSuiteStandard) TestSpentIsClampedAtZero() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")
	id := suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")

	_, err := suite.budgets.Update(suite.ctx, owner, budget, models.BudgetPatch{Spent: ptr(decimal.NewFromInt(30))})
	suite.Require().Nil(err)

	suite.Require().Nil(suite.transactions.Delete(suite.ctx, owner, id))
	suite.assertSpent(budget, "0")
}

func (suite *TestSuiteStandard) TestBudgetCreatedLaterIsNotBackfilled() {
	suite.createExpense(100, "Food & Dining", "USD", "2024-03-15")
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")

	suite.assertSpent(budget, "0")

	transactions, err := suite.transactions.List(suite.ctx, owner, ledger.TransactionFilter{})
	suite.Require().Nil(err)

	recalculated, err := suite.budgets.Recalculate(suite.ctx, owner, budget, transactions)
	suite.Require().Nil(err)
	suite.Assert().True(recalculated.Spent.Equal(decimal.NewFromInt(100)))
	suite.assertSpent(budget, "100")
}

func (suite *TestSuiteStandard) TestConcurrentCreates() {
	budget := suite.createBudget("Food & Dining", "USD", "2024-03-01", "2024-03-31")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.transactions.Create(suite.ctx, owner, models.Transaction{
				Amount:   decimal.NewFromInt(5),
				Type:     models.Expense,
				Category: "Food & Dining",
				Currency: "USD",
				Date:     day("2024-03-15"),
			})
			suite.Assert().Nil(err)
		}()
	}
	wg.Wait()

	suite.assertSpent(budget, "100")
}
