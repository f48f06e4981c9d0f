package models

// SuggestedCategories are offered to users when entering transactions and budgets.
// Categories are free text, any other value is accepted as well.
var SuggestedCategories = map[TransactionType][]string{
	Expense: {
		"Food & Dining",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Bills & Utilities",
		"Healthcare",
		"Education",
		"Travel",
		"Housing",
		"Personal Care",
		"Other",
	},
	Income: {
		"Salary",
		"Freelance",
		"Investments",
		"Gifts",
		"Refunds",
		"Other",
	},
}
