package store

import "github.com/pocketledger-dev/pocketledger/internal/model"

// DefaultCategories returns the built-in system categories seeded into a
// fresh store.
func DefaultCategories() []model.Category {
	expense := []model.Category{
		{Name: "Groceries", Icon: "shopping_cart", Color: "#4CAF50", SortOrder: 1},
		{Name: "Transport", Icon: "directions_car", Color: "#2196F3", SortOrder: 2},
		{Name: "Fuel", Icon: "local_gas_station", Color: "#FF5722", SortOrder: 3},
		{Name: "Utilities", Icon: "bolt", Color: "#FF9800", SortOrder: 4},
		{Name: "Entertainment", Icon: "movie", Color: "#9C27B0", SortOrder: 5},
		{Name: "Dining Out", Icon: "restaurant", Color: "#E91E63", SortOrder: 6},
		{Name: "Healthcare", Icon: "local_hospital", Color: "#00BCD4", SortOrder: 7},
		{Name: "Shopping", Icon: "local_mall", Color: "#795548", SortOrder: 8},
		{Name: "Insurance", Icon: "security", Color: "#607D8B", SortOrder: 9},
		{Name: "Bank Fees", Icon: "account_balance", Color: "#9E9E9E", SortOrder: 10},
		{Name: "Subscriptions", Icon: "subscriptions", Color: "#673AB7", SortOrder: 11},
		{Name: "Medical Aid", Icon: "health_and_safety", Color: "#F44336", SortOrder: 12},
		{Name: "Pension", Icon: "savings", Color: "#3F51B5", SortOrder: 13},
		{Name: "Domestic Help", Icon: "cleaning_services", Color: "#8BC34A", SortOrder: 14},
		{Name: "Rates & Taxes", Icon: "home", Color: "#CDDC39", SortOrder: 15},
		{Name: "Gambling/Lotto", Icon: "casino", Color: "#FFC107", SortOrder: 16},
		{Name: "Business Expenses", Icon: "business", Color: "#1976D2", SortOrder: 17},
		{Name: "Other Expense", Icon: "receipt", Color: "#757575", SortOrder: 99},
	}
	income := []model.Category{
		{Name: "Salary", Icon: "payments", Color: "#4CAF50", IsIncome: true, SortOrder: 1},
		{Name: "Freelance/Contract", Icon: "work", Color: "#8BC34A", IsIncome: true, SortOrder: 2},
		{Name: "Investment", Icon: "trending_up", Color: "#00BCD4", IsIncome: true, SortOrder: 3},
		{Name: "Refund", Icon: "replay", Color: "#FF9800", IsIncome: true, SortOrder: 4},
		{Name: "Interest", Icon: "percent", Color: "#03A9F4", IsIncome: true, SortOrder: 5},
		{Name: "Other Income", Icon: "attach_money", Color: "#9E9E9E", IsIncome: true, SortOrder: 99},
	}

	cats := append(expense, income...)
	for i := range cats {
		cats[i].IsSystem = true
	}
	return cats
}
