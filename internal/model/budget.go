package model

// BudgetStatus holds budget usage for one category.
type BudgetStatus struct {
	Category    string
	Budget      float64
	Spent       float64
	Remaining   float64
	UsedPercent float64
}

// BudgetReport holds per-category budget usage plus totals.
type BudgetReport struct {
	Rows           []BudgetStatus
	TotalBudget    float64
	TotalSpent     float64
	TotalRemaining float64
}
