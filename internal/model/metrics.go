package model

import "time"

// Totals holds the document-wide sums.
type Totals struct {
	Income   float64
	Expenses float64
	Balance  float64
}

// GoalProgress holds the derived state of a single goal as of some day.
// Progress is a percentage and is not clamped; it exceeds 100 once the
// saved amount passes the target.
type GoalProgress struct {
	Progress               float64
	DaysRemaining          int
	MonthsRemaining        float64
	RequiredMonthlySavings float64
}

// Breakdown holds expense totals per category as two parallel slices,
// categories in first-seen order.
type Breakdown struct {
	Categories []string
	Amounts    []float64
}

// Len returns the number of categories in the breakdown.
func (b Breakdown) Len() int { return len(b.Categories) }

// Transaction types for merged report rows.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// NoCategory is the category shown for income rows.
const NoCategory = "-"

// Transaction is a merged income/expense row used by reports and exports.
type Transaction struct {
	Date        string
	Category    string
	Amount      float64
	Type        string
	Description string
}

// GoalState classifies a goal by how close its deadline is.
type GoalState string

const (
	GoalOnTrack GoalState = "on track"
	GoalUrgent  GoalState = "urgent"
	GoalOverdue GoalState = "overdue"
)

// UrgentDays is the number of remaining days below which a goal is urgent.
const UrgentDays = 7

// State classifies the progress by its remaining days.
func (p GoalProgress) State() GoalState {
	switch {
	case p.DaysRemaining < 0:
		return GoalOverdue
	case p.DaysRemaining < UrgentDays:
		return GoalUrgent
	default:
		return GoalOnTrack
	}
}

// DailyTotals holds the income and expense sums for one calendar day.
type DailyTotals struct {
	Date     time.Time
	Income   float64
	Expenses float64
}
