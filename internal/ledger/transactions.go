package ledger

import (
	"time"

	"github.com/theirongolddev/finnova/internal/model"
)

// AddExpense appends an expense timestamped now and returns it. The
// category is not checked; see ExceedsBudget for the budget warning.
func AddExpense(doc *model.Document, amount float64, category, description string, now time.Time) model.ExpenseRecord {
	r := model.ExpenseRecord{
		Timestamp:   now.Format(model.TimestampLayout),
		Amount:      amount,
		Category:    category,
		Description: description,
	}
	doc.Expenses = append(doc.Expenses, r)
	return r
}

// ExceedsBudget reports whether amount is larger than the budget set for
// category. Categories without a budget entry never exceed.
func ExceedsBudget(doc *model.Document, category string, amount float64) bool {
	budget, ok := doc.Budget[category]
	return ok && amount > budget
}

// AddIncome appends an income record timestamped now and returns it.
func AddIncome(doc *model.Document, amount float64, description string, now time.Time) model.IncomeRecord {
	r := model.IncomeRecord{
		Timestamp:   now.Format(model.TimestampLayout),
		Amount:      amount,
		Description: description,
	}
	doc.Income = append(doc.Income, r)
	return r
}

// CalculateTotals sums all income and expenses.
func CalculateTotals(doc *model.Document) model.Totals {
	var t model.Totals
	for _, r := range doc.Income {
		t.Income += r.Amount
	}
	for _, r := range doc.Expenses {
		t.Expenses += r.Amount
	}
	t.Balance = t.Income - t.Expenses
	return t
}
