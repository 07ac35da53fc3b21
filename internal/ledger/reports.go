package ledger

import (
	"sort"
	"time"

	"github.com/theirongolddev/finnova/internal/model"
)

// GetExpenseBreakdown sums expenses per category. Categories appear in the
// order they are first seen in the expenses; categories without expenses
// are omitted.
func GetExpenseBreakdown(doc *model.Document) model.Breakdown {
	var b model.Breakdown
	index := make(map[string]int)
	for _, r := range doc.Expenses {
		i, ok := index[r.Category]
		if !ok {
			i = len(b.Categories)
			index[r.Category] = i
			b.Categories = append(b.Categories, r.Category)
			b.Amounts = append(b.Amounts, 0)
		}
		b.Amounts[i] += r.Amount
	}
	return b
}

// Transactions merges income then expenses into report rows in stored order.
func Transactions(doc *model.Document) []model.Transaction {
	txs := make([]model.Transaction, 0, len(doc.Income)+len(doc.Expenses))
	for _, r := range doc.Income {
		txs = append(txs, model.Transaction{
			Date:        model.Date(r.Timestamp),
			Category:    model.NoCategory,
			Amount:      r.Amount,
			Type:        model.TypeIncome,
			Description: r.Description,
		})
	}
	for _, r := range doc.Expenses {
		txs = append(txs, model.Transaction{
			Date:        model.Date(r.Timestamp),
			Category:    r.Category,
			Amount:      r.Amount,
			Type:        model.TypeExpense,
			Description: r.Description,
		})
	}
	return txs
}

// GetRecentTransactions returns the merged rows, most recent date first,
// truncated to limit. Rows on the same date keep their merged order. A
// limit of zero or less returns every row.
func GetRecentTransactions(doc *model.Document, limit int) []model.Transaction {
	return NewestFirst(Transactions(doc), limit)
}

// NewestFirst returns a copy of txs sorted by date, newest first and stable,
// cut to limit when limit > 0.
func NewestFirst(txs []model.Transaction, limit int) []model.Transaction {
	txs = append([]model.Transaction(nil), txs...)
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date > txs[j].Date
	})
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs
}

// FilterTransactions returns the merged rows dated within [from, to], in
// stored order. A zero from or to leaves that side of the range open.
func FilterTransactions(doc *model.Document, from, to time.Time) []model.Transaction {
	var lo, hi string
	if !from.IsZero() {
		lo = from.Format(model.DateLayout)
	}
	if !to.IsZero() {
		hi = to.Format(model.DateLayout)
	}

	var out []model.Transaction
	for _, tx := range Transactions(doc) {
		if lo != "" && tx.Date < lo {
			continue
		}
		if hi != "" && tx.Date > hi {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// BuildBudgetReport reports usage for every category that has a non-zero
// budget, sorted by name.
func BuildBudgetReport(doc *model.Document) model.BudgetReport {
	spent := make(map[string]float64)
	for _, r := range doc.Expenses {
		spent[r.Category] += r.Amount
	}

	names := make(map[string]struct{})
	for _, c := range doc.Categories {
		names[c] = struct{}{}
	}
	for c := range doc.Budget {
		names[c] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for c := range names {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)

	var report model.BudgetReport
	for _, c := range sorted {
		budget := doc.Budget[c]
		if budget == 0 {
			continue
		}
		row := model.BudgetStatus{
			Category:    c,
			Budget:      budget,
			Spent:       spent[c],
			Remaining:   budget - spent[c],
			UsedPercent: spent[c] / budget * 100,
		}
		report.Rows = append(report.Rows, row)
		report.TotalBudget += row.Budget
		report.TotalSpent += row.Spent
	}
	report.TotalRemaining = report.TotalBudget - report.TotalSpent
	return report
}

// DailyTotals sums income and expenses per day between since and until,
// most recent day first. Days without records are included as zeros.
func DailyTotals(doc *model.Document, since, until time.Time) []model.DailyTotals {
	dayMap := make(map[string]*model.DailyTotals)
	get := func(key string) *model.DailyTotals {
		dt, ok := dayMap[key]
		if !ok {
			d, _ := time.Parse(model.DateLayout, key)
			dt = &model.DailyTotals{Date: d}
			dayMap[key] = dt
		}
		return dt
	}

	lo := since.Format(model.DateLayout)
	hi := until.Format(model.DateLayout)
	for _, r := range doc.Income {
		if key := model.Date(r.Timestamp); key >= lo && key <= hi {
			get(key).Income += r.Amount
		}
	}
	for _, r := range doc.Expenses {
		if key := model.Date(r.Timestamp); key >= lo && key <= hi {
			get(key).Expenses += r.Amount
		}
	}

	// Fill in every day in the range so charts show gaps as zeros
	day := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(until.Year(), until.Month(), until.Day(), 0, 0, 0, 0, time.UTC)
	for !day.After(end) {
		get(day.Format(model.DateLayout))
		day = day.AddDate(0, 0, 1)
	}

	days := make([]model.DailyTotals, 0, len(dayMap))
	for _, dt := range dayMap {
		days = append(days, *dt)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}
