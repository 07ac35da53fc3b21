// Package model defines the persisted finance document and the derived
// types computed from it.
package model

// Timestamp and date layouts used by the stored document.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Document is the single persisted aggregate of all application state.
type Document struct {
	Income     []IncomeRecord     `json:"income"`
	Expenses   []ExpenseRecord    `json:"expenses"`
	Categories []string           `json:"categories"`
	Budget     map[string]float64 `json:"budget"`
	Goals      []Goal             `json:"goals"`
}

// IncomeRecord is one income entry.
type IncomeRecord struct {
	Timestamp   string  `json:"timestamp"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// ExpenseRecord is one expense entry. Category should name an entry of
// Document.Categories but storage does not enforce it.
type ExpenseRecord struct {
	Timestamp   string  `json:"timestamp"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// Goal is a named savings target with a deadline.
type Goal struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline"`
	SavedAmount  float64 `json:"saved_amount"`
}

// NewDocument returns an empty document with every key initialized.
func NewDocument() *Document {
	return &Document{
		Income:     []IncomeRecord{},
		Expenses:   []ExpenseRecord{},
		Categories: []string{},
		Budget:     map[string]float64{},
		Goals:      []Goal{},
	}
}

// Normalize fills any nil collection with its empty default and reports
// whether anything changed.
func (d *Document) Normalize() bool {
	changed := false
	if d.Income == nil {
		d.Income = []IncomeRecord{}
		changed = true
	}
	if d.Expenses == nil {
		d.Expenses = []ExpenseRecord{}
		changed = true
	}
	if d.Categories == nil {
		d.Categories = []string{}
		changed = true
	}
	if d.Budget == nil {
		d.Budget = map[string]float64{}
		changed = true
	}
	if d.Goals == nil {
		d.Goals = []Goal{}
		changed = true
	}
	return changed
}

// Date returns the date portion of a record timestamp.
func Date(timestamp string) string {
	if len(timestamp) >= len(DateLayout) {
		return timestamp[:len(DateLayout)]
	}
	return timestamp
}
