// Package ledger implements the finance operations over a model.Document:
// recording transactions, goals, categories and budgets, and deriving the
// totals and reports shown to the user. The functions mutate the document
// in memory only; Service wraps them with load and save.
package ledger

import "errors"

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyCategory    = errors.New("category name cannot be empty")
	ErrNegativeBudget   = errors.New("budget cannot be negative")
	ErrEmptyGoalName    = errors.New("goal name cannot be empty")
	ErrGoalNotFound     = errors.New("goal not found")
)
