package ledger

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/theirongolddev/finnova/internal/model"
)

// HasCategory reports whether name is a known category.
func HasCategory(doc *model.Document, name string) bool {
	return slices.Contains(doc.Categories, name)
}

// AddCategory appends a new category and returns the trimmed name.
func AddCategory(doc *model.Document, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyCategory
	}
	if HasCategory(doc, name) {
		return "", fmt.Errorf("%w: %q", ErrCategoryExists, name)
	}
	doc.Categories = append(doc.Categories, name)
	return name, nil
}

// RenameCategory renames a category in place and moves its budget entry.
// Expenses already recorded keep the old name.
func RenameCategory(doc *model.Document, oldName, newName string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return ErrEmptyCategory
	}
	idx := slices.Index(doc.Categories, oldName)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if HasCategory(doc, newName) {
		return fmt.Errorf("%w: %q", ErrCategoryExists, newName)
	}

	doc.Categories[idx] = newName
	if amount, ok := doc.Budget[oldName]; ok {
		delete(doc.Budget, oldName)
		doc.Budget[newName] = amount
	}
	return nil
}

// DeleteCategory removes a category and its budget entry. Expenses are
// left untouched.
func DeleteCategory(doc *model.Document, name string) error {
	name = strings.TrimSpace(name)
	idx := slices.Index(doc.Categories, name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
	}
	doc.Categories = slices.Delete(doc.Categories, idx, idx+1)
	delete(doc.Budget, name)
	return nil
}

// SetBudget sets the budget for category.
func SetBudget(doc *model.Document, category string, amount float64) error {
	if amount < 0 {
		return ErrNegativeBudget
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if doc.Budget == nil {
		doc.Budget = map[string]float64{}
	}
	doc.Budget[category] = amount
	return nil
}
