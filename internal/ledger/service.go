package ledger

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/finnova/internal/log"
	"github.com/theirongolddev/finnova/internal/model"
	"github.com/theirongolddev/finnova/internal/store"

	"github.com/google/uuid"
)

// RecentLimit is the number of recent transactions shown on summaries.
const RecentLimit = 5

// Service runs ledger operations against a repository. Every write loads
// the document, applies one change and saves it back.
type Service struct {
	repo  store.Repository
	now   func() time.Time
	newID func() string
	log   *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for timestamps and goal progress.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides goal ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService returns a service backed by repo.
func NewService(repo store.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
		log:   log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent(log.ComponentLedger)
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Document loads the current document.
func (s *Service) Document(ctx context.Context) (*model.Document, error) {
	return s.repo.Load(ctx)
}

// mutate loads the document, applies fn and saves when fn reports a change.
func (s *Service) mutate(ctx context.Context, op string, fn func(doc *model.Document) (bool, error)) error {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		s.log.Debug("nothing to save", log.FieldOperation, op)
		return nil
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func checkAmount(v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v must be greater than zero", ErrInvalidAmount, v)
	}
	return nil
}

// AddExpense records an expense in a known category. overBudget reports
// whether the amount exceeds the category budget; the expense is recorded
// either way.
func (s *Service) AddExpense(ctx context.Context, amount float64, category, description string) (rec model.ExpenseRecord, overBudget bool, err error) {
	if err := checkAmount(amount); err != nil {
		return rec, false, err
	}
	category = strings.TrimSpace(category)
	err = s.mutate(ctx, "add expense", func(doc *model.Document) (bool, error) {
		if !HasCategory(doc, category) {
			return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		overBudget = ExceedsBudget(doc, category, amount)
		rec = AddExpense(doc, amount, category, strings.TrimSpace(description), s.now())
		return true, nil
	})
	if err != nil {
		return model.ExpenseRecord{}, false, err
	}
	s.log.Info("expense added", log.FieldAmount, amount, log.FieldCategory, category)
	if overBudget {
		s.log.Warn("expense exceeds budget", log.FieldAmount, amount, log.FieldCategory, category)
	}
	return rec, overBudget, nil
}

// AddIncome records an income entry.
func (s *Service) AddIncome(ctx context.Context, amount float64, description string) (model.IncomeRecord, error) {
	if err := checkAmount(amount); err != nil {
		return model.IncomeRecord{}, err
	}
	var rec model.IncomeRecord
	err := s.mutate(ctx, "add income", func(doc *model.Document) (bool, error) {
		rec = AddIncome(doc, amount, strings.TrimSpace(description), s.now())
		return true, nil
	})
	if err != nil {
		return model.IncomeRecord{}, err
	}
	s.log.Info("income added", log.FieldAmount, amount)
	return rec, nil
}

// AddGoal creates a savings goal.
func (s *Service) AddGoal(ctx context.Context, name string, target float64, deadline string) (model.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Goal{}, ErrEmptyGoalName
	}
	if err := checkAmount(target); err != nil {
		return model.Goal{}, err
	}
	d, err := ParseDate(deadline)
	if err != nil {
		return model.Goal{}, err
	}

	var g model.Goal
	err = s.mutate(ctx, "add goal", func(doc *model.Document) (bool, error) {
		g = AddGoal(doc, s.newID(), name, target, d.Format(model.DateLayout))
		return true, nil
	})
	if err != nil {
		return model.Goal{}, err
	}
	s.log.Info("goal added", log.FieldGoal, name, log.FieldAmount, target)
	return g, nil
}

// UpdateGoalSavings adds amount to the first goal named name. found is
// false, and nothing is written, when no goal has that name.
func (s *Service) UpdateGoalSavings(ctx context.Context, name string, amount float64) (found bool, err error) {
	if err := checkAmount(amount); err != nil {
		return false, err
	}
	err = s.mutate(ctx, "update goal savings", func(doc *model.Document) (bool, error) {
		found = UpdateGoalSavings(doc, name, amount)
		return found, nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.log.Info("goal savings updated", log.FieldGoal, name, log.FieldAmount, amount)
	} else {
		s.log.Warn("goal not found", log.FieldGoal, name)
	}
	return found, nil
}

// UpdateGoalSavingsByID adds amount to the goal with the given id.
func (s *Service) UpdateGoalSavingsByID(ctx context.Context, id string, amount float64) (found bool, err error) {
	if err := checkAmount(amount); err != nil {
		return false, err
	}
	err = s.mutate(ctx, "update goal savings", func(doc *model.Document) (bool, error) {
		found = UpdateGoalSavingsByID(doc, id, amount)
		return found, nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.log.Info("goal savings updated", log.FieldGoal, id, log.FieldAmount, amount)
	}
	return found, nil
}

// Goals returns the goals in stored order.
func (s *Service) Goals(ctx context.Context) ([]model.Goal, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return GetGoals(doc), nil
}

// Progress derives a goal's progress as of the service clock's today.
func (s *Service) Progress(goal model.Goal) (model.GoalProgress, error) {
	return CalculateGoalProgress(goal, s.now())
}

// Totals returns the income, expense and balance sums.
func (s *Service) Totals(ctx context.Context) (model.Totals, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return model.Totals{}, err
	}
	return CalculateTotals(doc), nil
}

// Breakdown returns expense totals per category.
func (s *Service) Breakdown(ctx context.Context) (model.Breakdown, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return model.Breakdown{}, err
	}
	return GetExpenseBreakdown(doc), nil
}

// Recent returns up to limit transactions, most recent first.
func (s *Service) Recent(ctx context.Context, limit int) ([]model.Transaction, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return GetRecentTransactions(doc, limit), nil
}

// Filter returns transactions dated within [from, to].
func (s *Service) Filter(ctx context.Context, from, to time.Time) ([]model.Transaction, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return FilterTransactions(doc, from, to), nil
}

// Budget returns the budget usage report.
func (s *Service) Budget(ctx context.Context) (model.BudgetReport, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return model.BudgetReport{}, err
	}
	return BuildBudgetReport(doc), nil
}

// Categories returns the category names in stored order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// SetBudget sets the budget of an existing category.
func (s *Service) SetBudget(ctx context.Context, category string, amount float64) error {
	category = strings.TrimSpace(category)
	err := s.mutate(ctx, "set budget", func(doc *model.Document) (bool, error) {
		if !HasCategory(doc, category) {
			return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		return true, SetBudget(doc, category, amount)
	})
	if err != nil {
		return err
	}
	s.log.Info("budget set", log.FieldCategory, category, log.FieldAmount, amount)
	return nil
}

// AddCategory adds a category and returns its trimmed name.
func (s *Service) AddCategory(ctx context.Context, name string) (string, error) {
	var added string
	err := s.mutate(ctx, "add category", func(doc *model.Document) (bool, error) {
		var err error
		added, err = AddCategory(doc, name)
		return err == nil, err
	})
	if err != nil {
		return "", err
	}
	s.log.Info("category added", log.FieldCategory, added)
	return added, nil
}

// RenameCategory renames a category and moves its budget.
func (s *Service) RenameCategory(ctx context.Context, oldName, newName string) error {
	err := s.mutate(ctx, "rename category", func(doc *model.Document) (bool, error) {
		return true, RenameCategory(doc, oldName, newName)
	})
	if err != nil {
		return err
	}
	s.log.Info("category renamed", log.FieldCategory, newName, "from", oldName)
	return nil
}

// DeleteCategory removes a category and its budget.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	err := s.mutate(ctx, "delete category", func(doc *model.Document) (bool, error) {
		return true, DeleteCategory(doc, name)
	})
	if err != nil {
		return err
	}
	s.log.Info("category deleted", log.FieldCategory, name)
	return nil
}
