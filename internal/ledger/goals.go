package ledger

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/finnova/internal/model"
)

// AddGoal appends a goal with nothing saved yet and returns it. Names are
// not required to be unique.
func AddGoal(doc *model.Document, id, name string, target float64, deadline string) model.Goal {
	g := model.Goal{
		ID:           id,
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
	}
	doc.Goals = append(doc.Goals, g)
	return g
}

// UpdateGoalSavings adds amount to the first goal named name and reports
// whether one matched.
func UpdateGoalSavings(doc *model.Document, name string, amount float64) bool {
	for i := range doc.Goals {
		if doc.Goals[i].Name == name {
			doc.Goals[i].SavedAmount += amount
			return true
		}
	}
	return false
}

// UpdateGoalSavingsByID adds amount to the goal with the given id.
func UpdateGoalSavingsByID(doc *model.Document, id string, amount float64) bool {
	if id == "" {
		return false
	}
	for i := range doc.Goals {
		if doc.Goals[i].ID == id {
			doc.Goals[i].SavedAmount += amount
			return true
		}
	}
	return false
}

// GetGoals returns the goals in stored order.
func GetGoals(doc *model.Document) []model.Goal {
	return doc.Goals
}

// GoalsByDeadline returns a copy of the goals sorted by deadline, earliest
// first. Goals with equal deadlines keep their stored order.
func GoalsByDeadline(doc *model.Document) []model.Goal {
	goals := make([]model.Goal, len(doc.Goals))
	copy(goals, doc.Goals)
	// Deadlines are YYYY-MM-DD, so string order is date order.
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Deadline < goals[j].Deadline
	})
	return goals
}

// LatestGoal returns the most recently added goal.
func LatestGoal(doc *model.Document) (model.Goal, bool) {
	if len(doc.Goals) == 0 {
		return model.Goal{}, false
	}
	return doc.Goals[len(doc.Goals)-1], true
}

// CalculateGoalProgress derives a goal's progress as of today. Days are
// counted between calendar dates, so the time of day does not matter.
func CalculateGoalProgress(goal model.Goal, today time.Time) (model.GoalProgress, error) {
	deadline, err := time.Parse(model.DateLayout, goal.Deadline)
	if err != nil {
		return model.GoalProgress{}, fmt.Errorf("goal %q: %w: %q", goal.Name, ErrInvalidDate, goal.Deadline)
	}

	var p model.GoalProgress
	if goal.TargetAmount > 0 {
		p.Progress = goal.SavedAmount / goal.TargetAmount * 100
	}

	p.DaysRemaining = daysBetween(today, deadline)
	p.MonthsRemaining = math.Max(float64(p.DaysRemaining)/30, 0.1)
	p.RequiredMonthlySavings = (goal.TargetAmount - goal.SavedAmount) / p.MonthsRemaining
	return p, nil
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
