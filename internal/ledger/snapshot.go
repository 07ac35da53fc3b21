package ledger

import (
	"context"
	"time"

	"github.com/theirongolddev/finnova/internal/model"
)

// GoalView pairs a goal with its derived progress.
type GoalView struct {
	model.Goal
	Progress model.GoalProgress
}

// Snapshot is everything the summary and dashboard show, computed from
// one load of the document.
type Snapshot struct {
	Document   *model.Document
	Totals     model.Totals
	Breakdown  model.Breakdown
	Recent     []model.Transaction
	Budget     model.BudgetReport
	Goals      []GoalView
	Daily      []model.DailyTotals
	LoadedAt   time.Time
	Categories []string
}

// LatestGoal returns the most recently added goal view.
func (s Snapshot) LatestGoal() (GoalView, bool) {
	if s.Document == nil {
		return GoalView{}, false
	}
	g, ok := LatestGoal(s.Document)
	if !ok {
		return GoalView{}, false
	}
	for _, v := range s.Goals {
		if v.ID == g.ID && v.Name == g.Name {
			return v, true
		}
	}
	return GoalView{Goal: g}, true
}

// TakeSnapshot derives every report from doc as of now. Goals
// are ordered by deadline; goals whose deadline cannot be parsed get a
// zero progress.
func TakeSnapshot(doc *model.Document, recentLimit int, now time.Time) Snapshot {
	snap := Snapshot{
		Document:   doc,
		Totals:     CalculateTotals(doc),
		Breakdown:  GetExpenseBreakdown(doc),
		Recent:     GetRecentTransactions(doc, recentLimit),
		Budget:     BuildBudgetReport(doc),
		Daily:      DailyTotals(doc, now.AddDate(0, 0, -29), now),
		LoadedAt:   now,
		Categories: doc.Categories,
	}
	for _, g := range GoalsByDeadline(doc) {
		p, _ := CalculateGoalProgress(g, now)
		snap.Goals = append(snap.Goals, GoalView{Goal: g, Progress: p})
	}
	return snap
}

// Snapshot loads the document and computes a Snapshot as of now.
func (s *Service) Snapshot(ctx context.Context, recentLimit int) (Snapshot, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return TakeSnapshot(doc, recentLimit, s.now()), nil
}
