package ledger

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/theirongolddev/finnova/internal/log"
	"github.com/theirongolddev/finnova/internal/model"
	"github.com/theirongolddev/finnova/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, seed string) (*Service, *store.Memory) {
	t.Helper()
	var mem *store.Memory
	if seed == "" {
		mem = store.NewMemory()
	} else {
		mem = store.NewMemoryFrom([]byte(seed))
	}
	n := 0
	svc := NewService(mem,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { n++; return "goal-" + strconv.Itoa(n) }),
	)
	return svc, mem
}

func TestService_AddExpense(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, `{"categories": ["Food"], "budget": {"Food": 20}}`)

	rec, over, err := svc.AddExpense(ctx, 12, "Food", " lunch ")
	require.NoError(t, err)
	assert.False(t, over)
	assert.Equal(t, "2024-01-10 09:30:00", rec.Timestamp)
	assert.Equal(t, "lunch", rec.Description)

	_, over, err = svc.AddExpense(ctx, 25, "Food", "dinner")
	require.NoError(t, err)
	assert.True(t, over, "over budget is reported")

	totals, err := svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 37.0, totals.Expenses, "over-budget expense is still recorded")
}

func TestService_AddExpenseRejects(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t, `{"categories": ["Food"]}`)
	_, err := svc.Document(ctx)
	require.NoError(t, err)
	saves := mem.Saves()

	_, _, err = svc.AddExpense(ctx, 5, "Travel", "")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, _, err = svc.AddExpense(ctx, 0, "Food", "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Equal(t, saves, mem.Saves(), "rejected input writes nothing")
}

func TestService_Goals(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t, "")

	g, err := svc.AddGoal(ctx, "Bike", 600, "2024-04-09")
	require.NoError(t, err)
	assert.Equal(t, "goal-1", g.ID)
	assert.Equal(t, 0.0, g.SavedAmount)

	_, err = svc.AddGoal(ctx, " ", 100, "2024-04-09")
	assert.ErrorIs(t, err, ErrEmptyGoalName)
	_, err = svc.AddGoal(ctx, "Car", 0, "2024-04-09")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.AddGoal(ctx, "Car", 100, "April")
	assert.ErrorIs(t, err, ErrInvalidDate)

	found, err := svc.UpdateGoalSavings(ctx, "Bike", 150)
	require.NoError(t, err)
	assert.True(t, found)

	saves := mem.Saves()
	found, err = svc.UpdateGoalSavings(ctx, "Boat", 10)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, saves, mem.Saves(), "a miss does not rewrite the document")

	found, err = svc.UpdateGoalSavingsByID(ctx, "goal-1", 50)
	require.NoError(t, err)
	assert.True(t, found)

	goals, err := svc.Goals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 200.0, goals[0].SavedAmount)

	p, err := svc.Progress(goals[0])
	require.NoError(t, err)
	assert.Equal(t, 90, p.DaysRemaining)
	assert.InDelta(t, 33.333, p.Progress, 0.001)
	assert.InDelta(t, 400.0/3, p.RequiredMonthlySavings, 1e-9)
}

func TestService_Categories(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "")

	name, err := svc.AddCategory(ctx, " Food ")
	require.NoError(t, err)
	assert.Equal(t, "Food", name)

	_, err = svc.AddCategory(ctx, "Food")
	assert.ErrorIs(t, err, ErrCategoryExists)

	require.NoError(t, svc.SetBudget(ctx, "Food", 100))
	assert.ErrorIs(t, svc.SetBudget(ctx, "Rent", 100), ErrUnknownCategory)
	assert.ErrorIs(t, svc.SetBudget(ctx, "Food", -1), ErrNegativeBudget)

	require.NoError(t, svc.RenameCategory(ctx, "Food", "Groceries"))
	report, err := svc.Budget(ctx)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Groceries", report.Rows[0].Category)
	assert.Equal(t, 100.0, report.Rows[0].Budget)

	require.NoError(t, svc.DeleteCategory(ctx, "Groceries"))
	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.ErrorIs(t, svc.DeleteCategory(ctx, "Groceries"), ErrCategoryNotFound)
}

func TestService_Reports(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, `{
		"income": [{"timestamp": "2024-01-01 08:00:00", "amount": 500, "description": "pay"}],
		"expenses": [
			{"timestamp": "2024-01-03 12:00:00", "amount": 10, "category": "Food", "description": ""},
			{"timestamp": "2024-01-05 12:00:00", "amount": 5, "category": "Transport", "description": ""}
		],
		"categories": ["Food", "Transport"],
		"budget": {"Food": 50},
		"goals": [
			{"id": "a", "name": "Late", "target_amount": 100, "deadline": "2024-06-01", "saved_amount": 0},
			{"id": "b", "name": "Soon", "target_amount": 100, "deadline": "2024-01-15", "saved_amount": 40}
		]
	}`)

	recent, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-01-05", recent[0].Date)

	filtered, err := svc.Filter(ctx, day("2024-01-02"), day("2024-01-04"))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Food", filtered[0].Category)

	b, err := svc.Breakdown(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 5}, b.Amounts)

	snap, err := svc.Snapshot(ctx, RecentLimit)
	require.NoError(t, err)
	assert.Equal(t, 485.0, snap.Totals.Balance)
	require.Len(t, snap.Goals, 2)
	assert.Equal(t, "Soon", snap.Goals[0].Name, "goals ordered by deadline")
	assert.Equal(t, model.GoalUrgent, snap.Goals[0].Progress.State())
	assert.Len(t, snap.Daily, 30)

	latest, ok := snap.LatestGoal()
	require.True(t, ok)
	assert.Equal(t, "Soon", latest.Name)
	assert.InDelta(t, 40.0, latest.Progress.Progress, 1e-9)
}

func TestService_CorruptStore(t *testing.T) {
	svc, _ := newTestService(t, "{broken")
	_, err := svc.Totals(context.Background())
	assert.ErrorIs(t, err, store.ErrCorruptStore)

	_, err = svc.AddIncome(context.Background(), 10, "")
	assert.ErrorIs(t, err, store.ErrCorruptStore)
}

func TestService_LogsWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelInfo, Output: &buf})
	svc := NewService(store.NewMemory(), WithLogger(logger), WithClock(func() time.Time { return fixedNow }))

	_, err := svc.AddIncome(context.Background(), 42, "bonus")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "income added")
	assert.Contains(t, buf.String(), "component=ledger")
	assert.Contains(t, buf.String(), "amount=42")
}
