package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/finnova/internal/log"
	"github.com/theirongolddev/finnova/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite stores the document in one table per collection.
type SQLite struct {
	db   *sql.DB
	path string
	log  *log.Logger
}

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string, logger *log.Logger) (*SQLite, error) {
	if logger == nil {
		logger = log.Discard()
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db, path: dbPath, log: logger.WithComponent(log.ComponentStore)}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load implements Repository. A fresh database holds the default document.
func (s *SQLite) Load(ctx context.Context) (*model.Document, error) {
	doc := model.NewDocument()

	if err := s.loadIncome(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.loadExpenses(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.loadCategories(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.loadBudget(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.loadGoals(ctx, doc); err != nil {
		return nil, err
	}

	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("loading %s: %w: %w", s.path, ErrCorruptStore, err)
	}
	if assignGoalIDs(doc) {
		s.log.Warn("assigned missing goal ids", log.FieldPath, s.path)
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (s *SQLite) loadIncome(ctx context.Context, doc *model.Document) error {
	rows, err := s.db.QueryContext(ctx, "SELECT timestamp, amount, description FROM income ORDER BY position")
	if err != nil {
		return fmt.Errorf("querying income: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r model.IncomeRecord
		if err := rows.Scan(&r.Timestamp, &r.Amount, &r.Description); err != nil {
			return fmt.Errorf("scanning income: %w", err)
		}
		doc.Income = append(doc.Income, r)
	}
	return rows.Err()
}

func (s *SQLite) loadExpenses(ctx context.Context, doc *model.Document) error {
	rows, err := s.db.QueryContext(ctx, "SELECT timestamp, amount, category, description FROM expenses ORDER BY position")
	if err != nil {
		return fmt.Errorf("querying expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r model.ExpenseRecord
		if err := rows.Scan(&r.Timestamp, &r.Amount, &r.Category, &r.Description); err != nil {
			return fmt.Errorf("scanning expenses: %w", err)
		}
		doc.Expenses = append(doc.Expenses, r)
	}
	return rows.Err()
}

func (s *SQLite) loadCategories(ctx context.Context, doc *model.Document) error {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM categories ORDER BY position")
	if err != nil {
		return fmt.Errorf("querying categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning categories: %w", err)
		}
		doc.Categories = append(doc.Categories, name)
	}
	return rows.Err()
}

func (s *SQLite) loadBudget(ctx context.Context, doc *model.Document) error {
	rows, err := s.db.QueryContext(ctx, "SELECT category, amount FROM budget")
	if err != nil {
		return fmt.Errorf("querying budget: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return fmt.Errorf("scanning budget: %w", err)
		}
		doc.Budget[category] = amount
	}
	return rows.Err()
}

func (s *SQLite) loadGoals(ctx context.Context, doc *model.Document) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, target_amount, deadline, saved_amount FROM goals ORDER BY position")
	if err != nil {
		return fmt.Errorf("querying goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.Deadline, &g.SavedAmount); err != nil {
			return fmt.Errorf("scanning goals: %w", err)
		}
		doc.Goals = append(doc.Goals, g)
	}
	return rows.Err()
}

// Save implements Repository. All tables are replaced in one transaction.
func (s *SQLite) Save(ctx context.Context, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	doc.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"income", "expenses", "categories", "budget", "goals"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, r := range doc.Income {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO income (position, timestamp, amount, description) VALUES (?, ?, ?, ?)",
			i, r.Timestamp, r.Amount, r.Description,
		); err != nil {
			return fmt.Errorf("inserting income: %w", err)
		}
	}
	for i, r := range doc.Expenses {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (position, timestamp, amount, category, description) VALUES (?, ?, ?, ?, ?)",
			i, r.Timestamp, r.Amount, r.Category, r.Description,
		); err != nil {
			return fmt.Errorf("inserting expense: %w", err)
		}
	}
	for i, name := range doc.Categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO categories (position, name) VALUES (?, ?)", i, name,
		); err != nil {
			return fmt.Errorf("inserting category: %w", err)
		}
	}
	for category, amount := range doc.Budget {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO budget (category, amount) VALUES (?, ?)", category, amount,
		); err != nil {
			return fmt.Errorf("inserting budget: %w", err)
		}
	}
	for i, g := range doc.Goals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO goals (position, id, name, target_amount, deadline, saved_amount)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, g.ID, g.Name, g.TargetAmount, g.Deadline, g.SavedAmount,
		); err != nil {
			return fmt.Errorf("inserting goal: %w", err)
		}
	}

	return tx.Commit()
}
