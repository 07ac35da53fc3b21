// Package store persists the finance document. Every backend loads and
// saves the whole document at once and shares the same key repair and
// boundary validation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/finnova/internal/model"

	"github.com/google/uuid"
)

// Repository loads and saves the whole finance document.
type Repository interface {
	// Load returns the stored document, creating and persisting the
	// default document when nothing is stored yet.
	Load(ctx context.Context) (*model.Document, error)
	// Save overwrites the stored document with doc.
	Save(ctx context.Context, doc *model.Document) error
}

// ErrCorruptStore is returned when stored content cannot be decoded or
// fails validation.
var ErrCorruptStore = errors.New("corrupt store")

// RequiredKeys lists the top-level keys every stored document carries.
var RequiredKeys = []string{"income", "expenses", "categories", "budget", "goals"}

// Decode parses a stored document. repaired reports whether any required
// key was missing or null, or a goal lacked an ID; callers persist the
// returned document when it is true.
func Decode(data []byte) (doc *model.Document, repaired bool, err error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	if raw == nil {
		return nil, false, fmt.Errorf("%w: document is not an object", ErrCorruptStore)
	}
	for _, key := range RequiredKeys {
		v, ok := raw[key]
		if !ok || strings.TrimSpace(string(v)) == "null" {
			repaired = true
		}
	}

	doc = &model.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	doc.Normalize()
	if assignGoalIDs(doc) {
		repaired = true
	}
	if err := Validate(doc); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	return doc, repaired, nil
}

// Encode repairs missing collections and renders doc as indented JSON.
func Encode(doc *model.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("document cannot be nil")
	}
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return append(data, '\n'), nil
}

// Validate checks the required fields of every record.
func Validate(doc *model.Document) error {
	for i, r := range doc.Income {
		if err := checkTimestamp(r.Timestamp); err != nil {
			return fmt.Errorf("income[%d]: %w", i, err)
		}
		if err := checkAmount(r.Amount); err != nil {
			return fmt.Errorf("income[%d]: %w", i, err)
		}
	}
	for i, r := range doc.Expenses {
		if err := checkTimestamp(r.Timestamp); err != nil {
			return fmt.Errorf("expenses[%d]: %w", i, err)
		}
		if err := checkAmount(r.Amount); err != nil {
			return fmt.Errorf("expenses[%d]: %w", i, err)
		}
	}
	for category, amount := range doc.Budget {
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return fmt.Errorf("budget[%q]: invalid amount %v", category, amount)
		}
	}
	for i, g := range doc.Goals {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("goals[%d]: empty name", i)
		}
		if _, err := time.Parse(model.DateLayout, g.Deadline); err != nil {
			return fmt.Errorf("goals[%d]: invalid deadline %q", i, g.Deadline)
		}
		if err := checkAmount(g.TargetAmount); err != nil {
			return fmt.Errorf("goals[%d]: %w", i, err)
		}
	}
	return nil
}

func checkTimestamp(ts string) error {
	if _, err := time.Parse(model.TimestampLayout, ts); err != nil {
		return fmt.Errorf("invalid timestamp %q", ts)
	}
	return nil
}

func checkAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid amount %v", v)
	}
	return nil
}

func assignGoalIDs(doc *model.Document) bool {
	changed := false
	for i := range doc.Goals {
		if doc.Goals[i].ID == "" {
			doc.Goals[i].ID = uuid.NewString()
			changed = true
		}
	}
	return changed
}
