package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/finnova/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *model.Document {
	doc := model.NewDocument()
	doc.Income = append(doc.Income, model.IncomeRecord{
		Timestamp: "2024-01-01 09:00:00", Amount: 1000, Description: "salary",
	})
	doc.Expenses = append(doc.Expenses,
		model.ExpenseRecord{Timestamp: "2024-01-02 12:30:00", Amount: 10, Category: "Food", Description: "lunch"},
		model.ExpenseRecord{Timestamp: "2024-01-03 08:15:00", Amount: 3, Category: "Transport", Description: "bus"},
	)
	doc.Categories = append(doc.Categories, "Food", "Transport")
	doc.Budget["Food"] = 200
	doc.Goals = append(doc.Goals, model.Goal{
		ID: "g-1", Name: "Bike", TargetAmount: 500, Deadline: "2024-12-31", SavedAmount: 50,
	})
	return doc
}

func TestDecode_MissingKeysRepaired(t *testing.T) {
	doc, repaired, err := Decode([]byte(`{"income": [], "categories": ["Food"]}`))
	require.NoError(t, err)
	assert.True(t, repaired)
	assert.Equal(t, []string{"Food"}, doc.Categories)
	assert.NotNil(t, doc.Expenses)
	assert.NotNil(t, doc.Budget)
	assert.NotNil(t, doc.Goals)
}

func TestDecode_NullKeyTreatedAsMissing(t *testing.T) {
	doc, repaired, err := Decode([]byte(`{"income": null, "expenses": [], "categories": [], "budget": {}, "goals": []}`))
	require.NoError(t, err)
	assert.True(t, repaired)
	assert.Empty(t, doc.Income)
	assert.NotNil(t, doc.Income)
}

func TestDecode_CompleteDocumentNotRepaired(t *testing.T) {
	data, err := Encode(sampleDocument())
	require.NoError(t, err)

	doc, repaired, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, repaired)
	assert.Equal(t, sampleDocument(), doc)
}

func TestDecode_AssignsGoalIDs(t *testing.T) {
	raw := `{"income": [], "expenses": [], "categories": [], "budget": {},
		"goals": [{"name": "Car", "target_amount": 100, "deadline": "2025-01-01", "saved_amount": 0}]}`
	doc, repaired, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.True(t, repaired)
	require.Len(t, doc.Goals, 1)
	assert.NotEmpty(t, doc.Goals[0].ID)
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not json", "{income"},
		{"array", "[]"},
		{"null", "null"},
		{"wrong type", `{"income": "lots"}`},
		{"bad timestamp", `{"income": [{"timestamp": "yesterday", "amount": 1, "description": ""}]}`},
		{"bad expense timestamp", `{"expenses": [{"timestamp": "2024-13-01 00:00:00", "amount": 1, "category": "x", "description": ""}]}`},
		{"bad deadline", `{"goals": [{"name": "x", "target_amount": 1, "deadline": "soon", "saved_amount": 0}]}`},
		{"empty goal name", `{"goals": [{"name": " ", "target_amount": 1, "deadline": "2024-01-01", "saved_amount": 0}]}`},
		{"negative budget", `{"budget": {"Food": -5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptStore), "got %v", err)
		})
	}
}

func TestEncode_IndentAndKeys(t *testing.T) {
	data, err := Encode(&model.Document{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"income\": []")

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range RequiredKeys {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "{}", string(raw["budget"]))
}

func TestJSONFile_MissingFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	s := NewJSONFile(path, nil)

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.NewDocument(), doc)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestJSONFile_RepairPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"income": []}`), 0o600))

	_, err := NewJSONFile(path, nil).Load(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, len(RequiredKeys))
}

func TestJSONFile_CorruptFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewJSONFile(path, nil).Load(context.Background())
	require.ErrorIs(t, err, ErrCorruptStore)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not json", string(data), "corrupt file must be left alone")
}

func TestJSONFile_RoundTripIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewJSONFile(path, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleDocument()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument(), doc)

	require.NoError(t, s.Save(ctx, doc))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestMemory_LoadSave(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	doc, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Saves(), "default document is persisted")

	doc.Categories = append(doc.Categories, "Food")
	require.NoError(t, m.Save(ctx, doc))

	again, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food"}, again.Categories)
	assert.Equal(t, 2, m.Saves())
}

func TestMemory_Seeded(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryFrom([]byte(`{"categories": ["Rent"]}`))

	doc, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rent"}, doc.Categories)
	assert.Equal(t, 1, m.Saves())
	assert.True(t, strings.Contains(string(m.Bytes()), `"goals": []`))

	_, err = NewMemoryFrom([]byte("{")).Load(ctx)
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "finnova.db")

	db, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	empty, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.NewDocument(), empty)

	require.NoError(t, db.Save(ctx, sampleDocument()))
	doc, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument(), doc)

	// A second save replaces rather than appends.
	doc.Expenses = doc.Expenses[:1]
	delete(doc.Budget, "Food")
	require.NoError(t, db.Save(ctx, doc))

	again, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, again.Expenses, 1)
	assert.Empty(t, again.Budget)
	assert.Equal(t, "lunch", again.Expenses[0].Description)
}

func TestSQLite_AssignsGoalIDs(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "finnova.db"), nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	doc := sampleDocument()
	doc.Goals[0].ID = ""
	require.NoError(t, db.Save(ctx, doc))

	loaded, err := db.Load(ctx)
	require.NoError(t, err)
	id := loaded.Goals[0].ID
	assert.NotEmpty(t, id)

	reloaded, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, reloaded.Goals[0].ID, "assigned id is persisted")
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, b)

	b, err = ParseBackend(" SQLite ")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, b)

	_, err = ParseBackend("postgres")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			repo, cleanup, err := Open(b, filepath.Join(dir, "data."+string(b)), nil)
			require.NoError(t, err)
			defer func() { _ = cleanup() }()

			doc, err := repo.Load(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, doc.Budget)
		})
	}
}

func FuzzDecode(f *testing.F) {
	seed, _ := Encode(sampleDocument())
	f.Add(seed)
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"income": null}`))
	f.Add([]byte(`{"goals": [{"name": "x", "deadline": "2024-01-01"}]}`))
	f.Add([]byte(`not json`))

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, _, err := Decode(data)
		if err != nil {
			if !errors.Is(err, ErrCorruptStore) {
				t.Fatalf("error not wrapped as corrupt: %v", err)
			}
			return
		}

		encoded, err := Encode(doc)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		again, repaired, err := Decode(encoded)
		if err != nil {
			t.Fatalf("re-decode: %v", err)
		}
		if repaired {
			t.Fatal("encoded document needed repair")
		}
		if !assert.ObjectsAreEqual(doc, again) {
			t.Fatalf("round trip changed document:\n%+v\n%+v", doc, again)
		}
	})
}
