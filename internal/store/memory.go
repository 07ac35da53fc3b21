package store

import (
	"context"
	"sync"

	"github.com/theirongolddev/finnova/internal/model"
)

// Memory keeps the encoded document in memory. It runs the same codec as
// the file backend, so repair and validation behave identically.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemory returns an empty store; the first Load creates the default document.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryFrom returns a store seeded with raw stored content.
func NewMemoryFrom(data []byte) *Memory {
	return &Memory{data: append([]byte(nil), data...)}
}

// Load implements Repository.
func (m *Memory) Load(ctx context.Context) (*model.Document, error) {
	m.mu.Lock()
	data := m.data
	m.mu.Unlock()

	if data == nil {
		doc := model.NewDocument()
		if err := m.Save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	doc, repaired, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if repaired {
		if err := m.Save(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Save implements Repository.
func (m *Memory) Save(_ context.Context, doc *model.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

// Bytes returns a copy of the stored content.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// Saves returns how many times the document was written.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
