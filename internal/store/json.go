package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/theirongolddev/finnova/internal/log"
	"github.com/theirongolddev/finnova/internal/model"
)

// JSONFile stores the document as one indented JSON file. Saves overwrite
// the file in place; concurrent writers clobber each other.
type JSONFile struct {
	path string
	log  *log.Logger
}

// NewJSONFile returns a store backed by the file at path.
func NewJSONFile(path string, logger *log.Logger) *JSONFile {
	if logger == nil {
		logger = log.Discard()
	}
	return &JSONFile{path: path, log: logger.WithComponent(log.ComponentStore)}
}

// Path returns the backing file path.
func (s *JSONFile) Path() string {
	return s.path
}

// Load implements Repository.
func (s *JSONFile) Load(ctx context.Context) (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			doc := model.NewDocument()
			if err := s.Save(ctx, doc); err != nil {
				return nil, err
			}
			s.log.Info("created data file", log.FieldPath, s.path)
			return doc, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	doc, repaired, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	if repaired {
		s.log.Warn("repaired data file", log.FieldPath, s.path)
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Save implements Repository.
func (s *JSONFile) Save(_ context.Context, doc *model.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
