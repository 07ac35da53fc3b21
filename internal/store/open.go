package store

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finnova/internal/log"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Backends lists the supported backends.
var Backends = []Backend{BackendJSON, BackendSQLite, BackendMemory}

// ParseBackend resolves a backend name; empty means json.
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendJSON, nil
	}
	for _, b := range Backends {
		if string(b) == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q (want json, sqlite or memory)", name)
}

// CleanupFunc releases resources held by a repository.
type CleanupFunc func() error

func noCleanup() error { return nil }

// Open returns the repository for backend at path.
func Open(backend Backend, path string, logger *log.Logger) (Repository, CleanupFunc, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONFile(path, logger), noCleanup, nil
	case BackendSQLite:
		db, err := OpenSQLite(path, logger)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case BackendMemory:
		return NewMemory(), noCleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}
