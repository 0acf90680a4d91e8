// Package store persists the task collection in a local key-value slot.
//
// A Backend is a string key-value store. TaskStore sits on top of it and
// keeps the whole collection under the single key "@tasks".
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by OpenBackend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned when the configured backend name is not known.
var ErrUnknownBackend = errors.New("unknown backend")

// Backend is a local key-value store for string values.
type Backend interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key, value string) error
	// Close releases resources held by the backend.
	Close() error
	// Name identifies the backend in logs and diagnostics.
	Name() string
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(ctx context.Context, name, dataDir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendFile, "":
		return NewFileBackend(dataDir)
	case BackendSQLite:
		return NewSQLiteBackend(ctx, dataDir)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}
}
