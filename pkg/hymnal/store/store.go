// Package store persists JSON documents under fixed keys.
//
// It stands in for browser local storage: callers load and save whole
// serialized collections, never partial updates.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

var (
	// ErrInvalidKey indicates a key outside [A-Za-z0-9._-].
	ErrInvalidKey = errors.New("invalid store key")
	// ErrInvalidJSON indicates Save was given bytes that are not JSON.
	ErrInvalidJSON = errors.New("value is not valid JSON")
)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store is a key-value port holding JSON documents.
type Store interface {
	// Load returns the value under key. ok is false when nothing is stored.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Save replaces the value under key.
	Save(ctx context.Context, key string, value []byte) error
	// Close releases resources.
	Close() error
}

// Open returns a store for the named backend. path is the database file for
// sqlite and the directory for file; memory ignores it.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendFile:
		return OpenFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func checkEntry(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: key %q", ErrInvalidJSON, key)
	}
	return nil
}

func checkKey(key string) error {
	if !keyRe.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
