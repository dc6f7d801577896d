// Package jsonfile implements kv.KV with a single JSON file on disk.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/colonyops/taskdeck/internal/core/kv"
)

// Store implements kv.KV using a JSON object file for persistence.
// The on-disk layout is a flat map of key to raw JSON value, so each
// key round-trips byte-for-byte regardless of its shape.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ kv.KV = (*Store)(nil)

// New creates a JSON file store at the given path. The file is created
// lazily on the first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Get retrieves and deserializes a value by key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *Store) Get(key string, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load()
	if err != nil {
		return err
	}

	raw, ok := data[key]
	if !ok {
		return fmt.Errorf("get %q: %w", key, kv.ErrNotFound)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("get %q unmarshal: %w", key, err)
	}

	return nil
}

// Set stores a value by key, rewriting the whole file.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("set %q marshal: %w", key, err)
	}

	data, err := s.load()
	if err != nil {
		// A corrupt file is replaced on the next write rather than
		// blocking all future persistence.
		data = map[string]json.RawMessage{}
	}

	data[key] = raw
	return s.save(data)
}

// Delete removes a key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := data[key]; !ok {
		return nil
	}

	delete(data, key)
	return s.save(data)
}

// Has returns whether a key exists.
func (s *Store) Has(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load()
	if err != nil {
		return false, err
	}

	_, ok := data[key]
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *Store) ListKeys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// load reads the store file from disk.
// Returns an empty map if the file doesn't exist yet.
func (s *Store) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	if len(data) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if m == nil {
		m = map[string]json.RawMessage{}
	}

	return m, nil
}

// save writes the store file atomically via a temp file rename.
func (s *Store) save(data map[string]json.RawMessage) error {
	bits, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, bits, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}

	return nil
}
