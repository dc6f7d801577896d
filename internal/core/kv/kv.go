// Package kv defines the durable key-value storage collaborator.
// Keys are strings, values are JSON-serializable.
package kv

import "errors"

// ErrNotFound is returned by Get when a key does not exist.
var ErrNotFound = errors.New("kv: key not found")

// KV is the interface for a persistent key-value store.
// Get on a missing key returns an error wrapping ErrNotFound.
type KV interface {
	Get(key string, dest any) error
	Set(key string, value any) error
	Delete(key string) error
	Has(key string) (bool, error)
	ListKeys() ([]string, error)
}
