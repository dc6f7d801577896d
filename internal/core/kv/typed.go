package kv

// Typed provides type-safe access to a KV store for a specific type T.
type Typed[T any] struct {
	store KV
	key   string
}

// Key returns a Typed[T] bound to a single key in the store.
func Key[T any](store KV, key string) *Typed[T] {
	return &Typed[T]{store: store, key: key}
}

// Get retrieves and deserializes the value.
func (t *Typed[T]) Get() (T, error) {
	var v T
	if err := t.store.Get(t.key, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Set stores the value.
func (t *Typed[T]) Set(value T) error {
	return t.store.Set(t.key, value)
}

// Delete removes the key.
func (t *Typed[T]) Delete() error {
	return t.store.Delete(t.key)
}

// Has returns whether the key exists.
func (t *Typed[T]) Has() (bool, error) {
	return t.store.Has(t.key)
}
