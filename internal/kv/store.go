// Package kv provides the string key-value store backing the embedded storage
// mode: JSON-serialized collections under namespaced keys.
package kv

// Store is the key-value port used by the embedded storage backend and the
// legacy migration.
type Store interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	Has(key string) (bool, error)
}
