// Package storage provides database abstractions.
package storage

// DB is the interface for key-value storage.
type DB interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
	// ForEach iterates over all keys with the given prefix.
	// The callback receives a copy of the key and value.
	// Return a non-nil error from fn to stop iteration early.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	// NewBatch starts a write batch. Writes staged on the batch become
	// visible only when Commit succeeds, all together or not at all.
	NewBatch() Batch
	Close() error
}

// Batch stages writes that commit atomically.
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)
	Commit() error
}
