// Package storage is the key-value layer under the phrase vault.
//
// Keys are strings. A Keyspace gives each record kind its own section of a
// DB, so callers work with bare record names.
package storage

import "errors"

// ErrNotFound is returned by Get when a key does not exist.
var ErrNotFound = errors.New("key not found")

// DB is a flat key-value store.
type DB interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	Has(key string) (bool, error)
	// Scan calls fn for each key starting with prefix, in ascending order,
	// with copies of the key and value. An error from fn stops the scan and
	// is returned as is.
	Scan(prefix string, fn func(key string, value []byte) error) error
	Close() error
}
