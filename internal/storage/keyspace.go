package storage

import "strings"

// Keyspace is the section of a DB holding one kind of record. Records are
// addressed by name; the keyspace prefix never reaches the caller.
type Keyspace struct {
	db     DB
	prefix string
}

// NewKeyspace returns the keyspace called name in db. Keys are stored as
// "<name>/<record name>".
func NewKeyspace(db DB, name string) *Keyspace {
	return &Keyspace{db: db, prefix: strings.TrimSuffix(name, "/") + "/"}
}

// Key returns the full DB key for the record called name.
func (k *Keyspace) Key(name string) string {
	return k.prefix + name
}

func (k *Keyspace) Get(name string) ([]byte, error) {
	return k.db.Get(k.Key(name))
}

func (k *Keyspace) Put(name string, value []byte) error {
	return k.db.Put(k.Key(name), value)
}

func (k *Keyspace) Delete(name string) error {
	return k.db.Delete(k.Key(name))
}

func (k *Keyspace) Has(name string) (bool, error) {
	return k.db.Has(k.Key(name))
}

// Each calls fn for every record in the keyspace, in name order.
func (k *Keyspace) Each(fn func(name string, value []byte) error) error {
	return k.db.Scan(k.prefix, func(key string, value []byte) error {
		return fn(strings.TrimPrefix(key, k.prefix), value)
	})
}
