// Package leveldb is the key-value storage layer: a narrow DB
// interface with a goleveldb-backed implementation for durable data
// and an in-memory implementation for tests.
package leveldb

import (
	"fmt"
)

// DB is the storage interface journal and tooling code program against.
type DB interface {
	Get([]byte) []byte
	Set([]byte, []byte)
	SetSync([]byte, []byte)
	Delete([]byte)
	DeleteSync([]byte)
	Close()
	NewBatch() Batch
	Iterator() Iterator
	IteratorPrefix([]byte) Iterator
}

// Batch accumulates writes that commit atomically on Write.
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write()
}

// Iterator walks keys in ascending order. Release must be called when
// iteration ends.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
}

// Backend names accepted by NewDB.
const (
	LevelDBBackend = "leveldb"
	MemDBBackend   = "memdb"
)

// NewDB opens a database of the named backend, panicking on any
// failure so misconfiguration surfaces at startup.
func NewDB(name string, backend string, dir string) DB {
	switch backend {
	case LevelDBBackend:
		db, err := NewGoLevelDB(name, dir)
		if err != nil {
			panic(err)
		}
		return db
	case MemDBBackend:
		return NewMemDB()
	}
	panic(fmt.Sprintf("unknown db backend %q", backend))
}
