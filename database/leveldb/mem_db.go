package leveldb

import (
	"sort"
	"strings"
	"sync"
)

// MemDB keeps everything in process memory. Tests use it in place of
// the durable backend.
type MemDB struct {
	mtx sync.Mutex
	db  map[string][]byte
}

// NewMemDB creates an empty in-memory database.
func NewMemDB() *MemDB {
	return &MemDB{db: make(map[string][]byte)}
}

func (db *MemDB) Get(key []byte) []byte {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return db.db[string(key)]
}

func (db *MemDB) Set(key []byte, value []byte) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.db[string(key)] = value
}

func (db *MemDB) SetSync(key []byte, value []byte) {
	db.Set(key, value)
}

func (db *MemDB) Delete(key []byte) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	delete(db.db, string(key))
}

func (db *MemDB) DeleteSync(key []byte) {
	db.Delete(key)
}

func (db *MemDB) Close() {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.db = make(map[string][]byte)
}

func (db *MemDB) NewBatch() Batch {
	return &memBatch{db: db}
}

func (db *MemDB) Iterator() Iterator {
	return db.IteratorPrefix(nil)
}

func (db *MemDB) IteratorPrefix(prefix []byte) Iterator {
	db.mtx.Lock()
	defer db.mtx.Unlock()

	keys := make([]string, 0, len(db.db))
	for key := range db.db {
		if strings.HasPrefix(key, string(prefix)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return &memIterator{db: db, keys: keys, last: -1}
}

type opType int

const (
	opTypeSet opType = iota
	opTypeDelete
)

type operation struct {
	opType
	key   []byte
	value []byte
}

type memBatch struct {
	db  *MemDB
	ops []operation
}

func (b *memBatch) Set(key, value []byte) {
	b.ops = append(b.ops, operation{opTypeSet, key, value})
}

func (b *memBatch) Delete(key []byte) {
	b.ops = append(b.ops, operation{opTypeDelete, key, nil})
}

func (b *memBatch) Write() {
	b.db.mtx.Lock()
	defer b.db.mtx.Unlock()

	for _, op := range b.ops {
		switch op.opType {
		case opTypeSet:
			b.db.db[string(op.key)] = op.value
		case opTypeDelete:
			delete(b.db.db, string(op.key))
		}
	}
}

type memIterator struct {
	db   *MemDB
	keys []string
	last int
}

func (it *memIterator) Next() bool {
	it.last++
	return it.last < len(it.keys)
}

func (it *memIterator) Key() []byte {
	return []byte(it.keys[it.last])
}

func (it *memIterator) Value() []byte {
	return it.db.Get(it.Key())
}

func (it *memIterator) Release() {
	it.db = nil
	it.keys = nil
}
