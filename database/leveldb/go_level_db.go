package leveldb

import (
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// GoLevelDB is the durable backend.
type GoLevelDB struct {
	db *leveldb.DB
}

// NewGoLevelDB opens (creating if needed) the database at dir/name.db.
func NewGoLevelDB(name string, dir string) (*GoLevelDB, error) {
	dbPath := filepath.Join(dir, name+".db")
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, err
	}
	return &GoLevelDB{db: db}, nil
}

func (db *GoLevelDB) Get(key []byte) []byte {
	res, err := db.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		panic(err)
	}
	return res
}

func (db *GoLevelDB) Set(key []byte, value []byte) {
	if err := db.db.Put(key, value, nil); err != nil {
		panic(err)
	}
}

func (db *GoLevelDB) SetSync(key []byte, value []byte) {
	if err := db.db.Put(key, value, &opt.WriteOptions{Sync: true}); err != nil {
		panic(err)
	}
}

func (db *GoLevelDB) Delete(key []byte) {
	if err := db.db.Delete(key, nil); err != nil {
		panic(err)
	}
}

func (db *GoLevelDB) DeleteSync(key []byte) {
	if err := db.db.Delete(key, &opt.WriteOptions{Sync: true}); err != nil {
		panic(err)
	}
}

func (db *GoLevelDB) Close() {
	db.db.Close()
}

func (db *GoLevelDB) NewBatch() Batch {
	return &goLevelDBBatch{db: db, batch: new(leveldb.Batch)}
}

func (db *GoLevelDB) Iterator() Iterator {
	return db.db.NewIterator(nil, nil)
}

func (db *GoLevelDB) IteratorPrefix(prefix []byte) Iterator {
	return db.db.NewIterator(util.BytesPrefix(prefix), nil)
}

type goLevelDBBatch struct {
	db    *GoLevelDB
	batch *leveldb.Batch
}

func (b *goLevelDBBatch) Set(key, value []byte) {
	b.batch.Put(key, value)
}

func (b *goLevelDBBatch) Delete(key []byte) {
	b.batch.Delete(key)
}

func (b *goLevelDBBatch) Write() {
	if err := b.db.db.Write(b.batch, nil); err != nil {
		panic(err)
	}
}
