// Package sha3pool is a freelist for SHA3-256 hash objects.
package sha3pool

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

var pool = new(sync.Pool)

// Get256 returns an initialized SHA3-256 hash ready to use.
// It is like sha3.New256 except it uses the freelist.
// The caller should call Put256 when finished with the returned object.
func Get256() sha3.ShakeHash {
	if h, ok := pool.Get().(sha3.ShakeHash); ok {
		h.Reset()
		return h
	}
	return sha3.New256().(sha3.ShakeHash)
}

// Put256 resets h and puts it in the freelist.
func Put256(h sha3.ShakeHash) {
	pool.Put(h)
}

// Sum256 uses a hash from the pool and sums the concatenation
// of data into hash.
func Sum256(hash []byte, data ...[]byte) {
	h := Get256()
	defer Put256(h)

	for _, q := range data {
		h.Write(q)
	}
	h.Read(hash)
}
