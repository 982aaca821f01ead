package validation

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/tokenizando/covenant/protocol/bc"
)

const defaultCacheEntries = 4096

// CachingValidator memoizes verdicts keyed by spend digest. Validation
// is referentially transparent, so a repeated digest short-circuits to
// the recorded verdict. Safe for concurrent use.
type CachingValidator struct {
	validator *Validator

	mu  sync.Mutex
	lru *lru.Cache
}

// NewCachingValidator wraps v with an LRU verdict cache. maxEntries of
// zero selects the default size.
func NewCachingValidator(v *Validator, maxEntries int) *CachingValidator {
	if maxEntries == 0 {
		maxEntries = defaultCacheEntries
	}
	return &CachingValidator{
		validator: v,
		lru:       lru.New(maxEntries),
	}
}

// Validate returns the cached verdict when the spend has been seen
// before, otherwise validates and records the verdict.
func (cv *CachingValidator) Validate(ctx *bc.SpendContext, req *bc.SpendRequest) error {
	key, err := bc.SpendDigest(ctx, req)
	if err != nil {
		return cv.validator.Validate(ctx, req)
	}

	cv.mu.Lock()
	if verdict, ok := cv.lru.Get(key); ok {
		cv.mu.Unlock()
		if verdict == nil {
			return nil
		}
		return verdict.(error)
	}
	cv.mu.Unlock()

	verdict := cv.validator.Validate(ctx, req)

	cv.mu.Lock()
	cv.lru.Add(key, verdict)
	cv.mu.Unlock()
	return verdict
}

// ValidateBatch validates spends in async mode through the verdict
// cache, so a digest repeated within or across batches validates once.
func (cv *CachingValidator) ValidateBatch(spends []*Spend) []*Result {
	return validateSpends(cv.Validate, spends)
}

// Len returns the number of cached verdicts.
func (cv *CachingValidator) Len() int {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.lru.Len()
}
