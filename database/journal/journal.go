// Package journal persists validation verdicts keyed by spend digest,
// so operators can audit what the validator decided and replay
// decisions without revalidating.
package journal

import (
	"encoding/json"
	"time"

	"github.com/tokenizando/covenant/database/leveldb"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/version"
)

var (
	entryPrefix = []byte("JE:")
	versionKey  = []byte("version")
)

var (
	// ErrNoMatchDigest is returned when a digest has no recorded verdict.
	ErrNoMatchDigest = errors.New("no entry for spend digest")
	// ErrIncompatibleStore is returned when the store was written by an
	// incompatible release.
	ErrIncompatibleStore = errors.New("journal store version is incompatible")
)

func entryKey(digest bc.Hash) []byte {
	return append(entryPrefix, digest.Bytes()...)
}

// Entry is one recorded verdict.
type Entry struct {
	Digest    bc.Hash   `json:"digest"`
	Action    string    `json:"action"`
	Accepted  bool      `json:"accepted"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal stores verdict entries.
type Journal struct {
	DB leveldb.DB
}

// NewJournal opens a journal over db. A fresh store is stamped with
// the running release; a store stamped by a different major release
// is refused.
func NewJournal(db leveldb.DB) (*Journal, error) {
	if stamp := db.Get(versionKey); stamp != nil {
		compatible, err := version.CompatibleWith(string(stamp))
		if err != nil {
			return nil, errors.Wrap(err, "parsing journal store version")
		}
		if !compatible {
			return nil, errors.WithDetailf(ErrIncompatibleStore, "store written by %s, running %s", stamp, version.Version)
		}
	} else {
		db.Set(versionKey, []byte(version.Version))
	}
	return &Journal{DB: db}, nil
}

// Save records the verdict for one validated spend and returns the
// stored entry.
func (j *Journal) Save(ctx *bc.SpendContext, req *bc.SpendRequest, verdict error) (*Entry, error) {
	digest, err := bc.SpendDigest(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "computing spend digest")
	}

	entry := &Entry{
		Digest:    digest,
		Action:    req.Action.String(),
		Accepted:  verdict == nil,
		CreatedAt: time.Now(),
	}
	if verdict != nil {
		entry.Reason = verdict.Error()
	}

	value, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	j.DB.Set(entryKey(digest), value)
	return entry, nil
}

// Get returns the verdict recorded for a digest.
func (j *Journal) Get(digest bc.Hash) (*Entry, error) {
	value := j.DB.Get(entryKey(digest))
	if value == nil {
		return nil, errors.WithDetailf(ErrNoMatchDigest, "digest %s", digest.String())
	}

	entry := &Entry{}
	if err := json.Unmarshal(value, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns every recorded verdict.
func (j *Journal) List() ([]*Entry, error) {
	entries := make([]*Entry, 0)
	iter := j.DB.IteratorPrefix(entryPrefix)
	defer iter.Release()

	for iter.Next() {
		entry := &Entry{}
		if err := json.Unmarshal(iter.Value(), entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Delete removes the verdict recorded for a digest.
func (j *Journal) Delete(digest bc.Hash) error {
	if value := j.DB.Get(entryKey(digest)); value == nil {
		return errors.WithDetailf(ErrNoMatchDigest, "digest %s", digest.String())
	}

	j.DB.Delete(entryKey(digest))
	return nil
}
