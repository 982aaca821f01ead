package journal

import (
	"bytes"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/tokenizando/covenant/database/leveldb"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/testutil"
	"github.com/tokenizando/covenant/version"
)

func testSpend(pay uint64) (*bc.SpendContext, *bc.SpendRequest) {
	ctx := &bc.SpendContext{
		Coin: bc.Coin{
			Outpoint: bc.Outpoint{TxID: bc.NewHash([32]byte{0x01}), Index: 0},
			Value:    546,
			Lock:     []byte{0x51},
		},
		HashOutputs: bc.NewHash([32]byte{0x02}),
	}
	req := &bc.SpendRequest{
		Action:        bc.ActionTransfer,
		TokenID:       bytes.Repeat([]byte{0xbb}, 32),
		PayAmount:     pay,
		ChangeAmount:  400,
		RecipientHash: bytes.Repeat([]byte{0xcc}, 20),
		PubKey:        bytes.Repeat([]byte{0xdd}, 32),
		Signature:     bytes.Repeat([]byte{0xee}, 64),
	}
	return ctx, req
}

func TestJournalRoundTrip(t *testing.T) {
	j, err := NewJournal(leveldb.NewMemDB())
	if err != nil {
		t.Fatal(err)
	}
	ctx, req := testSpend(600)

	saved, err := j.Save(ctx, req, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !saved.Accepted || saved.Reason != "" {
		t.Errorf("accepted entry: got %+v", saved)
	}

	got, err := j.Get(saved.Digest)
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != "transfer" {
		t.Errorf("action = %q, want %q", got.Action, "transfer")
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("created at = %s, want %s", got.CreatedAt, saved.CreatedAt)
	}

	got.CreatedAt, saved.CreatedAt = time.Time{}, time.Time{}
	if !testutil.DeepEqual(got, saved) {
		t.Errorf("expected stored entry to be:\n%sgot:\n%s", spew.Sdump(saved), spew.Sdump(got))
	}
}

func TestJournalRejectedVerdict(t *testing.T) {
	j, err := NewJournal(leveldb.NewMemDB())
	if err != nil {
		t.Fatal(err)
	}
	ctx, req := testSpend(600)

	saved, err := j.Save(ctx, req, errors.New("output commitment mismatch"))
	if err != nil {
		t.Fatal(err)
	}
	if saved.Accepted {
		t.Error("rejected verdict stored as accepted")
	}

	got, err := j.Get(saved.Digest)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reason != "output commitment mismatch" {
		t.Errorf("reason = %q", got.Reason)
	}
}

func TestJournalList(t *testing.T) {
	j, err := NewJournal(leveldb.NewMemDB())
	if err != nil {
		t.Fatal(err)
	}
	for _, pay := range []uint64{100, 200, 300} {
		ctx, req := testSpend(pay)
		if _, err := j.Save(ctx, req, nil); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := j.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestJournalVersionStamp(t *testing.T) {
	db := leveldb.NewMemDB()
	if _, err := NewJournal(db); err != nil {
		t.Fatal(err)
	}
	if stamp := db.Get(versionKey); string(stamp) != version.Version {
		t.Errorf("stamp = %q, want %q", stamp, version.Version)
	}
	if _, err := NewJournal(db); err != nil {
		t.Errorf("reopen under same release: %v", err)
	}

	db.Set(versionKey, []byte("99.0.0"))
	if _, err := NewJournal(db); errors.Root(err) != ErrIncompatibleStore {
		t.Errorf("foreign store: got %v, want %v", err, ErrIncompatibleStore)
	}
}

func TestJournalDelete(t *testing.T) {
	j, err := NewJournal(leveldb.NewMemDB())
	if err != nil {
		t.Fatal(err)
	}
	ctx, req := testSpend(600)
	saved, err := j.Save(ctx, req, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := j.Delete(saved.Digest); err != nil {
		t.Fatal(err)
	}
	if _, err := j.Get(saved.Digest); errors.Root(err) != ErrNoMatchDigest {
		t.Errorf("Get after delete: got %v want %v", err, ErrNoMatchDigest)
	}
	if err := j.Delete(saved.Digest); errors.Root(err) != ErrNoMatchDigest {
		t.Errorf("double delete: got %v want %v", err, ErrNoMatchDigest)
	}
}
