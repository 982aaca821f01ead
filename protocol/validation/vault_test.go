package validation

import (
	"strings"
	"testing"

	"github.com/tokenizando/covenant/consensus"
	"github.com/tokenizando/covenant/consensus/ctkp"
	"github.com/tokenizando/covenant/crypto"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/protocol/covenant"
	"github.com/tokenizando/covenant/protocol/script"
	"github.com/tokenizando/covenant/testutil"
)

// newSweepFixture builds a valid sweep of a vault coin owned by the
// deterministic test key. A marker-valued coin carries a token balance
// of 5000 and must publish the sweep record.
func newSweepFixture(t *testing.T, marker bool) (*Validator, *bc.SpendContext, *bc.SpendRequest) {
	ownerHash := crypto.Hash160(testutil.TestPub)
	value := uint64(10000)
	if marker {
		value = consensus.ActiveNetParams.VaultMarkerAmount
	}

	outs := covenant.VaultSweepOutputs(ownerHash, testTokenID, 5000, value, consensus.ActiveNetParams.VaultMarkerAmount)
	hashOutputs, err := bc.HashOutputs(outs, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := &bc.SpendContext{
		Coin: bc.Coin{
			Outpoint: bc.Outpoint{TxID: testutil.MustDecodeHash(strings.Repeat("ac", 32)), Index: 0},
			Value:    value,
			Lock:     covenant.ComposeVaultLock(ownerHash, testSuffix),
		},
		HashOutputs: hashOutputs,
	}
	req := &bc.SpendRequest{
		Action:    bc.ActionVaultSweep,
		TokenID:   testTokenID,
		PayAmount: 5000,
		PubKey:    testutil.TestPub,
		Signature: signContext(ctx, testutil.TestPrv),
	}
	return newValidator(t), ctx, req
}

// newRevokeFixture builds a valid revoke: the sender who funded the
// vault reclaims it, proving their identity through the funding
// transaction's raw segments.
func newRevokeFixture(t *testing.T, marker bool) (*Validator, *bc.SpendContext, *bc.SpendRequest) {
	senderPub, senderPrv := testSenderKeys()
	senderHash := crypto.Hash160(senderPub)
	recipientHash := crypto.Hash160(testutil.TestPub)

	head := testutil.MustDecodeHexString("07010001")
	lock := script.PayToFingerprintProgram(senderHash)
	tail := testutil.MustDecodeHexString("0000")
	var txid [32]byte
	copy(txid[:], crypto.Sha256(head, lock, tail))

	value := uint64(10000)
	if marker {
		value = consensus.ActiveNetParams.VaultMarkerAmount
	}

	outs := covenant.VaultRevokeOutputs(senderHash, testTokenID, 5000, value, consensus.ActiveNetParams.VaultMarkerAmount)
	hashOutputs, err := bc.HashOutputs(outs, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := &bc.SpendContext{
		Coin: bc.Coin{
			Outpoint: bc.Outpoint{TxID: bc.NewHash(txid), Index: 0},
			Value:    value,
			Lock:     covenant.ComposeVaultLock(recipientHash, testSuffix),
		},
		HashOutputs: hashOutputs,
	}
	req := &bc.SpendRequest{
		Action:     bc.ActionVaultRevoke,
		TokenID:    testTokenID,
		PayAmount:  5000,
		PrevTxHead: head,
		PrevTxLock: lock,
		PrevTxTail: tail,
		PubKey:     senderPub,
		Signature:  signContext(ctx, senderPrv),
	}
	return newValidator(t), ctx, req
}

func TestValidateVaultSweep(t *testing.T) {
	for _, marker := range []bool{false, true} {
		v, ctx, req := newSweepFixture(t, marker)
		if err := v.Validate(ctx, req); err != nil {
			t.Errorf("marker=%v: valid sweep rejected: %v", marker, err)
		}
	}
}

func TestValidateVaultSweepRejects(t *testing.T) {
	ownerHash := crypto.Hash160(testutil.TestPub)
	senderPub, senderPrv := testSenderKeys()

	t.Run("marker sweep omitting the record", func(t *testing.T) {
		v, ctx, req := newSweepFixture(t, true)
		payoutOnly := []*bc.TxOutput{bc.NewTxOutput(ctx.Value, script.PayToFingerprintProgram(ownerHash))}
		hashOutputs, err := bc.HashOutputs(payoutOnly, nil)
		if err != nil {
			t.Fatal(err)
		}
		ctx.HashOutputs = hashOutputs
		if err := v.Validate(ctx, req); errors.Root(err) != ErrCommitmentMismatch {
			t.Errorf("got %v want %v", err, ErrCommitmentMismatch)
		}
	})

	t.Run("plain sweep adding a record", func(t *testing.T) {
		v, ctx, req := newSweepFixture(t, false)
		withRecord := []*bc.TxOutput{
			bc.NewTxOutput(0, ctkp.SweepRecordScript(testTokenID, 5000)),
			bc.NewTxOutput(ctx.Value, script.PayToFingerprintProgram(ownerHash)),
		}
		hashOutputs, err := bc.HashOutputs(withRecord, nil)
		if err != nil {
			t.Fatal(err)
		}
		ctx.HashOutputs = hashOutputs
		if err := v.Validate(ctx, req); errors.Root(err) != ErrCommitmentMismatch {
			t.Errorf("got %v want %v", err, ErrCommitmentMismatch)
		}
	})

	t.Run("foreign key", func(t *testing.T) {
		v, ctx, req := newSweepFixture(t, false)
		req.PubKey = senderPub
		req.Signature = signContext(ctx, senderPrv)
		if err := v.Validate(ctx, req); errors.Root(err) != ErrAuthorizationFailure {
			t.Errorf("got %v want %v", err, ErrAuthorizationFailure)
		}
	})

	t.Run("coin is not a vault", func(t *testing.T) {
		v, ctx, req := newSweepFixture(t, false)
		state := &covenant.TokenState{Frozen: false, Balance: 1000, OwnerHash: ownerHash}
		ctx.Lock = covenant.ComposeTokenLock(state, testSuffix)
		if err := v.Validate(ctx, req); errors.Root(err) != ErrMalformedField {
			t.Errorf("got %v want %v", err, ErrMalformedField)
		}
	})
}

func TestValidateVaultRevoke(t *testing.T) {
	for _, marker := range []bool{false, true} {
		v, ctx, req := newRevokeFixture(t, marker)
		if err := v.Validate(ctx, req); err != nil {
			t.Errorf("marker=%v: valid revoke rejected: %v", marker, err)
		}
	}
}

func TestValidateVaultRevokeRejects(t *testing.T) {
	flip := func(segment []byte) []byte {
		out := append([]byte{}, segment...)
		out[0] ^= 1
		return out
	}

	t.Run("head byte change", func(t *testing.T) {
		v, ctx, req := newRevokeFixture(t, false)
		req.PrevTxHead = flip(req.PrevTxHead)
		if err := v.Validate(ctx, req); errors.Root(err) != ErrReferenceMismatch {
			t.Errorf("got %v want %v", err, ErrReferenceMismatch)
		}
	})

	t.Run("lock byte change", func(t *testing.T) {
		v, ctx, req := newRevokeFixture(t, false)
		req.PrevTxLock = flip(req.PrevTxLock)
		if err := v.Validate(ctx, req); errors.Root(err) != ErrReferenceMismatch {
			t.Errorf("got %v want %v", err, ErrReferenceMismatch)
		}
	})

	t.Run("tail byte change", func(t *testing.T) {
		v, ctx, req := newRevokeFixture(t, false)
		req.PrevTxTail = flip(req.PrevTxTail)
		if err := v.Validate(ctx, req); errors.Root(err) != ErrReferenceMismatch {
			t.Errorf("got %v want %v", err, ErrReferenceMismatch)
		}
	})

	t.Run("middle segment is not a plain lock", func(t *testing.T) {
		v, ctx, req := newRevokeFixture(t, false)
		req.PrevTxLock = []byte{0x51, 0x52}
		var txid [32]byte
		copy(txid[:], crypto.Sha256(req.PrevTxHead, req.PrevTxLock, req.PrevTxTail))
		ctx.Outpoint.TxID = bc.NewHash(txid)
		if err := v.Validate(ctx, req); errors.Root(err) != ErrMalformedField {
			t.Errorf("got %v want %v", err, ErrMalformedField)
		}
	})

	t.Run("recipient cannot revoke", func(t *testing.T) {
		v, ctx, req := newRevokeFixture(t, false)
		req.PubKey = testutil.TestPub
		req.Signature = signContext(ctx, testutil.TestPrv)
		if err := v.Validate(ctx, req); errors.Root(err) != ErrAuthorizationFailure {
			t.Errorf("got %v want %v", err, ErrAuthorizationFailure)
		}
	})
}
