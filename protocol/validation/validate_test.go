package validation

import (
	"bytes"
	"crypto/ed25519"
	"math"
	"strings"
	"testing"

	"github.com/tokenizando/covenant/consensus"
	"github.com/tokenizando/covenant/crypto"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/protocol/covenant"
	"github.com/tokenizando/covenant/protocol/script"
	"github.com/tokenizando/covenant/testutil"
)

var (
	testSuffix    = testutil.MustDecodeHexString("ae7cac")
	testTokenID   = bytes.Repeat([]byte{0xbb}, 32)
	testRecipient = bytes.Repeat([]byte{0xcc}, 20)

	// A serialized fee output appended as a trailing record.
	testFeeOutput = testutil.MustDecodeHexString("881300000000000001ac")
)

func testIssuerKeys() (ed25519.PublicKey, ed25519.PrivateKey) {
	prv := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x01}, ed25519.SeedSize))
	return prv.Public().(ed25519.PublicKey), prv
}

func testSenderKeys() (ed25519.PublicKey, ed25519.PrivateKey) {
	prv := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x02}, ed25519.SeedSize))
	return prv.Public().(ed25519.PublicKey), prv
}

func newValidator(t *testing.T) *Validator {
	issuerPub, _ := testIssuerKeys()
	v, err := NewValidator(issuerPub, &consensus.ActiveNetParams)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func signContext(ctx *bc.SpendContext, prv ed25519.PrivateKey) []byte {
	sigHash := ctx.SigHash()
	return ed25519.Sign(prv, sigHash.Bytes())
}

// newTransferFixture builds a fully valid transfer of 600 to the test
// recipient with 400 change out of a 1000-balance coin owned by the
// deterministic test key.
func newTransferFixture(t *testing.T, frozen bool) (*Validator, *bc.SpendContext, *bc.SpendRequest) {
	ownerHash := crypto.Hash160(testutil.TestPub)
	state := &covenant.TokenState{Frozen: frozen, Balance: 1000, OwnerHash: ownerHash}

	outs := covenant.TransferOutputs(state, testSuffix, testTokenID, testRecipient, 600, 400)
	trailing := [][]byte{testFeeOutput}
	hashOutputs, err := bc.HashOutputs(outs, trailing)
	if err != nil {
		t.Fatal(err)
	}

	ctx := &bc.SpendContext{
		Coin: bc.Coin{
			Outpoint: bc.Outpoint{TxID: testutil.MustDecodeHash(strings.Repeat("aa", 32)), Index: 0},
			Value:    consensus.DustAmount,
			Lock:     covenant.ComposeTokenLock(state, testSuffix),
		},
		HashOutputs: hashOutputs,
	}
	req := &bc.SpendRequest{
		Action:          bc.ActionTransfer,
		TokenID:         testTokenID,
		PayAmount:       600,
		ChangeAmount:    400,
		RecipientHash:   testRecipient,
		TrailingOutputs: trailing,
		PubKey:          testutil.TestPub,
		Signature:       signContext(ctx, testutil.TestPrv),
	}
	return newValidator(t), ctx, req
}

// newFreezeFixture builds a flag change on a 1000-balance coin, with
// the output commitment matching the requested new flag.
func newFreezeFixture(t *testing.T, frozen, newFrozen bool) (*Validator, *bc.SpendContext, *bc.SpendRequest) {
	ownerHash := crypto.Hash160(testutil.TestPub)
	state := &covenant.TokenState{Frozen: frozen, Balance: 1000, OwnerHash: ownerHash}

	outs := covenant.FreezeOutputs(state, testSuffix, testTokenID, newFrozen)
	hashOutputs, err := bc.HashOutputs(outs, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := &bc.SpendContext{
		Coin: bc.Coin{
			Outpoint: bc.Outpoint{TxID: testutil.MustDecodeHash(strings.Repeat("ab", 32)), Index: 1},
			Value:    consensus.DustAmount,
			Lock:     covenant.ComposeTokenLock(state, testSuffix),
		},
		HashOutputs: hashOutputs,
	}
	_, issuerPrv := testIssuerKeys()
	req := &bc.SpendRequest{
		Action:    bc.ActionFreeze,
		TokenID:   testTokenID,
		NewFrozen: newFrozen,
		Signature: signContext(ctx, issuerPrv),
	}
	return newValidator(t), ctx, req
}

func TestValidateTransfer(t *testing.T) {
	v, ctx, req := newTransferFixture(t, false)
	if err := v.Validate(ctx, req); err != nil {
		t.Errorf("valid transfer rejected: %v", err)
	}
}

func TestValidateTransferRejects(t *testing.T) {
	issuerPub, issuerPrv := testIssuerKeys()

	cases := []struct {
		desc   string
		mutate func(ctx *bc.SpendContext, req *bc.SpendRequest)
		want   error
	}{
		{
			desc:   "narrow token id",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) { req.TokenID = req.TokenID[:31] },
			want:   ErrMalformedField,
		},
		{
			desc:   "narrow recipient fingerprint",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) { req.RecipientHash = req.RecipientHash[:19] },
			want:   ErrMalformedField,
		},
		{
			desc:   "narrow signature",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) { req.Signature = req.Signature[:63] },
			want:   ErrMalformedField,
		},
		{
			desc:   "narrow public key",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) { req.PubKey = req.PubKey[:31] },
			want:   ErrMalformedField,
		},
		{
			desc:   "unknown action",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) { req.Action = bc.Action(9) },
			want:   ErrMalformedField,
		},
		{
			desc:   "coin is not a token covenant",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) { ctx.Lock = script.PayToFingerprintProgram(testRecipient) },
			want:   ErrMalformedField,
		},
		{
			desc: "burned balance",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) {
				req.PayAmount, req.ChangeAmount = 600, 300
			},
			want: ErrInvariantViolation,
		},
		{
			desc: "amount overflow",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) {
				req.PayAmount, req.ChangeAmount = math.MaxUint64, 1001
			},
			want: ErrInvariantViolation,
		},
		{
			desc: "pay amount drift",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) {
				req.PayAmount, req.ChangeAmount = 601, 399
			},
			want: ErrCommitmentMismatch,
		},
		{
			desc: "recipient drift",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) {
				req.RecipientHash = bytes.Repeat([]byte{0xcd}, 20)
			},
			want: ErrCommitmentMismatch,
		},
		{
			desc: "token id drift",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) {
				req.TokenID = bytes.Repeat([]byte{0xbc}, 32)
			},
			want: ErrCommitmentMismatch,
		},
		{
			desc:   "dropped trailing outputs",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) { req.TrailingOutputs = nil },
			want:   ErrCommitmentMismatch,
		},
		{
			desc:   "tampered commitment",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) { ctx.HashOutputs.V0 ^= 1 },
			want:   ErrCommitmentMismatch,
		},
		{
			desc: "foreign key",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) {
				req.PubKey = issuerPub
				req.Signature = signContext(ctx, issuerPrv)
			},
			want: ErrAuthorizationFailure,
		},
		{
			desc: "corrupt signature",
			mutate: func(ctx *bc.SpendContext, req *bc.SpendRequest) {
				req.Signature = append([]byte{}, req.Signature...)
				req.Signature[0] ^= 1
			},
			want: ErrAuthorizationFailure,
		},
	}

	for i, c := range cases {
		v, ctx, req := newTransferFixture(t, false)
		c.mutate(ctx, req)
		if err := v.Validate(ctx, req); errors.Root(err) != c.want {
			t.Errorf("#%d (%s): got %v want %v", i, c.desc, err, c.want)
		}
	}
}

func TestValidateFrozenTransfer(t *testing.T) {
	v, ctx, req := newTransferFixture(t, true)
	if err := v.Validate(ctx, req); errors.Root(err) != ErrInvariantViolation {
		t.Errorf("frozen transfer: got %v want %v", err, ErrInvariantViolation)
	}
}

func TestValidateFreeze(t *testing.T) {
	cases := []struct {
		desc      string
		frozen    bool
		newFrozen bool
		want      error
	}{
		{"freeze", false, true, nil},
		{"unfreeze", true, false, nil},
		{"freeze twice", true, true, ErrInvariantViolation},
		{"unfreeze twice", false, false, ErrInvariantViolation},
	}

	for i, c := range cases {
		v, ctx, req := newFreezeFixture(t, c.frozen, c.newFrozen)
		if err := v.Validate(ctx, req); errors.Root(err) != c.want {
			t.Errorf("#%d (%s): got %v want %v", i, c.desc, err, c.want)
		}
	}
}

func TestValidateFreezeRejectsNonIssuer(t *testing.T) {
	v, ctx, req := newFreezeFixture(t, false, true)
	req.Signature = signContext(ctx, testutil.TestPrv)
	if err := v.Validate(ctx, req); errors.Root(err) != ErrAuthorizationFailure {
		t.Errorf("owner-signed freeze: got %v want %v", err, ErrAuthorizationFailure)
	}
}

func TestNewValidatorRejectsBadKey(t *testing.T) {
	if _, err := NewValidator(make([]byte, 31), &consensus.ActiveNetParams); errors.Root(err) != ErrMalformedField {
		t.Errorf("got %v want %v", err, ErrMalformedField)
	}
}
