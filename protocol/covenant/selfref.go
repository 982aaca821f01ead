// Package covenant implements the output reconstruction engine: the
// deterministic rebuild of the exact output set each action may
// produce, and the state threading between a spent coin's lock and its
// descendants.
//
// A token coin's lock is a three-push state prefix followed by an
// immutable rule suffix:
//
//	push(frozen 1B) push(balance 8B LE) push(ownerHash 20B) || suffix
//
// A vault coin's lock carries only the owner fingerprint:
//
//	push(ownerHash 20B) || suffix
//
// The suffix is read out of the spent coin's own lock and reproduced
// verbatim in every descendant, so the rule set propagates without an
// external state store.
package covenant

import (
	"encoding/binary"

	"github.com/tokenizando/covenant/consensus"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/script"
)

// ErrBadStatePrefix is returned when a lock does not open with a
// well-formed state prefix.
var ErrBadStatePrefix = errors.New("bad covenant state prefix")

// TokenState is the mutable covenant state carried in the lock prefix
// of a token coin.
type TokenState struct {
	Frozen    bool
	Balance   uint64
	OwnerHash []byte
}

// ComposeTokenLock assembles the full lock of a token coin from its
// state and the immutable rule suffix.
func ComposeTokenLock(state *TokenState, suffix []byte) []byte {
	var balance [consensus.AmountDataSize]byte
	binary.LittleEndian.PutUint64(balance[:], state.Balance)

	builder := script.NewBuilder()
	builder.AddData(flagBytes(state.Frozen))
	builder.AddData(balance[:])
	builder.AddData(state.OwnerHash)
	builder.AddRawBytes(suffix)
	return builder.Build()
}

// ResolveTokenLock splits a token coin's lock into its state and the
// rule suffix that descendants must reproduce.
func ResolveTokenLock(lock []byte) (*TokenState, []byte, error) {
	pc := uint32(0)

	flagInst, err := script.ParseOp(lock, pc)
	if err != nil {
		return nil, nil, errors.Sub(ErrBadStatePrefix, err)
	}
	if flagInst.Op != script.OP_DATA_1 {
		return nil, nil, errors.WithDetail(ErrBadStatePrefix, "bad frozen flag width")
	}
	frozen, err := parseFlagByte(flagInst.Data[0])
	if err != nil {
		return nil, nil, err
	}
	pc += flagInst.Len

	balanceInst, err := script.ParseOp(lock, pc)
	if err != nil {
		return nil, nil, errors.Sub(ErrBadStatePrefix, err)
	}
	if balanceInst.Op != script.OP_DATA_8 {
		return nil, nil, errors.WithDetail(ErrBadStatePrefix, "bad balance width")
	}
	pc += balanceInst.Len

	ownerInst, err := script.ParseOp(lock, pc)
	if err != nil {
		return nil, nil, errors.Sub(ErrBadStatePrefix, err)
	}
	if ownerInst.Op != script.OP_DATA_20 {
		return nil, nil, errors.WithDetail(ErrBadStatePrefix, "bad owner fingerprint width")
	}
	pc += ownerInst.Len

	if int(pc) >= len(lock) {
		return nil, nil, errors.WithDetail(ErrBadStatePrefix, "missing rule suffix")
	}

	state := &TokenState{
		Frozen:    frozen,
		Balance:   binary.LittleEndian.Uint64(balanceInst.Data),
		OwnerHash: ownerInst.Data,
	}
	return state, lock[pc:], nil
}

// ComposeVaultLock assembles the full lock of a vault coin.
func ComposeVaultLock(ownerHash, suffix []byte) []byte {
	builder := script.NewBuilder()
	builder.AddData(ownerHash)
	builder.AddRawBytes(suffix)
	return builder.Build()
}

// ResolveVaultLock splits a vault coin's lock into the owner
// fingerprint and the rule suffix.
func ResolveVaultLock(lock []byte) ([]byte, []byte, error) {
	ownerInst, err := script.ParseOp(lock, 0)
	if err != nil {
		return nil, nil, errors.Sub(ErrBadStatePrefix, err)
	}
	if ownerInst.Op != script.OP_DATA_20 {
		return nil, nil, errors.WithDetail(ErrBadStatePrefix, "bad owner fingerprint width")
	}
	if int(ownerInst.Len) >= len(lock) {
		return nil, nil, errors.WithDetail(ErrBadStatePrefix, "missing rule suffix")
	}
	return ownerInst.Data, lock[ownerInst.Len:], nil
}

func flagBytes(frozen bool) []byte {
	if frozen {
		return []byte{0x01}
	}
	return []byte{0x00}
}

func parseFlagByte(b byte) (bool, error) {
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	}
	return false, errors.WithDetail(ErrBadStatePrefix, "frozen flag byte out of range")
}
