package script

import (
	"github.com/tokenizando/covenant/errors"
)

// Pre-defined errors for malformed lock programs.
var (
	ErrNotPayToFingerprint   = errors.New("program is not a pay-to-fingerprint lock")
	ErrNotPayToConditionHash = errors.New("program is not a pay-to-condition-hash lock")
)

// PayToFingerprintProgram generates the plain lock paying the holder of
// the key behind a 20-byte fingerprint:
//
//	OP_DUP OP_HASH160 <fingerprint> OP_EQUALVERIFY OP_TXSIGHASH OP_SWAP OP_CHECKSIG
func PayToFingerprintProgram(fingerprint []byte) []byte {
	builder := NewBuilder()
	builder.AddOp(OP_DUP)
	builder.AddOp(OP_HASH160)
	builder.AddData(fingerprint)
	builder.AddOp(OP_EQUALVERIFY)
	builder.AddOp(OP_TXSIGHASH)
	builder.AddOp(OP_SWAP)
	builder.AddOp(OP_CHECKSIG)
	return builder.Build()
}

// IsPayToFingerprint reports whether prog has the exact plain lock
// shape.
func IsPayToFingerprint(prog []byte) bool {
	insts, err := ParseProgram(prog)
	if err != nil {
		return false
	}
	return len(insts) == 7 &&
		insts[0].Op == OP_DUP &&
		insts[1].Op == OP_HASH160 &&
		insts[2].Op == OP_DATA_20 &&
		insts[3].Op == OP_EQUALVERIFY &&
		insts[4].Op == OP_TXSIGHASH &&
		insts[5].Op == OP_SWAP &&
		insts[6].Op == OP_CHECKSIG
}

// ParseFingerprint extracts the 20-byte fingerprint from a plain lock.
func ParseFingerprint(prog []byte) ([]byte, error) {
	if !IsPayToFingerprint(prog) {
		return nil, ErrNotPayToFingerprint
	}
	insts, err := ParseProgram(prog)
	if err != nil {
		return nil, err
	}
	return insts[2].Data, nil
}

// PayToConditionHashProgram generates the lock paying a spending
// condition by its 20-byte short digest:
//
//	OP_HASH160 <condition hash> OP_EQUAL
func PayToConditionHashProgram(conditionHash []byte) []byte {
	builder := NewBuilder()
	builder.AddOp(OP_HASH160)
	builder.AddData(conditionHash)
	builder.AddOp(OP_EQUAL)
	return builder.Build()
}

// IsPayToConditionHash reports whether prog has the exact
// pay-to-condition-hash shape.
func IsPayToConditionHash(prog []byte) bool {
	insts, err := ParseProgram(prog)
	if err != nil {
		return false
	}
	return len(insts) == 3 &&
		insts[0].Op == OP_HASH160 &&
		insts[1].Op == OP_DATA_20 &&
		insts[2].Op == OP_EQUAL
}

// ParseConditionHash extracts the 20-byte condition hash from a
// pay-to-condition-hash lock.
func ParseConditionHash(prog []byte) ([]byte, error) {
	if !IsPayToConditionHash(prog) {
		return nil, ErrNotPayToConditionHash
	}
	insts, err := ParseProgram(prog)
	if err != nil {
		return nil, err
	}
	return insts[1].Data, nil
}

// IsUnspendable reports whether a program fails unconditionally, the
// shape of data-carrier outputs.
func IsUnspendable(prog []byte) bool {
	return len(prog) > 0 && prog[0] == byte(OP_FAIL)
}
