// Package ctkp implements the covenant token protocol metadata record:
// the unspendable data-carrier output that commits a token class id and
// the amounts an action accounts for, read by token-aware indexers.
package ctkp

import (
	"bytes"
	"encoding/binary"

	"github.com/tokenizando/covenant/consensus"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/script"
)

const (
	// CTKP is the protocol magic tag.
	CTKP = "ctkp"
	// Version is the ctkp protocol version.
	Version = 1
)

// Message words.
const (
	MsgSend = "SEND"
	MsgFlag = "FLAG"
)

// ErrBadRecord is returned when a program is not a well-formed record.
var ErrBadRecord = errors.New("bad token protocol record")

// TransferRecordScript generates the record committing a transfer.
// Record format: OP_FAIL + OP_DATA_4 + "ctkp" + OP_DATA_1 + "1" +
// OP_DATA_4 + "SEND" + OP_DATA_32 + tokenID + OP_DATA_8 + payAmount +
// OP_DATA_8 + changeAmount. Amounts are 8-byte little-endian.
func TransferRecordScript(tokenID []byte, payAmount, changeAmount uint64) []byte {
	builder := recordBuilder(MsgSend, tokenID)
	builder.AddData(amountBytes(payAmount))
	builder.AddData(amountBytes(changeAmount))
	return builder.Build()
}

// SweepRecordScript generates the record committing a vault payout of
// a full token balance: the SEND form carrying a single amount.
func SweepRecordScript(tokenID []byte, balance uint64) []byte {
	builder := recordBuilder(MsgSend, tokenID)
	builder.AddData(amountBytes(balance))
	return builder.Build()
}

// FlagRecordScript generates the record committing a freeze flag
// change. Record format: OP_FAIL + OP_DATA_4 + "ctkp" + OP_DATA_1 +
// "1" + OP_DATA_4 + "FLAG" + OP_DATA_32 + tokenID + OP_DATA_1 + flag +
// OP_DATA_8 + balance.
func FlagRecordScript(tokenID []byte, frozen bool, balance uint64) []byte {
	builder := recordBuilder(MsgFlag, tokenID)
	builder.AddData(flagBytes(frozen))
	builder.AddData(amountBytes(balance))
	return builder.Build()
}

func recordBuilder(msg string, tokenID []byte) *script.Builder {
	builder := script.NewBuilder()
	builder.AddOp(script.OP_FAIL)
	builder.AddData([]byte(CTKP))
	builder.AddData([]byte{byte(Version)})
	builder.AddData([]byte(msg))
	builder.AddData(tokenID)
	return builder
}

// IsRecordScript checks if a program is a covenant token protocol
// record: an unspendable output opening with the magic tag, the
// protocol version and a known message word.
func IsRecordScript(prog []byte) bool {
	insts, err := script.ParseProgram(prog)
	if err != nil {
		return false
	}

	if len(insts) < 5 {
		return false
	}

	if insts[0].Op != script.OP_FAIL {
		return false
	}

	if insts[1].Op != script.OP_DATA_4 || !bytes.Equal(insts[1].Data, []byte(CTKP)) {
		return false
	}

	if insts[2].Op != script.OP_DATA_1 || !bytes.Equal(insts[2].Data, []byte{byte(Version)}) {
		return false
	}

	word := string(insts[3].Data)
	return insts[3].Op == script.OP_DATA_4 && (word == MsgSend || word == MsgFlag)
}

// Record is a parsed token protocol metadata record.
type Record struct {
	Type    string
	TokenID []byte

	// Amounts carries the SEND amounts: the payout amount, then the
	// change amount for the two-amount transfer form. For FLAG records
	// it carries the unchanged balance.
	Amounts []uint64

	// Frozen is the new flag value of a FLAG record.
	Frozen bool
}

// ParseRecord parses a token protocol record from prog.
func ParseRecord(prog []byte) (*Record, error) {
	if !IsRecordScript(prog) {
		return nil, errors.WithDetail(ErrBadRecord, "missing record preamble")
	}

	insts, err := script.ParseProgram(prog)
	if err != nil {
		return nil, err
	}

	if insts[4].Op != script.OP_DATA_32 || len(insts[4].Data) != consensus.TokenIDDataSize {
		return nil, errors.WithDetail(ErrBadRecord, "bad token id field")
	}

	record := &Record{
		Type:    string(insts[3].Data),
		TokenID: insts[4].Data,
	}

	switch record.Type {
	case MsgSend:
		if len(insts) < 6 || len(insts) > 7 {
			return nil, errors.WithDetail(ErrBadRecord, "bad SEND field count")
		}
		for _, inst := range insts[5:] {
			amount, err := parseAmount(inst)
			if err != nil {
				return nil, err
			}
			record.Amounts = append(record.Amounts, amount)
		}

	case MsgFlag:
		if len(insts) != 7 {
			return nil, errors.WithDetail(ErrBadRecord, "bad FLAG field count")
		}
		frozen, err := parseFlag(insts[5])
		if err != nil {
			return nil, err
		}
		balance, err := parseAmount(insts[6])
		if err != nil {
			return nil, err
		}
		record.Frozen = frozen
		record.Amounts = []uint64{balance}
	}

	return record, nil
}

func amountBytes(n uint64) []byte {
	var b [consensus.AmountDataSize]byte
	binary.LittleEndian.PutUint64(b[:], n)
	return b[:]
}

func flagBytes(frozen bool) []byte {
	if frozen {
		return []byte{0x01}
	}
	return []byte{0x00}
}

func parseAmount(inst script.Instruction) (uint64, error) {
	if inst.Op != script.OP_DATA_8 || len(inst.Data) != consensus.AmountDataSize {
		return 0, errors.WithDetail(ErrBadRecord, "bad amount field")
	}
	return binary.LittleEndian.Uint64(inst.Data), nil
}

func parseFlag(inst script.Instruction) (bool, error) {
	if inst.Op != script.OP_DATA_1 || len(inst.Data) != consensus.FlagDataSize {
		return false, errors.WithDetail(ErrBadRecord, "bad flag field")
	}
	switch inst.Data[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	}
	return false, errors.WithDetail(ErrBadRecord, "flag byte out of range")
}
