package commands

import (
	stdjson "encoding/json"
	"os"
	"strconv"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/tokenizando/covenant/consensus"
	chainjson "github.com/tokenizando/covenant/encoding/json"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/protocol/validation"
	"github.com/tokenizando/covenant/util"
)

// spendIns is the file format of a proposed spend: the preimage fields
// the host ledger supplies and the requester's parameters, byte fields
// hex-encoded.
type spendIns struct {
	Context spendContextIns `json:"spend_context"`
	Request spendRequestIns `json:"spend_request"`
}

type spendContextIns struct {
	TxID        bc.Hash            `json:"txid"`
	Index       uint32             `json:"index"`
	Value       uint64             `json:"value"`
	Lock        chainjson.HexBytes `json:"lock"`
	HashOutputs bc.Hash            `json:"hash_outputs"`
}

type spendRequestIns struct {
	Action          bc.Action            `json:"action"`
	TokenID         chainjson.HexBytes   `json:"token_id"`
	PayAmount       uint64               `json:"pay_amount"`
	ChangeAmount    uint64               `json:"change_amount"`
	RecipientHash   chainjson.HexBytes   `json:"recipient_hash,omitempty"`
	NewFrozen       bool                 `json:"new_frozen,omitempty"`
	PrevTxHead      chainjson.HexBytes   `json:"prev_tx_head,omitempty"`
	PrevTxLock      chainjson.HexBytes   `json:"prev_tx_lock,omitempty"`
	PrevTxTail      chainjson.HexBytes   `json:"prev_tx_tail,omitempty"`
	TrailingOutputs []chainjson.HexBytes `json:"trailing_outputs,omitempty"`
	PubKey          chainjson.HexBytes   `json:"pubkey,omitempty"`
	Signature       chainjson.HexBytes   `json:"signature"`
}

func (ins *spendIns) toSpend() (*bc.SpendContext, *bc.SpendRequest) {
	ctx := &bc.SpendContext{
		Coin: bc.Coin{
			Outpoint: bc.Outpoint{TxID: ins.Context.TxID, Index: ins.Context.Index},
			Value:    ins.Context.Value,
			Lock:     ins.Context.Lock,
		},
		HashOutputs: ins.Context.HashOutputs,
	}

	var trailing [][]byte
	for _, t := range ins.Request.TrailingOutputs {
		trailing = append(trailing, t)
	}
	req := &bc.SpendRequest{
		Action:          ins.Request.Action,
		TokenID:         ins.Request.TokenID,
		PayAmount:       ins.Request.PayAmount,
		ChangeAmount:    ins.Request.ChangeAmount,
		RecipientHash:   ins.Request.RecipientHash,
		NewFrozen:       ins.Request.NewFrozen,
		PrevTxHead:      ins.Request.PrevTxHead,
		PrevTxLock:      ins.Request.PrevTxLock,
		PrevTxTail:      ins.Request.PrevTxTail,
		TrailingOutputs: trailing,
		PubKey:          ins.Request.PubKey,
		Signature:       ins.Request.Signature,
	}
	return ctx, req
}

// Map rejection roots to the classification names of the verdict
// output. Missing entries report as Unknown.
var errorClassifier = map[error]string{
	validation.ErrMalformedField:       "MalformedField",
	validation.ErrInvariantViolation:   "InvariantViolation",
	validation.ErrCommitmentMismatch:   "CommitmentMismatch",
	validation.ErrAuthorizationFailure: "AuthorizationFailure",
	validation.ErrReferenceMismatch:    "ReferenceMismatch",
}

func classify(err error) string {
	if name, ok := errorClassifier[errors.Root(err)]; ok {
		return name
	}
	return "Unknown"
}

// activeNetParams returns the network parameters selected by the root
// command, which already rejected unknown chain ids.
func activeNetParams() *consensus.Params {
	return &consensus.ActiveNetParams
}

func parseUint64(name, raw string) uint64 {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		jww.ERROR.Printf("bad %s %q: %v\n", name, raw, err)
		os.Exit(util.ErrLocalParse)
	}
	return n
}

func parseBool(name, raw string) bool {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		jww.ERROR.Printf("bad %s %q: %v\n", name, raw, err)
		os.Exit(util.ErrLocalParse)
	}
	return b
}

func mustDecodeHex(name, raw string) []byte {
	var b chainjson.HexBytes
	if err := b.UnmarshalText([]byte(raw)); err != nil {
		jww.ERROR.Printf("bad %s %q: %v\n", name, raw, err)
		os.Exit(util.ErrLocalParse)
	}
	return b
}

func printJSON(data interface{}) {
	rawData, err := stdjson.MarshalIndent(data, "", "  ")
	if err != nil {
		jww.ERROR.Println(err)
		os.Exit(util.ErrLocalParse)
	}

	jww.FEEDBACK.Println(string(rawData))
}
