package commands

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/tokenizando/covenant/consensus/ctkp"
	"github.com/tokenizando/covenant/encoding/blockchain"
	chainjson "github.com/tokenizando/covenant/encoding/json"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/protocol/covenant"
	"github.com/tokenizando/covenant/util"
)

// reconstructedOut is one expected output of an action, printed with
// the exact record serialization the commitment digest covers.
type reconstructedOut struct {
	Amount     uint64             `json:"amount"`
	Lock       chainjson.HexBytes `json:"lock"`
	Serialized chainjson.HexBytes `json:"serialized"`
}

type reconstructOut struct {
	Outputs    []*reconstructedOut  `json:"outputs"`
	Trailing   []chainjson.HexBytes `json:"trailing_outputs,omitempty"`
	Commitment bc.Hash              `json:"commitment"`
}

var reconstructTransferCmd = &cobra.Command{
	Use:   "reconstruct-transfer <coin lock> <token id> <recipient fingerprint> <pay amount> <change amount> [trailing output]...",
	Short: "Rebuild the output set a transfer must produce",
	Args:  cobra.MinimumNArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		state, suffix := mustResolveTokenLock(args[0])
		tokenID := mustDecodeHex("token id", args[1])
		recipient := mustDecodeHex("recipient fingerprint", args[2])
		payAmount := parseUint64("pay amount", args[3])
		changeAmount := parseUint64("change amount", args[4])

		outs := covenant.TransferOutputs(state, suffix, tokenID, recipient, payAmount, changeAmount)
		printReconstruction(outs, trailingArgs(args[5:]))
	},
}

var reconstructFreezeCmd = &cobra.Command{
	Use:   "reconstruct-freeze <coin lock> <token id> <new frozen flag> [trailing output]...",
	Short: "Rebuild the output set a freeze or unfreeze must produce",
	Args:  cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		state, suffix := mustResolveTokenLock(args[0])
		tokenID := mustDecodeHex("token id", args[1])
		newFrozen := parseBool("new frozen flag", args[2])

		outs := covenant.FreezeOutputs(state, suffix, tokenID, newFrozen)
		printReconstruction(outs, trailingArgs(args[3:]))
	},
}

var reconstructSweepCmd = &cobra.Command{
	Use:   "reconstruct-sweep <coin lock> <token id> <token balance> <coin value> [trailing output]...",
	Short: "Rebuild the output set a vault sweep must produce",
	Args:  cobra.MinimumNArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		lock := mustDecodeHex("coin lock", args[0])
		ownerHash, _, err := covenant.ResolveVaultLock(lock)
		if err != nil {
			jww.ERROR.Println("resolving vault lock:", err)
			os.Exit(util.ErrLocalParse)
		}
		tokenID := mustDecodeHex("token id", args[1])
		balance := parseUint64("token balance", args[2])
		coinValue := parseUint64("coin value", args[3])

		outs := covenant.VaultSweepOutputs(ownerHash, tokenID, balance, coinValue, activeNetParams().VaultMarkerAmount)
		printReconstruction(outs, trailingArgs(args[4:]))
	},
}

var reconstructRevokeCmd = &cobra.Command{
	Use:   "reconstruct-revoke <sender fingerprint> <token id> <token balance> <coin value> [trailing output]...",
	Short: "Rebuild the output set a vault revoke must produce",
	Args:  cobra.MinimumNArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		senderHash := mustDecodeHex("sender fingerprint", args[0])
		tokenID := mustDecodeHex("token id", args[1])
		balance := parseUint64("token balance", args[2])
		coinValue := parseUint64("coin value", args[3])

		outs := covenant.VaultRevokeOutputs(senderHash, tokenID, balance, coinValue, activeNetParams().VaultMarkerAmount)
		printReconstruction(outs, trailingArgs(args[4:]))
	},
}

type decodedOut struct {
	Amount uint64             `json:"amount"`
	Lock   chainjson.HexBytes `json:"lock"`
}

var decodeOutputCmd = &cobra.Command{
	Use:   "decode-output <serialized outputs>...",
	Short: "Decode serialized output records into amounts and locks",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var outs []*decodedOut
		for _, arg := range args {
			r := blockchain.NewReader(mustDecodeHex("output record", arg))
			for r.Len() > 0 {
				out := &bc.TxOutput{}
				if err := out.ReadFrom(r); err != nil {
					jww.ERROR.Println("decode-output:", err)
					os.Exit(util.ErrLocalParse)
				}
				outs = append(outs, &decodedOut{Amount: out.Amount, Lock: out.Lock})
			}
		}
		printJSON(outs)
	},
}

var decodeRecordCmd = &cobra.Command{
	Use:   "decode-record <record program>",
	Short: "Decode a token protocol metadata record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prog := mustDecodeHex("record program", args[0])
		record, err := ctkp.ParseRecord(prog)
		if err != nil {
			jww.ERROR.Println("decode-record:", err)
			os.Exit(util.ErrLocalParse)
		}

		printJSON(struct {
			Type    string             `json:"type"`
			TokenID chainjson.HexBytes `json:"token_id"`
			Amounts []uint64           `json:"amounts,omitempty"`
			Frozen  bool               `json:"frozen,omitempty"`
		}{
			Type:    record.Type,
			TokenID: record.TokenID,
			Amounts: record.Amounts,
			Frozen:  record.Frozen,
		})
	},
}

func mustResolveTokenLock(raw string) (*covenant.TokenState, []byte) {
	lock := mustDecodeHex("coin lock", raw)
	state, suffix, err := covenant.ResolveTokenLock(lock)
	if err != nil {
		jww.ERROR.Println("resolving token lock:", err)
		os.Exit(util.ErrLocalParse)
	}
	return state, suffix
}

func trailingArgs(raw []string) [][]byte {
	var trailing [][]byte
	for _, arg := range raw {
		trailing = append(trailing, mustDecodeHex("trailing output", arg))
	}
	return trailing
}

func printReconstruction(outs []*bc.TxOutput, trailing [][]byte) {
	commitment, err := bc.HashOutputs(outs, trailing)
	if err != nil {
		jww.ERROR.Println("hashing outputs:", err)
		os.Exit(util.ErrLocalExe)
	}

	result := &reconstructOut{Commitment: commitment}
	for _, out := range outs {
		var b bytes.Buffer
		if _, err := out.WriteTo(&b); err != nil {
			jww.ERROR.Println("serializing output:", err)
			os.Exit(util.ErrLocalExe)
		}
		result.Outputs = append(result.Outputs, &reconstructedOut{
			Amount:     out.Amount,
			Lock:       out.Lock,
			Serialized: b.Bytes(),
		})
	}
	for _, t := range trailing {
		result.Trailing = append(result.Trailing, t)
	}
	printJSON(result)
}
