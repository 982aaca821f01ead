package commands

import (
	"os"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/tokenizando/covenant/consensus"
	"github.com/tokenizando/covenant/crypto"
	chainjson "github.com/tokenizando/covenant/encoding/json"
	"github.com/tokenizando/covenant/util"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <public key>",
	Short: "Compute the 20-byte fingerprint of a public key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pubKey := mustDecodeHex("public key", args[0])
		if len(pubKey) != consensus.PubKeyDataSize {
			jww.ERROR.Printf("bad public key width %d, want %d\n", len(pubKey), consensus.PubKeyDataSize)
			os.Exit(util.ErrLocalParse)
		}

		printJSON(struct {
			PubKey      chainjson.HexBytes `json:"pubkey"`
			Fingerprint chainjson.HexBytes `json:"fingerprint"`
		}{
			PubKey:      pubKey,
			Fingerprint: crypto.Hash160(pubKey),
		})
	},
}
