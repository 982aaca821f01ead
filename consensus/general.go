package consensus

import (
	"fmt"
)

// Protocol constants shared by every network.
const (
	// DustAmount is the fixed ledger value assigned to reconstructed
	// notification and state-carrying outputs.
	DustAmount = uint64(546)

	// Fixed field widths of the wire format.
	AmountDataSize      = 8
	FingerprintDataSize = 20
	TokenIDDataSize     = 32
	FlagDataSize        = 1
	TxIDDataSize        = 32

	// Ed25519 key material widths.
	PubKeyDataSize    = 32
	SignatureDataSize = 64
)

// Params store the config for different networks.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// VaultMarkerAmount is the reserved coin value that marks a vault
	// output as token-bearing. Ledger-specific; the compatibility
	// default equals DustAmount.
	VaultMarkerAmount uint64
}

// ActiveNetParams is the Params of the running network.
var ActiveNetParams = MainNetParams

// NetParams is the correspondence between chain_id and Params.
var NetParams = map[string]Params{
	"mainnet": MainNetParams,
	"testnet": TestNetParams,
	"solonet": SoloNetParams,
}

// MainNetParams is the config for production.
var MainNetParams = Params{
	Name:              "main",
	VaultMarkerAmount: DustAmount,
}

// TestNetParams is the config for the test network.
var TestNetParams = Params{
	Name:              "test",
	VaultMarkerAmount: DustAmount,
}

// SoloNetParams is the config for standalone validation.
var SoloNetParams = Params{
	Name:              "solo",
	VaultMarkerAmount: DustAmount,
}

// InitActiveNetParams load the config by chain ID.
func InitActiveNetParams(chainID string) error {
	var exist bool
	if ActiveNetParams, exist = NetParams[chainID]; !exist {
		return fmt.Errorf("chain_id[%v] don't exist", chainID)
	}
	return nil
}
