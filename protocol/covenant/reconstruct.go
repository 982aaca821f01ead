package covenant

import (
	"github.com/tokenizando/covenant/consensus"
	"github.com/tokenizando/covenant/consensus/ctkp"
	"github.com/tokenizando/covenant/crypto"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/protocol/script"
)

// TransferOutputs rebuilds the output set a transfer must produce: the
// transfer record, the recipient's and the sender's descendant covenant
// coins, and the notification to the recipient. The descendant locks
// reuse the spent coin's rule suffix with the balances and owners
// rewritten, and appear behind condition-hash locks.
func TransferOutputs(state *TokenState, suffix, tokenID, recipientHash []byte, payAmount, changeAmount uint64) []*bc.TxOutput {
	payLock := ComposeTokenLock(&TokenState{
		Frozen:    state.Frozen,
		Balance:   payAmount,
		OwnerHash: recipientHash,
	}, suffix)
	changeLock := ComposeTokenLock(&TokenState{
		Frozen:    state.Frozen,
		Balance:   changeAmount,
		OwnerHash: state.OwnerHash,
	}, suffix)

	return []*bc.TxOutput{
		bc.NewTxOutput(0, ctkp.TransferRecordScript(tokenID, payAmount, changeAmount)),
		bc.NewTxOutput(consensus.DustAmount, script.PayToConditionHashProgram(crypto.Hash160(payLock))),
		bc.NewTxOutput(consensus.DustAmount, script.PayToConditionHashProgram(crypto.Hash160(changeLock))),
		bc.NewTxOutput(consensus.DustAmount, script.PayToFingerprintProgram(recipientHash)),
	}
}

// FreezeOutputs rebuilds the output set a freeze or unfreeze must
// produce: the flag record, the descendant coin with the flag rewritten
// and balance and owner untouched, and the notification to the owner.
func FreezeOutputs(state *TokenState, suffix, tokenID []byte, newFrozen bool) []*bc.TxOutput {
	nextLock := ComposeTokenLock(&TokenState{
		Frozen:    newFrozen,
		Balance:   state.Balance,
		OwnerHash: state.OwnerHash,
	}, suffix)

	return []*bc.TxOutput{
		bc.NewTxOutput(0, ctkp.FlagRecordScript(tokenID, newFrozen, state.Balance)),
		bc.NewTxOutput(consensus.DustAmount, script.PayToConditionHashProgram(crypto.Hash160(nextLock))),
		bc.NewTxOutput(consensus.DustAmount, script.PayToFingerprintProgram(state.OwnerHash)),
	}
}

// VaultSweepOutputs rebuilds the output set a vault sweep must produce.
// The whole coin value returns to the vault owner. When the coin value
// equals the marker amount the sweep additionally publishes a record
// declaring the swept balance.
func VaultSweepOutputs(ownerHash, tokenID []byte, balance, coinValue, markerAmount uint64) []*bc.TxOutput {
	payout := bc.NewTxOutput(coinValue, script.PayToFingerprintProgram(ownerHash))
	if coinValue == markerAmount {
		return []*bc.TxOutput{
			bc.NewTxOutput(0, ctkp.SweepRecordScript(tokenID, balance)),
			payout,
		}
	}
	return []*bc.TxOutput{payout}
}

// VaultRevokeOutputs rebuilds the output set a vault revoke must
// produce. It has the same shape as a sweep but pays the fingerprint of
// the sender who funded the vault.
func VaultRevokeOutputs(senderHash, tokenID []byte, balance, coinValue, markerAmount uint64) []*bc.TxOutput {
	return VaultSweepOutputs(senderHash, tokenID, balance, coinValue, markerAmount)
}
