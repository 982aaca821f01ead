package bc

import (
	"encoding/binary"

	"github.com/tokenizando/covenant/crypto/sha3pool"
	"github.com/tokenizando/covenant/encoding/blockchain"
)

// Outpoint identifies the transaction output a coin was created by:
// the id of the creating transaction and the output's position in it.
type Outpoint struct {
	TxID  Hash
	Index uint32
}

// Coin is the unspent covenant output under validation. Value is the
// ledger amount carried by the output, not the token balance; the
// token state lives inside Lock.
type Coin struct {
	Outpoint Outpoint
	Value    uint64
	Lock     []byte
}

// SpendContext carries the preimage fields the host ledger supplies
// when a coin is spent: the coin itself and the 32-byte commitment to
// every output of the spending transaction.
//
// HashOutputs doubles as the requester's claimed commitment. It is
// never trusted: validation recomputes the commitment from the
// reconstructed outputs and compares.
type SpendContext struct {
	Coin
	HashOutputs Hash

	sigHash *Hash
}

// SigHash returns the digest spend signatures must cover. It binds the
// outpoint, the spent value, the executing lock bytecode and the
// outputs of the spending transaction. The digest is computed once and
// memoized; a SpendContext must not be mutated after the first call.
func (sc *SpendContext) SigHash() Hash {
	if sc.sigHash == nil {
		hasher := sha3pool.Get256()
		defer sha3pool.Put256(hasher)

		sc.Coin.Outpoint.TxID.WriteTo(hasher)
		var index [4]byte
		binary.LittleEndian.PutUint32(index[:], sc.Coin.Outpoint.Index)
		hasher.Write(index[:])
		var value [8]byte
		binary.LittleEndian.PutUint64(value[:], sc.Coin.Value)
		hasher.Write(value[:])
		blockchain.WriteVarstr31(hasher, sc.Coin.Lock)
		sc.HashOutputs.WriteTo(hasher)

		var hash Hash
		hash.ReadFrom(hasher)
		sc.sigHash = &hash
	}
	return *sc.sigHash
}
