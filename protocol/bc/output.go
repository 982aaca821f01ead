package bc

import (
	"encoding/binary"
	"io"

	"github.com/tokenizando/covenant/crypto/sha3pool"
	"github.com/tokenizando/covenant/encoding/blockchain"
	"github.com/tokenizando/covenant/errors"
)

// TxOutput is one output record of a spending transaction: a ledger
// amount and the bytecode that locks it. Its serialization is the unit
// the output commitment is computed over.
type TxOutput struct {
	Amount uint64
	Lock   []byte
}

// NewTxOutput creates a new output record.
func NewTxOutput(amount uint64, lock []byte) *TxOutput {
	return &TxOutput{
		Amount: amount,
		Lock:   lock,
	}
}

// WriteTo writes the canonical record form to w: the amount as 8
// little-endian bytes followed by the length-prefixed lock bytecode.
func (to *TxOutput) WriteTo(w io.Writer) (int64, error) {
	var amount [8]byte
	binary.LittleEndian.PutUint64(amount[:], to.Amount)
	n, err := w.Write(amount[:])
	if err != nil {
		return int64(n), errors.Wrap(err, "writing amount")
	}

	n2, err := blockchain.WriteVarstr31(w, to.Lock)
	return int64(n + n2), errors.Wrap(err, "writing lock")
}

// ReadFrom reads a record in the form WriteTo produces.
func (to *TxOutput) ReadFrom(r *blockchain.Reader) error {
	var amount [8]byte
	if _, err := io.ReadFull(r, amount[:]); err != nil {
		return errors.Wrap(err, "reading amount")
	}
	to.Amount = binary.LittleEndian.Uint64(amount[:])

	lock, err := blockchain.ReadVarstr31(r)
	if err != nil {
		return errors.Wrap(err, "reading lock")
	}
	to.Lock = lock
	return nil
}

// HashOutputs reduces an output list to its commitment digest: the
// long digest over the concatenated record serializations, in order.
// Trailing raw record bytes are absorbed verbatim after the structured
// outputs.
func HashOutputs(outputs []*TxOutput, trailing [][]byte) (hash Hash, err error) {
	hasher := sha3pool.Get256()
	defer sha3pool.Put256(hasher)

	for _, o := range outputs {
		if _, err := o.WriteTo(hasher); err != nil {
			return Hash{}, errors.Wrap(err, "hashing output record")
		}
	}
	for _, t := range trailing {
		if _, err := hasher.Write(t); err != nil {
			return Hash{}, errors.Wrap(err, "hashing trailing record")
		}
	}

	hash.ReadFrom(hasher)
	return hash, nil
}
