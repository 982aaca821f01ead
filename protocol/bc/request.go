package bc

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tokenizando/covenant/crypto/sha3pool"
	"github.com/tokenizando/covenant/encoding/blockchain"
	"github.com/tokenizando/covenant/errors"
)

// Action selects the covenant branch a spend exercises.
type Action uint8

// Action kinds.
const (
	ActionTransfer Action = iota + 1
	ActionFreeze
	ActionVaultSweep
	ActionVaultRevoke
)

var actionNames = map[Action]string{
	ActionTransfer:    "transfer",
	ActionFreeze:      "freeze",
	ActionVaultSweep:  "vault_sweep",
	ActionVaultRevoke: "vault_revoke",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// MarshalText satisfies the TextMarshaler interface.
func (a Action) MarshalText() ([]byte, error) {
	name, ok := actionNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown action %d", uint8(a))
	}
	return []byte(name), nil
}

// UnmarshalText satisfies the TextUnmarshaler interface.
func (a *Action) UnmarshalText(v []byte) error {
	for action, name := range actionNames {
		if name == string(v) {
			*a = action
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", v)
}

// SpendRequest is everything a requester supplies to spend a coin.
// Fixed-width fields arrive as raw bytes off the wire; their widths
// are validated before any reconstruction is attempted.
type SpendRequest struct {
	Action Action

	// TokenID is the 32-byte token class id committed by metadata
	// records. A wrong id yields a record the transaction's real
	// outputs cannot match.
	TokenID []byte

	// Transfer parameters. PayAmount doubles as the swept balance a
	// vault action commits in its metadata record.
	PayAmount     uint64
	ChangeAmount  uint64
	RecipientHash []byte

	// Freeze parameter: the desired new frozen flag. The flip rule is
	// enforced against the coin's current state.
	NewFrozen bool

	// Vault-revoke parameters: raw segments of the funding transaction
	// that must recreate its id when hashed in order. The middle
	// segment is the sender's plain lock.
	PrevTxHead []byte
	PrevTxLock []byte
	PrevTxTail []byte

	// TrailingOutputs are already-serialized output records appended
	// verbatim after the reconstructed outputs, opaque to the
	// reconstruction engine.
	TrailingOutputs [][]byte

	// Authorization.
	PubKey    []byte
	Signature []byte
}

// WriteTo writes a canonical serialization of every request field. It
// is the preimage of SpendDigest, not a consensus wire format.
func (r *SpendRequest) WriteTo(w io.Writer) (int64, error) {
	var n int64

	m, err := w.Write([]byte{byte(r.Action)})
	n += int64(m)
	if err != nil {
		return n, errors.Wrap(err, "writing action")
	}

	m, err = blockchain.WriteVarstr31(w, r.TokenID)
	n += int64(m)
	if err != nil {
		return n, errors.Wrap(err, "writing token id")
	}

	var amounts [16]byte
	binary.LittleEndian.PutUint64(amounts[:8], r.PayAmount)
	binary.LittleEndian.PutUint64(amounts[8:], r.ChangeAmount)
	m, err = w.Write(amounts[:])
	n += int64(m)
	if err != nil {
		return n, errors.Wrap(err, "writing amounts")
	}

	m, err = blockchain.WriteVarstr31(w, r.RecipientHash)
	n += int64(m)
	if err != nil {
		return n, errors.Wrap(err, "writing recipient hash")
	}

	flag := byte(0)
	if r.NewFrozen {
		flag = 1
	}
	m, err = w.Write([]byte{flag})
	n += int64(m)
	if err != nil {
		return n, errors.Wrap(err, "writing frozen flag")
	}

	for _, segment := range [][]byte{r.PrevTxHead, r.PrevTxLock, r.PrevTxTail} {
		m, err = blockchain.WriteVarstr31(w, segment)
		n += int64(m)
		if err != nil {
			return n, errors.Wrap(err, "writing previous transaction segment")
		}
	}

	m, err = blockchain.WriteVarstrList(w, r.TrailingOutputs)
	n += int64(m)
	if err != nil {
		return n, errors.Wrap(err, "writing trailing outputs")
	}

	m, err = blockchain.WriteVarstr31(w, r.PubKey)
	n += int64(m)
	if err != nil {
		return n, errors.Wrap(err, "writing public key")
	}

	m, err = blockchain.WriteVarstr31(w, r.Signature)
	n += int64(m)
	return n, errors.Wrap(err, "writing signature")
}

// SpendDigest reduces a proposed spend to one identifying digest: the
// long digest over the spend's signing hash and the full request
// serialization. Two spends with equal digests validate identically.
func SpendDigest(ctx *SpendContext, req *SpendRequest) (hash Hash, err error) {
	hasher := sha3pool.Get256()
	defer sha3pool.Put256(hasher)

	sigHash := ctx.SigHash()
	if _, err := sigHash.WriteTo(hasher); err != nil {
		return Hash{}, errors.Wrap(err, "hashing spend context")
	}
	if _, err := req.WriteTo(hasher); err != nil {
		return Hash{}, errors.Wrap(err, "hashing spend request")
	}

	hash.ReadFrom(hasher)
	return hash, nil
}
