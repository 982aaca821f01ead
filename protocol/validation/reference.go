package validation

import (
	"github.com/tokenizando/covenant/crypto"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/protocol/script"
)

// resolveSender proves who funded the vault coin being revoked. The
// request carries the funding transaction as three raw segments; their
// concatenation must hash to the transaction id the spent outpoint
// references, and the middle segment must be the plain lock that paid
// the sender. The returned fingerprint is the sender's.
func resolveSender(ctx *bc.SpendContext, req *bc.SpendRequest) ([]byte, error) {
	var refID [32]byte
	copy(refID[:], crypto.Sha256(req.PrevTxHead, req.PrevTxLock, req.PrevTxTail))
	if bc.NewHash(refID) != ctx.Outpoint.TxID {
		return nil, errors.WithDetail(ErrReferenceMismatch, "previous transaction bytes do not hash to the referenced id")
	}

	senderHash, err := script.ParseFingerprint(req.PrevTxLock)
	if err != nil {
		return nil, errors.Sub(ErrMalformedField, err)
	}
	return senderHash, nil
}
