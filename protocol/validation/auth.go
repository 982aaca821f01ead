package validation

import (
	"bytes"
	"crypto/ed25519"

	"github.com/tokenizando/covenant/crypto"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/bc"
)

// checkOwner verifies an owner-authorized spend: the supplied key must
// hash to the required fingerprint and the signature must cover the
// spend's signing hash.
func (v *Validator) checkOwner(ctx *bc.SpendContext, req *bc.SpendRequest, ownerHash []byte) error {
	if !bytes.Equal(crypto.Hash160(req.PubKey), ownerHash) {
		return errors.WithDetail(ErrAuthorizationFailure, "public key does not hash to the owner fingerprint")
	}
	return verifySignature(ctx, req.PubKey, req.Signature)
}

// checkIssuer verifies an issuer-authorized spend against the fixed
// issuer key bound at construction. Coin owners cannot pass this check
// with their own keys.
func (v *Validator) checkIssuer(ctx *bc.SpendContext, req *bc.SpendRequest) error {
	return verifySignature(ctx, v.issuerKey, req.Signature)
}

func verifySignature(ctx *bc.SpendContext, pubKey, sig []byte) error {
	sigHash := ctx.SigHash()
	if !ed25519.Verify(ed25519.PublicKey(pubKey), sigHash.Bytes(), sig) {
		return errors.WithDetail(ErrAuthorizationFailure, "signature does not verify")
	}
	return nil
}
