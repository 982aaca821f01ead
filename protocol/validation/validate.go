// Package validation answers one question: given a proposed spend of a
// covenant coin and its claimed preimage data, is it valid? Validation
// is a pure function of its inputs. It reads no ledger state, performs
// no I/O, and either accepts or rejects deterministically.
//
// Checks run cheapest first: field widths, then state preconditions,
// then output reconstruction and the commitment comparison, then
// signature verification. Any single failure rejects the spend.
package validation

import (
	"crypto/ed25519"

	"github.com/tokenizando/covenant/consensus"
	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/math/checked"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/protocol/covenant"
)

// Rejection roots. Every verdict other than accept wraps one of these.
var (
	// ErrMalformedField means a supplied field's byte length or
	// structure does not match its required fixed form.
	ErrMalformedField = errors.New("malformed request field")

	// ErrInvariantViolation means a state precondition failed: a frozen
	// coin spent via transfer, a flag transition that is not a flip, or
	// amounts that do not preserve the coin's balance.
	ErrInvariantViolation = errors.New("token invariant violation")

	// ErrCommitmentMismatch means the recomputed output commitment does
	// not equal the commitment the transaction actually carries. This is
	// the catch-all for any structurally wrong output set.
	ErrCommitmentMismatch = errors.New("output commitment mismatch")

	// ErrAuthorizationFailure means the signature does not verify
	// against the required key, or the supplied key does not hash to the
	// coin's owner fingerprint.
	ErrAuthorizationFailure = errors.New("authorization failure")

	// ErrReferenceMismatch means the supplied previous-transaction bytes
	// do not hash to the transaction id the spent outpoint references.
	ErrReferenceMismatch = errors.New("previous transaction reference mismatch")
)

// Validator checks spend requests against the covenant rules of one
// token class. It holds only immutable configuration and is safe for
// concurrent use by any number of goroutines.
type Validator struct {
	issuerKey ed25519.PublicKey
	params    *consensus.Params
}

// NewValidator binds the token class's fixed issuer key and the active
// network parameters.
func NewValidator(issuerKey ed25519.PublicKey, params *consensus.Params) (*Validator, error) {
	if len(issuerKey) != consensus.PubKeyDataSize {
		return nil, errors.WithDetail(ErrMalformedField, "bad issuer key width")
	}
	return &Validator{issuerKey: issuerKey, params: params}, nil
}

// Validate runs the full check sequence for one proposed spend. A nil
// return means accept.
func (v *Validator) Validate(ctx *bc.SpendContext, req *bc.SpendRequest) error {
	if err := checkFields(req); err != nil {
		return err
	}

	switch req.Action {
	case bc.ActionTransfer:
		return v.validateTransfer(ctx, req)
	case bc.ActionFreeze:
		return v.validateFreeze(ctx, req)
	case bc.ActionVaultSweep:
		return v.validateVaultSweep(ctx, req)
	case bc.ActionVaultRevoke:
		return v.validateVaultRevoke(ctx, req)
	default:
		return errors.WithDetailf(ErrMalformedField, "unknown action %d", req.Action)
	}
}

func (v *Validator) validateTransfer(ctx *bc.SpendContext, req *bc.SpendRequest) error {
	state, suffix, err := covenant.ResolveTokenLock(ctx.Lock)
	if err != nil {
		return errors.Sub(ErrMalformedField, err)
	}

	if state.Frozen {
		return errors.WithDetail(ErrInvariantViolation, "transfer of a frozen coin")
	}
	total, ok := checked.AddUint64(req.PayAmount, req.ChangeAmount)
	if !ok || total != state.Balance {
		return errors.WithDetailf(ErrInvariantViolation, "pay %d and change %d do not preserve balance %d", req.PayAmount, req.ChangeAmount, state.Balance)
	}

	outs := covenant.TransferOutputs(state, suffix, req.TokenID, req.RecipientHash, req.PayAmount, req.ChangeAmount)
	if err := checkCommitment(ctx, outs, req.TrailingOutputs); err != nil {
		return err
	}
	return v.checkOwner(ctx, req, state.OwnerHash)
}

func (v *Validator) validateFreeze(ctx *bc.SpendContext, req *bc.SpendRequest) error {
	state, suffix, err := covenant.ResolveTokenLock(ctx.Lock)
	if err != nil {
		return errors.Sub(ErrMalformedField, err)
	}

	if req.NewFrozen == state.Frozen {
		return errors.WithDetailf(ErrInvariantViolation, "frozen flag must flip, coin already %s", frozenName(state.Frozen))
	}

	outs := covenant.FreezeOutputs(state, suffix, req.TokenID, req.NewFrozen)
	if err := checkCommitment(ctx, outs, req.TrailingOutputs); err != nil {
		return err
	}
	return v.checkIssuer(ctx, req)
}

func (v *Validator) validateVaultSweep(ctx *bc.SpendContext, req *bc.SpendRequest) error {
	ownerHash, _, err := covenant.ResolveVaultLock(ctx.Lock)
	if err != nil {
		return errors.Sub(ErrMalformedField, err)
	}

	outs := covenant.VaultSweepOutputs(ownerHash, req.TokenID, req.PayAmount, ctx.Value, v.params.VaultMarkerAmount)
	if err := checkCommitment(ctx, outs, req.TrailingOutputs); err != nil {
		return err
	}
	return v.checkOwner(ctx, req, ownerHash)
}

func (v *Validator) validateVaultRevoke(ctx *bc.SpendContext, req *bc.SpendRequest) error {
	if _, _, err := covenant.ResolveVaultLock(ctx.Lock); err != nil {
		return errors.Sub(ErrMalformedField, err)
	}

	senderHash, err := resolveSender(ctx, req)
	if err != nil {
		return err
	}

	outs := covenant.VaultRevokeOutputs(senderHash, req.TokenID, req.PayAmount, ctx.Value, v.params.VaultMarkerAmount)
	if err := checkCommitment(ctx, outs, req.TrailingOutputs); err != nil {
		return err
	}
	return v.checkOwner(ctx, req, senderHash)
}

// checkFields rejects any request whose fixed-width fields are the
// wrong size, before any reconstruction work happens.
func checkFields(req *bc.SpendRequest) error {
	if len(req.TokenID) != consensus.TokenIDDataSize {
		return errors.WithDetail(ErrMalformedField, "bad token id width")
	}
	if len(req.Signature) != consensus.SignatureDataSize {
		return errors.WithDetail(ErrMalformedField, "bad signature width")
	}

	switch req.Action {
	case bc.ActionTransfer:
		if len(req.RecipientHash) != consensus.FingerprintDataSize {
			return errors.WithDetail(ErrMalformedField, "bad recipient fingerprint width")
		}
		return checkPubKeyWidth(req)
	case bc.ActionFreeze:
		// The issuer key is bound at construction; the request's own key
		// is not consulted.
		return nil
	case bc.ActionVaultSweep, bc.ActionVaultRevoke:
		return checkPubKeyWidth(req)
	default:
		return errors.WithDetailf(ErrMalformedField, "unknown action %d", req.Action)
	}
}

func checkPubKeyWidth(req *bc.SpendRequest) error {
	if len(req.PubKey) != consensus.PubKeyDataSize {
		return errors.WithDetail(ErrMalformedField, "bad public key width")
	}
	return nil
}

// checkCommitment rebuilds the output commitment from the reconstructed
// outputs and the caller's trailing records and compares it with the
// commitment the transaction carries. The carried value is never
// trusted on its own.
func checkCommitment(ctx *bc.SpendContext, outs []*bc.TxOutput, trailing [][]byte) error {
	got, err := bc.HashOutputs(outs, trailing)
	if err != nil {
		return errors.Wrap(err, "hashing reconstructed outputs")
	}
	if got != ctx.HashOutputs {
		return errors.WithDetailf(ErrCommitmentMismatch, "reconstructed %s, transaction commits %s", got.String(), ctx.HashOutputs.String())
	}
	return nil
}

func frozenName(frozen bool) string {
	if frozen {
		return "frozen"
	}
	return "unfrozen"
}
