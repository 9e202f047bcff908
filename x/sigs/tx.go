package sigs

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// SignedTx represents a transaction that contains signatures, which can be
// verified by the Decorator.
type SignedTx interface {
	onesig.Tx

	// GetSignBytes returns the canonical byte representation of the
	// transaction without its signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures of identities that signed the
	// transaction.
	GetSignatures() []*StdSignature
}

// StdSignature is an ed25519 signature of a native identity.
type StdSignature struct {
	Pubkey    onesig.Identity `json:"pubkey"`
	Sequence  int64           `json:"sequence"`
	Signature []byte          `json:"signature"`
}

// Validate ensures the StdSignature meets basic standards.
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey.IsZero() {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// StdTx is a single message transaction signed by any number of native
// identities.
type StdTx struct {
	Msg        onesig.Msg
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

// NewStdTx returns an unsigned transaction. Use SignTx to create its
// signatures.
func NewStdTx(msg onesig.Msg) *StdTx {
	return &StdTx{Msg: msg}
}

func (tx *StdTx) GetMsg() (onesig.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// GetSignBytes binds the message to its route, so that the same
// serialization cannot be replayed as a different message type.
func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	bz, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	path := msg.Path()
	out := make([]byte, 0, len(path)+1+len(bz))
	out = append(out, path...)
	out = append(out, 0)
	return append(out, bz...), nil
}
