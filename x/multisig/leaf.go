package multisig

import (
	"encoding/binary"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/crypto"
	"github.com/iov-one/onesig/errors"
)

// Leaf is one member of a commitment tree: an action bound to the instance
// and to the replay counter value it may be executed at.
type Leaf struct {
	Instance onesig.Identity `json:"instance"`
	ID       uint64          `json:"id"`
	Nonce    uint64          `json:"nonce"`
	Action   Action          `json:"action"`
}

// leafHeaderLen is version(1) | id(8) | instance(32) | nonce(8).
const leafHeaderLen = 1 + 8 + 32 + 8

// Encode returns the leaf bytes:
//
//	version(1) | u64be(id) | instance(32) | u64be(nonce) | action
func (l *Leaf) Encode() ([]byte, error) {
	action, err := l.Action.Encode()
	if err != nil {
		return nil, errors.Wrap(err, "action")
	}
	raw := make([]byte, leafHeaderLen, leafHeaderLen+len(action))
	raw[0] = LeafVersion
	binary.BigEndian.PutUint64(raw[1:9], l.ID)
	copy(raw[9:41], l.Instance[:])
	binary.BigEndian.PutUint64(raw[41:49], l.Nonce)
	return append(raw, action...), nil
}

// Hash returns keccak(keccak(leaf bytes)), the value stored in the tree.
func (l *Leaf) Hash() (onesig.Hash, error) {
	raw, err := l.Encode()
	if err != nil {
		return onesig.Hash{}, err
	}
	return HashLeaf(raw), nil
}

// HashLeaf double hashes encoded leaf bytes.
func HashLeaf(raw []byte) onesig.Hash {
	h := crypto.Keccak256(raw)
	return crypto.Keccak256(h[:])
}

// DecodeLeaf parses leaf bytes. Only the current leaf version is
// understood, anything else fails with ErrUnknownLeafVersion.
func DecodeLeaf(raw []byte) (*Leaf, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(ErrMalformedAction, "empty leaf")
	}
	if raw[0] != LeafVersion {
		return nil, errors.Wrapf(ErrUnknownLeafVersion, "version %d", raw[0])
	}
	if len(raw) < leafHeaderLen {
		return nil, errors.Wrapf(ErrMalformedAction, "leaf of %d bytes", len(raw))
	}
	action, err := DecodeAction(raw[leafHeaderLen:])
	if err != nil {
		return nil, errors.Wrap(err, "action")
	}
	l := Leaf{
		ID:     binary.BigEndian.Uint64(raw[1:9]),
		Nonce:  binary.BigEndian.Uint64(raw[41:49]),
		Action: *action,
	}
	copy(l.Instance[:], raw[9:41])
	return &l, nil
}
