package onesig

import (
	"bytes"
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/onesig/errors"
	"github.com/mr-tron/base58"
)

// Identity is a 32 byte native ledger identity. It is either an ed25519
// public key or a program derived identity that has no private key.
type Identity [32]byte

// ZeroIdentity is the default value. On the native ledger it is the system
// program identity.
var ZeroIdentity Identity

// NewIdentity copies given bytes into an identity. The length must be 32.
func NewIdentity(raw []byte) (Identity, error) {
	var id Identity
	if len(raw) != len(id) {
		return id, errors.Wrapf(errors.ErrInput, "identity must be %d bytes, got %d", len(id), len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// ParseIdentity decodes the base58 text form.
func ParseIdentity(s string) (Identity, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Identity{}, errors.Wrapf(errors.ErrInput, "base58: %s", err)
	}
	return NewIdentity(raw)
}

// MustParseIdentity is ParseIdentity that panics on error. Use only with
// constants.
func MustParseIdentity(s string) Identity {
	id, err := ParseIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (i Identity) String() string {
	return base58.Encode(i[:])
}

// IsZero returns true for the zero identity.
func (i Identity) IsZero() bool {
	return i == ZeroIdentity
}

// Equals returns true if both identities are the same.
func (i Identity) Equals(o Identity) bool {
	return i == o
}

func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Identity) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "identity must be a string")
	}
	id, err := ParseIdentity(s)
	if err != nil {
		return err
	}
	*i = id
	return nil
}

// Hash is a 32 byte digest, for example a Merkle root or a leaf.
type Hash [32]byte

// NewHash copies given bytes into a hash. The length must be 32.
func NewHash(raw []byte) (Hash, error) {
	var h Hash
	if len(raw) != len(h) {
		return h, errors.Wrapf(errors.ErrInput, "hash must be %d bytes, got %d", len(h), len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

// ParseHash decodes a hex string, with or without the 0x prefix.
func ParseHash(s string) (Hash, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, errors.Wrapf(errors.ErrInput, "hex: %s", err)
	}
	return NewHash(raw)
}

// MustParseHash is ParseHash that panics on error. Use only with constants.
func MustParseHash(s string) Hash {
	h, err := ParseHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// Compare returns an integer comparing two hashes as unsigned big-endian
// numbers.
func (h Hash) Compare(o Hash) int {
	return bytes.Compare(h[:], o[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "hash must be a string")
	}
	v, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = v
	return nil
}
