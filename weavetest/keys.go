package weavetest

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/onesig"
	"golang.org/x/crypto/ed25519"
)

// NewIdentity returns the public key of a freshly generated ed25519 key.
func NewIdentity() onesig.Identity {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	var id onesig.Identity
	copy(id[:], pub)
	return id
}

// SequenceIdentity returns a deterministic identity, useful where a test
// needs many distinct and readable values.
func SequenceIdentity(n byte) onesig.Identity {
	var id onesig.Identity
	id[0] = 0xab
	id[31] = n
	return id
}

// NewSecpKey generates a secp256k1 key usable as a multisig signer.
func NewSecpKey() *ecdsa.PrivateKey {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return key
}
