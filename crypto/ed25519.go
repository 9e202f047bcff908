package crypto

import (
	"github.com/iov-one/onesig"
	"golang.org/x/crypto/ed25519"
)

// NativeKey is an ed25519 key of a native ledger identity.
type NativeKey struct {
	priv ed25519.PrivateKey
}

// GenNativeKey returns a random new key.
func GenNativeKey() NativeKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return NativeKey{priv: priv}
}

// NativeKeyFromSeed deterministically derives a key from a 32 byte seed.
// Use it only with a strong source of external randomness or in tests.
func NativeKeyFromSeed(seed []byte) NativeKey {
	return NativeKey{priv: ed25519.NewKeyFromSeed(seed)}
}

// Identity returns the public key as a native identity.
func (k NativeKey) Identity() onesig.Identity {
	var id onesig.Identity
	copy(id[:], k.priv.Public().(ed25519.PublicKey))
	return id
}

// Sign returns a signature of the message.
func (k NativeKey) Sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// VerifyNative checks that sig is a valid signature of message created by
// the owner of given identity.
func VerifyNative(id onesig.Identity, message, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(id[:]), message, sig)
}
