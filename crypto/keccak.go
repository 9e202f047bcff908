package crypto

import (
	"github.com/iov-one/onesig"
	"golang.org/x/crypto/sha3"
)

// Keccak256 returns the legacy Keccak-256 hash of the concatenated input.
// This is the hash used by EVM ledgers, not the standardized SHA3-256.
func Keccak256(data ...[]byte) onesig.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out onesig.Hash
	h.Sum(out[:0])
	return out
}
