package multisig

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/crypto"
	"github.com/iov-one/onesig/errors"
)

// BuildDigest returns the EIP-712 digest that signers sign to approve a
// commitment:
//
//	keccak(0x19 0x01 || domainSeparator ||
//	    keccak(typeHash || seed || commitment || uint256(expiry)))
//
// The result is identical to the digest computed by the EVM contract for
// the same input.
func BuildDigest(seed, commitment onesig.Hash, expiry onesig.UnixTime) (onesig.Hash, error) {
	if expiry < 0 {
		return onesig.Hash{}, errors.Wrapf(errors.ErrInput, "negative expiry %d", expiry)
	}
	word := uint256.NewInt(uint64(expiry)).Bytes32()
	structHash := crypto.Keccak256(signMerkleRootTypeHash[:], seed[:], commitment[:], word[:])
	return crypto.Keccak256(eip191Prefix[:], domainSeparator[:], structHash[:]), nil
}
