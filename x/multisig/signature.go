package multisig

import (
	"time"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/crypto"
	"github.com/iov-one/onesig/errors"
)

// VerifySignatures checks a blob of concatenated 65 byte signatures over
// the digest against the roster.
//
// Every signature in the blob must recover to a distinct roster member and
// there must be at least threshold of them. Signatures past the threshold
// are verified as well, a single bad signature fails the whole blob.
func VerifySignatures(roster Roster, digest onesig.Hash, signatures []byte) error {
	defer observeVerification(time.Now())

	if roster.Threshold == 0 {
		return errors.Wrap(ErrInvalidThreshold, "zero threshold")
	}
	if len(signatures)%crypto.SignatureLength != 0 {
		return errors.Wrapf(ErrSignatureDataSize,
			"%d bytes is not a multiple of %d", len(signatures), crypto.SignatureLength)
	}
	if len(signatures) < int(roster.Threshold)*crypto.SignatureLength {
		return errors.Wrapf(ErrInsufficientSignatures,
			"%d signatures, threshold %d", len(signatures)/crypto.SignatureLength, roster.Threshold)
	}

	seen := make(map[Address]struct{}, len(signatures)/crypto.SignatureLength)
	for i := 0; i < len(signatures); i += crypto.SignatureLength {
		n := i / crypto.SignatureLength
		signer, err := crypto.RecoverAddress(digest, signatures[i:i+crypto.SignatureLength])
		if err != nil {
			return errors.Wrapf(ErrSignatureRecovery, "signature %d: %s", n, err)
		}
		if !roster.Has(signer) {
			return errors.Wrapf(ErrSignerNotFound, "signature %d: %s", n, signer.Hex())
		}
		if _, ok := seen[signer]; ok {
			return errors.Wrapf(ErrDuplicateSigner, "signature %d: %s", n, signer.Hex())
		}
		seen[signer] = struct{}{}
	}
	return nil
}

// Signers returns the addresses recovered from a signature blob, in blob
// order, without checking them against any roster.
func Signers(digest onesig.Hash, signatures []byte) ([]Address, error) {
	if len(signatures)%crypto.SignatureLength != 0 {
		return nil, errors.Wrapf(ErrSignatureDataSize,
			"%d bytes is not a multiple of %d", len(signatures), crypto.SignatureLength)
	}
	res := make([]Address, 0, len(signatures)/crypto.SignatureLength)
	for i := 0; i < len(signatures); i += crypto.SignatureLength {
		signer, err := crypto.RecoverAddress(digest, signatures[i:i+crypto.SignatureLength])
		if err != nil {
			return nil, errors.Wrapf(ErrSignatureRecovery, "signature %d: %s", i/crypto.SignatureLength, err)
		}
		res = append(res, signer)
	}
	return res, nil
}
