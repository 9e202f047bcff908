package crypto

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// SignatureLength is the size of a recoverable signature, r || s || v.
const SignatureLength = 65

// Address is a 20 byte EVM style signer address.
type Address = common.Address

// RecoverAddress returns the address of the key that produced given 65
// byte signature over the digest. Both the raw (0, 1) and the Ethereum
// (27, 28) recovery id conventions are accepted. Recovery ids above 3
// are rejected.
func RecoverAddress(digest onesig.Hash, sig []byte) (Address, error) {
	if len(sig) != SignatureLength {
		return Address{}, errors.Wrapf(errors.ErrInput, "signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	if v := normalized[64]; v == 27 || v == 28 {
		normalized[64] = v - 27
	}
	// Recovery ids above 3 select compressed keys in some secp256k1
	// backends and are never valid here.
	if normalized[64] > 3 {
		return Address{}, errors.Wrapf(errors.ErrInput, "invalid recovery id %d", sig[64])
	}
	pub, err := ethcrypto.Ecrecover(digest[:], normalized)
	if err != nil {
		return Address{}, errors.Wrap(errors.ErrInput, err.Error())
	}
	// Uncompressed key is 0x04 || x || y.
	return PubkeyAddress(pub[1:]), nil
}

// PubkeyAddress derives the address of a 64 byte uncompressed public key
// given without the 0x04 prefix.
func PubkeyAddress(pub64 []byte) Address {
	h := Keccak256(pub64)
	return common.BytesToAddress(h[12:])
}

// KeyAddress returns the address of a private key.
func KeyAddress(key *ecdsa.PrivateKey) Address {
	return ethcrypto.PubkeyToAddress(key.PublicKey)
}

// SignDigest signs the digest and returns the signature with an Ethereum
// style recovery id (27 or 28), as produced by EVM wallets.
func SignDigest(key *ecdsa.PrivateKey, digest onesig.Hash) ([]byte, error) {
	sig, err := ethcrypto.Sign(digest[:], key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	sig[64] += 27
	return sig, nil
}

// LoadSecpKey parses a hex encoded secp256k1 private key.
func LoadSecpKey(hexkey string) (*ecdsa.PrivateKey, error) {
	if len(hexkey) >= 2 && hexkey[:2] == "0x" {
		hexkey = hexkey[2:]
	}
	key, err := ethcrypto.HexToECDSA(hexkey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return key, nil
}
