package crypto

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

const (
	// MaxSeeds is the maximum number of seeds of a derived identity.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32
)

var pdaMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress derives an identity owned by the program from given
// seeds. The result must not be a valid ed25519 public key, so that nobody
// can hold its private key. ErrInput is returned when the hash lands on the
// curve, use FindProgramAddress to search for a working bump seed.
func CreateProgramAddress(seeds [][]byte, program onesig.Identity) (onesig.Identity, error) {
	if len(seeds) > MaxSeeds {
		return onesig.Identity{}, errors.Wrapf(errors.ErrInput, "more than %d seeds", MaxSeeds)
	}
	h := sha256.New()
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return onesig.Identity{}, errors.Wrapf(errors.ErrInput, "seed longer than %d bytes", MaxSeedLength)
		}
		h.Write(s)
	}
	h.Write(program[:])
	h.Write(pdaMarker)

	var id onesig.Identity
	h.Sum(id[:0])
	if IsOnCurve(id) {
		return onesig.Identity{}, errors.Wrap(errors.ErrInput, "derived identity is on the curve")
	}
	return id, nil
}

// FindProgramAddress returns the first off-curve identity derived from the
// seeds followed by a bump byte, trying bumps from 255 down to 0.
func FindProgramAddress(seeds [][]byte, program onesig.Identity) (onesig.Identity, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return onesig.Identity{}, 0, errors.Wrapf(errors.ErrInput, "at most %d seeds before the bump", MaxSeeds-1)
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		id, err := CreateProgramAddress(withBump, program)
		if err == nil {
			return id, uint8(bump), nil
		}
		if !errors.ErrInput.Is(err) {
			return onesig.Identity{}, 0, err
		}
	}
	return onesig.Identity{}, 0, errors.Wrap(errors.ErrInput, "no viable bump seed")
}

// IsOnCurve returns true if given bytes decode to a point of the ed25519
// curve.
func IsOnCurve(id onesig.Identity) bool {
	_, err := new(edwards25519.Point).SetBytes(id[:])
	return err == nil
}
