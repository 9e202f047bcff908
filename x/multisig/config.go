package multisig

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/gconf"
)

const packageName = "multisig"

// DefaultMaxProofLength is enough for a tree of 2^32 leaves.
const DefaultMaxProofLength = 32

// Configuration of the multisig extension, loaded from genesis.
type Configuration struct {
	// ProgramID is the identity of this program. Agent and commitment
	// record identities are derived from it and actions calling back
	// into it are inspected for re-entrancy.
	ProgramID onesig.Identity `json:"program_id"`
	// MaxProofLength bounds the number of hashes in a membership proof.
	MaxProofLength uint32 `json:"max_proof_length"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Configuration) Validate() error {
	var errs error
	if c.ProgramID.IsZero() {
		errs = errors.AppendField(errs, "ProgramID", errors.ErrEmpty)
	}
	if c.MaxProofLength == 0 {
		errs = errors.AppendField(errs, "MaxProofLength", errors.ErrEmpty)
	}
	return errs
}

// loadConf returns the stored configuration.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
