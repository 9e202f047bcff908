package sigs

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/orm"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// BucketName is where we store the sequences.
const BucketName = "sigs"

// maxSequenceValue is limited by the clients, which cannot represent
// integers above 2^53 - 1.
const maxSequenceValue = (1 << 53) - 1

// UserData keeps the replay protection state of a single identity.
type UserData struct {
	Sequence int64 `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, u)
}

func (u *UserData) Validate() error {
	if u.Sequence < 0 || u.Sequence > maxSequenceValue {
		return errors.Field("Sequence", ErrInvalidSequence, "out of range")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation. If
// current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket stores UserData under the identity.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension.
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// GetOrCreate loads the state of an identity. Identities that never
// signed start at sequence zero.
func (b Bucket) GetOrCreate(db onesig.ReadOnlyKVStore, id onesig.Identity) (*UserData, error) {
	var u UserData
	switch err := b.One(db, id[:], &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{}, nil
	default:
		return nil, err
	}
}

// Save writes the state of an identity.
func (b Bucket) Save(db onesig.KVStore, id onesig.Identity, u *UserData) error {
	return b.Put(db, id[:], u)
}
