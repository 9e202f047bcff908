package multisig

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/orm"
)

// State is the persisted record of one authorization instance. It is
// stored under the instance identity.
type State struct {
	// ID is chosen at creation and never changes. It is part of every
	// leaf, so that a tree built for one instance cannot be replayed
	// against another.
	ID uint64
	// Seed separates commitments signed for different rosters of the same
	// signers. Rotating it invalidates all stored commitments.
	Seed onesig.Hash
	// Bump is the derivation parameter of the agent identity.
	Bump uint8
	// Nonce is the replay counter, the number of executed actions.
	Nonce     uint64
	Roster    Roster
	Executors Executors
}

var _ orm.Model = (*State)(nil)

func (s *State) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *State) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

func (s *State) Validate() error {
	return errors.Append(s.Roster.Validate(), s.Executors.Validate())
}

// Copy returns a deep copy, so that mutators can be tried without touching
// the original.
func (s *State) Copy() *State {
	c := *s
	c.Roster.Signers = append([]Address(nil), s.Roster.Signers...)
	c.Executors.Executors = append([]onesig.Identity(nil), s.Executors.Executors...)
	return &c
}

// CommitmentRecord is a commitment whose signatures were verified ahead of
// execution. It is stored under instance | root.
type CommitmentRecord struct {
	Root onesig.Hash
	// Seed of the instance when the record was created. The record is
	// usable only while the instance keeps this seed.
	Seed   onesig.Hash
	Expiry onesig.UnixTime
	// Payer is the only identity that may close the record.
	Payer onesig.Identity
	// Bump is the derivation parameter of the record identity.
	Bump uint8
}

var _ orm.Model = (*CommitmentRecord)(nil)

func (c *CommitmentRecord) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *CommitmentRecord) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *CommitmentRecord) Validate() error {
	var errs error
	if c.Payer.IsZero() {
		errs = errors.AppendField(errs, "Payer", errors.ErrEmpty)
	}
	if c.Expiry < 0 {
		errs = errors.AppendField(errs, "Expiry", errors.ErrInput)
	}
	return errs
}

// StateBucket keeps instance records.
type StateBucket struct {
	orm.ModelBucket
}

// NewStateBucket returns a bucket for instance records.
func NewStateBucket() StateBucket {
	return StateBucket{ModelBucket: orm.NewModelBucket("multisig")}
}

// GetState loads the state of an instance.
func (b StateBucket) GetState(db onesig.ReadOnlyKVStore, instance onesig.Identity) (*State, error) {
	var s State
	if err := b.One(db, instance[:], &s); err != nil {
		return nil, errors.Wrapf(err, "instance %s", instance)
	}
	return &s, nil
}

// SaveState validates and writes the state of an instance.
func (b StateBucket) SaveState(db onesig.KVStore, instance onesig.Identity, s *State) error {
	return b.Put(db, instance[:], s)
}

// CommitmentBucket keeps pre-verified commitments.
type CommitmentBucket struct {
	orm.ModelBucket
}

// NewCommitmentBucket returns a bucket for commitment records.
func NewCommitmentBucket() CommitmentBucket {
	return CommitmentBucket{ModelBucket: orm.NewModelBucket("commitment")}
}

func commitmentKey(instance onesig.Identity, root onesig.Hash) []byte {
	return append(append(make([]byte, 0, 64), instance[:]...), root[:]...)
}

// GetCommitment loads a commitment record of the instance.
func (b CommitmentBucket) GetCommitment(db onesig.ReadOnlyKVStore, instance onesig.Identity, root onesig.Hash) (*CommitmentRecord, error) {
	var c CommitmentRecord
	if err := b.One(db, commitmentKey(instance, root), &c); err != nil {
		return nil, errors.Wrapf(err, "commitment %s", root)
	}
	return &c, nil
}

// Create writes a new record. ErrDuplicate is returned if the instance
// already has a record of the same root.
func (b CommitmentBucket) Create(db onesig.KVStore, instance onesig.Identity, c *CommitmentRecord) error {
	key := commitmentKey(instance, c.Root)
	switch ok, err := b.Has(db, key); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "commitment %s", c.Root)
	}
	return b.Put(db, key, c)
}

// Remove deletes a record.
func (b CommitmentBucket) Remove(db onesig.KVStore, instance onesig.Identity, root onesig.Hash) error {
	if err := b.Delete(db, commitmentKey(instance, root)); err != nil {
		return errors.Wrapf(err, "commitment %s", root)
	}
	return nil
}

// ByInstance returns all records of an instance.
func (b CommitmentBucket) ByInstance(db onesig.ReadOnlyKVStore, instance onesig.Identity) ([]*CommitmentRecord, error) {
	it, err := b.Scan(db, instance[:])
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*CommitmentRecord
	for {
		var c CommitmentRecord
		switch _, err := it.LoadNext(&c); {
		case err == nil:
			res = append(res, &c)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}
