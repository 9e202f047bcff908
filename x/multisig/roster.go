package multisig

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/crypto"
	"github.com/iov-one/onesig/errors"
)

// Address is the 20 byte address of a signer, derived from its secp256k1
// public key the same way the EVM does.
type Address = crypto.Address

// Roster is the set of signers allowed to approve a commitment and the
// number of them that must do so.
//
// All mutators validate first and only then apply, a failed call leaves
// the roster unchanged.
type Roster struct {
	Signers   []Address `json:"signers"`
	Threshold uint8     `json:"threshold"`
}

// Has returns true if given address is a member of the roster.
func (r *Roster) Has(a Address) bool {
	return r.index(a) >= 0
}

func (r *Roster) index(a Address) int {
	for i, s := range r.Signers {
		if s == a {
			return i
		}
	}
	return -1
}

// AddSigner appends a new signer. The threshold is not modified.
func (r *Roster) AddSigner(a Address) error {
	if a == (Address{}) {
		return errors.Wrap(ErrInvalidSigner, "zero address")
	}
	if len(r.Signers) >= MaxSigners {
		return errors.Wrapf(ErrSignersCapacity, "at most %d signers", MaxSigners)
	}
	if r.Has(a) {
		return errors.Wrap(ErrDuplicateSigner, a.Hex())
	}
	r.Signers = append(r.Signers, a)
	return nil
}

// RemoveSigner removes a signer, as long as the remaining signers can
// still reach the threshold.
func (r *Roster) RemoveSigner(a Address) error {
	i := r.index(a)
	if i < 0 {
		return errors.Wrap(ErrSignerNotFound, a.Hex())
	}
	if len(r.Signers)-1 < int(r.Threshold) {
		return errors.Wrapf(ErrThresholdExceedsSigners,
			"threshold %d, %d signers would remain", r.Threshold, len(r.Signers)-1)
	}
	signers := make([]Address, 0, len(r.Signers)-1)
	signers = append(signers, r.Signers[:i]...)
	r.Signers = append(signers, r.Signers[i+1:]...)
	return nil
}

// SetThreshold changes the number of signatures required.
func (r *Roster) SetThreshold(t uint8) error {
	if t == 0 || t > MaxThreshold {
		return errors.Wrapf(ErrInvalidThreshold, "must be within 1 and %d, got %d", MaxThreshold, t)
	}
	if int(t) > len(r.Signers) {
		return errors.Wrapf(ErrThresholdExceedsSigners, "threshold %d, %d signers", t, len(r.Signers))
	}
	r.Threshold = t
	return nil
}

// Validate checks the roster invariants.
func (r *Roster) Validate() error {
	var errs error
	if len(r.Signers) > MaxSigners {
		errs = errors.AppendField(errs, "Signers", ErrSignersCapacity)
	}
	seen := make(map[Address]struct{}, len(r.Signers))
	for _, s := range r.Signers {
		if s == (Address{}) {
			errs = errors.AppendField(errs, "Signers", ErrInvalidSigner)
		}
		if _, ok := seen[s]; ok {
			errs = errors.AppendField(errs, "Signers", ErrDuplicateSigner)
		}
		seen[s] = struct{}{}
	}
	switch {
	case r.Threshold == 0 || r.Threshold > MaxThreshold:
		errs = errors.AppendField(errs, "Threshold", ErrInvalidThreshold)
	case int(r.Threshold) > len(r.Signers):
		errs = errors.AppendField(errs, "Threshold", ErrThresholdExceedsSigners)
	}
	return errs
}

// Executors is the allow list of identities that may submit executions
// and the flag that turns the allow list on.
type Executors struct {
	Executors []onesig.Identity `json:"executors"`
	Required  bool              `json:"executor_required"`
}

// Has returns true if given identity is an allowed executor.
func (e *Executors) Has(id onesig.Identity) bool {
	return e.index(id) >= 0
}

func (e *Executors) index(id onesig.Identity) int {
	for i, x := range e.Executors {
		if x == id {
			return i
		}
	}
	return -1
}

// Allowed returns true if given identity may submit an execution. Anyone
// may when the allow list is not required.
func (e *Executors) Allowed(id onesig.Identity) bool {
	return !e.Required || e.Has(id)
}

// AddExecutor appends a new executor.
func (e *Executors) AddExecutor(id onesig.Identity) error {
	if id.IsZero() {
		return errors.Wrap(ErrInvalidExecutor, "zero identity")
	}
	if len(e.Executors) >= MaxExecutors {
		return errors.Wrapf(ErrExecutorsCapacity, "at most %d executors", MaxExecutors)
	}
	if e.Has(id) {
		return errors.Wrap(ErrDuplicateExecutor, id.String())
	}
	e.Executors = append(e.Executors, id)
	return nil
}

// RemoveExecutor removes an executor. The last executor cannot be removed
// while executors are required.
func (e *Executors) RemoveExecutor(id onesig.Identity) error {
	i := e.index(id)
	if i < 0 {
		return errors.Wrap(ErrExecutorNotFound, id.String())
	}
	if e.Required && len(e.Executors) == 1 {
		return errors.Wrap(ErrEmptyExecutorSet, "executors are required")
	}
	executors := make([]onesig.Identity, 0, len(e.Executors)-1)
	executors = append(executors, e.Executors[:i]...)
	e.Executors = append(executors, e.Executors[i+1:]...)
	return nil
}

// SetRequired turns the allow list on or off. It cannot be turned on over
// an empty set.
func (e *Executors) SetRequired(required bool) error {
	if required && len(e.Executors) == 0 {
		return errors.Wrap(ErrEmptyExecutorSet, "no executors")
	}
	e.Required = required
	return nil
}

// Validate checks the executor set invariants.
func (e *Executors) Validate() error {
	var errs error
	if len(e.Executors) > MaxExecutors {
		errs = errors.AppendField(errs, "Executors", ErrExecutorsCapacity)
	}
	seen := make(map[onesig.Identity]struct{}, len(e.Executors))
	for _, x := range e.Executors {
		if x.IsZero() {
			errs = errors.AppendField(errs, "Executors", ErrInvalidExecutor)
		}
		if _, ok := seen[x]; ok {
			errs = errors.AppendField(errs, "Executors", ErrDuplicateExecutor)
		}
		seen[x] = struct{}{}
	}
	if e.Required && len(e.Executors) == 0 {
		errs = errors.AppendField(errs, "Required", ErrEmptyExecutorSet)
	}
	return errs
}
