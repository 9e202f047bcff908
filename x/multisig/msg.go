package multisig

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

const (
	pathInitMsg             = "multisig/init"
	pathSetConfigMsg        = "multisig/set_config"
	pathVerifyCommitmentMsg = "multisig/verify_commitment"
	pathExecuteMsg          = "multisig/execute"
	pathCloseCommitmentMsg  = "multisig/close_commitment"
)

// InitMsg creates a new instance. The instance identity must sign it.
type InitMsg struct {
	Instance         onesig.Identity   `json:"instance"`
	ID               uint64            `json:"id"`
	Seed             onesig.Hash       `json:"seed"`
	Signers          []Address         `json:"signers"`
	Threshold        uint8             `json:"threshold"`
	Executors        []onesig.Identity `json:"executors"`
	ExecutorRequired bool              `json:"executor_required"`
}

var _ onesig.Msg = (*InitMsg)(nil)

func (InitMsg) Path() string {
	return pathInitMsg
}

func (m *InitMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *InitMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate checks what can be checked without the state. Roster rules are
// enforced when the roster is built.
func (m *InitMsg) Validate() error {
	var errs error
	if m.Instance.IsZero() {
		errs = errors.AppendField(errs, "Instance", errors.ErrEmpty)
	}
	if len(m.Signers) == 0 {
		errs = errors.AppendField(errs, "Signers", errors.ErrEmpty)
	}
	if len(m.Signers) > MaxSigners {
		errs = errors.AppendField(errs, "Signers", ErrSignersCapacity)
	}
	if len(m.Executors) > MaxExecutors {
		errs = errors.AppendField(errs, "Executors", ErrExecutorsCapacity)
	}
	if m.Threshold == 0 || m.Threshold > MaxThreshold {
		errs = errors.AppendField(errs, "Threshold", ErrInvalidThreshold)
	}
	return errs
}

// ConfigOp is a single change of an instance configuration. The set of
// operations is closed, see the Op types of this package.
type ConfigOp interface {
	// Kind is a short name of the operation, used in logs and metrics.
	Kind() string
	// Validate checks the operation arguments.
	Validate() error
	// apply changes the state or fails without changing it.
	apply(*State) error
}

// AddSignerOp adds a signer to the roster.
type AddSignerOp struct {
	Signer Address `json:"signer"`
}

func (AddSignerOp) Kind() string { return "add_signer" }

func (op AddSignerOp) Validate() error {
	if op.Signer == (Address{}) {
		return errors.Field("Signer", ErrInvalidSigner, "zero address")
	}
	return nil
}

func (op AddSignerOp) apply(s *State) error { return s.Roster.AddSigner(op.Signer) }

// RemoveSignerOp removes a signer from the roster.
type RemoveSignerOp struct {
	Signer Address `json:"signer"`
}

func (RemoveSignerOp) Kind() string { return "remove_signer" }

func (op RemoveSignerOp) Validate() error { return nil }

func (op RemoveSignerOp) apply(s *State) error { return s.Roster.RemoveSigner(op.Signer) }

// SetThresholdOp changes the roster threshold.
type SetThresholdOp struct {
	Threshold uint8 `json:"threshold"`
}

func (SetThresholdOp) Kind() string { return "set_threshold" }

func (op SetThresholdOp) Validate() error {
	if op.Threshold == 0 || op.Threshold > MaxThreshold {
		return errors.Field("Threshold", ErrInvalidThreshold, "must be within 1 and %d", MaxThreshold)
	}
	return nil
}

func (op SetThresholdOp) apply(s *State) error { return s.Roster.SetThreshold(op.Threshold) }

// SetSeedOp rotates the seed. Stored commitments of the old seed can no
// longer be executed.
type SetSeedOp struct {
	Seed onesig.Hash `json:"seed"`
}

func (SetSeedOp) Kind() string { return "set_seed" }

func (op SetSeedOp) Validate() error { return nil }

func (op SetSeedOp) apply(s *State) error {
	s.Seed = op.Seed
	return nil
}

// AddExecutorOp adds an identity to the executor allow list.
type AddExecutorOp struct {
	Executor onesig.Identity `json:"executor"`
}

func (AddExecutorOp) Kind() string { return "add_executor" }

func (op AddExecutorOp) Validate() error {
	if op.Executor.IsZero() {
		return errors.Field("Executor", ErrInvalidExecutor, "zero identity")
	}
	return nil
}

func (op AddExecutorOp) apply(s *State) error { return s.Executors.AddExecutor(op.Executor) }

// RemoveExecutorOp removes an identity from the executor allow list.
type RemoveExecutorOp struct {
	Executor onesig.Identity `json:"executor"`
}

func (RemoveExecutorOp) Kind() string { return "remove_executor" }

func (op RemoveExecutorOp) Validate() error { return nil }

func (op RemoveExecutorOp) apply(s *State) error { return s.Executors.RemoveExecutor(op.Executor) }

// SetExecutorRequiredOp turns the executor allow list on or off.
type SetExecutorRequiredOp struct {
	Required bool `json:"required"`
}

func (SetExecutorRequiredOp) Kind() string { return "set_executor_required" }

func (op SetExecutorRequiredOp) Validate() error { return nil }

func (op SetExecutorRequiredOp) apply(s *State) error { return s.Executors.SetRequired(op.Required) }

// SetConfigMsg applies one configuration change. Only the agent identity
// of the instance may sign it, which means the change must itself be an
// action of an approved commitment.
type SetConfigMsg struct {
	Instance onesig.Identity `json:"instance"`
	Op       ConfigOp        `json:"op"`
}

var _ onesig.Msg = (*SetConfigMsg)(nil)

func (SetConfigMsg) Path() string {
	return pathSetConfigMsg
}

func (m *SetConfigMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SetConfigMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *SetConfigMsg) Validate() error {
	var errs error
	if m.Instance.IsZero() {
		errs = errors.AppendField(errs, "Instance", errors.ErrEmpty)
	}
	if m.Op == nil {
		errs = errors.AppendField(errs, "Op", errors.ErrEmpty)
	} else if err := m.Op.Validate(); err != nil {
		errs = errors.AppendField(errs, "Op", err)
	}
	return errs
}

// InlineCommitment carries a commitment together with the signatures that
// approve it.
type InlineCommitment struct {
	Root       onesig.Hash     `json:"root"`
	Expiry     onesig.UnixTime `json:"expiry"`
	Signatures []byte          `json:"signatures"`
}

// Validate checks the commitment shape. Signatures are verified against
// the roster later.
func (c *InlineCommitment) Validate() error {
	var errs error
	if c.Expiry < 0 {
		errs = errors.AppendField(errs, "Expiry", errors.ErrInput)
	}
	if len(c.Signatures) == 0 {
		errs = errors.AppendField(errs, "Signatures", errors.ErrEmpty)
	}
	return errs
}

// VerifyCommitmentMsg verifies a commitment and stores it, so that actions
// can later be executed without repeating the signatures.
type VerifyCommitmentMsg struct {
	Payer      onesig.Identity `json:"payer"`
	Instance   onesig.Identity `json:"instance"`
	Commitment onesig.Hash     `json:"commitment"`
	Expiry     onesig.UnixTime `json:"expiry"`
	Signatures []byte          `json:"signatures"`
}

var _ onesig.Msg = (*VerifyCommitmentMsg)(nil)

func (VerifyCommitmentMsg) Path() string {
	return pathVerifyCommitmentMsg
}

func (m *VerifyCommitmentMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *VerifyCommitmentMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *VerifyCommitmentMsg) Validate() error {
	var errs error
	if m.Payer.IsZero() {
		errs = errors.AppendField(errs, "Payer", errors.ErrEmpty)
	}
	if m.Instance.IsZero() {
		errs = errors.AppendField(errs, "Instance", errors.ErrEmpty)
	}
	c := m.inline()
	return errors.Append(errs, c.Validate())
}

func (m *VerifyCommitmentMsg) inline() *InlineCommitment {
	return &InlineCommitment{Root: m.Commitment, Expiry: m.Expiry, Signatures: m.Signatures}
}

// ExecuteMsg executes one action of a commitment. The commitment is either
// given inline with its signatures, or references a stored record of the
// instance.
type ExecuteMsg struct {
	Executor onesig.Identity `json:"executor"`
	Instance onesig.Identity `json:"instance"`
	Action   Action          `json:"action"`
	Proof    []onesig.Hash   `json:"proof"`
	// Commitment is set for the direct path.
	Commitment *InlineCommitment `json:"commitment,omitempty"`
	// StoredCommitment is the root of a stored record, set for the two
	// step path.
	StoredCommitment onesig.Hash `json:"stored_commitment"`
}

var _ onesig.Msg = (*ExecuteMsg)(nil)

func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ExecuteMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *ExecuteMsg) Validate() error {
	var errs error
	if m.Executor.IsZero() {
		errs = errors.AppendField(errs, "Executor", errors.ErrEmpty)
	}
	if m.Instance.IsZero() {
		errs = errors.AppendField(errs, "Instance", errors.ErrEmpty)
	}
	switch stored := m.StoredCommitment != (onesig.Hash{}); {
	case m.Commitment != nil && stored:
		errs = errors.AppendField(errs, "StoredCommitment", errors.ErrInput)
	case m.Commitment != nil:
		if err := m.Commitment.Validate(); err != nil {
			errs = errors.AppendField(errs, "Commitment", err)
		}
	case !stored:
		errs = errors.AppendField(errs, "Commitment", errors.ErrEmpty)
	}
	return errs
}

// CloseCommitmentMsg removes an expired commitment record. Only its payer
// may sign it.
type CloseCommitmentMsg struct {
	Instance   onesig.Identity `json:"instance"`
	Commitment onesig.Hash     `json:"commitment"`
}

var _ onesig.Msg = (*CloseCommitmentMsg)(nil)

func (CloseCommitmentMsg) Path() string {
	return pathCloseCommitmentMsg
}

func (m *CloseCommitmentMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CloseCommitmentMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *CloseCommitmentMsg) Validate() error {
	if m.Instance.IsZero() {
		return errors.Field("Instance", errors.ErrEmpty, "")
	}
	return nil
}
