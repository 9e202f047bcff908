package multisig

import (
	"github.com/iov-one/onesig"
)

// InitializedEvent is emitted when an instance is created. It carries the
// full initial configuration.
type InitializedEvent struct {
	Instance         onesig.Identity   `json:"instance"`
	ID               uint64            `json:"id"`
	Seed             onesig.Hash       `json:"seed"`
	Threshold        uint8             `json:"threshold"`
	Signers          []Address         `json:"signers"`
	Executors        []onesig.Identity `json:"executors"`
	ExecutorRequired bool              `json:"executor_required"`
}

func (InitializedEvent) EventKind() string { return "multisig_initialized" }

// ConfigSetEvent is emitted for every applied configuration change.
type ConfigSetEvent struct {
	Instance onesig.Identity `json:"instance"`
	Op       ConfigOp        `json:"op"`
}

func (ConfigSetEvent) EventKind() string { return "multisig_config_set" }

// ExecutedEvent is emitted when an action was executed.
type ExecutedEvent struct {
	Instance   onesig.Identity `json:"instance"`
	Commitment onesig.Hash     `json:"commitment"`
	// Nonce is the replay counter value the executed leaf was bound to.
	Nonce uint64 `json:"nonce"`
	// ReplayCounter is the replay counter after the execution.
	ReplayCounter uint64 `json:"replay_counter"`
}

func (ExecutedEvent) EventKind() string { return "multisig_executed" }

// CommitmentVerifiedEvent is emitted when a commitment record is stored.
type CommitmentVerifiedEvent struct {
	Instance   onesig.Identity `json:"instance"`
	Commitment onesig.Hash     `json:"commitment"`
	Expiry     onesig.UnixTime `json:"expiry"`
}

func (CommitmentVerifiedEvent) EventKind() string { return "multisig_commitment_verified" }

var (
	_ onesig.Event = InitializedEvent{}
	_ onesig.Event = ConfigSetEvent{}
	_ onesig.Event = ExecutedEvent{}
	_ onesig.Event = CommitmentVerifiedEvent{}
)
