package multisig

import (
	"context"

	"github.com/iov-one/onesig"
)

// AccountInfo is what the engine inspects of the agent account around an
// execution.
type AccountInfo struct {
	Balance uint64
	// Owner is the program that owns the account. The agent must stay
	// owned by the system program, the zero identity.
	Owner onesig.Identity
	// DataLen is the size of the account data. The agent must stay
	// unallocated.
	DataLen int
}

// Host is the ledger the actions are executed on.
type Host interface {
	// Account returns the current state of an account. An account that
	// does not exist is returned as the zero value.
	Account(db onesig.ReadOnlyKVStore, id onesig.Identity) (AccountInfo, error)

	// Invoke runs the action. The agent identity is the only signer the
	// action may rely on. Events emitted by the called program are
	// returned.
	Invoke(ctx context.Context, db onesig.KVStore, action *Action, agent onesig.Identity) ([]onesig.Event, error)
}
