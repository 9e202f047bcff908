package host

import (
	"context"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/x/multisig"
)

// Program is an on-ledger program that actions can call.
type Program struct {
	// Handler processes the decoded instruction. The context carries the
	// signer of the call, see Authenticate.
	Handler onesig.Handler
	// Decode turns raw instruction data into a message for Handler.
	Decode func(data []byte) (onesig.Msg, error)
}

// Host is a minimal ledger that multisig actions are executed on. It owns
// native accounts and dispatches instructions to registered programs.
type Host struct {
	accounts AccountBucket
	programs map[onesig.Identity]Program
}

var _ multisig.Host = (*Host)(nil)

// NewHost returns a host that only knows the system program.
func NewHost() *Host {
	return &Host{
		accounts: NewAccountBucket(),
		programs: make(map[onesig.Identity]Program),
	}
}

// Register makes a program callable under given identity. It panics if the
// identity is taken.
func (h *Host) Register(id onesig.Identity, p Program) {
	if id == SystemProgram {
		panic("system program identity is reserved")
	}
	if _, ok := h.programs[id]; ok {
		panic("program already registered: " + id.String())
	}
	h.programs[id] = p
}

// Account returns the state of an account as seen by the multisig engine.
func (h *Host) Account(db onesig.ReadOnlyKVStore, id onesig.Identity) (multisig.AccountInfo, error) {
	a, err := h.accounts.GetAccount(db, id)
	if err != nil {
		return multisig.AccountInfo{}, err
	}
	return multisig.AccountInfo{
		Balance: a.Balance,
		Owner:   a.Owner,
		DataLen: len(a.Data),
	}, nil
}

// GetAccount returns the full account.
func (h *Host) GetAccount(db onesig.ReadOnlyKVStore, id onesig.Identity) (*Account, error) {
	return h.accounts.GetAccount(db, id)
}

// Credit adds amount to the balance of an account.
func (h *Host) Credit(db onesig.KVStore, id onesig.Identity, amount uint64) error {
	return h.update(db, id, func(a *Account) error {
		if a.Balance+amount < a.Balance {
			return errors.Wrap(errors.ErrOverflow, "balance")
		}
		a.Balance += amount
		return nil
	})
}

// Invoke runs the action with the agent as the only signer. Any account
// flagged as a signer must be the agent.
func (h *Host) Invoke(ctx context.Context, db onesig.KVStore, action *multisig.Action, agent onesig.Identity) ([]onesig.Event, error) {
	for _, m := range action.Accounts {
		if m.IsSigner && m.Pubkey != agent {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "%s cannot sign", m.Pubkey)
		}
	}

	if action.Program == SystemProgram {
		if err := h.system(db, action); err != nil {
			return nil, errors.Wrap(err, "system program")
		}
		return nil, nil
	}

	p, ok := h.programs[action.Program]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "program %s", action.Program)
	}
	msg, err := p.Decode(action.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode instruction")
	}
	ctx = withSigners(ctx, []onesig.Identity{agent})
	ctx = onesig.WithLogInfo(ctx, "program", action.Program.String())
	res, err := p.Handler.Deliver(ctx, db, instructionTx{msg: msg})
	if err != nil {
		return nil, err
	}
	return res.Events, nil
}

// instructionTx carries a decoded instruction to a program handler.
type instructionTx struct {
	msg onesig.Msg
}

var _ onesig.Tx = instructionTx{}

func (tx instructionTx) GetMsg() (onesig.Msg, error) {
	return tx.msg, nil
}
