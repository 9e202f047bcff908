package host

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/x/multisig"
	"github.com/near/borsh-go"
)

// SystemProgram owns all plain accounts.
var SystemProgram = onesig.ZeroIdentity

// System program instruction indexes.
const (
	sysAssign   uint32 = 1
	sysTransfer uint32 = 2
	sysAllocate uint32 = 8
)

type assignData struct {
	Index uint32
	Owner onesig.Identity
}

type transferData struct {
	Index  uint32
	Amount uint64
}

type allocateData struct {
	Index uint32
	Space uint64
}

// Transfer returns an action moving amount from one account to another.
// The sender must sign.
func Transfer(from, to onesig.Identity, amount uint64) multisig.Action {
	return multisig.Action{
		Program: SystemProgram,
		Accounts: []multisig.AccountMeta{
			{Pubkey: from, IsSigner: true, IsWritable: true},
			{Pubkey: to, IsWritable: true},
		},
		Data:  mustSerialize(transferData{Index: sysTransfer, Amount: amount}),
		Value: amount,
	}
}

// Assign returns an action changing the owner program of an account.
func Assign(account, owner onesig.Identity) multisig.Action {
	return multisig.Action{
		Program:  SystemProgram,
		Accounts: []multisig.AccountMeta{{Pubkey: account, IsSigner: true, IsWritable: true}},
		Data:     mustSerialize(assignData{Index: sysAssign, Owner: owner}),
	}
}

// Allocate returns an action allocating account data.
func Allocate(account onesig.Identity, space uint64) multisig.Action {
	return multisig.Action{
		Program:  SystemProgram,
		Accounts: []multisig.AccountMeta{{Pubkey: account, IsSigner: true, IsWritable: true}},
		Data:     mustSerialize(allocateData{Index: sysAllocate, Space: space}),
	}
}

func mustSerialize(v interface{}) []byte {
	raw, err := borsh.Serialize(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// system executes a system program instruction.
func (h *Host) system(db onesig.KVStore, action *multisig.Action) error {
	if len(action.Data) < 4 {
		return errors.Wrap(errors.ErrInput, "missing system instruction")
	}
	var index uint32
	if err := borsh.Deserialize(&index, action.Data[:4]); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	switch index {
	case sysTransfer:
		var data transferData
		if err := decodeSystem(action, 2, &data); err != nil {
			return err
		}
		return h.transfer(db, action.Accounts[0].Pubkey, action.Accounts[1].Pubkey, data.Amount)
	case sysAssign:
		var data assignData
		if err := decodeSystem(action, 1, &data); err != nil {
			return err
		}
		return h.update(db, action.Accounts[0].Pubkey, func(a *Account) error {
			a.Owner = data.Owner
			return nil
		})
	case sysAllocate:
		var data allocateData
		if err := decodeSystem(action, 1, &data); err != nil {
			return err
		}
		if data.Space > MaxAccountData {
			return errors.Wrapf(errors.ErrInput, "at most %d bytes", MaxAccountData)
		}
		return h.update(db, action.Accounts[0].Pubkey, func(a *Account) error {
			if len(a.Data) != 0 || !a.Owner.IsZero() {
				return errors.Wrap(errors.ErrState, "account already in use")
			}
			a.Data = make([]byte, data.Space)
			return nil
		})
	default:
		return errors.Wrapf(errors.ErrInput, "unknown system instruction %d", index)
	}
}

// decodeSystem decodes the instruction data and checks that the first
// accounts are present. The first account must always sign.
func decodeSystem(action *multisig.Action, accounts int, dest interface{}) error {
	if len(action.Accounts) < accounts {
		return errors.Wrapf(errors.ErrInput, "want %d accounts, got %d", accounts, len(action.Accounts))
	}
	if !action.Accounts[0].IsSigner {
		return errors.Wrapf(errors.ErrUnauthorized, "%s must sign", action.Accounts[0].Pubkey)
	}
	if err := borsh.Deserialize(dest, action.Data); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (h *Host) transfer(db onesig.KVStore, from, to onesig.Identity, amount uint64) error {
	if from == to {
		return nil
	}
	src, err := h.accounts.GetAccount(db, from)
	if err != nil {
		return err
	}
	if src.Balance < amount {
		return errors.Wrapf(errors.ErrInput, "balance %d, cannot transfer %d", src.Balance, amount)
	}
	dst, err := h.accounts.GetAccount(db, to)
	if err != nil {
		return err
	}
	if dst.Balance+amount < dst.Balance {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	src.Balance -= amount
	dst.Balance += amount
	if err := h.accounts.SaveAccount(db, from, src); err != nil {
		return err
	}
	return h.accounts.SaveAccount(db, to, dst)
}

func (h *Host) update(db onesig.KVStore, id onesig.Identity, fn func(*Account) error) error {
	a, err := h.accounts.GetAccount(db, id)
	if err != nil {
		return err
	}
	if err := fn(a); err != nil {
		return err
	}
	return h.accounts.SaveAccount(db, id, a)
}
