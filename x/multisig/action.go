package multisig

import (
	"bytes"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/near/borsh-go"
)

// AccountMeta references an account used by an action.
type AccountMeta struct {
	Pubkey     onesig.Identity `json:"pubkey"`
	IsSigner   bool            `json:"is_signer"`
	IsWritable bool            `json:"is_writable"`
}

// Action is a single call that a commitment can authorize. The agent
// identity of the instance is the only possible signer of the call.
type Action struct {
	Program  onesig.Identity `json:"program"`
	Accounts []AccountMeta   `json:"accounts"`
	Data     []byte          `json:"data"`
	// Value is the most native balance the call may take from the agent.
	Value uint64 `json:"value"`
}

// EncodedLen returns the size of the canonical encoding.
func (a *Action) EncodedLen() int {
	// program 32, accounts length 4, data length 4, value 8
	return 48 + 34*len(a.Accounts) + len(a.Data)
}

// Encode returns the canonical borsh encoding of the action:
//
//	program(32) | u32le(n) | n x (pubkey(32) | is_signer(1) | is_writable(1))
//	            | u32le(len(data)) | data | u64le(value)
func (a *Action) Encode() ([]byte, error) {
	raw, err := borsh.Serialize(*a)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedAction, err.Error())
	}
	if len(raw) != a.EncodedLen() {
		return nil, errors.Wrapf(errors.ErrHuman, "encoded %d bytes, want %d", len(raw), a.EncodedLen())
	}
	return raw, nil
}

// DecodeAction parses the canonical encoding. Trailing bytes are not
// allowed.
func DecodeAction(raw []byte) (*Action, error) {
	var a Action
	if err := borsh.Deserialize(&a, raw); err != nil {
		return nil, errors.Wrap(ErrMalformedAction, err.Error())
	}
	if len(raw) != a.EncodedLen() {
		return nil, errors.Wrapf(ErrMalformedAction, "%d trailing bytes", len(raw)-a.EncodedLen())
	}
	return &a, nil
}

// reenters returns true if the action calls the execute instruction of
// given program.
func (a *Action) reenters(program onesig.Identity) bool {
	return a.Program == program && bytes.HasPrefix(a.Data, discriminatorExecute[:])
}

// signedBy returns a copy of the action with the signer flags set for the
// agent and cleared for everybody else. Signer flags are not chosen by the
// caller, the agent is the only identity the program can sign for.
func (a *Action) signedBy(agent onesig.Identity) *Action {
	res := *a
	res.Accounts = make([]AccountMeta, len(a.Accounts))
	for i, m := range a.Accounts {
		m.IsSigner = m.Pubkey == agent
		res.Accounts[i] = m
	}
	return &res
}
