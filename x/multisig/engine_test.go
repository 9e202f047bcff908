package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/weavetest"
	"github.com/iov-one/onesig/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineInit(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(newHostMock())

	inst := createInstance(t, db, engine, 2, 3)
	assert.Equal(t, uint64(0), inst.state.Nonce)
	assert.Equal(t, uint8(2), inst.state.Roster.Threshold)

	agent, bump, err := FindAgent(testProgram, inst.id)
	require.NoError(t, err)
	assert.Equal(t, bump, inst.state.Bump)
	assert.Equal(t, agent, inst.agent)

	cases := map[string]struct {
		msg     *InitMsg
		wantErr *errors.Error
	}{
		"instance exists": {
			msg:     &InitMsg{Instance: inst.id, Signers: []Address{seqAddress(1)}, Threshold: 1},
			wantErr: errors.ErrDuplicate,
		},
		"threshold above signers": {
			msg:     &InitMsg{Instance: weavetest.NewIdentity(), Signers: []Address{seqAddress(1)}, Threshold: 2},
			wantErr: ErrThresholdExceedsSigners,
		},
		"duplicated signer": {
			msg:     &InitMsg{Instance: weavetest.NewIdentity(), Signers: []Address{seqAddress(1), seqAddress(1)}, Threshold: 1},
			wantErr: ErrDuplicateSigner,
		},
		"required executors without any": {
			msg:     &InitMsg{Instance: weavetest.NewIdentity(), Signers: []Address{seqAddress(1)}, Threshold: 1, ExecutorRequired: true},
			wantErr: ErrEmptyExecutorSet,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := engine.Init(context.Background(), db, tc.msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestEngineExecuteInline(t *testing.T) {
	db := newTestDB(t)
	host := newHostMock()
	engine := NewEngine(host)
	inst := createInstance(t, db, engine, 2, 3)
	ctx := blockContext(testNow)
	expiry := testNow + 3600

	program := weavetest.SequenceIdentity(1)
	first := Action{Program: program, Data: []byte("first")}
	second := Action{Program: program, Data: []byte("second"), Accounts: []AccountMeta{{Pubkey: inst.agent, IsWritable: true}}}
	tree, _ := inst.commit(t, first, second)
	commitment := inst.inline(t, tree.Root(), expiry, 2)

	executor := weavetest.NewIdentity()
	receipt, err := engine.Execute(ctx, db, &ExecuteMsg{
		Executor:   executor,
		Instance:   inst.id,
		Action:     first,
		Proof:      mustProof(t, tree, 0),
		Commitment: commitment,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), receipt.Nonce)
	assert.Equal(t, uint64(1), receipt.ReplayCounter)
	assert.Equal(t, tree.Root(), receipt.Commitment)
	assert.Equal(t, inst.agent, receipt.Agent)
	assert.Equal(t, []onesig.Event{hostEvent{Program: program}}, receipt.Events)

	// Replaying the first leaf fails, it is bound to a used nonce.
	_, err = engine.Execute(ctx, db, &ExecuteMsg{
		Executor:   executor,
		Instance:   inst.id,
		Action:     first,
		Proof:      mustProof(t, tree, 0),
		Commitment: commitment,
	})
	assert.IsErr(t, ErrInvalidProof, err)

	receipt, err = engine.Execute(ctx, db, &ExecuteMsg{
		Executor:   executor,
		Instance:   inst.id,
		Action:     second,
		Proof:      mustProof(t, tree, 1),
		Commitment: commitment,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), receipt.ReplayCounter)

	// The agent signs the executed call, nobody else does.
	require.Len(t, host.invoked, 2)
	assert.Equal(t, []AccountMeta{{Pubkey: inst.agent, IsSigner: true, IsWritable: true}}, host.invoked[1].Accounts)

	inst.reload(t, db, engine)
	assert.Equal(t, uint64(2), inst.state.Nonce)
}

func TestEngineExecuteRejections(t *testing.T) {
	program := weavetest.SequenceIdentity(1)
	action := Action{Program: program, Data: []byte{1}, Value: 10}

	cases := map[string]struct {
		// prepare may change the request or the environment before the
		// execution.
		prepare func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context
		wantErr *errors.Error
		invoked bool
	}{
		"below threshold": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				msg.Commitment = inst.inline(t, msg.Commitment.Root, msg.Commitment.Expiry, 1)
				return blockContext(testNow)
			},
			wantErr: ErrInsufficientSignatures,
		},
		"expires exactly now": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				return blockContext(msg.Commitment.Expiry)
			},
			invoked: true,
		},
		"expired a second ago": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				return blockContext(msg.Commitment.Expiry + 1)
			},
			wantErr: ErrExpiredCommitment,
		},
		"expired commitment is rejected before signatures": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				msg.Commitment.Signatures = msg.Commitment.Signatures[:10]
				return blockContext(msg.Commitment.Expiry + 1)
			},
			wantErr: ErrExpiredCommitment,
		},
		"action does not match the leaf": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				msg.Action.Value++
				return blockContext(testNow)
			},
			wantErr: ErrInvalidProof,
		},
		"executor not allowed": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				_, err := engine.SetConfig(context.Background(), db, inst.id, AddExecutorOp{Executor: weavetest.NewIdentity()})
				require.NoError(t, err)
				_, err = engine.SetConfig(context.Background(), db, inst.id, SetExecutorRequiredOp{Required: true})
				require.NoError(t, err)
				return blockContext(testNow)
			},
			wantErr: ErrExecutorRequired,
		},
		"host failure": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				host.err = errHost
				return blockContext(testNow)
			},
			wantErr: errors.ErrState,
		},
		"agent balance drained": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				host.accounts[inst.agent] = AccountInfo{Balance: 100}
				host.effect = func(db onesig.KVStore, agent onesig.Identity, a *AccountInfo) error {
					a.Balance -= 11
					return nil
				}
				return blockContext(testNow)
			},
			wantErr: ErrExcessiveBalanceDeduction,
			invoked: true,
		},
		"agent spends its value": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				host.accounts[inst.agent] = AccountInfo{Balance: 100}
				host.effect = func(db onesig.KVStore, agent onesig.Identity, a *AccountInfo) error {
					a.Balance -= 10
					return nil
				}
				return blockContext(testNow)
			},
			invoked: true,
		},
		"agent reassigned": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				host.effect = func(db onesig.KVStore, agent onesig.Identity, a *AccountInfo) error {
					a.Owner = program
					return nil
				}
				return blockContext(testNow)
			},
			wantErr: ErrInvalidAgentOwner,
			invoked: true,
		},
		"agent allocated": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				host.effect = func(db onesig.KVStore, agent onesig.Identity, a *AccountInfo) error {
					a.DataLen = 8
					return nil
				}
				return blockContext(testNow)
			},
			wantErr: ErrNonEmptyAgentData,
			invoked: true,
		},
		"replay counter moved during the call": {
			prepare: func(t testing.TB, db onesig.KVStore, engine *Engine, host *hostMock, inst *instance, msg *ExecuteMsg) context.Context {
				host.effect = func(db onesig.KVStore, agent onesig.Identity, a *AccountInfo) error {
					state, err := engine.states.GetState(db, inst.id)
					if err != nil {
						return err
					}
					state.Nonce += 5
					return engine.states.SaveState(db, inst.id, state)
				}
				return blockContext(testNow)
			},
			wantErr: ErrStaleState,
			invoked: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestDB(t)
			host := newHostMock()
			engine := NewEngine(host)
			inst := createInstance(t, db, engine, 2, 2)
			tree, _ := inst.commit(t, action)
			msg := &ExecuteMsg{
				Executor:   weavetest.NewIdentity(),
				Instance:   inst.id,
				Action:     action,
				Proof:      mustProof(t, tree, 0),
				Commitment: inst.inline(t, tree.Root(), testNow+60, 2),
			}
			ctx := tc.prepare(t, db, engine, host, inst, msg)

			_, err := engine.Execute(ctx, db, msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.invoked, len(host.invoked) == 1)

			inst.reload(t, db, engine)
			if tc.wantErr == nil {
				assert.Equal(t, uint64(1), inst.state.Nonce)
			} else {
				assert.Equal(t, uint64(0), inst.state.Nonce)
			}
		})
	}
}

func TestEngineRejectsReentrancy(t *testing.T) {
	db := newTestDB(t)
	host := newHostMock()
	engine := NewEngine(host)
	inst := createInstance(t, db, engine, 1, 1)

	data, err := EncodeInstruction(&ExecuteMsg{Executor: inst.agent, Instance: inst.id})
	require.NoError(t, err)
	action := Action{Program: testProgram, Data: data}
	tree, _ := inst.commit(t, action)

	_, err = engine.Execute(blockContext(testNow), db, &ExecuteMsg{
		Executor:   weavetest.NewIdentity(),
		Instance:   inst.id,
		Action:     action,
		Commitment: inst.inline(t, tree.Root(), testNow, 1),
	})
	assert.IsErr(t, ErrReentrancy, err)
	assert.Equal(t, 0, len(host.invoked))
}

func TestEngineStoredCommitment(t *testing.T) {
	db := newTestDB(t)
	host := newHostMock()
	engine := NewEngine(host)
	inst := createInstance(t, db, engine, 2, 2)
	payer := weavetest.NewIdentity()
	ctx := blockContext(testNow)
	expiry := testNow + 100

	program := weavetest.SequenceIdentity(1)
	actions := []Action{
		{Program: program, Data: []byte{1}},
		{Program: program, Data: []byte{2}},
		{Program: program, Data: []byte{3}},
	}
	tree, _ := inst.commit(t, actions...)

	// Signatures of one signer are not enough to store it.
	_, err := engine.StoreCommitment(ctx, db, payer, inst.id, inst.inline(t, tree.Root(), expiry, 1))
	assert.IsErr(t, ErrInsufficientSignatures, err)

	record, err := engine.StoreCommitment(ctx, db, payer, inst.id, inst.inline(t, tree.Root(), expiry, 2))
	require.NoError(t, err)
	assert.Equal(t, inst.state.Seed, record.Seed)
	assert.Equal(t, payer, record.Payer)
	_, bump, err := FindCommitmentAddress(testProgram, inst.id, tree.Root())
	require.NoError(t, err)
	assert.Equal(t, bump, record.Bump)

	_, err = engine.StoreCommitment(ctx, db, payer, inst.id, inst.inline(t, tree.Root(), expiry, 2))
	assert.IsErr(t, errors.ErrDuplicate, err)

	records, err := engine.Commitments(db, inst.id)
	require.NoError(t, err)
	assert.Equal(t, []*CommitmentRecord{record}, records)

	execute := func(n int) error {
		_, err := engine.Execute(ctx, db, &ExecuteMsg{
			Executor:         weavetest.NewIdentity(),
			Instance:         inst.id,
			Action:           actions[n],
			Proof:            mustProof(t, tree, n),
			StoredCommitment: tree.Root(),
		})
		return err
	}
	assert.Nil(t, execute(0))
	assert.Nil(t, execute(1))

	// A record of another root does not exist.
	_, err = engine.Execute(ctx, db, &ExecuteMsg{
		Executor:         weavetest.NewIdentity(),
		Instance:         inst.id,
		Action:           actions[2],
		Proof:            mustProof(t, tree, 2),
		StoredCommitment: onesig.Hash{0x01},
	})
	assert.IsErr(t, errors.ErrNotFound, err)

	// Rotating the seed retires the record.
	_, err = engine.SetConfig(ctx, db, inst.id, SetSeedOp{Seed: onesig.Hash{0x99}})
	require.NoError(t, err)
	assert.IsErr(t, ErrSeedMismatch, execute(2))

	// The record cannot be closed before it expires.
	err = engine.CloseCommitment(ctx, db, inst.id, tree.Root())
	assert.IsErr(t, ErrCommitmentNotExpired, err)
	err = engine.CloseCommitment(blockContext(expiry), db, inst.id, tree.Root())
	assert.IsErr(t, ErrCommitmentNotExpired, err)

	err = engine.CloseCommitment(blockContext(expiry+1), db, inst.id, tree.Root())
	require.NoError(t, err)
	_, err = engine.Commitment(db, inst.id, tree.Root())
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestEngineStoredCommitmentExpires(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(newHostMock())
	inst := createInstance(t, db, engine, 1, 1)
	action := Action{Program: weavetest.SequenceIdentity(1)}
	tree, _ := inst.commit(t, action)

	_, err := engine.StoreCommitment(blockContext(testNow), db, inst.id, inst.id, inst.inline(t, tree.Root(), testNow, 1))
	require.NoError(t, err)

	_, err = engine.Execute(blockContext(testNow+1), db, &ExecuteMsg{
		Executor:         inst.id,
		Instance:         inst.id,
		Action:           action,
		StoredCommitment: tree.Root(),
	})
	assert.IsErr(t, ErrExpiredCommitment, err)
}

func TestEngineSetConfig(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(newHostMock())
	inst := createInstance(t, db, engine, 2, 2)
	ctx := context.Background()

	_, err := engine.SetConfig(ctx, db, inst.id, AddSignerOp{Signer: seqAddress(7)})
	require.NoError(t, err)
	state, err := engine.SetConfig(ctx, db, inst.id, SetThresholdOp{Threshold: 3})
	require.NoError(t, err)
	assert.Equal(t, uint8(3), state.Roster.Threshold)
	assert.Equal(t, 3, len(state.Roster.Signers))

	// A failing change leaves the stored state untouched.
	_, err = engine.SetConfig(ctx, db, inst.id, RemoveSignerOp{Signer: seqAddress(7)})
	assert.IsErr(t, ErrThresholdExceedsSigners, err)
	inst.reload(t, db, engine)
	assert.Equal(t, state, inst.state)

	_, err = engine.SetConfig(ctx, db, weavetest.NewIdentity(), SetSeedOp{})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestCheckAgent(t *testing.T) {
	cases := map[string]struct {
		before, after AccountInfo
		value         uint64
		wantErr       *errors.Error
	}{
		"untouched":          {before: AccountInfo{Balance: 5}, after: AccountInfo{Balance: 5}},
		"credited":           {before: AccountInfo{Balance: 5}, after: AccountInfo{Balance: 50}},
		"spent within value": {before: AccountInfo{Balance: 5}, after: AccountInfo{Balance: 0}, value: 5},
		"spent above value": {
			before:  AccountInfo{Balance: 5},
			after:   AccountInfo{Balance: 0},
			value:   4,
			wantErr: ErrExcessiveBalanceDeduction,
		},
		"owned by a program": {
			after:   AccountInfo{Owner: weavetest.SequenceIdentity(1)},
			wantErr: ErrInvalidAgentOwner,
		},
		"data allocated": {
			after:   AccountInfo{DataLen: 1},
			wantErr: ErrNonEmptyAgentData,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := checkAgent(tc.before, tc.after, tc.value)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
