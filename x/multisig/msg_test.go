package multisig

import (
	"testing"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/weavetest"
	"github.com/iov-one/onesig/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg      *InitMsg
		wantErrs map[string]*errors.Error
	}{
		"valid": {
			msg: &InitMsg{
				Instance:  weavetest.NewIdentity(),
				Signers:   []Address{seqAddress(1), seqAddress(2)},
				Threshold: 2,
			},
			wantErrs: map[string]*errors.Error{
				"Instance":  nil,
				"Signers":   nil,
				"Threshold": nil,
			},
		},
		"empty": {
			msg: &InitMsg{},
			wantErrs: map[string]*errors.Error{
				"Instance":  errors.ErrEmpty,
				"Signers":   errors.ErrEmpty,
				"Threshold": ErrInvalidThreshold,
			},
		},
		"threshold over the limit": {
			msg: &InitMsg{
				Instance:  weavetest.NewIdentity(),
				Signers:   []Address{seqAddress(1)},
				Threshold: MaxThreshold + 1,
			},
			wantErrs: map[string]*errors.Error{
				"Instance":  nil,
				"Threshold": ErrInvalidThreshold,
			},
		},
		"too many signers": {
			msg: &InitMsg{
				Instance:  weavetest.NewIdentity(),
				Signers:   make([]Address, MaxSigners+1),
				Threshold: 1,
			},
			wantErrs: map[string]*errors.Error{
				"Signers": ErrSignersCapacity,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestSetConfigMsgValidate(t *testing.T) {
	instance := weavetest.NewIdentity()
	cases := map[string]struct {
		msg     *SetConfigMsg
		field   string
		wantErr *errors.Error
	}{
		"valid": {
			msg:   &SetConfigMsg{Instance: instance, Op: SetSeedOp{Seed: onesig.Hash{1}}},
			field: "Op",
		},
		"missing instance": {
			msg:     &SetConfigMsg{Op: SetSeedOp{}},
			field:   "Instance",
			wantErr: errors.ErrEmpty,
		},
		"missing op": {
			msg:     &SetConfigMsg{Instance: instance},
			field:   "Op",
			wantErr: errors.ErrEmpty,
		},
		"zero signer": {
			msg:     &SetConfigMsg{Instance: instance, Op: AddSignerOp{}},
			field:   "Op",
			wantErr: ErrInvalidSigner,
		},
		"zero threshold": {
			msg:     &SetConfigMsg{Instance: instance, Op: SetThresholdOp{}},
			field:   "Op",
			wantErr: ErrInvalidThreshold,
		},
		"zero executor": {
			msg:     &SetConfigMsg{Instance: instance, Op: AddExecutorOp{}},
			field:   "Op",
			wantErr: ErrInvalidExecutor,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.FieldError(t, tc.msg.Validate(), tc.field, tc.wantErr)
		})
	}
}

func TestExecuteMsgValidate(t *testing.T) {
	executor := weavetest.NewIdentity()
	instance := weavetest.NewIdentity()
	inline := &InlineCommitment{Root: onesig.Hash{1}, Expiry: 10, Signatures: make([]byte, 65)}

	cases := map[string]struct {
		msg      *ExecuteMsg
		wantErrs map[string]*errors.Error
	}{
		"inline commitment": {
			msg: &ExecuteMsg{Executor: executor, Instance: instance, Commitment: inline},
			wantErrs: map[string]*errors.Error{
				"Commitment":       nil,
				"StoredCommitment": nil,
			},
		},
		"stored commitment": {
			msg: &ExecuteMsg{Executor: executor, Instance: instance, StoredCommitment: onesig.Hash{1}},
			wantErrs: map[string]*errors.Error{
				"Commitment":       nil,
				"StoredCommitment": nil,
			},
		},
		"both commitments": {
			msg: &ExecuteMsg{Executor: executor, Instance: instance, Commitment: inline, StoredCommitment: onesig.Hash{1}},
			wantErrs: map[string]*errors.Error{
				"StoredCommitment": errors.ErrInput,
			},
		},
		"no commitment": {
			msg: &ExecuteMsg{Executor: executor, Instance: instance},
			wantErrs: map[string]*errors.Error{
				"Commitment": errors.ErrEmpty,
			},
		},
		"inline commitment without signatures": {
			msg: &ExecuteMsg{Executor: executor, Instance: instance, Commitment: &InlineCommitment{Root: onesig.Hash{1}}},
			wantErrs: map[string]*errors.Error{
				"Commitment": errors.ErrEmpty,
			},
		},
		"missing identities": {
			msg: &ExecuteMsg{StoredCommitment: onesig.Hash{1}},
			wantErrs: map[string]*errors.Error{
				"Executor": errors.ErrEmpty,
				"Instance": errors.ErrEmpty,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestVerifyCommitmentMsgValidate(t *testing.T) {
	msg := &VerifyCommitmentMsg{
		Payer:      weavetest.NewIdentity(),
		Instance:   weavetest.NewIdentity(),
		Commitment: onesig.Hash{1},
		Expiry:     -5,
	}
	err := msg.Validate()
	assert.FieldError(t, err, "Expiry", errors.ErrInput)
	assert.FieldError(t, err, "Signatures", errors.ErrEmpty)
	assert.FieldError(t, err, "Payer", nil)
}

func TestInstructionRoundTrip(t *testing.T) {
	instance := weavetest.NewIdentity()
	msgs := []onesig.Msg{
		&InitMsg{Instance: instance, ID: 3, Seed: onesig.Hash{9}, Signers: []Address{seqAddress(1)}, Threshold: 1},
		&SetConfigMsg{Instance: instance, Op: RemoveSignerOp{Signer: seqAddress(1)}},
		&SetConfigMsg{Instance: instance, Op: SetExecutorRequiredOp{Required: true}},
		&VerifyCommitmentMsg{Payer: instance, Instance: instance, Commitment: onesig.Hash{1}, Expiry: 100, Signatures: []byte{1, 2}},
		&ExecuteMsg{
			Executor: instance,
			Instance: instance,
			Action:   Action{Program: instance, Data: []byte{7}, Value: 5},
			Proof:    []onesig.Hash{{1}, {2}},
			Commitment: &InlineCommitment{
				Root:       onesig.Hash{3},
				Expiry:     100,
				Signatures: []byte{4},
			},
		},
		&CloseCommitmentMsg{Instance: instance, Commitment: onesig.Hash{5}},
	}
	for _, msg := range msgs {
		t.Run(msg.Path(), func(t *testing.T) {
			data, err := EncodeInstruction(msg)
			require.NoError(t, err)
			got, err := DecodeInstruction(data)
			require.NoError(t, err)
			assert.Equal(t, msg, got)
		})
	}
}

func TestInstructionDiscriminators(t *testing.T) {
	data, err := EncodeInstruction(&ExecuteMsg{})
	require.NoError(t, err)
	assert.Equal(t, discriminatorExecute[:], data[:8])

	// An encoded execute instruction is what the re-entrancy guard
	// looks for.
	a := Action{Program: testProgram, Data: data}
	assert.Equal(t, true, a.reenters(testProgram))

	_, err = EncodeInstruction(&weavetest.Msg{RoutePath: "foo/bar"})
	assert.IsErr(t, errors.ErrType, err)

	_, err = DecodeInstruction([]byte{1, 2, 3})
	assert.IsErr(t, errors.ErrMsg, err)
	_, err = DecodeInstruction([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	assert.IsErr(t, errors.ErrMsg, err)
}
