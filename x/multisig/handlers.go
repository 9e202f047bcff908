package multisig

import (
	"context"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Actions are executed on given host.
func RegisterRoutes(r onesig.Registry, auth x.Authenticator, host Host) {
	engine := NewEngine(host)
	r.Handle(&InitMsg{}, InitHandler{auth: auth, engine: engine})
	r.Handle(&SetConfigMsg{}, SetConfigHandler{auth: auth, engine: engine})
	r.Handle(&VerifyCommitmentMsg{}, VerifyCommitmentHandler{auth: auth, engine: engine})
	r.Handle(&ExecuteMsg{}, ExecuteHandler{auth: auth, engine: engine})
	r.Handle(&CloseCommitmentMsg{}, CloseCommitmentHandler{auth: auth, engine: engine})
}

// InitHandler creates instances.
type InitHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ onesig.Handler = InitHandler{}

func (h InitHandler) Check(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &onesig.CheckResult{}, nil
}

func (h InitHandler) Deliver(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	state, err := h.engine.Init(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	event := InitializedEvent{
		Instance:         msg.Instance,
		ID:               state.ID,
		Seed:             state.Seed,
		Threshold:        state.Roster.Threshold,
		Signers:          state.Roster.Signers,
		Executors:        state.Executors.Executors,
		ExecutorRequired: state.Executors.Required,
	}
	return &onesig.DeliverResult{Events: []onesig.Event{event}}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h InitHandler) validate(ctx context.Context, tx onesig.Tx) (*InitMsg, error) {
	var msg *InitMsg
	if err := onesig.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasSigner(ctx, msg.Instance) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "instance identity must sign")
	}
	return msg, nil
}

// SetConfigHandler applies configuration changes. The agent identity of
// the instance must sign them.
type SetConfigHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ onesig.Handler = SetConfigHandler{}

func (h SetConfigHandler) Check(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &onesig.CheckResult{}, nil
}

func (h SetConfigHandler) Deliver(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.engine.SetConfig(ctx, db, msg.Instance, msg.Op); err != nil {
		return nil, err
	}
	event := ConfigSetEvent{Instance: msg.Instance, Op: msg.Op}
	return &onesig.DeliverResult{Events: []onesig.Event{event}}, nil
}

func (h SetConfigHandler) validate(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*SetConfigMsg, error) {
	var msg *SetConfigMsg
	if err := onesig.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	agent, err := h.engine.Agent(db, msg.Instance)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasSigner(ctx, agent) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "agent identity must sign")
	}
	return msg, nil
}

// VerifyCommitmentHandler stores verified commitments.
type VerifyCommitmentHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ onesig.Handler = VerifyCommitmentHandler{}

func (h VerifyCommitmentHandler) Check(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.VerifyCommitment(ctx, db, msg.Instance, msg.inline()); err != nil {
		return nil, err
	}
	return &onesig.CheckResult{}, nil
}

func (h VerifyCommitmentHandler) Deliver(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	record, err := h.engine.StoreCommitment(ctx, db, msg.Payer, msg.Instance, msg.inline())
	if err != nil {
		return nil, err
	}
	event := CommitmentVerifiedEvent{
		Instance:   msg.Instance,
		Commitment: record.Root,
		Expiry:     record.Expiry,
	}
	return &onesig.DeliverResult{Events: []onesig.Event{event}}, nil
}

func (h VerifyCommitmentHandler) validate(ctx context.Context, tx onesig.Tx) (*VerifyCommitmentMsg, error) {
	var msg *VerifyCommitmentMsg
	if err := onesig.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasSigner(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer must sign")
	}
	return msg, nil
}

// ExecuteHandler executes actions of approved commitments.
type ExecuteHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ onesig.Handler = ExecuteHandler{}

func (h ExecuteHandler) Check(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &onesig.CheckResult{}, nil
}

func (h ExecuteHandler) Deliver(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	receipt, err := h.engine.Execute(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	event := ExecutedEvent{
		Instance:      receipt.Instance,
		Commitment:    receipt.Commitment,
		Nonce:         receipt.Nonce,
		ReplayCounter: receipt.ReplayCounter,
	}
	events := append(receipt.Events, event)
	return &onesig.DeliverResult{Events: events}, nil
}

func (h ExecuteHandler) validate(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*ExecuteMsg, error) {
	var msg *ExecuteMsg
	if err := onesig.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasSigner(ctx, msg.Executor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "executor must sign")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(msg.Proof) > int(conf.MaxProofLength) {
		return nil, errors.Field("Proof", errors.ErrInput, "at most %d hashes", conf.MaxProofLength)
	}
	return msg, nil
}

// CloseCommitmentHandler removes expired commitment records. The payer of
// the record must sign.
type CloseCommitmentHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ onesig.Handler = CloseCommitmentHandler{}

func (h CloseCommitmentHandler) Check(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &onesig.CheckResult{}, nil
}

func (h CloseCommitmentHandler) Deliver(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.CloseCommitment(ctx, db, msg.Instance, msg.Commitment); err != nil {
		return nil, err
	}
	return &onesig.DeliverResult{}, nil
}

func (h CloseCommitmentHandler) validate(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*CloseCommitmentMsg, error) {
	var msg *CloseCommitmentMsg
	if err := onesig.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	record, err := h.engine.Commitment(db, msg.Instance, msg.Commitment)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasSigner(ctx, record.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer must sign")
	}
	return msg, nil
}
