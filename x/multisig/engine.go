package multisig

import (
	"context"
	"math"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/crypto"
	"github.com/iov-one/onesig/errors"
)

// Engine owns the instance state. It verifies commitments, authorizes
// actions against them and advances the replay counter.
//
// Callers authenticate the request before calling the engine, the engine
// only checks what the instance state says about it.
type Engine struct {
	states      StateBucket
	commitments CommitmentBucket
	host        Host
}

// NewEngine returns an engine executing actions on given host.
func NewEngine(host Host) *Engine {
	return &Engine{
		states:      NewStateBucket(),
		commitments: NewCommitmentBucket(),
		host:        host,
	}
}

// Receipt describes a successful execution.
type Receipt struct {
	Instance   onesig.Identity
	Commitment onesig.Hash
	Agent      onesig.Identity
	// Nonce is the replay counter the executed leaf was bound to.
	Nonce uint64
	// ReplayCounter is the replay counter after the execution.
	ReplayCounter uint64
	// Events were emitted by the executed action.
	Events []onesig.Event
}

// FindAgent returns the agent identity of an instance and its bump.
func FindAgent(program, instance onesig.Identity) (onesig.Identity, uint8, error) {
	return crypto.FindProgramAddress([][]byte{agentSeed, instance[:]}, program)
}

// AgentIdentity returns the agent identity of an instance from a known
// bump.
func AgentIdentity(program, instance onesig.Identity, bump uint8) (onesig.Identity, error) {
	return crypto.CreateProgramAddress([][]byte{agentSeed, instance[:], {bump}}, program)
}

// FindCommitmentAddress returns the identity of the record of a commitment
// and its bump.
func FindCommitmentAddress(program, instance onesig.Identity, root onesig.Hash) (onesig.Identity, uint8, error) {
	return crypto.FindProgramAddress([][]byte{commitmentSeed, instance[:], root[:]}, program)
}

// State returns the current state of an instance.
func (e *Engine) State(db onesig.ReadOnlyKVStore, instance onesig.Identity) (*State, error) {
	return e.states.GetState(db, instance)
}

// Agent returns the agent identity of an existing instance.
func (e *Engine) Agent(db onesig.ReadOnlyKVStore, instance onesig.Identity) (onesig.Identity, error) {
	conf, err := loadConf(db)
	if err != nil {
		return onesig.Identity{}, err
	}
	state, err := e.states.GetState(db, instance)
	if err != nil {
		return onesig.Identity{}, err
	}
	return AgentIdentity(conf.ProgramID, instance, state.Bump)
}

// Init creates a new instance. The roster and the executors are built with
// the regular mutators, so an invalid configuration is rejected with the
// same errors a configuration change would get.
func (e *Engine) Init(ctx context.Context, db onesig.KVStore, msg *InitMsg) (*State, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	switch exists, err := e.states.Has(db, msg.Instance[:]); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(errors.ErrDuplicate, "instance %s", msg.Instance)
	}

	_, bump, err := FindAgent(conf.ProgramID, msg.Instance)
	if err != nil {
		return nil, errors.Wrap(err, "agent identity")
	}
	state := &State{
		ID:   msg.ID,
		Seed: msg.Seed,
		Bump: bump,
	}
	for _, s := range msg.Signers {
		if err := state.Roster.AddSigner(s); err != nil {
			return nil, err
		}
	}
	if err := state.Roster.SetThreshold(msg.Threshold); err != nil {
		return nil, err
	}
	for _, x := range msg.Executors {
		if err := state.Executors.AddExecutor(x); err != nil {
			return nil, err
		}
	}
	if err := state.Executors.SetRequired(msg.ExecutorRequired); err != nil {
		return nil, err
	}
	if err := e.states.SaveState(db, msg.Instance, state); err != nil {
		return nil, err
	}
	onesig.GetLogger(ctx).Info("instance created",
		"instance", msg.Instance.String(), "id", msg.ID, "bump", bump)
	return state, nil
}

// SetConfig applies a single configuration change.
func (e *Engine) SetConfig(ctx context.Context, db onesig.KVStore, instance onesig.Identity, op ConfigOp) (*State, error) {
	state, err := e.states.GetState(db, instance)
	if err != nil {
		return nil, err
	}
	next := state.Copy()
	if err := op.apply(next); err != nil {
		return nil, reject(err)
	}
	if err := e.states.SaveState(db, instance, next); err != nil {
		return nil, err
	}
	onesig.GetLogger(ctx).Info("configuration changed", "instance", instance.String(), "op", op.Kind())
	return next, nil
}

// VerifyCommitment checks that the commitment is not expired and that its
// signatures satisfy the current roster of the instance.
func (e *Engine) VerifyCommitment(ctx context.Context, db onesig.ReadOnlyKVStore, instance onesig.Identity, c *InlineCommitment) error {
	state, err := e.states.GetState(db, instance)
	if err != nil {
		return err
	}
	return reject(verifyCommitment(ctx, state, c))
}

func verifyCommitment(ctx context.Context, state *State, c *InlineCommitment) error {
	switch expired, err := onesig.IsExpired(ctx, c.Expiry); {
	case err != nil:
		return err
	case expired:
		return errors.Wrapf(ErrExpiredCommitment, "expired at %d", c.Expiry)
	}
	digest, err := BuildDigest(state.Seed, c.Root, c.Expiry)
	if err != nil {
		return err
	}
	if err := VerifySignatures(state.Roster, digest, c.Signatures); err != nil {
		return err
	}
	commitmentsVerified.Inc()
	return nil
}

// StoreCommitment verifies a commitment and stores it for later
// executions. The record is bound to the current seed of the instance.
func (e *Engine) StoreCommitment(ctx context.Context, db onesig.KVStore, payer, instance onesig.Identity, c *InlineCommitment) (*CommitmentRecord, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	state, err := e.states.GetState(db, instance)
	if err != nil {
		return nil, err
	}
	if err := verifyCommitment(ctx, state, c); err != nil {
		return nil, reject(err)
	}
	_, bump, err := FindCommitmentAddress(conf.ProgramID, instance, c.Root)
	if err != nil {
		return nil, errors.Wrap(err, "commitment identity")
	}
	record := &CommitmentRecord{
		Root:   c.Root,
		Seed:   state.Seed,
		Expiry: c.Expiry,
		Payer:  payer,
		Bump:   bump,
	}
	if err := e.commitments.Create(db, instance, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Commitment returns a stored commitment record.
func (e *Engine) Commitment(db onesig.ReadOnlyKVStore, instance onesig.Identity, root onesig.Hash) (*CommitmentRecord, error) {
	return e.commitments.GetCommitment(db, instance, root)
}

// Commitments returns all stored commitment records of an instance,
// including expired ones that were not closed yet.
func (e *Engine) Commitments(db onesig.ReadOnlyKVStore, instance onesig.Identity) ([]*CommitmentRecord, error) {
	return e.commitments.ByInstance(db, instance)
}

// CloseCommitment removes an expired record. The caller must have checked
// that the request is signed by the record payer.
func (e *Engine) CloseCommitment(ctx context.Context, db onesig.KVStore, instance onesig.Identity, root onesig.Hash) error {
	record, err := e.commitments.GetCommitment(db, instance, root)
	if err != nil {
		return err
	}
	switch expired, err := onesig.IsExpired(ctx, record.Expiry); {
	case err != nil:
		return err
	case !expired:
		return reject(errors.Wrapf(ErrCommitmentNotExpired, "expires at %d", record.Expiry))
	}
	return e.commitments.Remove(db, instance, root)
}

// Execute authorizes the action of the message and runs it on the host.
//
// The commitment is verified first, either from the inline signatures or
// from a stored record. The action is then encoded into a leaf bound to
// the current replay counter and proven to belong to the commitment. After
// the host has run the action the agent account is checked and the replay
// counter advanced. Nothing is written unless every step succeeds.
func (e *Engine) Execute(ctx context.Context, db onesig.KVStore, msg *ExecuteMsg) (*Receipt, error) {
	receipt, err := e.execute(ctx, db, msg)
	return receipt, reject(err)
}

func (e *Engine) execute(ctx context.Context, db onesig.KVStore, msg *ExecuteMsg) (*Receipt, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	state, err := e.states.GetState(db, msg.Instance)
	if err != nil {
		return nil, err
	}
	if !state.Executors.Allowed(msg.Executor) {
		return nil, errors.Wrapf(ErrExecutorRequired, "%s is not an executor", msg.Executor)
	}

	root, err := e.resolveCommitment(ctx, db, msg, state)
	if err != nil {
		return nil, err
	}
	log := onesig.GetLogger(ctx).With("instance", msg.Instance.String(), "commitment", root.String())
	log.Debug("commitment verified")

	agent, err := AgentIdentity(conf.ProgramID, msg.Instance, state.Bump)
	if err != nil {
		return nil, errors.Wrap(err, "agent identity")
	}
	nonce := state.Nonce
	action := msg.Action.signedBy(agent)
	leaf := Leaf{Instance: msg.Instance, ID: state.ID, Nonce: nonce, Action: *action}
	hash, err := leaf.Hash()
	if err != nil {
		return nil, err
	}
	if err := VerifyProof(root, msg.Proof, hash); err != nil {
		return nil, errors.Wrapf(err, "leaf %s at nonce %d", hash, nonce)
	}
	log.Debug("leaf verified", "leaf", hash.String(), "nonce", nonce)

	if action.reenters(conf.ProgramID) {
		return nil, errors.Wrap(ErrReentrancy, "action calls execute")
	}
	if nonce == math.MaxUint64 {
		return nil, errors.Wrap(errors.ErrOverflow, "replay counter")
	}

	var events []onesig.Event
	err = withSavepoint(db, func(db onesig.KVStore) error {
		before, err := e.host.Account(db, agent)
		if err != nil {
			return err
		}
		events, err = e.host.Invoke(ctx, db, action, agent)
		if err != nil {
			return errors.Wrap(err, "invoke")
		}
		after, err := e.host.Account(db, agent)
		if err != nil {
			return err
		}
		if err := checkAgent(before, after, action.Value); err != nil {
			return err
		}

		// The action may have changed the instance, never reuse the
		// state loaded before the call.
		current, err := e.states.GetState(db, msg.Instance)
		if err != nil {
			return err
		}
		if current.Nonce != nonce {
			return errors.Wrapf(ErrStaleState, "replay counter moved from %d to %d during execution", nonce, current.Nonce)
		}
		current.Nonce = nonce + 1
		return e.states.SaveState(db, msg.Instance, current)
	})
	if err != nil {
		return nil, err
	}

	executions.Inc()
	log.Info("action executed", "nonce", nonce, "program", action.Program.String())
	return &Receipt{
		Instance:      msg.Instance,
		Commitment:    root,
		Agent:         agent,
		Nonce:         nonce,
		ReplayCounter: nonce + 1,
		Events:        events,
	}, nil
}

// resolveCommitment returns the verified commitment root of the request,
// whichever way it was provided.
func (e *Engine) resolveCommitment(ctx context.Context, db onesig.ReadOnlyKVStore, msg *ExecuteMsg, state *State) (onesig.Hash, error) {
	if msg.Commitment != nil {
		if err := verifyCommitment(ctx, state, msg.Commitment); err != nil {
			return onesig.Hash{}, err
		}
		return msg.Commitment.Root, nil
	}

	record, err := e.commitments.GetCommitment(db, msg.Instance, msg.StoredCommitment)
	if err != nil {
		return onesig.Hash{}, err
	}
	switch expired, err := onesig.IsExpired(ctx, record.Expiry); {
	case err != nil:
		return onesig.Hash{}, err
	case expired:
		return onesig.Hash{}, errors.Wrapf(ErrExpiredCommitment, "expired at %d", record.Expiry)
	}
	if record.Seed != state.Seed {
		return onesig.Hash{}, errors.Wrap(ErrSeedMismatch, "commitment was verified under another seed")
	}
	return record.Root, nil
}

// checkAgent verifies the agent account after an action. The action may
// spend at most value of the agent balance and must leave the agent a
// plain system account.
func checkAgent(before, after AccountInfo, value uint64) error {
	if before.Balance > after.Balance && before.Balance-after.Balance > value {
		return errors.Wrapf(ErrExcessiveBalanceDeduction,
			"balance went from %d to %d, allowed %d", before.Balance, after.Balance, value)
	}
	if !after.Owner.IsZero() {
		return errors.Wrapf(ErrInvalidAgentOwner, "owned by %s", after.Owner)
	}
	if after.DataLen != 0 {
		return errors.Wrapf(ErrNonEmptyAgentData, "%d bytes allocated", after.DataLen)
	}
	return nil
}

// withSavepoint runs fn on a cache of db when db supports it. Writes of a
// failed fn are discarded.
func withSavepoint(db onesig.KVStore, fn func(onesig.KVStore) error) error {
	cstore, ok := db.(onesig.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write savepoint")
	}
	return nil
}
