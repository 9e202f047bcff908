package multisig

import (
	"context"
	"crypto/ecdsa"
	"testing"
	"time"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/crypto"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/gconf"
	"github.com/iov-one/onesig/store"
	"github.com/iov-one/onesig/weavetest"
	"github.com/stretchr/testify/require"
)

type ecdsaKey struct {
	key  *ecdsa.PrivateKey
	addr Address
}

func newKey(t testing.TB) *ecdsaKey {
	t.Helper()
	k := weavetest.NewSecpKey()
	return &ecdsaKey{key: k, addr: crypto.KeyAddress(k)}
}

func (k *ecdsaKey) sign(t testing.TB, digest onesig.Hash) []byte {
	t.Helper()
	sig, err := crypto.SignDigest(k.key, digest)
	require.NoError(t, err)
	return sig
}

// approve returns the signatures of all keys over the commitment digest.
func approve(t testing.TB, seed, root onesig.Hash, expiry onesig.UnixTime, keys ...*ecdsaKey) []byte {
	t.Helper()
	digest, err := BuildDigest(seed, root, expiry)
	require.NoError(t, err)
	var sigs []byte
	for _, k := range keys {
		sigs = append(sigs, k.sign(t, digest)...)
	}
	return sigs
}

var testProgram = weavetest.SequenceIdentity(0xee)

// newTestDB returns a store with the package configuration.
func newTestDB(t testing.TB) onesig.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	conf := Configuration{ProgramID: testProgram, MaxProofLength: DefaultMaxProofLength}
	require.NoError(t, gconf.Save(db, packageName, &conf))
	return db
}

// blockContext returns a context at given block time.
func blockContext(now onesig.UnixTime) context.Context {
	return onesig.WithBlockTime(context.Background(), now.Time())
}

// hostMock is an in memory Host. Invoke applies the effect function to the
// agent account.
type hostMock struct {
	accounts map[onesig.Identity]AccountInfo
	effect   func(db onesig.KVStore, agent onesig.Identity, a *AccountInfo) error
	invoked  []*Action
	err      error
}

var _ Host = (*hostMock)(nil)

func newHostMock() *hostMock {
	return &hostMock{accounts: make(map[onesig.Identity]AccountInfo)}
}

func (h *hostMock) Account(db onesig.ReadOnlyKVStore, id onesig.Identity) (AccountInfo, error) {
	return h.accounts[id], nil
}

func (h *hostMock) Invoke(ctx context.Context, db onesig.KVStore, action *Action, agent onesig.Identity) ([]onesig.Event, error) {
	if h.err != nil {
		return nil, h.err
	}
	h.invoked = append(h.invoked, action)
	if h.effect != nil {
		a := h.accounts[agent]
		if err := h.effect(db, agent, &a); err != nil {
			return nil, err
		}
		h.accounts[agent] = a
	}
	return []onesig.Event{hostEvent{Program: action.Program}}, nil
}

type hostEvent struct {
	Program onesig.Identity
}

func (hostEvent) EventKind() string { return "host_invoked" }

// instance is a ready to use instance of the engine.
type instance struct {
	id    onesig.Identity
	keys  []*ecdsaKey
	state *State
	agent onesig.Identity
}

func createInstance(t testing.TB, db onesig.KVStore, engine *Engine, threshold uint8, signers int, executors ...onesig.Identity) *instance {
	t.Helper()
	inst := &instance{id: weavetest.NewIdentity()}
	msg := &InitMsg{
		Instance:  inst.id,
		ID:        42,
		Seed:      onesig.Hash{0xaa, 0xbb},
		Threshold: threshold,
		Executors: executors,
	}
	for i := 0; i < signers; i++ {
		k := newKey(t)
		inst.keys = append(inst.keys, k)
		msg.Signers = append(msg.Signers, k.addr)
	}
	msg.ExecutorRequired = len(executors) > 0
	require.NoError(t, msg.Validate())

	state, err := engine.Init(context.Background(), db, msg)
	require.NoError(t, err)
	inst.state = state
	inst.agent, err = engine.Agent(db, inst.id)
	require.NoError(t, err)
	return inst
}

// commit builds a tree over the leaves of given actions, bound to
// consecutive nonces starting at the current one.
func (inst *instance) commit(t testing.TB, actions ...Action) (*Tree, []Leaf) {
	t.Helper()
	var (
		hashes []onesig.Hash
		leaves []Leaf
	)
	for i, a := range actions {
		l := Leaf{
			Instance: inst.id,
			ID:       inst.state.ID,
			Nonce:    inst.state.Nonce + uint64(i),
			Action:   *a.signedBy(inst.agent),
		}
		h, err := l.Hash()
		require.NoError(t, err)
		hashes = append(hashes, h)
		leaves = append(leaves, l)
	}
	tree, err := NewTree(hashes)
	require.NoError(t, err)
	return tree, leaves
}

// reload refreshes the cached state after the engine changed it.
func (inst *instance) reload(t testing.TB, db onesig.ReadOnlyKVStore, engine *Engine) {
	t.Helper()
	state, err := engine.State(db, inst.id)
	require.NoError(t, err)
	inst.state = state
}

func (inst *instance) inline(t testing.TB, root onesig.Hash, expiry onesig.UnixTime, signers int) *InlineCommitment {
	t.Helper()
	return &InlineCommitment{
		Root:       root,
		Expiry:     expiry,
		Signatures: approve(t, inst.state.Seed, root, expiry, inst.keys[:signers]...),
	}
}

func mustProof(t testing.TB, tree *Tree, n int) []onesig.Hash {
	t.Helper()
	p, err := tree.Proof(n)
	require.NoError(t, err)
	return p
}

var errHost = errors.ErrState.New("host failure")

var testNow = onesig.AsUnixTime(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
