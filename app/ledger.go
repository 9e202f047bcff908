package app

import (
	"context"
	"time"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger is a minimal host for handlers. It owns the committed state, runs
// each transaction inside its own savepoint and publishes the events of
// successful transactions.
type Ledger struct {
	store   onesig.CommitKVStore
	handler onesig.Handler
	events  onesig.EventSink
	logger  log.Logger
	debug   bool
}

// NewLedger returns a ledger over given state.
func NewLedger(store onesig.CommitKVStore, handler onesig.Handler, events onesig.EventSink) *Ledger {
	return &Ledger{
		store:   store,
		handler: handler,
		events:  events,
		logger:  log.NewNopLogger(),
	}
}

// WithLogger sets the logger used for all transactions.
func (l *Ledger) WithLogger(logger log.Logger) *Ledger {
	l.logger = logger
	return l
}

// WithDebug exposes internal error details in results.
func (l *Ledger) WithDebug(debug bool) *Ledger {
	l.debug = debug
	return l
}

// InitChain applies the genesis options and commits.
func (l *Ledger) InitChain(init onesig.Initializer, opts onesig.Options) (onesig.CommitID, error) {
	cache := l.store.CacheWrap()
	if err := init.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return onesig.CommitID{}, errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return onesig.CommitID{}, err
	}
	return l.store.Commit()
}

func (l *Ledger) context(now time.Time, call string, tx onesig.Tx) context.Context {
	ctx := onesig.WithLogger(context.Background(), l.logger)
	ctx = onesig.WithBlockTime(ctx, now)
	return onesig.WithLogInfo(ctx, "call", call, "path", onesig.GetPath(tx))
}

// Check runs the transaction against a throwaway copy of the state.
func (l *Ledger) Check(now time.Time, tx onesig.Tx) (*onesig.CheckResult, error) {
	cache := l.store.CacheWrap()
	defer cache.Discard()
	res, err := l.handler.Check(l.context(now, "check", tx), cache, tx)
	return res, l.redact(err)
}

// Deliver executes the transaction at given block time. State changes and
// events are applied only when the handler succeeds.
func (l *Ledger) Deliver(now time.Time, tx onesig.Tx) (*onesig.DeliverResult, error) {
	ctx := l.context(now, "deliver", tx)
	cache := l.store.CacheWrap()
	res, err := l.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, l.redact(err)
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write state")
	}
	onesig.Commit(ctx, l.events, res)
	return res, nil
}

// Commit persists all delivered transactions.
func (l *Ledger) Commit() (onesig.CommitID, error) {
	return l.store.Commit()
}

func (l *Ledger) redact(err error) error {
	if l.debug || err == nil {
		return err
	}
	return errors.Redact(err)
}
