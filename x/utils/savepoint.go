package utils

import (
	"context"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// Savepoint isolates all writes of the wrapped handler and commits them
// only when it succeeds. Without a savepoint a failed handler may leave
// partial writes behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ onesig.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator. Call OnCheck or OnDeliver to
// activate it.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on Check.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx context.Context, store onesig.KVStore, tx onesig.Tx, next onesig.Checker) (*onesig.CheckResult, error) {
	cstore, ok := store.(onesig.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx context.Context, store onesig.KVStore, tx onesig.Tx, next onesig.Deliverer) (*onesig.DeliverResult, error) {
	cstore, ok := store.(onesig.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
