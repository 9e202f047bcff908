package utils

import (
	"context"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we
// can log them as errors.
type Recovery struct{}

var _ onesig.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (Recovery) Check(ctx context.Context, store onesig.KVStore, tx onesig.Tx, next onesig.Checker) (_ *onesig.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (Recovery) Deliver(ctx context.Context, store onesig.KVStore, tx onesig.Tx, next onesig.Deliverer) (_ *onesig.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
