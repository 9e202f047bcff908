/*
Package sigs provides basic authentication middleware to verify the ed25519
signatures on the transaction, and maintain sequences for replay
protection.
*/
package sigs

import (
	"context"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// Decorator verifies the signatures and adds them to the context.
type Decorator struct {
	chainID          string
	allowMissingSigs bool
}

var _ onesig.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator, which appends
// the chainID before checking the signature, and requires at least one
// signature to be present.
func NewDecorator(chainID string) Decorator {
	return Decorator{chainID: chainID}
}

// AllowMissingSigs allows us to pass along items with no signatures.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx context.Context, db onesig.KVStore, tx onesig.Tx, next onesig.Checker) (*onesig.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx context.Context, db onesig.KVStore, tx onesig.Tx, next onesig.Deliverer) (*onesig.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (context.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(db, stx, d.chainID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
