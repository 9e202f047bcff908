package app

import (
	"context"
	"testing"

	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/store"
	"github.com/iov-one/onesig/weavetest"
	"github.com/iov-one/onesig/weavetest/assert"
)

func TestRouter(t *testing.T) {
	var (
		r       = NewRouter()
		execute = &weavetest.Handler{}
		verify  = &weavetest.Handler{DeliverErr: errors.ErrExpired}
	)
	r.Handle(&weavetest.Msg{RoutePath: "multisig/execute"}, execute)
	r.Handle(&weavetest.Msg{RoutePath: "multisig/verify_commitment"}, verify)

	db := store.MemStore()
	ctx := context.Background()

	_, err := r.Deliver(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "multisig/execute"}})
	assert.Nil(t, err)
	assert.Equal(t, 1, execute.CallCount())

	_, err = r.Deliver(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "multisig/verify_commitment"}})
	assert.IsErr(t, errors.ErrExpired, err)

	_, err = r.Check(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "multisig/unknown"}})
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Check(ctx, db, &weavetest.Tx{})
	assert.IsErr(t, errors.ErrMsg, err)

	assert.Panics(t, func() {
		r.Handle(&weavetest.Msg{RoutePath: "multisig/execute"}, execute)
	})
	assert.Panics(t, func() {
		r.Handle(&weavetest.Msg{RoutePath: "bad path!"}, execute)
	})
}
