package utils

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/store"
	"github.com/iov-one/onesig/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := onesig.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "multisig/execute"}}

	ok := decorated{d: NewLogging(), h: &weavetest.Handler{
		DeliverResult: onesig.DeliverResult{Log: "executed"},
	}}
	_, err := ok.Deliver(ctx, store.MemStore(), tx)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "executed")
	assert.Contains(t, buf.String(), "path=multisig/execute")

	buf.Reset()
	failing := decorated{d: NewLogging(), h: &weavetest.Handler{
		DeliverErr: fmt.Errorf("proof rejected"),
	}}
	_, err = failing.Deliver(ctx, store.MemStore(), tx)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "proof rejected")
}
