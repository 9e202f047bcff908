package weavetest

import (
	"context"

	"github.com/iov-one/onesig"
)

// Handler is a mock implementing onesig.Handler that counts its calls.
type Handler struct {
	checkCall   int
	CheckResult onesig.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult onesig.DeliverResult
	DeliverErr    error
}

var _ onesig.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler returns a handler that writes given key and value, and
// then fails with err if not nil.
func WriteHandler(key, value []byte, err error) onesig.Handler {
	return writeHandler{key: key, value: value, err: err}
}

type writeHandler struct {
	key, value []byte
	err        error
}

func (h writeHandler) Check(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &onesig.CheckResult{}, nil
}

func (h writeHandler) Deliver(ctx context.Context, db onesig.KVStore, tx onesig.Tx) (*onesig.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &onesig.DeliverResult{}, nil
}

// PanicHandler always panics.
type PanicHandler struct{}

func (PanicHandler) Check(context.Context, onesig.KVStore, onesig.Tx) (*onesig.CheckResult, error) {
	panic("check panic")
}

func (PanicHandler) Deliver(context.Context, onesig.KVStore, onesig.Tx) (*onesig.DeliverResult, error) {
	panic("deliver panic")
}
