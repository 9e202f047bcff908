package app

import (
	"context"
	"fmt"
	"regexp"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// isPath is the RegExp to ensure the routes make sense.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// route each message to the handler registered for its path.
type Router struct {
	routes map[string]onesig.Handler
}

var _ onesig.Registry = (*Router)(nil)
var _ onesig.Handler = (*Router)(nil)

// NewRouter returns a new, empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]onesig.Handler)}
}

// Handle registers a handler for the path of given message. It panics if
// the path is already registered or malformed.
func (r *Router) Handle(m onesig.Msg, h onesig.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered handler for this tx, or an error if the
// path is unknown.
func (r *Router) handler(tx onesig.Tx) (onesig.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", msg.Path())
	}
	return h, nil
}

// Check dispatches to the proper handler based on path.
func (r *Router) Check(ctx context.Context, store onesig.KVStore, tx onesig.Tx) (*onesig.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path.
func (r *Router) Deliver(ctx context.Context, store onesig.KVStore, tx onesig.Tx) (*onesig.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, tx)
}
