package sigs

import (
	"context"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module can add a signer.
func withSigners(ctx context.Context, signers []onesig.Identity) context.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes identities that signed the transaction.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns who signed the current Context. May be empty.
func (Authenticate) GetSigners(ctx context.Context) []onesig.Identity {
	val, _ := ctx.Value(contextKeySigners).([]onesig.Identity)
	return val
}

// HasSigner returns true if the given identity signed the transaction.
func (a Authenticate) HasSigner(ctx context.Context, id onesig.Identity) bool {
	for _, s := range a.GetSigners(ctx) {
		if s == id {
			return true
		}
	}
	return false
}
