package host

import (
	"context"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/x"
)

type contextKey int // local to the host module

const (
	contextKeySigners contextKey = iota
)

// withSigners is private, only the host can grant a program call its
// signers.
func withSigners(ctx context.Context, signers []onesig.Identity) context.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes the signers of a program call.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns who signed the current program call. May be empty.
func (Authenticate) GetSigners(ctx context.Context) []onesig.Identity {
	val, _ := ctx.Value(contextKeySigners).([]onesig.Identity)
	return val
}

// HasSigner returns true if the identity signed the current program call.
func (a Authenticate) HasSigner(ctx context.Context, id onesig.Identity) bool {
	for _, s := range a.GetSigners(ctx) {
		if s == id {
			return true
		}
	}
	return false
}
