package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/onesig"
)

// Auth is a mock implementing x.Authenticator interface. It authenticates
// all declared signers.
type Auth struct {
	// Signer is a convenience attribute for a single signer.
	Signer onesig.Identity

	// Signers represents an authentication of multiple signers.
	Signers []onesig.Identity
}

func (a *Auth) GetSigners(context.Context) []onesig.Identity {
	if !a.Signer.IsZero() {
		return append(append([]onesig.Identity(nil), a.Signers...), a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasSigner(ctx context.Context, id onesig.Identity) bool {
	for _, s := range a.GetSigners(ctx) {
		if s == id {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface. It keeps the
// signers in the context.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx context.Context, signers ...onesig.Identity) context.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx context.Context) []onesig.Identity {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	ids, ok := val.([]onesig.Identity)
	if !ok {
		panic(fmt.Sprintf("instead of []onesig.Identity got %T", val))
	}
	return ids
}

func (a *CtxAuth) HasSigner(ctx context.Context, id onesig.Identity) bool {
	for _, s := range a.GetSigners(ctx) {
		if s == id {
			return true
		}
	}
	return false
}
