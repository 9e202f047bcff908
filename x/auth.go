package x

import (
	"context"

	"github.com/iov-one/onesig"
)

// Authenticator extracts authentication info from the context. It is
// passed into the constructor of handlers so that another authentication
// system can be plugged in.
type Authenticator interface {
	// GetSigners reveals all identities that authorized the request.
	GetSigners(context.Context) []onesig.Identity
	// HasSigner checks if the identity authorized the request.
	HasSigner(context.Context, onesig.Identity) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines the signers of all Authenticators without
// duplicates, in order of first appearance.
func (m MultiAuth) GetSigners(ctx context.Context) []onesig.Identity {
	var res []onesig.Identity
	seen := make(map[onesig.Identity]struct{})
	for _, impl := range m.impls {
		for _, id := range impl.GetSigners(ctx) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			res = append(res, id)
		}
	}
	return res
}

// HasSigner returns true iff any Authenticator supports this identity.
func (m MultiAuth) HasSigner(ctx context.Context, id onesig.Identity) bool {
	for _, impl := range m.impls {
		if impl.HasSigner(ctx, id) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer, or the zero identity.
func MainSigner(ctx context.Context, auth Authenticator) onesig.Identity {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return onesig.ZeroIdentity
	}
	return signers[0]
}

// HasAllSigners returns true if all required identities are authenticated.
func HasAllSigners(ctx context.Context, auth Authenticator, required []onesig.Identity) bool {
	for _, r := range required {
		if !auth.HasSigner(ctx, r) {
			return false
		}
	}
	return true
}
