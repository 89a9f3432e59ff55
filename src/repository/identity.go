package repository

import "context"

type (
	// Identity is the authenticated caller as supplied by the auth layer.
	Identity struct {
		ID    string
		Email string
	}

	// IdentityProvider answers "who is calling" for a given operation. The
	// server injects the verified identity into the request context; tests
	// use StaticIdentity.
	IdentityProvider interface {
		Current(ctx context.Context) (Identity, bool)
	}

	// ContextIdentity reads the identity previously attached with
	// WithIdentity.
	ContextIdentity struct{}

	// StaticIdentity always answers with the configured identity (or with
	// "no identity" when Present is false).
	StaticIdentity struct {
		Identity Identity
		Present  bool
	}
)

type identityKey struct{}

// WithIdentity attaches the authenticated identity to the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

func (ContextIdentity) Current(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	return ident, ok
}

func (s StaticIdentity) Current(context.Context) (Identity, bool) {
	return s.Identity, s.Present
}
