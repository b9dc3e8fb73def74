package provlock

import "context"

// ctxKey is the private context key for the lock guard.
type ctxKey struct{}

// guard pairs the process lock with the calling worker's token so code
// deep in a provider call tree can escalate without threading lock
// arguments through every signature.
type guard struct {
	lock *Lock
	tok  *Token
}

// NewContext returns a context carrying the lock and the caller's token.
// Dispatch workers attach their token before invoking provider
// operations.
func NewContext(ctx context.Context, lock *Lock, tok *Token) context.Context {
	return context.WithValue(ctx, ctxKey{}, guard{lock: lock, tok: tok})
}

// FromContext extracts the lock and token attached by NewContext.
func FromContext(ctx context.Context) (*Lock, *Token, bool) {
	g, ok := ctx.Value(ctxKey{}).(guard)
	if !ok {
		return nil, nil, false
	}
	return g.lock, g.tok, true
}

// Exclusive runs fn with exclusive console access if the context carries
// a lock guard, escalating from the worker's shared hold as needed. When
// no guard is present (single-backend direct calls, tests), fn runs
// unguarded.
func Exclusive(ctx context.Context, fn func() error) error {
	g, ok := ctx.Value(ctxKey{}).(guard)
	if !ok {
		return fn()
	}
	return g.lock.WithExclusive(g.tok, fn)
}
