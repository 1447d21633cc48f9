package jsxpdf

import (
	"context"
	"sync"
)

// Pending marks a value that is not available yet. Components may return it
// (or place it among children) to suspend; only the asynchronous resolver
// awaits it; the synchronous resolver rejects it with ErrSuspended.
//
// The wrapped function runs at most once, the first time the value is
// awaited.
type Pending struct {
	once sync.Once
	fn   func(ctx context.Context) (any, error)
	val  any
	err  error
}

// Suspend returns a Pending value settled by fn.
func Suspend(fn func(ctx context.Context) (any, error)) *Pending {
	return &Pending{fn: fn}
}

// Resolved returns a Pending value already settled to v.
func Resolved(v any) *Pending {
	return Suspend(func(context.Context) (any, error) { return v, nil })
}

// Await settles the value. Subsequent calls return the same result.
func (p *Pending) Await(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.once.Do(func() {
		p.val, p.err = p.fn(ctx)
	})
	return p.val, p.err
}
