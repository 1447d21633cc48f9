package jsxpdf

import (
	"context"

	"github.com/rs/zerolog"
)

// DefaultMaxDepth bounds both tree depth and the length of component chains.
const DefaultMaxDepth = 512

// Resolver turns node trees into renderer document definitions.
// A Resolver holds no per-call state and can be shared.
type Resolver struct {
	logger   zerolog.Logger
	maxDepth int
	initial  Context
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithMaxDepth bounds tree depth and component chain length. Zero disables
// the bound.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) { r.maxDepth = n }
}

// WithContext seeds the context every top-level section starts from.
func WithContext(values map[string]any) Option {
	return func(r *Resolver) { r.initial = r.initial.With(values) }
}

// NewResolver returns a Resolver configured by opts.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		logger:   zerolog.Nop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveElement resolves a single subtree synchronously against c and
// returns its renderer shape, or nil when it resolves to nothing. It fails
// with ErrSuspended if any component in the subtree suspends.
func (r *Resolver) ResolveElement(node any, c Context) (any, error) {
	d := &driver{r: r}
	return d.resolveChild(context.Background(), node, c, "", 0)
}

// driver is a depth-first traversal with one suspension discipline: the
// asynchronous driver awaits *Pending values, the synchronous one rejects
// them. Both share expansion, validation, merging and mapping.
type driver struct {
	r     *Resolver
	async bool
}

func (d *driver) await(ctx context.Context, v any, path string) (any, error) {
	for {
		p, ok := v.(*Pending)
		if !ok {
			return v, nil
		}
		if p == nil {
			return nil, nil
		}
		if !d.async {
			return nil, resolveError(path, ErrSuspended, "a component returned a pending value where no suspension is allowed")
		}
		var err error
		if v, err = p.Await(ctx); err != nil {
			return nil, componentError(path, err)
		}
	}
}

// expand runs the functional resolution loop: while v is a component node it
// is invoked and replaced by its result, until a non-component value remains.
func (d *driver) expand(ctx context.Context, v any, b *branch, path string) (any, error) {
	for steps := 0; ; steps++ {
		if d.r.maxDepth > 0 && steps > d.r.maxDepth {
			return nil, resolveError(path, ErrDepthExceeded, "component chain longer than %d", d.r.maxDepth)
		}
		var err error
		if v, err = d.await(ctx, v, path); err != nil {
			return nil, err
		}
		if pn, ok := v.(*Node); ok {
			if pn == nil {
				return nil, nil
			}
			v = *pn
		}
		n, ok := v.(Node)
		if !ok {
			return v, nil
		}
		comp, ok := n.kind.(Component)
		if !ok {
			if n.kind == nil {
				return nil, resolveError(path, ErrInvalidValue, "node has no kind")
			}
			return n, nil
		}
		if comp == nil {
			return nil, resolveError(path, ErrInvalidValue, "nil component")
		}
		d.r.logger.Debug().Str("path", path).Int("step", steps).Msg("expanding component")
		if v, err = comp(n.props(), b.ctx, b.update); err != nil {
			return nil, componentError(path, err)
		}
	}
}

// resolveChild expands, validates and resolves one non-top-level child
// against its own copy of the parent context.
func (d *driver) resolveChild(ctx context.Context, child any, parent Context, path string, i int) (any, error) {
	b := newBranch(parent)
	v, err := d.expand(ctx, child, b, joinPath(path, childSegment(child, i)))
	if err != nil {
		return nil, err
	}
	at := joinPath(path, childSegment(v, i))
	if err := checkPlacement(v, false, at); err != nil {
		return nil, err
	}
	return d.resolveValue(ctx, v, b.ctx, at)
}

func (d *driver) resolveValue(ctx context.Context, v any, c Context, path string) (any, error) {
	if isAbsent(v) {
		return nil, nil
	}
	if isText(v) {
		return v, nil
	}
	switch x := v.(type) {
	case Node:
		return d.resolveNode(ctx, x, c, false, path)
	case RenderProp, func(int, int, any) any:
		return nil, resolveError(path, ErrInvalidValue, "render functions are only allowed as the single child of %s or %s", Header, Footer)
	}
	return nil, resolveError(path, ErrInvalidValue, "unsupported child of type %T", v)
}

// resolveNode resolves the children of a symbolic node left to right, each
// against an independent copy of c, and maps the merged result.
func (d *driver) resolveNode(ctx context.Context, n Node, c Context, topLevel bool, path string) (any, error) {
	tag := n.kind.(Tag)
	if topLevel && (tag == Header || tag == Footer) && len(n.children) == 1 {
		if fn, ok := asRenderProp(n.children[0]); ok {
			d.r.logger.Debug().Str("path", path).Msg("deferring render function")
			return d.deferSection(n, fn, c, path), nil
		}
	}
	if d.r.maxDepth > 0 && depthOf(path) > d.r.maxDepth {
		return nil, resolveError(path, ErrDepthExceeded, "tree deeper than %d", d.r.maxDepth)
	}
	acc := make([]any, 0, len(n.children))
	for i, child := range n.children {
		resolved, err := d.resolveChild(ctx, child, c, path, i)
		if err != nil {
			return nil, err
		}
		acc = appendChild(acc, resolved)
	}
	return mapIntrinsic(tag, n.attrs, acc, path)
}

func depthOf(path string) int {
	depth := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			depth++
		}
	}
	return depth
}
