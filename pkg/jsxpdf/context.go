package jsxpdf

// Context is a branch-scoped key/value overlay. A Context value is never
// mutated in place: With returns a new overlay, so copies handed to sibling
// branches stay independent.
type Context struct {
	values map[string]any
}

// UpdateFunc merges values into the current branch context. Keys are merged
// shallowly and the last write wins. The update is visible to the rest of the
// branch (the component a node returns, and all descendants) but never to
// siblings or to the parent.
type UpdateFunc func(values map[string]any)

// NewContext returns a Context holding a copy of values.
func NewContext(values map[string]any) Context {
	return Context{}.With(values)
}

// Value returns the value stored under key, or nil.
func (c Context) Value(key string) any {
	return c.values[key]
}

// Lookup returns the value stored under key and whether it was present.
func (c Context) Lookup(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of keys in the context.
func (c Context) Len() int { return len(c.values) }

// Values returns a copy of all context values.
func (c Context) Values() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// With returns a new Context with values merged over c.
func (c Context) With(values map[string]any) Context {
	if len(values) == 0 {
		return c
	}
	out := c.Values()
	for k, v := range values {
		out[k] = v
	}
	return Context{values: out}
}

// branch is the mutable cell a single branch resolves against. Each child
// gets its own branch seeded from the parent's current Context.
type branch struct {
	ctx Context
}

func newBranch(parent Context) *branch {
	return &branch{ctx: parent}
}

func (b *branch) update(values map[string]any) {
	b.ctx = b.ctx.With(values)
}
