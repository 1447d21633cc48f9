package jsxpdf

import "context"

// RenderProp is a page-dependent child. Placed as the only child of a header
// or footer it is not resolved up front; the section becomes a
// DynamicSection instead.
type RenderProp func(currentPage, pageCount int, pageSize any) any

// DynamicSection is the deferred value of a header or footer whose only child
// is a RenderProp. The renderer calls it once per page.
type DynamicSection func(currentPage, pageCount int, pageSize any) (map[string]any, error)

func asRenderProp(v any) (RenderProp, bool) {
	switch fn := v.(type) {
	case RenderProp:
		return fn, fn != nil
	case func(int, int, any) any:
		return fn, fn != nil
	}
	return nil, false
}

// deferSection wraps fn so that its output is resolved synchronously, against
// a copy of c, each time the section is evaluated.
func (d *driver) deferSection(n Node, fn RenderProp, c Context, path string) DynamicSection {
	attrs := n.attrs.clone()
	sync := &driver{r: d.r}
	return func(currentPage, pageCount int, pageSize any) (map[string]any, error) {
		resolved, err := sync.resolveChild(context.Background(), fn(currentPage, pageCount, pageSize), c, path, 0)
		if err != nil {
			return nil, err
		}
		return spread(map[string]any{"stack": appendChild(make([]any, 0, 1), resolved)}, attrs), nil
	}
}
