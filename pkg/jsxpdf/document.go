package jsxpdf

import (
	"context"
	"fmt"
)

// Definition is the document definition handed to the renderer: one key per
// section present under the document plus the document's own attributes.
// Header and footer values are either a static shape or a DynamicSection.
type Definition map[string]any

// ResolvePDF resolves root with a Resolver configured by opts.
func ResolvePDF(ctx context.Context, root any, opts ...Option) (Definition, error) {
	return NewResolver(opts...).Resolve(ctx, root)
}

// Resolve expands root, which must resolve to a document node, and resolves
// each of its sections in order. Components anywhere in the tree may suspend
// by returning a *Pending value. The first error aborts resolution.
func (r *Resolver) Resolve(ctx context.Context, root any) (Definition, error) {
	d := &driver{r: r, async: true}
	b := newBranch(r.initial)
	v, err := d.expand(ctx, root, b, string(Document))
	if err != nil {
		return nil, err
	}
	n, ok := v.(Node)
	if tag, _ := n.kind.(Tag); !ok || tag != Document {
		return nil, resolveError("<root>", ErrRootType, "root element must be %s, got %s", Document, describe(v))
	}

	def := Definition{}
	for i, child := range n.children {
		cb := newBranch(b.ctx)
		sv, err := d.expand(ctx, child, cb, joinPath(string(Document), childSegment(child, i)))
		if err != nil {
			return nil, err
		}
		path := joinPath(string(Document), childSegment(sv, i))
		if err := checkPlacement(sv, true, path); err != nil {
			return nil, err
		}
		section, ok := sv.(Node)
		if !ok {
			if isAbsent(sv) || isText(sv) {
				r.logger.Debug().Str("path", path).Msg("skipping non-section child of document")
				continue
			}
			return nil, resolveError(path, ErrInvalidValue, "unsupported child of type %T", sv)
		}
		tag := section.kind.(Tag)
		out, err := d.resolveNode(ctx, section, cb.ctx, true, joinPath(string(Document), string(tag)))
		if err != nil {
			return nil, err
		}
		r.logger.Debug().Str("section", string(tag)).Msg("section resolved")
		def[string(tag)] = out
	}
	for k, v := range n.attrs {
		if _, taken := def[k]; !taken {
			def[k] = v
		}
	}
	return def, nil
}

// Snapshot returns a copy of d in which every DynamicSection is replaced by
// the list of its shapes for pages 1..pages. The result contains only plain
// values and can be serialized.
func (d Definition) Snapshot(pages int, pageSize any) (map[string]any, error) {
	out := make(map[string]any, len(d))
	for k, v := range d {
		fn, ok := v.(DynamicSection)
		if !ok {
			out[k] = v
			continue
		}
		rendered := make([]any, 0, pages)
		for page := 1; page <= pages; page++ {
			shape, err := fn(page, pages, pageSize)
			if err != nil {
				return nil, fmt.Errorf("%s page %d: %w", k, page, err)
			}
			rendered = append(rendered, shape)
		}
		out[k] = rendered
	}
	return out, nil
}
