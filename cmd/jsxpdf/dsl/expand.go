package dsl

import (
	"fmt"

	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
	"github.com/k-yle/jsx-pdf/pkg/jsxpdf/markup"
)

// component returns the jsxpdf.Component for a registered definition.
func (e *Engine) component(name string, def ComponentDef) jsxpdf.Component {
	path := "components/" + name
	return func(props jsxpdf.Props, ctx jsxpdf.Context, update jsxpdf.UpdateFunc) (any, error) {
		children := props.Children()
		caller := make(map[string]any, len(props))
		for k, v := range props {
			if k != jsxpdf.ChildrenKey {
				caller[k] = v
			}
		}
		params, err := applyParamDefs(def.Params, caller)
		if err != nil {
			return nil, fmt.Errorf("phase=expand path=%s: %w", path, err)
		}

		if len(def.Provide) > 0 {
			provided, err := substituteMapping(def.Provide, map[string]any{"params": params, "context": ctx.Values()})
			if err != nil {
				return nil, fmt.Errorf("phase=expand path=%s/provide: %w", path, err)
			}
			update(provided)
			ctx = ctx.With(provided)
		}

		if s, ok := e.scripts[name]; ok {
			out, err := s.call(params, ctx.Values())
			if err != nil {
				return nil, err
			}
			return e.scriptResult(out, children, path+"/render")
		}

		data := map[string]any{"params": params, "context": ctx.Values(), "children": children}
		out, err := e.build(*def.Body, data, children, path+"/body")
		if err != nil {
			return nil, err
		}
		return element(out), nil
	}
}

// scriptResult decodes what a script returned: a node, a scalar, or a list of
// either. Script output is not template-substituted.
func (e *Engine) scriptResult(out any, children []any, path string) (any, error) {
	list, isList := out.([]any)
	if !isList {
		list = []any{out}
	}
	result := make([]any, 0, len(list))
	for i, item := range list {
		p := path
		if isList {
			p = fmt.Sprintf("%s[%d]", path, i)
		}
		raw, err := DecodeNode(item, p)
		if err != nil {
			return nil, err
		}
		if err := ValidateRawNode(raw, true, p); err != nil {
			return nil, err
		}
		if err := linkNode(raw, e.registry, p); err != nil {
			return nil, err
		}
		v, err := e.build(raw, nil, children, p)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if !isList {
		return element(result[0]), nil
	}
	return jsxpdf.Build(jsxpdf.Fragment, nil, result), nil
}

// build converts a raw node into an element. data is the template data, or
// nil outside component bodies where strings are taken literally. slot holds
// the children of the enclosing component.
func (e *Engine) build(n RawNode, data map[string]any, slot []any, path string) (any, error) {
	switch {
	case n.Scalar:
		if s, ok := n.Value.(string); ok && data != nil {
			v, err := substituteValue(s, data)
			if err != nil {
				return nil, fmt.Errorf("phase=expand path=%s: %w", path, err)
			}
			return v, nil
		}
		return n.Value, nil

	case n.Slot != "":
		return slot, nil

	case n.Markdown != nil || n.HTML != nil:
		comp, src := markup.Markdown, n.Markdown
		if n.HTML != nil {
			comp, src = markup.HTML, n.HTML
		}
		text := *src
		attrs := n.Attrs
		if data != nil {
			var err error
			if text, err = substituteString(text, data); err != nil {
				return nil, fmt.Errorf("phase=expand path=%s: %w", path, err)
			}
			if attrs, err = substituteMapping(attrs, data); err != nil {
				return nil, fmt.Errorf("phase=expand path=%s/attrs: %w", path, err)
			}
		}
		return jsxpdf.Build(comp, attrs, text), nil
	}

	props := n.Attrs
	if props == nil {
		props = n.With
	}
	if data != nil {
		var err error
		if props, err = substituteMapping(props, data); err != nil {
			return nil, fmt.Errorf("phase=expand path=%s: %w", path, err)
		}
	}

	kind := e.kind(n.Kind)
	if n.Page != nil {
		return jsxpdf.Build(kind, props, e.renderProp(*n.Page, data, path+"/page")), nil
	}

	children := make([]any, 0, len(n.Children))
	for i, c := range n.Children {
		v, err := e.build(c, data, slot, childAt(path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, v)
	}
	return jsxpdf.Build(kind, props, children...), nil
}

func (e *Engine) kind(name string) jsxpdf.Kind {
	if t, ok := intrinsic(name); ok {
		return t
	}
	return e.components[name]
}

// renderProp defers a page body. The body sees the surrounding template
// data plus page, pages and pageSize.
func (e *Engine) renderProp(body RawNode, data map[string]any, path string) jsxpdf.RenderProp {
	return func(page, pages int, pageSize any) any {
		pd := make(map[string]any, len(data)+3)
		for k, v := range data {
			pd[k] = v
		}
		pd["page"], pd["pages"], pd["pageSize"] = page, pages, pageSize

		v, err := e.build(body, pd, nil, path)
		if err != nil {
			return failed(err)
		}
		return element(v)
	}
}

// element wraps a child sequence so that it can stand where a single element
// is expected.
func element(v any) any {
	if list, ok := v.([]any); ok {
		return jsxpdf.Build(jsxpdf.Fragment, nil, list)
	}
	return v
}

// failed returns a node whose resolution reports err.
func failed(err error) jsxpdf.Node {
	return jsxpdf.Build(jsxpdf.Component(func(jsxpdf.Props, jsxpdf.Context, jsxpdf.UpdateFunc) (any, error) {
		return nil, err
	}), nil)
}
