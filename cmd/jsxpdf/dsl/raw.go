package dsl

import (
	"fmt"
	"sort"
)

// RawNode represents a node as parsed from an external source (a YAML file or
// the value returned by a script). It is intentionally format-agnostic: no
// serialization tags.
//
// A node takes exactly one form:
//
//   - Scalar: a string, number, bool or null child. Strings inside component
//     bodies are template-substituted.
//   - Kind: an intrinsic tag or a registered component, with Attrs (intrinsic)
//     or With (component), Children, and for header/footer an optional Page
//     body rendered once per page.
//   - Markdown / HTML: markup converted to intrinsic nodes.
//   - Slot: the children passed to the enclosing component.
type RawNode struct {
	Scalar bool
	Value  any

	Kind     string
	Markdown *string
	HTML     *string
	Slot     string

	Attrs    map[string]any
	With     map[string]any
	Children []RawNode
	Page     *RawNode
}

// SlotChildren is the only slot name.
const SlotChildren = "children"

var nodeFields = map[string]struct{}{
	"kind": {}, "markdown": {}, "html": {}, "slot": {},
	"attrs": {}, "with": {}, "children": {}, "page": {},
}

// DecodeNode converts a generic decoded value (as produced by a YAML decoder
// or a script) into a RawNode.
func DecodeNode(v any, path string) (RawNode, error) {
	switch val := v.(type) {
	case nil, bool, string, int, int64, uint64, float64:
		return RawNode{Scalar: true, Value: val}, nil
	case []any:
		return RawNode{}, fmt.Errorf("phase=raw path=%s: %w: a list is only valid as children", path, ErrInvalidNode)
	case map[string]any:
		return decodeMapping(val, path)
	default:
		return RawNode{}, fmt.Errorf("phase=raw path=%s: %w: unsupported value %T", path, ErrInvalidNode, v)
	}
}

// DecodeChildren converts a children value: a list, or a single node.
func DecodeChildren(v any, path string) ([]RawNode, error) {
	list, ok := v.([]any)
	if !ok {
		n, err := DecodeNode(v, childAt(path, 0))
		if err != nil {
			return nil, err
		}
		return []RawNode{n}, nil
	}
	out := make([]RawNode, 0, len(list))
	for i, item := range list {
		n, err := DecodeNode(item, childAt(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeMapping(m map[string]any, path string) (RawNode, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := nodeFields[k]; !ok {
			return RawNode{}, fmt.Errorf("phase=raw path=%s: %w: unknown field %q", path, ErrInvalidNode, k)
		}
	}

	var n RawNode
	var err error
	if n.Kind, err = stringField(m, "kind", path); err != nil {
		return RawNode{}, err
	}
	if n.Slot, err = stringField(m, "slot", path); err != nil {
		return RawNode{}, err
	}
	for _, f := range []struct {
		key string
		dst **string
	}{{"markdown", &n.Markdown}, {"html", &n.HTML}} {
		if _, ok := m[f.key]; !ok {
			continue
		}
		s, err := stringField(m, f.key, path)
		if err != nil {
			return RawNode{}, err
		}
		*f.dst = &s
	}
	if n.Attrs, err = mappingField(m, "attrs", path); err != nil {
		return RawNode{}, err
	}
	if n.With, err = mappingField(m, "with", path); err != nil {
		return RawNode{}, err
	}
	if c, ok := m["children"]; ok {
		if n.Children, err = DecodeChildren(c, path); err != nil {
			return RawNode{}, err
		}
		if n.Children == nil {
			n.Children = []RawNode{}
		}
	}
	if p, ok := m["page"]; ok {
		page, err := DecodeNode(p, path+"/page")
		if err != nil {
			return RawNode{}, err
		}
		n.Page = &page
	}
	return n, nil
}

func stringField(m map[string]any, key, path string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("phase=raw path=%s: %w: %s must be a string, got %T", path, ErrInvalidNode, key, v)
	}
	return s, nil
}

func mappingField(m map[string]any, key, path string) (map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	mm, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("phase=raw path=%s: %w: %s must be a mapping, got %T", path, ErrInvalidNode, key, v)
	}
	return mm, nil
}
