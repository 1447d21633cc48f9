package jsxpdf

import "reflect"

// Kind is the sealed identity of a Node. Only Tag and Component implement it.
type Kind interface {
	isKind()
}

// Tag is a symbolic kind understood by the intrinsic mapper.
type Tag string

// Component is a function kind. It receives the node's attributes merged with
// its children, the branch context and an update function, and returns the
// value that replaces the node: another Node, a text primitive, nil, or a
// *Pending value when the component suspends.
type Component func(props Props, ctx Context, update UpdateFunc) (any, error)

func (Tag) isKind()       {}
func (Component) isKind() {}

const (
	Document Tag = "document"
	Header   Tag = "header"
	Content  Tag = "content"
	Footer   Tag = "footer"
	Stack    Tag = "stack"
	Columns  Tag = "columns"
	Text     Tag = "text"
	Image    Tag = "image"
	SVG      Tag = "svg"
	QR       Tag = "qr"
	Table    Tag = "table"
	Row      Tag = "row"
	Cell     Tag = "cell"
	List     Tag = "ul"
	Ordered  Tag = "ol"
	Item     Tag = "li"
)

// ChildrenKey is the props key a Component finds its children under.
const ChildrenKey = "children"

// Props is the attribute mapping of a node. Values are opaque and passed
// through to the renderer untouched.
type Props map[string]any

// Children returns the child sequence stored under ChildrenKey.
func (p Props) Children() []any {
	switch c := p[ChildrenKey].(type) {
	case []any:
		return c
	case nil:
		return nil
	default:
		return flatten(nil, c)
	}
}

// String returns the string value stored under key, or "" when the key is
// missing or holds another type.
func (p Props) String(key string) string {
	s, _ := p[key].(string)
	return s
}

func (p Props) clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Node is an immutable tree element.
type Node struct {
	kind     Kind
	attrs    Props
	children []any
}

// Build constructs a Node. A nil attrs mapping defaults to an empty one and
// children groupings of any depth are flattened into a single sequence; empty
// groupings vanish.
func Build(kind Kind, attrs Props, children ...any) Node {
	if attrs == nil {
		attrs = Props{}
	} else {
		attrs = attrs.clone()
	}
	flat := make([]any, 0, len(children))
	for _, c := range children {
		flat = flatten(flat, c)
	}
	return Node{kind: kind, attrs: attrs, children: flat}
}

// Kind returns the node kind.
func (n Node) Kind() Kind { return n.kind }

// Attributes returns a copy of the node attributes.
func (n Node) Attributes() Props { return n.attrs.clone() }

// Children returns a copy of the flattened child sequence.
func (n Node) Children() []any { return append([]any(nil), n.children...) }

// props merges the attributes with the child sequence for a Component call.
func (n Node) props() Props {
	p := n.attrs.clone()
	p[ChildrenKey] = append([]any(nil), n.children...)
	return p
}

// Fragment groups its children in a stack without adding any attributes.
var Fragment Component = func(props Props, _ Context, _ UpdateFunc) (any, error) {
	return Build(Stack, nil, props.Children()), nil
}

// flatten appends c to dst, expanding slices and arrays recursively. Byte
// slices and strings are left alone.
func flatten(dst []any, c any) []any {
	switch v := c.(type) {
	case []any:
		for _, e := range v {
			dst = flatten(dst, e)
		}
		return dst
	case []Node:
		for _, e := range v {
			dst = append(dst, e)
		}
		return dst
	case Node, string, nil, []byte:
		return append(dst, c)
	}
	rv := reflect.ValueOf(c)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			dst = flatten(dst, rv.Index(i).Interface())
		}
		return dst
	}
	return append(dst, c)
}
