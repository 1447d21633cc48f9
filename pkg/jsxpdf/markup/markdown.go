package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// SourceKey is the attribute holding the markup source. When absent the
// node's text children are concatenated instead.
const SourceKey = "source"

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown converts Markdown source into a stack of intrinsic nodes.
// Remaining attributes are kept on the stack.
var Markdown jsxpdf.Component = func(props jsxpdf.Props, _ jsxpdf.Context, _ jsxpdf.UpdateFunc) (any, error) {
	src := []byte(source(props))
	doc := md.Parser().Parse(text.NewReader(src))

	c := mdConverter{src: src}
	var blocks []any
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = append(blocks, c.block(n))
	}
	return jsxpdf.Build(jsxpdf.Stack, rest(props), blocks), nil
}

type mdConverter struct {
	src []byte
}

func (c mdConverter) block(n ast.Node) any {
	switch node := n.(type) {
	case *ast.Heading:
		return jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"style": fmt.Sprintf("h%d", node.Level)}, c.inlines(n))
	case *ast.Paragraph, *ast.TextBlock:
		return jsxpdf.Build(jsxpdf.Text, nil, c.inlines(n))
	case *ast.List:
		tag := jsxpdf.List
		attrs := jsxpdf.Props{}
		if node.IsOrdered() {
			tag = jsxpdf.Ordered
			if node.Start > 1 {
				attrs["start"] = node.Start
			}
		}
		var items []any
		for li := n.FirstChild(); li != nil; li = li.NextSibling() {
			var parts []any
			for b := li.FirstChild(); b != nil; b = b.NextSibling() {
				parts = append(parts, c.block(b))
			}
			items = append(items, jsxpdf.Build(jsxpdf.Item, nil, parts))
		}
		return jsxpdf.Build(tag, attrs, items)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"style": "code", "preserveLeadingSpaces": true},
			strings.TrimSuffix(c.lines(n), "\n"))
	case *ast.Blockquote:
		var parts []any
		for b := n.FirstChild(); b != nil; b = b.NextSibling() {
			parts = append(parts, c.block(b))
		}
		return jsxpdf.Build(jsxpdf.Stack, jsxpdf.Props{"style": "quote"}, parts)
	case *east.Table:
		return c.table(node)
	case *ast.ThematicBreak, *ast.HTMLBlock:
		return nil
	}
	return jsxpdf.Build(jsxpdf.Text, nil, c.inlines(n))
}

func (c mdConverter) table(t *east.Table) any {
	var rows []any
	headerRows := 0
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		if _, ok := r.(*east.TableHeader); ok {
			headerRows++
		}
		var cells []any
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, jsxpdf.Build(jsxpdf.Cell, nil, jsxpdf.Build(jsxpdf.Text, nil, c.inlines(cell))))
		}
		rows = append(rows, jsxpdf.Build(jsxpdf.Row, nil, cells))
	}
	attrs := jsxpdf.Props{}
	if headerRows > 0 {
		attrs["headerRows"] = headerRows
	}
	return jsxpdf.Build(jsxpdf.Table, attrs, rows)
}

func (c mdConverter) inlines(n ast.Node) []any {
	var out []any
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.inline(child)...)
	}
	return out
}

func (c mdConverter) inline(n ast.Node) []any {
	switch node := n.(type) {
	case *ast.Text:
		out := []any{string(node.Segment.Value(c.src))}
		switch {
		case node.HardLineBreak():
			out = append(out, "\n")
		case node.SoftLineBreak():
			out = append(out, " ")
		}
		return out
	case *ast.String:
		return []any{string(node.Value)}
	case *ast.Emphasis:
		key := "italics"
		if node.Level >= 2 {
			key = "bold"
		}
		return []any{jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{key: true}, c.inlines(n))}
	case *east.Strikethrough:
		return []any{jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"decoration": "lineThrough"}, c.inlines(n))}
	case *ast.CodeSpan:
		return []any{jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"style": "code"}, c.inlines(n))}
	case *ast.Link:
		return []any{jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"link": string(node.Destination)}, c.inlines(n))}
	case *ast.AutoLink:
		url := string(node.URL(c.src))
		return []any{jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"link": url}, url)}
	case *ast.Image:
		return []any{jsxpdf.Build(jsxpdf.Image, jsxpdf.Props{"src": string(node.Destination)})}
	case *east.TaskCheckBox:
		if node.IsChecked {
			return []any{"[x] "}
		}
		return []any{"[ ] "}
	case *ast.RawHTML:
		return nil
	}
	return c.inlines(n)
}

func (c mdConverter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.src))
	}
	return buf.String()
}

// source returns the markup held by the node.
func source(props jsxpdf.Props) string {
	if s, ok := props[SourceKey].(string); ok {
		return s
	}
	var b strings.Builder
	for _, child := range props.Children() {
		switch v := child.(type) {
		case string:
			b.WriteString(v)
		case nil:
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

// rest returns the attributes other than the source and children.
func rest(props jsxpdf.Props) jsxpdf.Props {
	out := jsxpdf.Props{}
	for k, v := range props {
		if k == SourceKey || k == jsxpdf.ChildrenKey {
			continue
		}
		out[k] = v
	}
	return out
}
