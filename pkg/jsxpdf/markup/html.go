package markup

import (
	"fmt"
	"strings"

	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML converts an HTML fragment into a stack of intrinsic nodes. Unknown
// elements contribute their content; script and style are dropped.
var HTML jsxpdf.Component = func(props jsxpdf.Props, _ jsxpdf.Context, _ jsxpdf.UpdateFunc) (any, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(source(props)), body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var blocks []any
	for _, n := range nodes {
		blocks = append(blocks, convertHTML(n, false)...)
	}
	return jsxpdf.Build(jsxpdf.Stack, rest(props), blocks), nil
}

var inlineStyle = map[atom.Atom]jsxpdf.Props{
	atom.B:      {"bold": true},
	atom.Strong: {"bold": true},
	atom.I:      {"italics": true},
	atom.Em:     {"italics": true},
	atom.U:      {"decoration": "underline"},
	atom.S:      {"decoration": "lineThrough"},
	atom.Del:    {"decoration": "lineThrough"},
	atom.Code:   {"style": "code"},
	atom.Small:  {"style": "small"},
}

func convertHTML(n *html.Node, pre bool) []any {
	switch n.Type {
	case html.TextNode:
		if pre {
			return []any{n.Data}
		}
		s := collapseSpace(n.Data)
		if strings.TrimSpace(s) == "" && !inlineContext(n) {
			return nil
		}
		return []any{s}
	case html.ElementNode:
	default:
		return nil
	}

	children := func(pre bool) []any {
		var out []any
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out = append(out, convertHTML(c, pre)...)
		}
		return out
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title:
		return nil
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return []any{jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"style": n.Data}, children(false))}
	case atom.P:
		return []any{jsxpdf.Build(jsxpdf.Text, nil, children(false))}
	case atom.Pre:
		return []any{jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"style": "code", "preserveLeadingSpaces": true}, children(true))}
	case atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer, atom.Nav, atom.Aside:
		return []any{jsxpdf.Build(jsxpdf.Stack, nil, children(false))}
	case atom.Blockquote:
		return []any{jsxpdf.Build(jsxpdf.Stack, jsxpdf.Props{"style": "quote"}, children(false))}
	case atom.Ul:
		return []any{jsxpdf.Build(jsxpdf.List, nil, elements(n, atom.Li, pre))}
	case atom.Ol:
		attrs := jsxpdf.Props{}
		if start := attr(n, "start"); start != "" {
			attrs["start"] = start
		}
		return []any{jsxpdf.Build(jsxpdf.Ordered, attrs, elements(n, atom.Li, pre))}
	case atom.Li:
		return []any{jsxpdf.Build(jsxpdf.Item, nil, children(false))}
	case atom.Table:
		return []any{htmlTable(n)}
	case atom.Img:
		attrs := jsxpdf.Props{"src": attr(n, "src")}
		if w := attr(n, "width"); w != "" {
			attrs["width"] = w
		}
		return []any{jsxpdf.Build(jsxpdf.Image, attrs)}
	case atom.Br:
		return []any{"\n"}
	case atom.Hr:
		return nil
	case atom.A:
		return []any{jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"link": attr(n, "href")}, children(pre))}
	}
	if style, ok := inlineStyle[n.DataAtom]; ok {
		return []any{jsxpdf.Build(jsxpdf.Text, style, children(pre))}
	}
	return children(pre)
}

func htmlTable(n *html.Node) any {
	var rows []any
	headerRows := 0
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, header bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead:
				walk(c, true)
			case atom.Tbody, atom.Tfoot:
				walk(c, false)
			case atom.Tr:
				var cells []any
				allHeadings := true
				for td := c.FirstChild; td != nil; td = td.NextSibling {
					if td.Type != html.ElementNode || (td.DataAtom != atom.Td && td.DataAtom != atom.Th) {
						continue
					}
					if td.DataAtom != atom.Th {
						allHeadings = false
					}
					attrs := jsxpdf.Props{}
					if span := attr(td, "colspan"); span != "" {
						attrs["colSpan"] = span
					}
					var inner []any
					for x := td.FirstChild; x != nil; x = x.NextSibling {
						inner = append(inner, convertHTML(x, false)...)
					}
					cells = append(cells, jsxpdf.Build(jsxpdf.Cell, attrs, inner))
				}
				if (header || allHeadings && len(cells) > 0) && headerRows == len(rows) {
					headerRows++
				}
				rows = append(rows, jsxpdf.Build(jsxpdf.Row, nil, cells))
			}
		}
	}
	walk(n, false)

	attrs := jsxpdf.Props{}
	if headerRows > 0 {
		attrs["headerRows"] = headerRows
	}
	return jsxpdf.Build(jsxpdf.Table, attrs, rows)
}

// elements converts the element children of n with the given atom, skipping
// whitespace between them.
func elements(n *html.Node, a atom.Atom, pre bool) []any {
	var out []any
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, convertHTML(c, pre)...)
		}
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

// inlineContext reports whether whitespace around n is significant, which is
// the case when one of its siblings is text or an inline element.
func inlineContext(n *html.Node) bool {
	p := n.Parent
	if p == nil {
		return false
	}
	switch p.DataAtom {
	case atom.P, atom.Li, atom.Td, atom.Th, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.A, atom.Span:
		return true
	}
	_, ok := inlineStyle[p.DataAtom]
	return ok
}
