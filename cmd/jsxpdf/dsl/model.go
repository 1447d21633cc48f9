package dsl

import (
	"sort"

	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
)

var intrinsics = map[string]jsxpdf.Tag{}

func init() {
	for _, t := range []jsxpdf.Tag{
		jsxpdf.Document, jsxpdf.Header, jsxpdf.Content, jsxpdf.Footer,
		jsxpdf.Stack, jsxpdf.Columns, jsxpdf.Text, jsxpdf.Image, jsxpdf.SVG, jsxpdf.QR,
		jsxpdf.Table, jsxpdf.Row, jsxpdf.Cell, jsxpdf.List, jsxpdf.Ordered, jsxpdf.Item,
	} {
		intrinsics[string(t)] = t
	}
}

// intrinsic returns the tag named name.
func intrinsic(name string) (jsxpdf.Tag, bool) {
	t, ok := intrinsics[name]
	return t, ok
}

// Intrinsics returns the sorted names of all intrinsic kinds.
func Intrinsics() []string {
	out := make([]string, 0, len(intrinsics))
	for name := range intrinsics {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// isSection reports whether name may carry a page body.
func isSection(name string) bool {
	return name == string(jsxpdf.Header) || name == string(jsxpdf.Footer)
}
