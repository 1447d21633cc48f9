// Package jsxpdf resolves declaratively built component trees into the
// nested document definition consumed by a pdfmake-style layout renderer.
//
// A tree is made of Nodes whose Kind is either a symbolic Tag ("text",
// "stack", "table", ...) or a Component function. Resolution repeatedly
// invokes components until a Tag remains, validates placement, resolves
// children depth first against a branch-scoped Context, coalesces adjacent
// text, and maps every tag to its renderer shape:
//
//	doc := jsxpdf.Build(jsxpdf.Document, jsxpdf.Props{"pageSize": "A4"},
//	    jsxpdf.Build(jsxpdf.Content, nil,
//	        jsxpdf.Build(jsxpdf.Text, jsxpdf.Props{"bold": true}, "Hello"),
//	    ),
//	)
//	def, err := jsxpdf.ResolvePDF(ctx, doc)
//
// Only header, content and footer may sit under the document, and the
// document may only be the root. A header or footer whose single child is a
// RenderProp resolves to a DynamicSection evaluated per page.
package jsxpdf
