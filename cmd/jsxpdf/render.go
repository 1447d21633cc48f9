package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dslyaml"
	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
	"github.com/rs/zerolog"
)

type renderOptions struct {
	Pages    int
	PageSize PageSize
	MaxDepth int
}

// resolveDocuments builds the document carried by one of docs and resolves
// it. Header and footer bodies that depend on the page stay deferred.
func resolveDocuments(ctx context.Context, log zerolog.Logger, maxDepth int, docs ...dslyaml.Document) (jsxpdf.Definition, error) {
	root, _, err := dslyaml.BuildFromDocuments(log.With().Str("component", "dsl").Logger(), docs...)
	if err != nil {
		return nil, err
	}
	return jsxpdf.ResolvePDF(ctx, root,
		jsxpdf.WithLogger(log.With().Str("component", "resolver").Logger()),
		jsxpdf.WithMaxDepth(maxDepth),
	)
}

// renderDocuments resolves docs and expands deferred sections for each
// preview page.
func renderDocuments(ctx context.Context, log zerolog.Logger, opts renderOptions, docs ...dslyaml.Document) (map[string]any, error) {
	def, err := resolveDocuments(ctx, log, opts.MaxDepth, docs...)
	if err != nil {
		return nil, err
	}
	return def.Snapshot(opts.Pages, opts.PageSize.value())
}

// pageDefinition returns def as seen on one page: deferred sections are
// evaluated for page of pages.
func pageDefinition(def jsxpdf.Definition, page, pages int, pageSize any) (map[string]any, error) {
	out := make(map[string]any, len(def))
	for k, v := range def {
		fn, ok := v.(jsxpdf.DynamicSection)
		if !ok {
			out[k] = v
			continue
		}
		shape, err := fn(page, pages, pageSize)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", k, page, err)
		}
		out[k] = shape
	}
	return out, nil
}

// loadDocumentFile parses the document file at path and returns it after the
// app's component libraries.
func (a *app) loadDocumentFile(path string) ([]dslyaml.Document, error) {
	docs, err := a.libraries()
	if err != nil {
		return nil, err
	}
	doc, err := dslyaml.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return append(docs, doc), nil
}

// renderFile renders the document file at path against the app's component
// libraries.
func (a *app) renderFile(ctx context.Context, path string, opts renderOptions) (map[string]any, error) {
	docs, err := a.loadDocumentFile(path)
	if err != nil {
		return nil, err
	}
	return renderDocuments(ctx, a.log, opts, docs...)
}

func marshalDefinition(def map[string]any, compact bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if compact {
		out, err = json.Marshal(def)
	} else {
		out, err = json.MarshalIndent(def, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encoding definition: %w", err)
	}
	return append(out, '\n'), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
