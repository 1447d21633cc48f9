package dslyaml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dsl"
	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func requireResolveOK(t *testing.T, yml string) jsxpdf.Definition {
	t.Helper()
	root, _, err := Build([]byte(yml), zerolog.Nop())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	def, err := jsxpdf.ResolvePDF(context.Background(), root)
	if err != nil {
		t.Fatalf("expected resolution success, got error: %v", err)
	}
	return def
}

func requireBuildErr(t *testing.T, yml string, wantSubstrs ...string) error {
	t.Helper()
	_, _, err := Build([]byte(yml), zerolog.Nop())
	if err == nil {
		t.Fatalf("expected error but got none")
	}
	for _, sub := range wantSubstrs {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("error %q does not contain %q", err.Error(), sub)
		}
	}
	return err
}

func requireParseOK(t *testing.T, yml string) Document {
	t.Helper()
	doc, err := Parse([]byte(yml))
	if err != nil {
		t.Fatalf("expected parse success, got: %v", err)
	}
	return doc
}

func requireParseErr(t *testing.T, yml string, wantSubstrs ...string) {
	t.Helper()
	_, err := Parse([]byte(yml))
	if err == nil {
		t.Fatalf("expected parse error but got none")
	}
	for _, sub := range wantSubstrs {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("parse error %q does not contain %q", err.Error(), sub)
		}
	}
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

func TestParse_TopLevelStructure(t *testing.T) {
	t.Run("components and document", func(t *testing.T) {
		doc := requireParseOK(t, `
components:
  title:
    params: { text: ~, size: 18 }
    body:
      kind: text
      attrs: { fontSize: "{{ .params.size }}" }
      children: ["{{ .params.text }}"]
document:
  kind: document
  children:
    - kind: content
      children:
        - kind: title
          with: { text: Report }
`)
		def, ok := doc.Components["title"]
		if !ok {
			t.Fatalf("expected component title, got %#v", doc.Components)
		}
		if want := (dsl.ParamDefs{"text": nil, "size": 18}); !reflect.DeepEqual(def.Params, want) {
			t.Fatalf("expected params %#v, got %#v", want, def.Params)
		}
		if def.Body == nil || def.Body.Kind != "text" {
			t.Fatalf("unexpected body %#v", def.Body)
		}
		if doc.Document == nil || doc.Document.Kind != "document" {
			t.Fatalf("unexpected document %#v", doc.Document)
		}
	})

	t.Run("library without document", func(t *testing.T) {
		doc := requireParseOK(t, "components:\n  x:\n    body: { kind: text }\n")
		if doc.Document != nil {
			t.Fatalf("expected no document, got %#v", doc.Document)
		}
	})

	t.Run("empty", func(t *testing.T) {
		requireParseErr(t, "", "phase=parse", "empty YAML")
	})

	t.Run("sequence root", func(t *testing.T) {
		requireParseErr(t, "- a\n- b\n", "expected a mapping")
	})

	t.Run("unknown top-level key", func(t *testing.T) {
		requireParseErr(t, "nodes: []\n", `unknown key "nodes"`, "line=1")
	})

	t.Run("unknown component key", func(t *testing.T) {
		requireParseErr(t, "components:\n  x:\n    template: {}\n", "path=components/x", `unknown key "template"`, "line=3")
	})

	t.Run("duplicate component in one file", func(t *testing.T) {
		requireParseErr(t, "components:\n  x: { body: { kind: text } }\n  x: { body: { kind: text } }\n", "component already exists")
	})

	t.Run("param must be an identifier", func(t *testing.T) {
		requireParseErr(t, "components:\n  x:\n    params: { my-param: ~ }\n    body: { kind: text }\n", `"my-param"`, "identifier")
	})

	t.Run("node errors carry the line", func(t *testing.T) {
		requireParseErr(t, "document:\n  kind: document\n  colour: red\n", "line=2", "phase=raw", `"colour"`)
	})
}

// ---------------------------------------------------------------------------
// Building and resolving
// ---------------------------------------------------------------------------

func TestBuild_ComponentsAndTemplates(t *testing.T) {
	def := requireResolveOK(t, `
components:
  title:
    params: { text: ~, size: 18 }
    body:
      kind: text
      attrs: { fontSize: "{{ .params.size }}", bold: true }
      children: ["{{ .params.text }}"]
document:
  kind: document
  attrs: { pageSize: A4 }
  children:
    - kind: content
      children:
        - kind: title
          with: { text: Report }
        - "Plain "
        - 42
`)
	want := jsxpdf.Definition{
		"pageSize": "A4",
		"content": map[string]any{"stack": []any{
			map[string]any{"text": "Report", "fontSize": 18, "bold": true},
			"Plain 42",
		}},
	}
	if !reflect.DeepEqual(def, want) {
		t.Fatalf("expected %#v, got %#v", want, def)
	}
}

func TestBuild_PageBody(t *testing.T) {
	def := requireResolveOK(t, `
document:
  kind: document
  children:
    - kind: footer
      attrs: { alignment: center }
      page: "{{ .page }} of {{ .pages }}"
    - kind: content
      children: [body]
`)
	snap, err := def.Snapshot(2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{
		map[string]any{"stack": []any{"1 of 2"}, "alignment": "center"},
		map[string]any{"stack": []any{"2 of 2"}, "alignment": "center"},
	}
	if !reflect.DeepEqual(snap["footer"], want) {
		t.Fatalf("expected %#v, got %#v", want, snap["footer"])
	}
}

func TestBuild_ScriptComponent(t *testing.T) {
	def := requireResolveOK(t, `
components:
  rows:
    params: { items: ~ }
    script: |
      def render(props, context):
          return {
              "kind": "ul",
              "children": [{"kind": "li", "children": [item]} for item in props["items"]],
          }
document:
  kind: document
  children:
    - kind: content
      children:
        - kind: rows
          with: { items: [a, b] }
`)
	want := map[string]any{"stack": []any{
		map[string]any{"ul": []any{
			map[string]any{"stack": []any{"a"}},
			map[string]any{"stack": []any{"b"}},
		}},
	}}
	if !reflect.DeepEqual(def["content"], want) {
		t.Fatalf("expected %#v, got %#v", want, def["content"])
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Run("missing document", func(t *testing.T) {
		requireBuildErr(t, "components:\n  x: { body: { kind: text } }\n", "missing 'document'")
	})

	t.Run("unknown kind", func(t *testing.T) {
		err := requireBuildErr(t, "document:\n  kind: document\n  children: [{ kind: panel }]\n", "phase=link", "panel")
		if !errors.Is(err, dsl.ErrUnknownKind) {
			t.Fatalf("expected ErrUnknownKind, got %v", err)
		}
	})

	t.Run("cycle", func(t *testing.T) {
		err := requireBuildErr(t, `
components:
  a: { body: { kind: b } }
  b: { body: { kind: a } }
document: { kind: document }
`, "a -> b -> a")
		if !errors.Is(err, dsl.ErrCycleDetected) {
			t.Fatalf("expected ErrCycleDetected, got %v", err)
		}
	})

	t.Run("slot in document", func(t *testing.T) {
		requireBuildErr(t, "document:\n  kind: document\n  children: [{ slot: children }]\n", "inside a component body")
	})
}

func TestBuildFromDocuments_Merging(t *testing.T) {
	lib := requireParseOK(t, "components:\n  hello:\n    body: { kind: text, children: [hello] }\n")
	main := requireParseOK(t, "document:\n  kind: document\n  children: [{ kind: content, children: [{ kind: hello }] }]\n")

	root, eng, err := BuildFromDocuments(zerolog.Nop(), lib, main)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := eng.Component("hello"); !ok {
		t.Fatal("expected hello to be compiled")
	}
	def, err := jsxpdf.ResolvePDF(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"stack": []any{map[string]any{"text": "hello"}}}
	if !reflect.DeepEqual(def["content"], want) {
		t.Fatalf("expected %#v, got %#v", want, def["content"])
	}

	if _, _, err := BuildFromDocuments(zerolog.Nop(), lib, lib, main); !errors.Is(err, dsl.ErrComponentExists) {
		t.Fatalf("expected ErrComponentExists, got %v", err)
	}
	if _, _, err := BuildFromDocuments(zerolog.Nop(), main, main); err == nil {
		t.Fatal("expected an error for two documents")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yml":     "components:\n  second: { body: { kind: text } }\n",
		"a.yaml":    "components:\n  first: { body: { kind: text } }\n",
		"notes.txt": "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if _, ok := docs[0].Components["first"]; !ok {
		t.Fatalf("expected a.yaml first, got %#v", docs[0])
	}

	missing, err := LoadDir(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Fatalf("expected no documents for a missing dir, got %v, %v", missing, err)
	}
}
