package dslyaml

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dsl"
	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
	"github.com/rs/zerolog"

	"gopkg.in/yaml.v3"
)

// Document is the Go-level representation of a parsed DSL file.
//
// A file is a mapping with a "components" key, a "document" key, or both.
// Component libraries carry only components; the file being rendered carries
// the document.
type Document struct {
	Components map[string]dsl.ComponentDef
	Document   *dsl.RawNode
}

var (
	topLevelKeys  = []string{"components", "document"}
	componentKeys = []string{"params", "provide", "body", "script"}
)

// ---- Parse -----------------------------------------------------------------

// Parse parses a YAML document.
func Parse(in []byte) (Document, error) {
	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	if len(docNode.Content) == 0 {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: empty YAML")
	}
	root := docNode.Content[0]
	if root.Kind != yaml.MappingNode {
		return Document{}, fmt.Errorf("phase=parse path=<doc> line=%d: expected a mapping with components and/or document", root.Line)
	}

	fields, err := mappingFields(root, "<doc>", topLevelKeys)
	if err != nil {
		return Document{}, err
	}

	var out Document
	if n, ok := fields["components"]; ok {
		if out.Components, err = parseComponents(n); err != nil {
			return Document{}, err
		}
	}
	if n, ok := fields["document"]; ok {
		raw, err := decodeNode(n, "document")
		if err != nil {
			return Document{}, err
		}
		out.Document = &raw
	}
	return out, nil
}

func parseComponents(n *yaml.Node) (map[string]dsl.ComponentDef, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("phase=parse path=components line=%d: expected a mapping of component names", n.Line)
	}
	out := make(map[string]dsl.ComponentDef, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		path := "components/" + name
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("phase=parse path=%s line=%d: %w: %s", path, n.Content[i].Line, dsl.ErrComponentExists, name)
		}
		def, err := parseComponent(n.Content[i+1], path)
		if err != nil {
			return nil, err
		}
		out[name] = def
	}
	return out, nil
}

func parseComponent(n *yaml.Node, path string) (dsl.ComponentDef, error) {
	fields, err := mappingFields(n, path, componentKeys)
	if err != nil {
		return dsl.ComponentDef{}, err
	}

	var def dsl.ComponentDef
	if p, ok := fields["params"]; ok {
		// A YAML null (~) is decoded as nil, meaning the parameter is required.
		var params map[string]any
		if err := p.Decode(&params); err != nil {
			return dsl.ComponentDef{}, fmt.Errorf("phase=parse path=%s/params line=%d: %w", path, p.Line, err)
		}
		for k := range params {
			if !isIdentifier(k) {
				return dsl.ComponentDef{}, fmt.Errorf("phase=parse path=%s/params line=%d: param %q must be a valid identifier", path, p.Line, k)
			}
		}
		def.Params = params
	}
	if p, ok := fields["provide"]; ok {
		if err := p.Decode(&def.Provide); err != nil {
			return dsl.ComponentDef{}, fmt.Errorf("phase=parse path=%s/provide line=%d: %w", path, p.Line, err)
		}
	}
	if b, ok := fields["body"]; ok {
		raw, err := decodeNode(b, path+"/body")
		if err != nil {
			return dsl.ComponentDef{}, err
		}
		def.Body = &raw
	}
	if s, ok := fields["script"]; ok {
		if s.Kind != yaml.ScalarNode {
			return dsl.ComponentDef{}, fmt.Errorf("phase=parse path=%s/script line=%d: script must be a string", path, s.Line)
		}
		def.Script = s.Value
	}
	return def, nil
}

// decodeNode decodes a node value through the generic decoder, adding the
// source line to errors.
func decodeNode(n *yaml.Node, path string) (dsl.RawNode, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return dsl.RawNode{}, fmt.Errorf("phase=parse path=%s line=%d: %w", path, n.Line, err)
	}
	raw, err := dsl.DecodeNode(v, path)
	if err != nil {
		return dsl.RawNode{}, fmt.Errorf("line=%d: %w", n.Line, err)
	}
	return raw, nil
}

// mappingFields returns the values of a mapping node by key, rejecting keys
// outside allowed.
func mappingFields(n *yaml.Node, path string, allowed []string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("phase=parse path=%s line=%d: expected a mapping", path, n.Line)
	}
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
			}
		}
		if !known {
			return nil, fmt.Errorf("phase=parse path=%s line=%d: unknown key %q, expected one of: %s", path, key.Line, key.Value, strings.Join(allowed, ", "))
		}
		out[key.Value] = n.Content[i+1]
	}
	return out, nil
}

// isIdentifier reports whether s can be referenced as {{ .params.s }}.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// ---- Files -----------------------------------------------------------------

// ParseFile reads and parses a single file.
func ParseFile(path string) (Document, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	doc, err := Parse(in)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadDir parses every .yml and .yaml file in dir, in name order. A missing
// directory yields no documents.
func LoadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yml" || ext == ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		doc, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ---- Build -----------------------------------------------------------------

// NewRegistryFromDocuments creates a Registry and registers all components
// from the provided documents. Returns an error if the same component name
// appears in more than one document.
func NewRegistryFromDocuments(docs ...Document) (*dsl.Registry, error) {
	reg := dsl.NewRegistry()
	for _, doc := range docs {
		names := make([]string, 0, len(doc.Components))
		for name := range doc.Components {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := reg.Register(name, doc.Components[name]); err != nil {
				return nil, fmt.Errorf("phase=parse path=components/%s: register component: %w", name, err)
			}
		}
	}
	return reg, nil
}

// Build parses a single YAML document and returns the element tree together
// with the engine that compiled it.
func Build(in []byte, log zerolog.Logger) (jsxpdf.Node, *dsl.Engine, error) {
	doc, err := Parse(in)
	if err != nil {
		return jsxpdf.Node{}, nil, err
	}
	return BuildFromDocuments(log, doc)
}

// BuildFromDocuments builds the element tree from already-parsed documents.
// Components are merged across all documents; exactly one of them must carry
// the document.
func BuildFromDocuments(log zerolog.Logger, docs ...Document) (jsxpdf.Node, *dsl.Engine, error) {
	var root *dsl.RawNode
	for _, doc := range docs {
		if doc.Document == nil {
			continue
		}
		if root != nil {
			return jsxpdf.Node{}, nil, fmt.Errorf("phase=parse path=<doc>: more than one document defined")
		}
		root = doc.Document
	}
	if root == nil {
		return jsxpdf.Node{}, nil, fmt.Errorf("phase=parse path=<doc>: missing 'document'")
	}

	eng, err := NewEngineFromDocuments(log, docs...)
	if err != nil {
		return jsxpdf.Node{}, nil, err
	}
	node, err := eng.Build(*root)
	if err != nil {
		return jsxpdf.Node{}, nil, err
	}
	return node, eng, nil
}

// NewEngineFromDocuments registers the components of docs and compiles them.
func NewEngineFromDocuments(log zerolog.Logger, docs ...Document) (*dsl.Engine, error) {
	reg, err := NewRegistryFromDocuments(docs...)
	if err != nil {
		return nil, err
	}
	return dsl.NewEngine(reg, log)
}
