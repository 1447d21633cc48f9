package dsl

import (
	"fmt"

	"github.com/k-yle/jsx-pdf/pkg/jsxpdf"
	"github.com/rs/zerolog"
)

// Engine turns raw definitions into jsxpdf trees. Each registered component
// becomes a jsxpdf.Component whose identity is stable for the engine's
// lifetime.
type Engine struct {
	registry   *Registry
	components map[string]jsxpdf.Component
	scripts    map[string]*script
	log        zerolog.Logger
}

// NewEngine validates every registered component, compiles scripts and
// checks for reference cycles.
func NewEngine(reg *Registry, log zerolog.Logger) (*Engine, error) {
	e := &Engine{
		registry:   reg,
		components: make(map[string]jsxpdf.Component),
		scripts:    make(map[string]*script),
		log:        log,
	}

	for _, name := range reg.Names() {
		def, _ := reg.Get(name)
		path := "components/" + name
		switch {
		case (def.Body == nil) == (def.Script == ""):
			return nil, fmt.Errorf("phase=raw path=%s: %w: component must define exactly one of: body or script", path, ErrInvalidNode)
		case def.Body != nil:
			if err := ValidateRawNode(*def.Body, true, path+"/body"); err != nil {
				return nil, err
			}
			if err := linkNode(*def.Body, reg, path+"/body"); err != nil {
				return nil, err
			}
		default:
			s, err := compileScript(name, def.Script, log)
			if err != nil {
				return nil, err
			}
			e.scripts[name] = s
		}
		e.components[name] = e.component(name, def)
	}

	if err := detectCycles(reg); err != nil {
		return nil, err
	}
	return e, nil
}

// Build validates and links the document node and returns the element tree
// ready for resolution.
func (e *Engine) Build(raw RawNode) (jsxpdf.Node, error) {
	const path = "document"

	if err := ValidateRawNode(raw, false, path); err != nil {
		return jsxpdf.Node{}, err
	}
	if raw.Kind == "" {
		return jsxpdf.Node{}, fmt.Errorf("phase=raw path=%s: %w: document must be a node with a kind", path, ErrInvalidNode)
	}
	if err := linkNode(raw, e.registry, path); err != nil {
		return jsxpdf.Node{}, err
	}

	v, err := e.build(raw, nil, nil, path)
	if err != nil {
		return jsxpdf.Node{}, err
	}
	e.log.Debug().Str("kind", raw.Kind).Int("components", len(e.components)).Msg("document built")
	return v.(jsxpdf.Node), nil
}

// Component returns the compiled component registered under name.
func (e *Engine) Component(name string) (jsxpdf.Component, bool) {
	c, ok := e.components[name]
	return c, ok
}

// Registry returns the registry the engine was built from.
func (e *Engine) Registry() *Registry {
	return e.registry
}
