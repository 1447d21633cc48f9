package dsl

import "fmt"

// ComponentDef holds a named component definition: its parameter
// declarations, the context values it provides to its subtree, and either a
// node Body or a Starlark Script.
type ComponentDef struct {
	// Params declares the parameters this component accepts.
	// See ParamDefs for the required/optional convention.
	Params ParamDefs

	// Provide is merged into the branch context before the body expands.
	// String values support template substitution with params and context.
	Provide map[string]any

	// Body is the RawNode the component expands to. All strings in Body
	// support template substitution:
	//   {{ .params.name }}   the resolved parameter
	//   {{ .context.key }}   the branch context, including Provide
	//   {{ .children }}      the child sequence passed by the caller
	Body *RawNode

	// Script is Starlark source defining render(props, context). The
	// returned value is decoded as a node, a list of nodes, or a scalar.
	Script string
}

// ParamDefs maps parameter names to their default value.
//
//   - nil value  → the parameter is required; the caller MUST supply it.
//   - non-nil    → the parameter is optional with that value as its default.
type ParamDefs map[string]any

// applyParamDefs checks the caller-supplied props against the declared
// ParamDefs, fills in defaults, and returns the final resolved map.
func applyParamDefs(defs ParamDefs, callerParams map[string]any) (map[string]any, error) {
	// Reject unknown parameters (strict validation: any param not declared
	// in the component definition is an error).
	for k := range callerParams {
		if _, declared := defs[k]; !declared {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParam, k)
		}
	}

	result := make(map[string]any, len(defs))

	for name, defaultVal := range defs {
		if v, provided := callerParams[name]; provided {
			result[name] = v
		} else if defaultVal != nil {
			result[name] = defaultVal
		} else {
			return nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
	}

	return result, nil
}
