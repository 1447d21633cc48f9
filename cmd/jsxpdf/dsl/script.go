package dsl

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// maxScriptSteps bounds a single render call.
const maxScriptSteps = 1_000_000

// script is a compiled Starlark component. Module globals are frozen after
// execution, so render may be called from several threads.
type script struct {
	name   string
	render starlark.Callable
	log    zerolog.Logger
}

func compileScript(name, src string, log zerolog.Logger) (*script, error) {
	s := &script{name: name, log: log}
	predeclared := starlark.StringDict{
		"struct": starlarkstruct.Default,
	}
	globals, err := starlark.ExecFile(s.thread(), name+".star", src, predeclared)
	if err != nil {
		return nil, fmt.Errorf("phase=script path=components/%s: %w: %s", name, ErrScript, scriptMessage(err))
	}
	render, ok := globals["render"].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("phase=script path=components/%s: %w: script must define render(props, context)", name, ErrScript)
	}
	s.render = render
	return s, nil
}

func (s *script) thread() *starlark.Thread {
	return &starlark.Thread{
		Name: s.name,
		Print: func(_ *starlark.Thread, msg string) {
			s.log.Debug().Str("component", s.name).Msg(msg)
		},
	}
}

// call runs render and returns its result as plain Go values.
func (s *script) call(params, context map[string]any) (any, error) {
	props, err := toStarlarkValue(params)
	if err != nil {
		return nil, fmt.Errorf("phase=script path=components/%s: %w: props: %v", s.name, ErrScript, err)
	}

	ctx := starlark.NewDict(len(context))
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := toStarlarkValue(context[k])
		if err != nil {
			s.log.Debug().Str("component", s.name).Str("key", k).Err(err).Msg("context value hidden from script")
			continue
		}
		if err := ctx.SetKey(starlark.String(k), v); err != nil {
			return nil, fmt.Errorf("phase=script path=components/%s: %w: %v", s.name, ErrScript, err)
		}
	}

	thread := s.thread()
	thread.SetMaxExecutionSteps(maxScriptSteps)
	out, err := starlark.Call(thread, s.render, starlark.Tuple{props, ctx}, nil)
	if err != nil {
		return nil, fmt.Errorf("phase=script path=components/%s: %w: %s", s.name, ErrScript, scriptMessage(err))
	}
	v, err := fromStarlarkValue(out)
	if err != nil {
		return nil, fmt.Errorf("phase=script path=components/%s: %w: result: %v", s.name, ErrScript, err)
	}
	return v, nil
}

func scriptMessage(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Backtrace()
	}
	return err.Error()
}

func toStarlarkValue(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case bool:
		return starlark.Bool(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case uint64:
		return starlark.MakeUint64(val), nil
	case float64:
		return starlark.Float(val), nil
	case string:
		return starlark.String(val), nil
	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			starlarkItem, err := toStarlarkValue(item)
			if err != nil {
				return nil, err
			}
			list[i] = starlarkItem
		}
		return starlark.NewList(list), nil
	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, v := range val {
			starlarkVal, err := toStarlarkValue(v)
			if err != nil {
				return nil, err
			}
			if err := dict.SetKey(starlark.String(k), starlarkVal); err != nil {
				return nil, err
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

func fromStarlarkValue(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(val), nil
	case starlark.Int:
		i, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer too large")
		}
		return i, nil
	case starlark.Float:
		return float64(val), nil
	case starlark.String:
		return string(val), nil
	case *starlark.List:
		list := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			item, err := fromStarlarkValue(val.Index(i))
			if err != nil {
				return nil, err
			}
			list[i] = item
		}
		return list, nil
	case starlark.Tuple:
		list := make([]any, len(val))
		for i, e := range val {
			item, err := fromStarlarkValue(e)
			if err != nil {
				return nil, err
			}
			list[i] = item
		}
		return list, nil
	case *starlark.Dict:
		dict := make(map[string]any)
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string")
			}
			value, err := fromStarlarkValue(item[1])
			if err != nil {
				return nil, err
			}
			dict[string(key)] = value
		}
		return dict, nil
	case *starlarkstruct.Struct:
		dict := make(map[string]any)
		for _, name := range val.AttrNames() {
			attr, err := val.Attr(name)
			if err != nil {
				continue
			}
			value, err := fromStarlarkValue(attr)
			if err != nil {
				return nil, err
			}
			dict[name] = value
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
	}
}
