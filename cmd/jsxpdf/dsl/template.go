package dsl

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// fieldRefRe matches a string made of a single field reference, such as
// "{{ .params.width }}". Such strings are replaced by the referenced value
// itself so that numbers, lists and mappings keep their type.
var fieldRefRe = regexp.MustCompile(`^\{\{\s*\.([A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*)\s*\}\}$`)

// substituteValue returns a deep copy of v with template substitution applied
// to every string, including strings nested in lists and mappings.
func substituteValue(v any, data map[string]any) (any, error) {
	switch val := v.(type) {
	case string:
		if m := fieldRefRe.FindStringSubmatch(val); m != nil {
			return lookupField(data, m[1])
		}
		return substituteString(val, data)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			s, err := substituteValue(item, data)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = s
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			s, err := substituteValue(item, data)
			if err != nil {
				return nil, fmt.Errorf("[%s]: %w", k, err)
			}
			out[k] = s
		}
		return out, nil
	default:
		return v, nil
	}
}

// substituteMapping is substituteValue for a mapping. A nil mapping stays nil.
func substituteMapping(m map[string]any, data map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	out, err := substituteValue(m, data)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func lookupField(data map[string]any, path string) (any, error) {
	var cur any = data
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("template execute error in %q: can't evaluate field %s in %T", "{{ ."+path+" }}", key, cur)
		}
		if cur, ok = m[key]; !ok {
			return nil, fmt.Errorf("template execute error in %q: map has no entry for key %q", "{{ ."+path+" }}", key)
		}
	}
	return cur, nil
}

// substituteString applies Go template substitution to s using data as the
// template data. Returns s unchanged if it contains no template markers (fast path).
//
// Using missingkey=error so that a template referencing a param that was not
// resolved surfaces as an explicit error rather than silently producing "<no value>".
func substituteString(s string, data map[string]any) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	t, err := template.New("").Option("missingkey=error").Parse(s)
	if err != nil {
		return "", fmt.Errorf("template parse error in %q: %w", s, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execute error in %q: %w", s, err)
	}
	return buf.String(), nil
}
