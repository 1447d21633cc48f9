package jsxpdf

import (
	"math"
	"reflect"
	"testing"
)

func TestAppendChild(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   []any
	}{
		{"adjacent strings join", []any{"a", "b", "c"}, []any{"abc"}},
		{"numbers join as text", []any{123, 456}, []any{"123456"}},
		{"mixed numbers and strings", []any{"x", 1.5, int64(2)}, []any{"x1.52"}},
		{"empty string joins", []any{"a", "", "b"}, []any{"ab"}},
		{"zero joins", []any{"a", 0, "b"}, []any{"a0b"}},
		{"nil dropped", []any{"a", nil, "b"}, []any{"ab"}},
		{"false dropped", []any{"a", false, "b"}, []any{"ab"}},
		{"true dropped", []any{"a", true, "b"}, []any{"ab"}},
		{"NaN dropped", []any{"a", math.NaN(), "b"}, []any{"ab"}},
		{"infinity is text", []any{"a", math.Inf(1)}, []any{"aInfinity"}},
		{"single zero kept as number", []any{0}, []any{0}},
		{"single empty string kept", []any{""}, []any{""}},
		{"shape breaks a text run", []any{"a", map[string]any{"text": "b"}, "c"}, []any{"a", map[string]any{"text": "b"}, "c"}},
		{"raw sequence appended", []any{[]any{"cell"}, "x"}, []any{[]any{"cell"}, "x"}},
		{"empty sequence kept", []any{[]any{}}, []any{[]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := make([]any, 0)
			for _, v := range tt.values {
				acc = appendChild(acc, v)
			}
			if !reflect.DeepEqual(acc, tt.want) {
				t.Fatalf("expected %#v, got %#v", tt.want, acc)
			}
		})
	}
}

func TestIsAbsent(t *testing.T) {
	absent := []any{nil, false, true, math.NaN(), float32(math.NaN()), []any(nil), map[string]any(nil)}
	for _, v := range absent {
		if !isAbsent(v) {
			t.Errorf("expected %#v to be absent", v)
		}
	}
	present := []any{"", 0, 0.0, "x", []any{}, map[string]any{}}
	for _, v := range present {
		if isAbsent(v) {
			t.Errorf("expected %#v to be present", v)
		}
	}
}
