package jsxpdf

import (
	"errors"
	"reflect"
	"testing"
)

func TestMapIntrinsic(t *testing.T) {
	children := []any{"a", map[string]any{"text": "b"}}
	tests := []struct {
		tag      Tag
		attrs    Props
		children []any
		want     any
	}{
		{Stack, Props{"margin": 5}, children, map[string]any{"stack": children, "margin": 5}},
		{Header, nil, children, map[string]any{"stack": children}},
		{Cell, Props{"colSpan": 2}, children, map[string]any{"stack": children, "colSpan": 2}},
		{Item, nil, children, map[string]any{"stack": children}},
		{Columns, Props{"columnGap": 10}, children, map[string]any{"columns": children, "columnGap": 10}},
		{Text, Props{"bold": true}, []any{"only"}, map[string]any{"text": "only", "bold": true}},
		{Text, nil, []any{42}, map[string]any{"text": 42}},
		{Text, nil, children, map[string]any{"text": children}},
		{Text, nil, []any{map[string]any{"text": "nested"}}, map[string]any{"text": []any{map[string]any{"text": "nested"}}}},
		{Image, Props{"src": "logo.png", "width": 100}, nil, map[string]any{"image": "logo.png", "width": 100}},
		{SVG, Props{"content": "<svg/>", "fit": []any{10, 10}}, nil, map[string]any{"svg": "<svg/>", "fit": []any{10, 10}}},
		{QR, Props{"content": "https://example.com", "eccLevel": "M"}, nil, map[string]any{"qr": "https://example.com", "eccLevel": "M"}},
		{List, Props{"type": "square"}, children, map[string]any{"ul": children, "type": "square"}},
		{Ordered, nil, children, map[string]any{"ol": children}},
		{Row, Props{"ignored": true}, children, children},
		{Table, Props{"widths": []any{"*"}}, children, map[string]any{"table": map[string]any{"body": children, "widths": []any{"*"}}}},
		{Tag("unknown"), Props{"x": 1}, children, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			got, err := mapIntrinsic(tt.tag, tt.attrs, tt.children, "test")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestMapIntrinsic_AttributesOverrideShapeKey(t *testing.T) {
	got, err := mapIntrinsic(Stack, Props{"stack": "override"}, []any{"a"}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := map[string]any{"stack": "override"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestMapIntrinsic_DocumentIsRejected(t *testing.T) {
	_, err := mapIntrinsic(Document, nil, nil, "test")
	if !errors.Is(err, ErrRootType) {
		t.Fatalf("expected ErrRootType, got %v", err)
	}
}
