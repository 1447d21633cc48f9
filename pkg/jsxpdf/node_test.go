package jsxpdf

import (
	"reflect"
	"testing"
)

func TestBuild_FlattensNestedGroupings(t *testing.T) {
	leaf := Build(Text, nil, "leaf")
	n := Build(Stack, nil,
		"a",
		[]any{"b", []any{}, []any{"c", []any{[]any{"d"}}}},
		[]Node{leaf},
		[]string{"e", "f"},
		[]any{},
		nil,
	)

	want := []any{"a", "b", "c", "d", leaf, "e", "f", nil}
	if got := n.Children(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected children %#v, got %#v", want, got)
	}
}

func TestBuild_DefaultsAttributes(t *testing.T) {
	n := Build(Stack, nil)
	if n.Attributes() == nil {
		t.Fatal("expected non-nil attributes")
	}
	if len(n.Attributes()) != 0 {
		t.Fatalf("expected empty attributes, got %v", n.Attributes())
	}
	if len(n.Children()) != 0 {
		t.Fatalf("expected no children, got %v", n.Children())
	}
}

func TestBuild_CopiesAttributes(t *testing.T) {
	attrs := Props{"bold": true}
	n := Build(Text, attrs, "x")
	attrs["bold"] = false

	if n.Attributes()["bold"] != true {
		t.Fatal("node attributes changed after the caller mutated its map")
	}
}

func TestNode_PropsCarryChildren(t *testing.T) {
	var got Props
	comp := Component(func(p Props, _ Context, _ UpdateFunc) (any, error) {
		got = p
		return nil, nil
	})
	n := Build(comp, Props{"title": "x", ChildrenKey: "overwritten"}, "a", "b")

	r := NewResolver()
	if _, err := r.ResolveElement(n, Context{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String("title") != "x" {
		t.Errorf("expected title prop %q, got %q", "x", got.String("title"))
	}
	if want := []any{"a", "b"}; !reflect.DeepEqual(got.Children(), want) {
		t.Errorf("expected children %v, got %v", want, got.Children())
	}
}

func TestFragment_GroupsChildrenInStack(t *testing.T) {
	r := NewResolver()
	got, err := r.ResolveElement(Build(Fragment, nil, "a", []any{"b"}, Build(Text, nil, "c")), Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"stack": []any{"ab", map[string]any{"text": "c"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}
