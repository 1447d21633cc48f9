package dsl

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Phase 1: raw tree validation
// ---------------------------------------------------------------------------

// ValidateRawNode checks the structural rules of a raw node and its
// descendants. inBody is true inside a component body, the only place a slot
// may appear.
func ValidateRawNode(n RawNode, inBody bool, path string) error {
	if n.Scalar {
		return nil
	}

	count := 0
	for _, b := range []bool{n.Kind != "", n.Markdown != nil, n.HTML != nil, n.Slot != ""} {
		if b {
			count++
		}
	}
	switch count {
	case 0:
		return fmt.Errorf("phase=raw path=%s: %w: node must define exactly one of: kind, markdown, html, or slot", path, ErrInvalidNode)
	case 1:
	default:
		return fmt.Errorf("phase=raw path=%s: %w: node cannot combine kind, markdown, html, and slot", path, ErrInvalidNode)
	}

	switch {
	case n.Slot != "":
		if n.Slot != SlotChildren {
			return fmt.Errorf("phase=raw path=%s: %w: unknown slot %q", path, ErrInvalidNode, n.Slot)
		}
		if !inBody {
			return fmt.Errorf("phase=raw path=%s: %w: slot can only be used inside a component body", path, ErrInvalidNode)
		}
		if n.Attrs != nil || n.With != nil || n.Children != nil || n.Page != nil {
			return fmt.Errorf("phase=raw path=%s: %w: slot takes no other fields", path, ErrInvalidNode)
		}
		return nil

	case n.Markdown != nil || n.HTML != nil:
		if n.With != nil || n.Children != nil || n.Page != nil {
			return fmt.Errorf("phase=raw path=%s: %w: markup nodes only accept attrs", path, ErrInvalidNode)
		}
		return nil
	}

	if n.Attrs != nil && n.With != nil {
		return fmt.Errorf("phase=raw path=%s: %w: node cannot combine attrs and with", path, ErrInvalidNode)
	}
	if n.Page != nil {
		if !isSection(n.Kind) {
			return fmt.Errorf("phase=raw path=%s: %w: 'page' can only be used on header or footer", path, ErrInvalidNode)
		}
		if len(n.Children) > 0 {
			return fmt.Errorf("phase=raw path=%s: %w: 'page' cannot be combined with children", path, ErrInvalidNode)
		}
		if err := ValidateRawNode(*n.Page, false, path+"/page"); err != nil {
			return err
		}
	}
	for i, c := range n.Children {
		if err := ValidateRawNode(c, inBody, childAt(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Phase 2: linking against the registry
// ---------------------------------------------------------------------------

// linkNode checks that every kind referenced by n is known, and that intrinsic
// kinds take attrs while components take with.
func linkNode(n RawNode, reg *Registry, path string) error {
	if n.Scalar || n.Kind == "" {
		return nil
	}
	if _, ok := intrinsic(n.Kind); ok {
		if n.With != nil {
			return fmt.Errorf("phase=link path=%s: %w: 'with' can only be used on components, %s takes attrs", path, ErrInvalidNode, n.Kind)
		}
	} else if _, ok := reg.Get(n.Kind); ok {
		if n.Attrs != nil {
			return fmt.Errorf("phase=link path=%s: %w: 'attrs' can only be used on intrinsic kinds, pass params to %s with 'with'", path, ErrInvalidNode, n.Kind)
		}
	} else {
		return fmt.Errorf("phase=link path=%s: %w: %s", path, ErrUnknownKind, n.Kind)
	}

	if n.Page != nil {
		if err := linkNode(*n.Page, reg, path+"/page"); err != nil {
			return err
		}
	}
	for i, c := range n.Children {
		if err := linkNode(c, reg, childAt(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// detectCycles reports the first chain of component bodies that references
// itself. Script components are not followed: their output is only known at
// resolution time.
func detectCycles(reg *Registry) error {
	const (
		visiting = 1
		done     = 2
	)
	state := map[string]int{}
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			start := 0
			for i, s := range stack {
				if s == name {
					start = i
				}
			}
			chain := append(append([]string(nil), stack[start:]...), name)
			return fmt.Errorf("phase=link path=components/%s: %w: %s", name, ErrCycleDetected, strings.Join(chain, " -> "))
		case done:
			return nil
		}
		state[name] = visiting
		stack = append(stack, name)

		def, _ := reg.Get(name)
		if def.Body != nil {
			for _, ref := range references(*def.Body, nil) {
				if _, ok := reg.Get(ref); !ok {
					continue
				}
				if err := visit(ref); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, name := range reg.Names() {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// references appends the kinds referenced anywhere under n to dst.
func references(n RawNode, dst []string) []string {
	if n.Kind != "" {
		dst = append(dst, n.Kind)
	}
	if n.Page != nil {
		dst = references(*n.Page, dst)
	}
	for _, c := range n.Children {
		dst = references(c, dst)
	}
	return dst
}

func childAt(path string, i int) string {
	return fmt.Sprintf("%s/children[%d]", path, i)
}
