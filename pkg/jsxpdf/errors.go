package jsxpdf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPlacement     = errors.New("invalid placement")
	ErrRootType      = errors.New("invalid root")
	ErrSuspended     = errors.New("suspended during synchronous resolution")
	ErrInvalidValue  = errors.New("invalid value")
	ErrDepthExceeded = errors.New("maximum depth exceeded")
)

func resolveError(path string, sentinel error, format string, args ...any) error {
	return fmt.Errorf("phase=resolve path=%s: %w: %s", path, sentinel, fmt.Sprintf(format, args...))
}

func componentError(path string, err error) error {
	return fmt.Errorf("phase=component path=%s: %w", path, err)
}

func joinPath(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + "/" + seg
}

func childSegment(v any, i int) string {
	return fmt.Sprintf("%s[%d]", describe(v), i)
}

// describe names a resolved value for paths and error messages.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "nothing"
	case Node:
		switch k := x.kind.(type) {
		case Tag:
			return string(k)
		case Component:
			return "component"
		}
		return "node"
	case *Pending:
		return "pending"
	case RenderProp, func(int, int, any) any:
		return "render function"
	}
	if isText(v) {
		return "text"
	}
	return fmt.Sprintf("%T", v)
}

func tagList(tags []Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
