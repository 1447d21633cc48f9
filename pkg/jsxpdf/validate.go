package jsxpdf

// topLevelTags may only appear as immediate children of the document.
var topLevelTags = []Tag{Header, Content, Footer}

func isTopLevel(t Tag) bool {
	for _, tl := range topLevelTags {
		if t == tl {
			return true
		}
	}
	return false
}

// checkPlacement validates a fully expanded value against its position.
// topLevel reports whether the value sits immediately under the document.
func checkPlacement(v any, topLevel bool, path string) error {
	n, ok := v.(Node)
	if !ok {
		// Absence and text primitives are valid anywhere; anything else is
		// rejected later by the resolver.
		return nil
	}
	tag, ok := n.kind.(Tag)
	if !ok {
		return resolveError(path, ErrInvalidValue, "component was not expanded")
	}
	switch {
	case tag == Document:
		return resolveError(path, ErrRootType, "%s can only be used as the root element", Document)
	case topLevel && !isTopLevel(tag):
		return resolveError(path, ErrPlacement, "%s is not allowed at the top level of a %s, expected one of: %s", tag, Document, tagList(topLevelTags))
	case !topLevel && isTopLevel(tag):
		return resolveError(path, ErrPlacement, "%s must be an immediate child of %s", tag, Document)
	}
	return nil
}
