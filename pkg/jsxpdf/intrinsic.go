package jsxpdf

// tableKeys are the attributes that belong inside the table object rather
// than on its wrapper.
var tableKeys = []string{"headerRows", "widths"}

// mapIntrinsic converts a symbolic node and its resolved children into the
// renderer shape. It does not recurse. A nil result means the node is absent.
func mapIntrinsic(tag Tag, attrs Props, children []any, path string) (any, error) {
	switch tag {
	case Header, Content, Footer, Stack, Cell, Item:
		return spread(map[string]any{"stack": children}, attrs), nil
	case Text:
		var text any = children
		if len(children) == 1 && isText(children[0]) {
			text = children[0]
		}
		return spread(map[string]any{"text": text}, attrs), nil
	case Columns:
		return spread(map[string]any{"columns": children}, attrs), nil
	case Image:
		return spread(map[string]any{"image": attrs["src"]}, attrs, "src"), nil
	case SVG:
		return spread(map[string]any{"svg": attrs["content"]}, attrs, "content"), nil
	case QR:
		return spread(map[string]any{"qr": attrs["content"]}, attrs, "content"), nil
	case Table:
		inner := map[string]any{"body": children}
		for _, k := range tableKeys {
			if v, ok := attrs[k]; ok {
				inner[k] = v
			}
		}
		return spread(map[string]any{"table": inner}, attrs, tableKeys...), nil
	case Row:
		return children, nil
	case List:
		return spread(map[string]any{"ul": children}, attrs), nil
	case Ordered:
		return spread(map[string]any{"ol": children}, attrs), nil
	case Document:
		return nil, resolveError(path, ErrRootType, "%s can only be used as the root element", Document)
	}
	return nil, nil
}

// spread copies attrs over base, skipping the omitted keys. Attributes win
// over the base keys, as with an object spread.
func spread(base map[string]any, attrs Props, omit ...string) map[string]any {
outer:
	for k, v := range attrs {
		for _, o := range omit {
			if k == o {
				continue outer
			}
		}
		base[k] = v
	}
	return base
}
