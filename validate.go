package rstfmt

// validateTree checks the input tree against the expected schema before
// rendering starts: every kind must be known, text leaves carry no
// children, and structural kinds (titles, list items, rows, entries)
// appear only under their containers. Rendering a tree that fails
// validation could produce partial output, so the whole check runs up
// front.
func validateTree(doc *Node) error {
	return validateNode(doc, "document", KindDocument)
}

func validateNode(n *Node, path string, parent NodeKind) error {
	if n == nil {
		return treeErrorf(ErrMalformedTree, path, "nil node")
	}
	if _, ok := kindNames[n.Kind]; !ok {
		return treeErrorf(ErrMalformedTree, path, "unknown node kind %d", uint8(n.Kind))
	}
	switch n.Kind {
	case KindDocument:
		if path != "document" {
			return treeErrorf(ErrMalformedTree, path, "document below the root")
		}
	case KindText:
		if len(n.Children) > 0 {
			return treeErrorf(ErrMalformedTree, path, "text leaf with children")
		}
	case KindSection:
		if len(n.Children) == 0 || n.Children[0].Kind != KindTitle {
			return treeErrorf(ErrMalformedTree, path, "section without a leading title")
		}
	case KindTitle:
		if parent != KindSection {
			return treeErrorf(ErrMalformedTree, path, "title outside a section")
		}
	case KindListItem:
		if parent != KindBulletList && parent != KindEnumList {
			return treeErrorf(ErrMalformedTree, path, "list item outside a list")
		}
	case KindDefinitionItem:
		if parent != KindDefinitionList {
			return treeErrorf(ErrMalformedTree, path, "definition item outside a definition list")
		}
		if len(n.Children) == 0 || n.Children[0].Kind != KindTerm {
			return treeErrorf(ErrMalformedTree, path, "definition item without a leading term")
		}
	case KindTerm:
		if parent != KindDefinitionItem {
			return treeErrorf(ErrMalformedTree, path, "term outside a definition item")
		}
	case KindRow:
		if parent != KindTable {
			return treeErrorf(ErrMalformedTree, path, "row outside a table")
		}
	case KindEntry:
		if parent != KindRow {
			return treeErrorf(ErrMalformedTree, path, "entry outside a row")
		}
	case KindReference:
		if n.Name == "" && n.URI == "" && !n.Anonymous && len(n.Children) == 0 {
			return treeErrorf(ErrMalformedTree, path, "reference without name, uri, or content")
		}
	case KindSubstitutionRef, KindSubstitutionDef:
		if n.Name == "" {
			return treeErrorf(ErrMalformedTree, path, "%s without a name", n.Kind)
		}
	case KindDirective, KindRole:
		if n.Name == "" {
			return treeErrorf(ErrMalformedTree, path, "%s without a name", n.Kind)
		}
	case KindLiteralBlock:
		if n.Text == "" && n.PlainText() == "" {
			return treeErrorf(ErrMalformedTree, path, "literal block without content")
		}
	case KindCitation:
		if n.Name == "" {
			return treeErrorf(ErrMalformedTree, path, "citation without a label")
		}
	case KindFootnoteRef, KindCitationRef:
		if n.Name == "" && !n.Auto {
			return treeErrorf(ErrMalformedTree, path, "%s without a label", n.Kind)
		}
	}
	for i, c := range n.Children {
		if err := validateNode(c, childPath(path, c, i), n.Kind); err != nil {
			return err
		}
	}
	return nil
}
