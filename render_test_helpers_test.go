package rstfmt

import "testing"

func renderDoc(t *testing.T, doc *Node, opts ...Option) string {
	t.Helper()
	out, err := RenderString(doc, opts...)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func doc(children ...*Node) *Node {
	return NewNode(KindDocument, children...)
}

func para(text string) *Node {
	return NewNode(KindParagraph, Textf("%s", text))
}

func item(children ...*Node) *Node {
	return NewNode(KindListItem, children...)
}

func section(title string, body ...*Node) *Node {
	children := append([]*Node{NewNode(KindTitle, Textf("%s", title))}, body...)
	return NewNode(KindSection, children...)
}
