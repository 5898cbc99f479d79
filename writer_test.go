package rstfmt

import (
	"bytes"
	"errors"
	"testing"
)

func TestRenderEmptyDocument(t *testing.T) {
	out := renderDoc(t, doc())
	if out != "" {
		t.Fatalf("empty document rendered %q", out)
	}
}

func TestRenderParagraph(t *testing.T) {
	out := renderDoc(t, doc(para("Hello, world.")))
	if out != "Hello, world.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderRejectsNonDocumentRoot(t *testing.T) {
	_, err := RenderString(para("not a document"))
	if !errors.Is(err, ErrMalformedTree) {
		t.Fatalf("expected ErrMalformedTree, got %v", err)
	}
	_, err = RenderString(nil)
	if !errors.Is(err, ErrMalformedTree) {
		t.Fatalf("expected ErrMalformedTree for nil, got %v", err)
	}
}

func TestAdjacentMarkupPreserved(t *testing.T) {
	p := NewNode(KindParagraph,
		Textf("This is "),
		NewNode(KindEmphasis, Textf("emphasis")),
		Textf(" next to "),
		NewNode(KindStrong, Textf("strong")),
		Textf("."),
	)
	out := renderDoc(t, doc(p), WithWrapLength(80))
	if out != "This is *emphasis* next to **strong**.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestAbuttingMarkupGetsNullEscape(t *testing.T) {
	p := NewNode(KindParagraph,
		NewNode(KindEmphasis, Textf("a")),
		NewNode(KindStrong, Textf("b")),
	)
	out := renderDoc(t, doc(p))
	if out != "*a*\\ **b**\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDuplicateTargetNamesError(t *testing.T) {
	d := doc(
		&Node{Kind: KindTarget, Name: "Ref", URI: "https://one.example"},
		&Node{Kind: KindTarget, Name: "REF", URI: "https://two.example"},
	)
	_, err := RenderString(d)
	if !errors.Is(err, ErrDuplicateTarget) {
		t.Fatalf("expected ErrDuplicateTarget, got %v", err)
	}
}

func TestAnonymousReferenceWithoutTarget(t *testing.T) {
	d := doc(
		NewNode(KindParagraph,
			&Node{Kind: KindReference, Anonymous: true, Children: []*Node{Textf("one")}},
			Textf(" and "),
			&Node{Kind: KindReference, Anonymous: true, Children: []*Node{Textf("two")}},
		),
		&Node{Kind: KindTarget, Anonymous: true, URI: "https://example.com"},
	)
	_, err := RenderString(d)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestUnresolvedNamedReference(t *testing.T) {
	d := doc(NewNode(KindParagraph,
		Textf("see "),
		&Node{Kind: KindReference, Name: "missing", Children: []*Node{Textf("missing")}},
	))
	_, err := RenderString(d)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestRenderWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	err := Render(Request{
		Document: doc(para("via writer")),
		Writer:   &buf,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "via writer\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func integrationDoc() *Node {
	return doc(
		section("Example",
			NewNode(KindParagraph, Textf("Intro text:")),
			&Node{Kind: KindLiteralBlock, Text: "code sample"},
			NewNode(KindBulletList, item(para("a")), item(para("b"))),
			&Node{Kind: KindTarget, Name: "Python", URI: "https://python.org"},
			NewNode(KindParagraph,
				Textf("See "),
				&Node{Kind: KindReference, Name: "Python", Children: []*Node{Textf("Python")}},
				Textf("."),
			),
		),
	)
}

func TestRenderIntegration(t *testing.T) {
	want := "#######\n" +
		"Example\n" +
		"#######\n" +
		"\n" +
		"Intro text::\n" +
		"\n" +
		"  code sample\n" +
		"\n" +
		"* a\n" +
		"* b\n" +
		"\n" +
		".. _`Python`: https://python.org\n" +
		"\n" +
		"See `Python`_.\n"
	out := renderDoc(t, integrationDoc())
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	first := renderDoc(t, integrationDoc())
	second := renderDoc(t, integrationDoc())
	if first != second {
		t.Fatalf("renders differ:\n%s\n---\n%s", first, second)
	}
}
