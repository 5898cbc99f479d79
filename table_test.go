package rstfmt

import (
	"errors"
	"testing"
)

func entry(text string) *Node {
	return NewNode(KindEntry, para(text))
}

func row(header bool, cells ...*Node) *Node {
	n := NewNode(KindRow, cells...)
	n.Header = header
	return n
}

func TestGridTable(t *testing.T) {
	table := NewNode(KindTable,
		row(true, entry("Name"), entry("Role")),
		row(false, entry("Ada"), entry("lead")),
		row(false, entry("Grace"), entry("dev")),
	)
	out := renderDoc(t, doc(table))
	want := "+-------+------+\n" +
		"| Name  | Role |\n" +
		"+=======+======+\n" +
		"| Ada   | lead |\n" +
		"+-------+------+\n" +
		"| Grace | dev  |\n" +
		"+-------+------+\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestGridTableWithoutHeader(t *testing.T) {
	table := NewNode(KindTable,
		row(false, entry("a"), entry("b")),
	)
	out := renderDoc(t, doc(table))
	want := "+---+---+\n" +
		"| a | b |\n" +
		"+---+---+\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestGridTableMultiLineCell(t *testing.T) {
	table := NewNode(KindTable,
		row(false,
			NewNode(KindEntry, para("one"), para("two")),
			entry("x"),
		),
	)
	out := renderDoc(t, doc(table))
	want := "+-----+---+\n" +
		"| one | x |\n" +
		"|     |   |\n" +
		"| two |   |\n" +
		"+-----+---+\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestGridTableRaggedRow(t *testing.T) {
	table := NewNode(KindTable,
		row(false, entry("aa"), entry("bb")),
		row(false, entry("c")),
	)
	out := renderDoc(t, doc(table))
	want := "+----+----+\n" +
		"| aa | bb |\n" +
		"+----+----+\n" +
		"| c  |    |\n" +
		"+----+----+\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestEmptyTable(t *testing.T) {
	_, err := RenderString(doc(NewNode(KindTable)))
	if !errors.Is(err, ErrMalformedTree) {
		t.Fatalf("expected ErrMalformedTree, got %v", err)
	}
}

func TestRowOutsideTable(t *testing.T) {
	_, err := RenderString(doc(row(false, entry("x"))))
	if !errors.Is(err, ErrMalformedTree) {
		t.Fatalf("expected ErrMalformedTree, got %v", err)
	}
}
