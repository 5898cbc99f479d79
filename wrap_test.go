package rstfmt

import (
	"strings"
	"testing"
)

func TestWrapGreedyFill(t *testing.T) {
	out := renderDoc(t, doc(para("alpha beta gamma delta epsilon zeta eta theta")),
		WithWrapLength(20))
	want := "alpha beta gamma\ndelta epsilon zeta\neta theta\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestWrapWidthBound(t *testing.T) {
	text := strings.Repeat("word ", 40) + "end"
	for _, width := range []int{20, 35, 79} {
		out := renderDoc(t, doc(para(text)), WithWrapLength(width))
		for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			if len(line) > width {
				t.Fatalf("width %d exceeded by line %q", width, line)
			}
		}
	}
}

func TestWrapUnbreakableWordOverflows(t *testing.T) {
	url := "https://example.com/a/very/long/path/that/cannot/break"
	var warnings []Warning
	out := renderDoc(t, doc(para(url)),
		WithWrapLength(20),
		WithWarningHandler(func(w Warning) { warnings = append(warnings, w) }))
	if out != url+"\n" {
		t.Fatalf("expected single overflowing line, got %q", out)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one overflow warning, got %d", len(warnings))
	}
	if warnings[0].Width != 20 {
		t.Fatalf("warning width = %d, want 20", warnings[0].Width)
	}
}

func TestWrapAtomicSpanNotSplit(t *testing.T) {
	p := NewNode(KindParagraph,
		Textf("see "),
		NewNode(KindStrong, Textf("a strong span with several words")),
		Textf(" here"),
	)
	out := renderDoc(t, doc(p), WithWrapLength(25))
	if !strings.Contains(out, "**a strong span with several words**") {
		t.Fatalf("markup span was split: %q", out)
	}
}

func TestWrapHangingIndentContinuation(t *testing.T) {
	list := NewNode(KindBulletList,
		item(para("a list item long enough to wrap onto a continuation line")))
	out := renderDoc(t, doc(list), WithWrapLength(30))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped item, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "* ") {
		t.Fatalf("first line missing marker: %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "   ") {
			t.Fatalf("continuation not aligned under text start: %q", line)
		}
	}
}
