package rstfmt

import "testing"

func TestBulletList(t *testing.T) {
	list := NewNode(KindBulletList,
		item(para("a")), item(para("b")), item(para("c")))
	out := renderDoc(t, doc(list))
	if out != "* a\n* b\n* c\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBulletCharPerDepth(t *testing.T) {
	inner := NewNode(KindBulletList, item(para("deep")))
	list := NewNode(KindBulletList, item(para("top"), inner))
	out := renderDoc(t, doc(list), WithBulletChars([]rune{'*', '-'}))
	want := "* top\n\n  - deep\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEnumListArabic(t *testing.T) {
	list := NewNode(KindEnumList,
		item(para("first")), item(para("second")), item(para("third")))
	out := renderDoc(t, doc(list))
	if out != "1. first\n2. second\n3. third\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEnumListStartAndStep(t *testing.T) {
	list := &Node{Kind: KindEnumList, Start: 3, Children: []*Node{
		item(para("a")), item(para("b")),
	}}
	out := renderDoc(t, doc(list))
	if out != "3. a\n4. b\n" {
		t.Fatalf("start: got %q", out)
	}

	list = &Node{Kind: KindEnumList, Step: 2, Children: []*Node{
		item(para("a")), item(para("b")),
	}}
	out = renderDoc(t, doc(list))
	if out != "1. a\n3. b\n" {
		t.Fatalf("step: got %q", out)
	}
}

func TestEnumStyles(t *testing.T) {
	cases := []struct {
		list *Node
		want string
	}{
		{
			&Node{Kind: KindEnumList, Enum: EnumAlphaLower, Children: []*Node{
				item(para("x")), item(para("y")),
			}},
			"a. x\nb. y\n",
		},
		{
			&Node{Kind: KindEnumList, Enum: EnumAlphaUpper, Suffix: ")", Children: []*Node{
				item(para("x")), item(para("y")),
			}},
			"A) x\nB) y\n",
		},
		{
			&Node{Kind: KindEnumList, Enum: EnumRomanLower, Children: []*Node{
				item(para("x")), item(para("y")), item(para("z")), item(para("w")),
			}},
			"i. x\nii. y\niii. z\niv. w\n",
		},
		{
			&Node{Kind: KindEnumList, Enum: EnumRomanUpper, Prefix: "(", Suffix: ")", Children: []*Node{
				item(para("x")), item(para("y")),
			}},
			"(I) x\n(II) y\n",
		},
	}
	for _, tc := range cases {
		out := renderDoc(t, doc(tc.list))
		if out != tc.want {
			t.Errorf("got %q, want %q", out, tc.want)
		}
	}
}

func TestAdjacentListsStayDistinct(t *testing.T) {
	d := doc(
		NewNode(KindEnumList, item(para("a"))),
		NewNode(KindEnumList, item(para("b"))),
	)
	out := renderDoc(t, d)
	// Separate sibling lists restart numbering and keep a blank line
	// between them so they never merge on re-parse.
	if out != "1. a\n\n1. b\n" {
		t.Fatalf("got %q", out)
	}
}

func TestMultiLineItemsGetBlankSeparators(t *testing.T) {
	list := NewNode(KindBulletList,
		item(para("short")),
		item(para("a much longer item that wraps across lines here")),
		item(para("tail")),
	)
	out := renderDoc(t, doc(list), WithWrapLength(24))
	want := "* short\n" +
		"\n" +
		"* a much longer item\n" +
		"  that wraps across\n" +
		"  lines here\n" +
		"\n" +
		"* tail\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestItemWithMultipleBlocks(t *testing.T) {
	list := NewNode(KindBulletList,
		item(para("top"), para("more")),
		item(para("next")),
	)
	out := renderDoc(t, doc(list))
	want := "* top\n\n  more\n\n* next\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEmptyListItem(t *testing.T) {
	list := NewNode(KindBulletList, item(), item(para("b")))
	out := renderDoc(t, doc(list))
	if out != "*\n* b\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRomanNumerals(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "I"}, {4, "IV"}, {9, "IX"}, {14, "XIV"},
		{40, "XL"}, {90, "XC"}, {400, "CD"}, {1994, "MCMXCIV"},
	}
	for _, tc := range cases {
		if got := toRoman(tc.n); got != tc.want {
			t.Errorf("toRoman(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
