package rstfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNodeJSONRoundTrip(t *testing.T) {
	orig := doc(
		section("Title",
			NewNode(KindParagraph,
				Textf("hello "),
				NewNode(KindStrong, Textf("there")),
			),
			&Node{Kind: KindEnumList, Enum: EnumRomanLower, Start: 2, Suffix: ")", Children: []*Node{
				item(para("x")),
			}},
			&Node{Kind: KindDirective, Name: "image", Args: []string{"p.png"},
				Fields: []Field{{Name: "width", Value: "10"}}},
			&Node{Kind: KindTarget, Name: "t", URI: "https://example.com"},
		),
	)

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Node
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(orig, &decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeKindJSONNames(t *testing.T) {
	data, err := json.Marshal(&Node{Kind: KindBulletList})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"bullet_list"`) {
		t.Fatalf("got %s", data)
	}
}

func TestNodeKindJSONUnknownName(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(`{"kind":"nope"}`), &n); err == nil {
		t.Fatal("expected error for unknown kind name")
	}
}

func TestEnumTypeJSONNames(t *testing.T) {
	cases := map[EnumType]string{
		EnumArabic:     "arabic",
		EnumAlphaLower: "loweralpha",
		EnumAlphaUpper: "upperalpha",
		EnumRomanLower: "lowerroman",
		EnumRomanUpper: "upperroman",
	}
	for enum, name := range cases {
		data, err := json.Marshal(enum)
		if err != nil {
			t.Fatalf("marshal %v: %v", enum, err)
		}
		if string(data) != `"`+name+`"` {
			t.Errorf("enum %v marshaled %s, want %q", enum, data, name)
		}
		var back EnumType
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != enum {
			t.Errorf("enum %q decoded as %v", name, back)
		}
	}
}

func TestPlainText(t *testing.T) {
	n := NewNode(KindParagraph,
		Textf("a "),
		NewNode(KindEmphasis, Textf("b")),
		Textf(" c"),
	)
	if got := n.PlainText(); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}
