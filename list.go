package rstfmt

import (
	"strconv"
	"strings"
)

// listStyle is the established style of one list: either a bullet
// character or an enumeration descriptor with a running counter. Once
// inferred from the first item it never changes for that list.
type listStyle struct {
	ordered bool
	bullet  rune

	enum    EnumType
	prefix  string
	suffix  string
	counter int
	step    int
}

// pushBulletStyle enters a bullet list, picking the configured bullet for
// the current nesting depth.
func (s *renderState) pushBulletStyle() *listStyle {
	style := &listStyle{bullet: s.opts.bulletChar(len(s.listStack))}
	s.listStack = append(s.listStack, style)
	return style
}

// pushEnumStyle enters an enumerated list, inferring the style from the
// list node. A node with no explicit hints falls back to arabic numbers
// with a period suffix starting at 1.
func (s *renderState) pushEnumStyle(n *Node) *listStyle {
	style := &listStyle{
		ordered: true,
		enum:    n.Enum,
		prefix:  n.Prefix,
		suffix:  n.Suffix,
		counter: n.Start,
		step:    n.Step,
	}
	if style.suffix == "" && style.prefix == "" {
		style.suffix = "."
	}
	if style.counter == 0 {
		style.counter = 1
	}
	if style.step == 0 {
		style.step = 1
	}
	s.listStack = append(s.listStack, style)
	return style
}

func (s *renderState) popListStyle() {
	s.listStack = s.listStack[:len(s.listStack)-1]
}

// marker renders the marker for the current item and advances the counter.
func (st *listStyle) marker() string {
	if !st.ordered {
		return string(st.bullet)
	}
	point := formatEnumerator(st.enum, st.counter)
	st.counter += st.step
	return st.prefix + point + st.suffix
}

func formatEnumerator(enum EnumType, n int) string {
	switch enum {
	case EnumAlphaLower, EnumAlphaUpper:
		point := alphaEnumerator(n)
		if enum == EnumAlphaUpper {
			point = strings.ToUpper(point)
		}
		return point
	case EnumRomanLower:
		return strings.ToLower(toRoman(n))
	case EnumRomanUpper:
		return toRoman(n)
	default:
		return strconv.Itoa(n)
	}
}

// alphaEnumerator maps 1..26 to a..z. RST has no defined continuation past
// "z"; clamp rather than invent one.
func alphaEnumerator(n int) string {
	if n < 1 {
		n = 1
	}
	if n > 26 {
		n = 26
	}
	return string(rune('a' + n - 1))
}

var romanValues = []struct {
	value int
	digit string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	if n < 1 {
		return "I"
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.digit)
			n -= rv.value
		}
	}
	return b.String()
}
