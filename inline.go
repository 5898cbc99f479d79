package rstfmt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// piece is the rendered surface of one inline node before token assembly.
// Markup pieces are indivisible; plain pieces may still be split on their
// internal spaces.
type piece struct {
	text   string
	markup bool
}

// Characters that may legally sit directly after closing inline markup
// or directly before opening inline markup without creating an ambiguous
// parse. Anything else needs a null-escape separator.
const (
	markupFollowers = ` '")]}>-/:.,;!?`
	markupPreceders = ` '"([{<-/:`
)

// Roles with a canonical shorthand are emitted using the shorthand
// instead of the explicit :role: form.
var roleShorthand = map[string]struct{ open, close string }{
	"emphasis": {"*", "*"},
	"strong":   {"**", "**"},
	"literal":  {"``", "``"},
	"code":     {"``", "``"},
}

// renderInline renders a sequence of inline nodes into wrappable tokens,
// inserting null-escape separators wherever two markup spans, or a markup
// span and abutting word characters, would otherwise parse ambiguously.
func (s *renderState) renderInline(nodes []*Node, path string) ([]token, error) {
	pieces := make([]piece, 0, len(nodes))
	for i, n := range nodes {
		p, err := s.renderInlineNode(n, childPath(path, n, i))
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p...)
	}
	return assembleTokens(pieces), nil
}

func (s *renderState) renderInlineNode(n *Node, path string) ([]piece, error) {
	switch n.Kind {
	case KindText:
		return []piece{{text: escapeText(n.Text)}}, nil
	case KindEmphasis:
		return markupPiece("*", n, "*"), nil
	case KindStrong:
		return markupPiece("**", n, "**"), nil
	case KindLiteral:
		// Literal content is verbatim; only a double backquote run inside
		// cannot be represented and is broken with a space.
		text := strings.ReplaceAll(inlineText(n), "``", "` `")
		return []piece{{text: "``" + text + "``", markup: true}}, nil
	case KindRole:
		if sh, ok := roleShorthand[n.Name]; ok {
			return markupPiece(sh.open, n, sh.close), nil
		}
		return []piece{{text: ":" + n.Name + ":`" + inlineText(n) + "`", markup: true}}, nil
	case KindReference:
		return s.renderReference(n, path)
	case KindSubstitutionRef:
		if !s.targets.resolvesSubstitution(n.Name) {
			return nil, treeErrorf(ErrUnresolvedReference, path, "no substitution named %q", n.Name)
		}
		return []piece{{text: "|" + n.Name + "|", markup: true}}, nil
	case KindFootnoteRef:
		return []piece{{text: "[" + footnoteLabel(n) + "]_", markup: true}}, nil
	case KindCitationRef:
		return []piece{{text: "[" + n.Name + "]_", markup: true}}, nil
	case KindTarget:
		// Inline internal target.
		return []piece{{text: "_`" + inlineText(n) + "`", markup: true}}, nil
	default:
		return nil, treeErrorf(ErrMalformedTree, path, "%s is not an inline node", n.Kind)
	}
}

func (s *renderState) renderReference(n *Node, path string) ([]piece, error) {
	text := inlineText(n)
	if text == "" {
		text = n.Name
	}
	if n.Anonymous {
		if err := s.targets.consumeAnonymous(path); err != nil {
			return nil, err
		}
		return []piece{{text: "`" + text + "`__", markup: true}}, nil
	}
	if n.URI != "" {
		// Embedded-URI form; the reference carries its own target.
		return []piece{{text: "`" + text + " <" + n.URI + ">`_", markup: true}}, nil
	}
	name := n.Name
	if name == "" {
		name = text
	}
	if !s.targets.resolves(name) {
		return nil, treeErrorf(ErrUnresolvedReference, path, "no target named %q", name)
	}
	return []piece{{text: "`" + text + "`_", markup: true}}, nil
}

func markupPiece(open string, n *Node, close string) []piece {
	return []piece{{text: open + escapeText(inlineText(n)) + close, markup: true}}
}

// inlineText flattens the node's subtree to plain text. Inline markup does
// not nest in RST, so markup spans carry only text content.
func inlineText(n *Node) string {
	if n.Text != "" && len(n.Children) == 0 {
		return n.Text
	}
	return n.PlainText()
}

func footnoteLabel(n *Node) string {
	if n.Auto {
		if n.Name != "" {
			return "#" + n.Name
		}
		return "#"
	}
	return n.Name
}

// assembleTokens turns rendered pieces into space-separated wrap tokens.
// Pieces glued together without intervening whitespace merge into a single
// atomic token, with a null-escape separator inserted when the junction
// would be ambiguous.
func assembleTokens(pieces []piece) []token {
	var toks []token
	var cur strings.Builder
	curAtomic := false
	curMarkupEnd := false

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, token{text: cur.String(), atomic: curAtomic})
			cur.Reset()
			curAtomic = false
			curMarkupEnd = false
		}
	}
	appendText := func(word string) {
		if cur.Len() > 0 && curMarkupEnd {
			r, _ := utf8.DecodeRuneInString(word)
			if !strings.ContainsRune(markupFollowers, r) {
				cur.WriteString(`\ `)
			}
			curAtomic = true
		}
		cur.WriteString(word)
		curMarkupEnd = false
	}
	appendMarkup := func(text string) {
		if cur.Len() > 0 {
			if curMarkupEnd {
				cur.WriteString(`\ `)
			} else {
				prev, _ := utf8.DecodeLastRuneInString(cur.String())
				if !strings.ContainsRune(markupPreceders, prev) {
					cur.WriteString(`\ `)
				}
			}
		}
		cur.WriteString(text)
		curAtomic = true
		curMarkupEnd = true
	}

	for _, p := range pieces {
		if p.markup {
			appendMarkup(p.text)
			continue
		}
		rest := p.text
		for rest != "" {
			idx := strings.IndexFunc(rest, unicode.IsSpace)
			if idx == -1 {
				appendText(rest)
				break
			}
			if idx > 0 {
				appendText(rest[:idx])
			}
			flush()
			_, size := utf8.DecodeRuneInString(rest[idx:])
			rest = strings.TrimLeftFunc(rest[idx+size:], unicode.IsSpace)
		}
	}
	flush()
	return toks
}

// escapeText backslash-escapes RST-significant punctuation in plain text.
// Trailing underscores are escaped only where they would read as a
// reference suffix.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "\\*`|_") {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		switch r {
		case '\\', '*', '`', '|':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '_':
			if wordBefore(s, i) && !wordAfter(s, i+1) {
				b.WriteString(`\_`)
			} else {
				b.WriteByte('_')
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func wordBefore(s string, i int) bool {
	r, size := utf8.DecodeLastRuneInString(s[:i])
	return size > 0 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func wordAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	return size > 0 && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

// Paragraph-leading text that could be misread as a list marker or section
// construct, e.g. "A. Einstein was right." parsing as an enumerated list.
var enumLookalike = regexp.MustCompile(`^(?:[0-9]+|[A-Za-z]|[ivxlcdmIVXLCDM]+)[.)]$`)

// escapeLeadingMarker escapes the first token of a paragraph when it would
// otherwise parse as a list marker at the start of a line.
func escapeLeadingMarker(toks []token) []token {
	if len(toks) == 0 || toks[0].atomic {
		return toks
	}
	first := toks[0].text
	if first == "-" || first == "+" || enumLookalike.MatchString(first) {
		toks[0].text = `\` + first
	}
	return toks
}
