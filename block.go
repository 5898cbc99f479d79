package rstfmt

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// context carries the rendering position down the traversal. It is copied
// on descent, so sibling subtrees never observe each other's changes.
type context struct {
	indent string
	width  int
}

func (c context) indented(by string) context {
	return context{indent: c.indent + by, width: c.width}
}

func childPath(parent string, n *Node, idx int) string {
	return fmt.Sprintf("%s/%s[%d]", parent, n.Kind, idx)
}

// renderBlocks renders a sequence of sibling blocks, separating groups
// with single blank lines and folding literal-block introducers onto a
// preceding paragraph.
func (s *renderState) renderBlocks(nodes []*Node, ctx context, path string) ([]string, error) {
	var out []string
	prevKind := KindInvalid
	for i, n := range nodes {
		lines, err := s.renderBlock(n, ctx, childPath(path, n, i))
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			continue
		}
		if n.Kind == KindLiteralBlock && len(n.Args) == 0 {
			out = s.attachLiteralIntroducer(out, prevKind, ctx)
		} else if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
		prevKind = n.Kind
	}
	return out, nil
}

// attachLiteralIntroducer places the "::" marker for a literal block. When
// the preceding paragraph already ends in the marker text the "::" folds
// onto its last line, with the space before "::" removed per the RST
// swallowing rule; otherwise a standalone "::" paragraph is emitted.
func (s *renderState) attachLiteralIntroducer(out []string, prevKind NodeKind, ctx context) []string {
	if prevKind == KindParagraph && len(out) > 0 {
		last := out[len(out)-1]
		switch {
		case strings.HasSuffix(last, "::"):
			out[len(out)-1] = strings.TrimSuffix(strings.TrimSuffix(last, "::"), " ") + "::"
			return append(out, "")
		case strings.HasSuffix(last, ":"):
			out[len(out)-1] = last + ":"
			return append(out, "")
		}
	}
	if len(out) > 0 {
		out = append(out, "")
	}
	return append(out, ctx.indent+"::", "")
}

func (s *renderState) renderBlock(n *Node, ctx context, path string) ([]string, error) {
	switch n.Kind {
	case KindParagraph:
		return s.renderParagraph(n, ctx, path)
	case KindLiteralBlock:
		return s.renderLiteralBlock(n, ctx)
	case KindBlockQuote:
		return s.renderBlocks(n.Children, ctx.indented(s.indentUnit()), path)
	case KindBulletList, KindEnumList:
		return s.renderList(n, ctx, path)
	case KindDefinitionList:
		return s.renderDefinitionList(n, ctx, path)
	case KindSection:
		return s.renderSection(n, ctx, path)
	case KindTransition:
		return []string{ctx.indent + strings.Repeat("-", s.opts.TransitionWidth)}, nil
	case KindComment:
		return renderComment(n, ctx), nil
	case KindDirective:
		return s.renderDirective(n, ctx, path)
	case KindSubstitutionDef:
		return s.renderSubstitutionDef(n, ctx, path)
	case KindTarget:
		if len(n.Children) > 0 {
			return nil, treeErrorf(ErrMalformedTree, path, "inline target in block position")
		}
		return []string{ctx.indent + renderTargetBlock(n)}, nil
	case KindFootnote:
		return s.renderFootnote(n, ctx, path)
	case KindCitation:
		return s.renderCitation(n, ctx, path)
	case KindTable:
		return s.renderTable(n, ctx, path)
	case KindTitle:
		return nil, treeErrorf(ErrMalformedTree, path, "title outside a section")
	case KindRow, KindEntry:
		return nil, treeErrorf(ErrMalformedTree, path, "%s outside a table", n.Kind)
	default:
		return nil, treeErrorf(ErrMalformedTree, path, "%s is not a block node", n.Kind)
	}
}

func (s *renderState) renderParagraph(n *Node, ctx context, path string) ([]string, error) {
	toks, err := s.renderInline(n.Children, path)
	if err != nil {
		return nil, err
	}
	toks = escapeLeadingMarker(toks)
	return s.wrapTokens(toks, ctx.width, ctx.indent, ""), nil
}

// renderLiteralBlock re-indents the verbatim content by one indent unit.
// Content lines are never wrapped, escaped, or otherwise interpreted. A
// block carrying a language argument renders in ".. code::" directive form.
func (s *renderState) renderLiteralBlock(n *Node, ctx context) ([]string, error) {
	body := n.Text
	if body == "" {
		body = n.PlainText()
	}
	content := strings.Split(strings.TrimRight(body, "\n"), "\n")
	var out []string
	if len(n.Args) > 0 {
		out = append(out, ctx.indent+".. code:: "+strings.Join(n.Args, " "), "")
		inner := ctx.indent + directiveBodyIndent
		for _, line := range content {
			out = append(out, rtrim(inner+line))
		}
		return out, nil
	}
	inner := ctx.indent + s.indentUnit()
	for _, line := range content {
		out = append(out, rtrim(inner+line))
	}
	return out, nil
}

func (s *renderState) renderList(n *Node, ctx context, path string) ([]string, error) {
	var style *listStyle
	if n.Kind == KindEnumList {
		style = s.pushEnumStyle(n)
	} else {
		style = s.pushBulletStyle()
	}
	defer s.popListStyle()

	var out []string
	prevLines := 0
	for i, item := range n.Children {
		itemPath := childPath(path, item, i)
		if item.Kind != KindListItem {
			return nil, treeErrorf(ErrMalformedTree, itemPath, "%s inside a list", item.Kind)
		}
		marker := style.marker()
		hang := strings.Repeat(" ", runewidth.StringWidth(marker)+1)
		lines, err := s.renderBlocks(item.Children, ctx.indented(hang), itemPath)
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			lines = []string{ctx.indent + marker}
		} else {
			lines[0] = ctx.indent + marker + " " + lines[0][len(ctx.indent)+len(hang):]
		}
		if len(out) > 0 && (prevLines > 1 || len(lines) > 1) {
			out = append(out, "")
		}
		out = append(out, lines...)
		prevLines = len(lines)
	}
	return out, nil
}

// renderDefinitionList renders term lines with their definition bodies
// indented one unit below them. Classifiers join the term with " : ".
// Items separate with blank lines; a term and its definition do not.
func (s *renderState) renderDefinitionList(n *Node, ctx context, path string) ([]string, error) {
	var out []string
	for i, it := range n.Children {
		itemPath := childPath(path, it, i)
		if it.Kind != KindDefinitionItem {
			return nil, treeErrorf(ErrMalformedTree, itemPath, "%s inside a definition list", it.Kind)
		}
		if len(it.Children) == 0 || it.Children[0].Kind != KindTerm {
			return nil, treeErrorf(ErrMalformedTree, itemPath, "definition item without a leading term")
		}
		term := it.Children[0]
		toks, err := s.renderInline(term.Children, childPath(itemPath, term, 0))
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(toks))
		for j, t := range toks {
			parts[j] = t.text
		}
		line := ctx.indent + strings.Join(parts, " ")
		for _, classifier := range term.Args {
			line += " : " + classifier
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, line)
		body, err := s.renderBlocks(it.Children[1:], ctx.indented(s.indentUnit()), itemPath)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
	}
	return out, nil
}

func (s *renderState) renderSection(n *Node, ctx context, path string) ([]string, error) {
	if len(n.Children) == 0 || n.Children[0].Kind != KindTitle {
		return nil, treeErrorf(ErrMalformedTree, path, "section without a leading title")
	}
	level := s.sectionLevel
	s.sectionLevel++
	defer func() { s.sectionLevel-- }()

	title := n.Children[0]
	toks, err := s.renderInline(title.Children, childPath(path, title, 0))
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}
	text := strings.Join(parts, " ")
	adorn := strings.Repeat(string(s.adornmentFor(level)), runewidth.StringWidth(text))

	var out []string
	if s.opts.titleOverline(level) {
		out = append(out, ctx.indent+adorn)
	}
	out = append(out, ctx.indent+text, ctx.indent+adorn)

	body, err := s.renderBlocks(n.Children[1:], ctx, path)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		out = append(out, "")
		out = append(out, body...)
	}
	return out, nil
}

// adornmentFor maps a section level to its adornment character, assigning
// characters greedily in first-seen order and reusing them for same-level
// siblings.
func (s *renderState) adornmentFor(level int) rune {
	if ch, ok := s.levelChars[level]; ok {
		return ch
	}
	ch := s.opts.titleChar(s.nextAdornment)
	s.nextAdornment++
	s.levelChars[level] = ch
	return ch
}

const directiveBodyIndent = "   " // aligns content under the directive name

func renderComment(n *Node, ctx context) []string {
	body := strings.Split(strings.TrimRight(n.Text, "\n"), "\n")
	if len(body) == 1 && body[0] == "" {
		return []string{ctx.indent + ".."}
	}
	out := []string{ctx.indent + ".. " + body[0]}
	for _, line := range body[1:] {
		out = append(out, rtrim(ctx.indent+directiveBodyIndent+line))
	}
	return out
}

func (s *renderState) renderDirective(n *Node, ctx context, path string) ([]string, error) {
	if n.Name == "" {
		return nil, treeErrorf(ErrMalformedTree, path, "directive without a name")
	}
	head := ctx.indent + ".. " + n.Name + "::"
	if len(n.Args) > 0 {
		head += " " + strings.Join(n.Args, " ")
	}
	out := []string{head}
	for _, f := range n.Fields {
		line := ctx.indent + directiveBodyIndent + ":" + f.Name + ":"
		if f.Value != "" {
			line += " " + f.Value
		}
		out = append(out, line)
	}
	if n.Text != "" {
		// Option lines and raw bodies are preserved verbatim.
		out = append(out, "")
		for _, line := range strings.Split(strings.TrimRight(n.Text, "\n"), "\n") {
			out = append(out, rtrim(ctx.indent+directiveBodyIndent+line))
		}
		return out, nil
	}
	body, err := s.renderBlocks(n.Children, ctx.indented(directiveBodyIndent), path)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		out = append(out, "")
		out = append(out, body...)
	}
	return out, nil
}

func (s *renderState) renderSubstitutionDef(n *Node, ctx context, path string) ([]string, error) {
	if n.Name == "" {
		return nil, treeErrorf(ErrMalformedTree, path, "substitution definition without a name")
	}
	directive := "replace"
	if len(n.Args) > 0 {
		directive = n.Args[0]
	}
	body := n.Text
	if body == "" {
		toks, err := s.renderInline(n.Children, path)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(toks))
		for i, t := range toks {
			parts[i] = t.text
		}
		body = strings.Join(parts, " ")
	}
	line := ctx.indent + ".. |" + n.Name + "| " + directive + "::"
	if body != "" {
		line += " " + body
	}
	return []string{line}, nil
}

func (s *renderState) renderFootnote(n *Node, ctx context, path string) ([]string, error) {
	return s.renderLabeledBlock("["+footnoteLabel(n)+"]", n.Children, ctx, path)
}

func (s *renderState) renderCitation(n *Node, ctx context, path string) ([]string, error) {
	if n.Name == "" {
		return nil, treeErrorf(ErrMalformedTree, path, "citation without a label")
	}
	return s.renderLabeledBlock("["+n.Name+"]", n.Children, ctx, path)
}

func (s *renderState) renderLabeledBlock(label string, children []*Node, ctx context, path string) ([]string, error) {
	body, err := s.renderBlocks(children, ctx.indented(directiveBodyIndent), path)
	if err != nil {
		return nil, err
	}
	head := ctx.indent + ".. " + label
	if len(body) == 0 {
		return []string{head}, nil
	}
	// The first body line folds onto the label line.
	out := []string{head + " " + strings.TrimPrefix(body[0], ctx.indent+directiveBodyIndent)}
	out = append(out, body[1:]...)
	return out, nil
}

func (s *renderState) indentUnit() string {
	return strings.Repeat(string(s.opts.IndentChar), s.opts.IndentUnit)
}

func rtrim(s string) string {
	return strings.TrimRight(s, " \t")
}
