// Package mdtree converts Markdown into an rstfmt document tree.
//
// It exists so documents authored in Markdown can be normalized into RST
// through the same writer, without rstfmt growing an RST parser. Parsing
// uses goldmark; the resulting AST is lowered into rstfmt nodes, with
// Markdown links becoming anonymous references backed by a trailing block
// of anonymous targets in document order.
package mdtree

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"pkt.systems/rstfmt"
)

// ErrInvalidUTF8 reports input that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8 input")

// Convert parses Markdown source and returns the equivalent document tree.
func Convert(src []byte) (*rstfmt.Node, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidUTF8
	}
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	c := &converter{src: src}
	doc := &rstfmt.Node{Kind: rstfmt.KindDocument}

	// Heading levels nest into sections; a stack tracks the open sections.
	type frame struct {
		node  *rstfmt.Node
		level int
	}
	stack := []frame{{node: doc, level: 0}}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			for len(stack) > 1 && stack[len(stack)-1].level >= h.Level {
				stack = stack[:len(stack)-1]
			}
			section := rstfmt.NewNode(rstfmt.KindSection,
				rstfmt.NewNode(rstfmt.KindTitle, c.inlines(h)...))
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, section)
			stack = append(stack, frame{node: section, level: h.Level})
			continue
		}
		block, err := c.block(n)
		if err != nil {
			return nil, err
		}
		if block != nil {
			top := stack[len(stack)-1].node
			top.Children = append(top.Children, block)
		}
	}

	// Anonymous references consume targets FIFO in document order, so the
	// collected link targets append in the order their links appeared.
	doc.Children = append(doc.Children, c.targets...)
	return doc, nil
}

type converter struct {
	src     []byte
	targets []*rstfmt.Node
}

func (c *converter) block(n ast.Node) (*rstfmt.Node, error) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		inl := c.inlines(n)
		if len(inl) == 0 {
			return nil, nil
		}
		return rstfmt.NewNode(rstfmt.KindParagraph, inl...), nil
	case *ast.Blockquote:
		children, err := c.blocks(node)
		if err != nil {
			return nil, err
		}
		return rstfmt.NewNode(rstfmt.KindBlockQuote, children...), nil
	case *ast.List:
		return c.list(node)
	case *ast.FencedCodeBlock:
		lit := &rstfmt.Node{Kind: rstfmt.KindLiteralBlock, Text: c.blockLines(node)}
		if lang := node.Language(c.src); len(lang) > 0 {
			lit.Args = []string{string(lang)}
		}
		return lit, nil
	case *ast.CodeBlock:
		return &rstfmt.Node{Kind: rstfmt.KindLiteralBlock, Text: c.blockLines(node)}, nil
	case *ast.ThematicBreak:
		return &rstfmt.Node{Kind: rstfmt.KindTransition}, nil
	case *ast.HTMLBlock:
		// Raw HTML has no RST equivalent; preserve it as a comment.
		return &rstfmt.Node{Kind: rstfmt.KindComment, Text: c.blockLines(node)}, nil
	case *ast.Heading:
		// Headings nested inside containers cannot become sections;
		// keep their text as a paragraph.
		return rstfmt.NewNode(rstfmt.KindParagraph, c.inlines(node)...), nil
	default:
		return nil, fmt.Errorf("unsupported markdown block %s", n.Kind())
	}
}

func (c *converter) blocks(n ast.Node) ([]*rstfmt.Node, error) {
	var out []*rstfmt.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		b, err := c.block(child)
		if err != nil {
			return nil, err
		}
		if b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (c *converter) list(n *ast.List) (*rstfmt.Node, error) {
	list := &rstfmt.Node{Kind: rstfmt.KindBulletList}
	if n.IsOrdered() {
		list.Kind = rstfmt.KindEnumList
		list.Start = n.Start
		if n.Marker == ')' {
			list.Suffix = ")"
		}
	}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		children, err := c.blocks(item)
		if err != nil {
			return nil, err
		}
		list.Children = append(list.Children,
			rstfmt.NewNode(rstfmt.KindListItem, children...))
	}
	return list, nil
}

// blockLines joins the raw source lines of a block node.
func (c *converter) blockLines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.src))
	}
	return buf.String()
}

func (c *converter) inlines(n ast.Node) []*rstfmt.Node {
	var out []*rstfmt.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.inline(child)...)
	}
	return out
}

func (c *converter) inline(n ast.Node) []*rstfmt.Node {
	switch node := n.(type) {
	case *ast.Text:
		text := string(node.Segment.Value(c.src))
		if node.SoftLineBreak() || node.HardLineBreak() {
			text += " "
		}
		return []*rstfmt.Node{{Kind: rstfmt.KindText, Text: text}}
	case *ast.String:
		return []*rstfmt.Node{{Kind: rstfmt.KindText, Text: string(node.Value)}}
	case *ast.Emphasis:
		kind := rstfmt.KindEmphasis
		if node.Level >= 2 {
			kind = rstfmt.KindStrong
		}
		return []*rstfmt.Node{rstfmt.NewNode(kind, c.inlines(node)...)}
	case *ast.CodeSpan:
		return []*rstfmt.Node{{
			Kind: rstfmt.KindLiteral,
			Text: flattenText(c.inlines(node)),
		}}
	case *ast.Link:
		c.targets = append(c.targets, &rstfmt.Node{
			Kind:      rstfmt.KindTarget,
			Anonymous: true,
			URI:       string(node.Destination),
		})
		return []*rstfmt.Node{{
			Kind:      rstfmt.KindReference,
			Anonymous: true,
			Children:  c.inlines(node),
		}}
	case *ast.AutoLink:
		uri := string(node.URL(c.src))
		c.targets = append(c.targets, &rstfmt.Node{
			Kind:      rstfmt.KindTarget,
			Anonymous: true,
			URI:       uri,
		})
		return []*rstfmt.Node{{
			Kind:      rstfmt.KindReference,
			Anonymous: true,
			Children:  []*rstfmt.Node{{Kind: rstfmt.KindText, Text: string(node.Label(c.src))}},
		}}
	case *ast.Image:
		// Inline images have no inline RST form; keep the alt text.
		return c.inlines(node)
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			buf.Write(seg.Value(c.src))
		}
		return []*rstfmt.Node{{Kind: rstfmt.KindText, Text: buf.String()}}
	default:
		return []*rstfmt.Node{{Kind: rstfmt.KindText, Text: flattenText(c.inlines(n))}}
	}
}

func flattenText(nodes []*rstfmt.Node) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		buf.WriteString(n.PlainText())
	}
	return buf.String()
}
