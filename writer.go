package rstfmt

import (
	"io"
	"strings"
)

// Request bundles the inputs of one render.
type Request struct {
	// Document is the tree to serialize. Its kind must be KindDocument.
	Document *Node
	// Writer receives the reconstructed RST source.
	Writer io.Writer
	// Options adjust the output style.
	Options []Option
}

// Render serializes a document tree to canonical RST source. A render is a
// single synchronous depth-first traversal; all state is created fresh per
// invocation, so independent documents may render concurrently.
func Render(req Request) error {
	text, err := RenderString(req.Document, req.Options...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(req.Writer, text)
	return err
}

// RenderString serializes a document tree and returns the RST source as a
// newline-terminated string.
func RenderString(doc *Node, opts ...Option) (string, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	s := newRenderState(options)
	return s.render(doc)
}

// renderState is the shared mutable state of one render: the target
// registry, list style stack, section adornment map, and counters. It is
// mutated only by the single traversal, in strict document order.
type renderState struct {
	opts Options

	targets         targetRegistry
	pendingIndirect []indirectCheck

	listStack []*listStyle

	sectionLevel  int
	levelChars    map[int]rune
	nextAdornment int
}

func newRenderState(opts Options) *renderState {
	return &renderState{
		opts:       opts,
		targets:    newTargetRegistry(),
		levelChars: make(map[int]rune),
	}
}

func (s *renderState) render(doc *Node) (string, error) {
	if doc == nil || doc.Kind != KindDocument {
		return "", treeErrorf(ErrMalformedTree, "document", "root must be a document node")
	}
	if err := validateTree(doc); err != nil {
		return "", err
	}
	// Pre-pass: build the full target registry before rendering, so
	// references resolve regardless of their position relative to targets.
	if err := s.collectTargets(doc, "document"); err != nil {
		return "", err
	}
	if err := s.verifyIndirect(); err != nil {
		return "", err
	}

	ctx := context{width: s.opts.WrapLength}
	lines, err := s.renderBlocks(doc.Children, ctx, "document")
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}
