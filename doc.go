// Package rstfmt serializes reStructuredText document trees back into
// canonical RST source text.
//
// The writer consumes an already-built document tree (see Node) and
// produces normalized output: consistent spacing, list markers, literal
// block indentation, and reference syntax, while preserving semantic
// meaning. Feeding the output back through a conformant RST parser yields
// a tree equivalent to the input.
//
// Core properties:
//   - Pure computation over an in-memory tree; no I/O inside the core
//   - Two-phase reference resolution: a pre-pass builds the full target
//     registry before rendering consumes it
//   - Width-bounded word wrapping that never splits inline markup spans
//   - Fresh state per render, so independent documents render concurrently
//
// Example:
//
//	doc := rstfmt.NewNode(rstfmt.KindDocument,
//		rstfmt.NewNode(rstfmt.KindParagraph, rstfmt.Textf("Hello, world.")),
//	)
//	err := rstfmt.Render(rstfmt.Request{
//		Document: doc,
//		Writer:   os.Stdout,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Output style is adjustable with Option values such as WithWrapLength.
package rstfmt
