package rstfmt

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

// token is a unit of wrappable inline output. Tokens are joined by single
// spaces. Atomic tokens carry inline markup (or markup glued to adjacent
// punctuation through a null escape) and must never be split across lines.
type token struct {
	text   string
	atomic bool
}

// wrapTokens greedily fills lines up to width. The first line is prefixed
// with firstIndent, continuation lines with indent. Token order is
// preserved. A single token wider than the remaining width goes on a line
// of its own; if it exceeds the full width it is allowed to overflow and a
// warning is recorded.
func (s *renderState) wrapTokens(toks []token, width int, indent, firstIndent string) []string {
	if firstIndent == "" {
		firstIndent = indent
	}
	var lines []string
	line := firstIndent
	lineWidth := ansi.PrintableRuneWidth(firstIndent)
	empty := true

	flush := func() {
		lines = append(lines, strings.TrimRight(line, " "))
		line = indent
		lineWidth = ansi.PrintableRuneWidth(indent)
		empty = true
	}

	for _, tok := range toks {
		w := ansi.PrintableRuneWidth(tok.text)
		if !empty && lineWidth+1+w > width {
			flush()
		}
		if !empty {
			line += " "
			lineWidth++
		}
		line += tok.text
		lineWidth += w
		empty = false
		if lineWidth > width {
			reason := "unbreakable word"
			if tok.atomic {
				reason = "unbreakable markup span"
			}
			s.warnOverflow(strings.TrimRight(line, " "), width, reason)
			flush()
		}
	}
	if !empty {
		lines = append(lines, strings.TrimRight(line, " "))
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

func (s *renderState) warnOverflow(line string, width int, reason string) {
	if s.opts.warn == nil {
		return
	}
	s.opts.warn(Warning{Line: line, Width: width, Reason: reason})
}
