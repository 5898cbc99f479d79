package rstfmt

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTree reports an input node that violates the expected
	// schema: an unknown kind, a missing required attribute, or an inline
	// node in a block position.
	ErrMalformedTree = errors.New("malformed document tree")

	// ErrDuplicateTarget reports two named targets or substitution
	// definitions sharing a name. Names compare case-insensitively with
	// whitespace collapsed.
	ErrDuplicateTarget = errors.New("duplicate target name")

	// ErrUnresolvedReference reports a reference with no corresponding
	// target. Rendering it anyway would produce valid-looking but
	// semantically wrong output, so the render aborts.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// treeErrorf wraps sentinel err with the node path of the offending input.
func treeErrorf(err error, path string, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", path, fmt.Sprintf(format, args...), err)
}

// Warning is a non-fatal rendering condition. Output remains correct RST,
// but callers may want to surface it.
type Warning struct {
	// Line is the overlong output line.
	Line string
	// Width is the configured wrap width the line exceeds.
	Width int
	// Reason describes why the overflow was unavoidable.
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line exceeds width %d (%s): %q", w.Width, w.Reason, w.Line)
}
