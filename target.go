package rstfmt

import (
	"strings"
)

// targetEntry is one registered hyperlink target.
type targetEntry struct {
	name    string // normalized name, empty for anonymous targets
	uri     string
	refname string // indirect target: name of the target it points at
	path    string // node path, for error reporting

	// implicit targets come from section titles and yield to explicit
	// definitions of the same name without raising a duplicate error.
	implicit bool
}

// targetRegistry tracks hyperlink targets and substitution definitions for
// one render. Anonymous targets form a FIFO queue consumed by anonymous
// references in document order.
type targetRegistry struct {
	named      map[string]targetEntry
	subs       map[string]string
	anonymous  []targetEntry
	anonCursor int
}

func newTargetRegistry() targetRegistry {
	return targetRegistry{
		named: make(map[string]targetEntry),
		subs:  make(map[string]string),
	}
}

// normalizeName folds a reference name the way the parser does: case-folded
// with internal whitespace collapsed to single spaces.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (r *targetRegistry) register(entry targetEntry) error {
	key := normalizeName(entry.name)
	if prev, ok := r.named[key]; ok && !prev.implicit {
		return treeErrorf(ErrDuplicateTarget, entry.path,
			"target %q already defined at %s", entry.name, prev.path)
	}
	entry.name = key
	r.named[key] = entry
	return nil
}

func (r *targetRegistry) registerSubstitution(name, path string) error {
	key := normalizeName(name)
	if prev, ok := r.subs[key]; ok {
		return treeErrorf(ErrDuplicateTarget, path,
			"substitution %q already defined at %s", name, prev)
	}
	r.subs[key] = path
	return nil
}

func (r *targetRegistry) resolves(name string) bool {
	_, ok := r.named[normalizeName(name)]
	return ok
}

func (r *targetRegistry) resolvesSubstitution(name string) bool {
	_, ok := r.subs[normalizeName(name)]
	return ok
}

// consumeAnonymous takes the next anonymous-target slot. The registry is
// fully built before rendering starts, so a reference that appears before
// its target in document order still resolves.
func (r *targetRegistry) consumeAnonymous(path string) error {
	if r.anonCursor >= len(r.anonymous) {
		return treeErrorf(ErrUnresolvedReference, path,
			"anonymous reference %d has no matching target", r.anonCursor+1)
	}
	r.anonCursor++
	return nil
}

// collectTargets is the pre-pass that builds the target registry before the
// rendering pass. It walks the whole tree in document order.
func (s *renderState) collectTargets(n *Node, path string) error {
	switch n.Kind {
	case KindTarget:
		if err := s.collectTarget(n, path); err != nil {
			return err
		}
	case KindSubstitutionDef:
		if err := s.targets.registerSubstitution(n.Name, path); err != nil {
			return err
		}
	case KindFootnote, KindCitation:
		if n.Name != "" {
			if err := s.targets.register(targetEntry{name: n.Name, path: path}); err != nil {
				return err
			}
		}
	case KindSection:
		// Section titles are implicit targets for internal references.
		if len(n.Children) > 0 && n.Children[0].Kind == KindTitle {
			key := normalizeName(n.Children[0].PlainText())
			if _, ok := s.targets.named[key]; !ok && key != "" {
				s.targets.named[key] = targetEntry{name: key, path: path, implicit: true}
			}
		}
	}
	for i, c := range n.Children {
		if err := s.collectTargets(c, childPath(path, c, i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *renderState) collectTarget(n *Node, path string) error {
	if len(n.Children) > 0 {
		// Inline internal target: _`text`.
		return s.targets.register(targetEntry{name: n.PlainText(), path: path})
	}
	if n.Anonymous {
		s.targets.anonymous = append(s.targets.anonymous, targetEntry{uri: n.URI, path: path})
		return nil
	}
	if n.Name == "" {
		return treeErrorf(ErrMalformedTree, path, "named target without a name")
	}
	if n.RefName != "" && !s.targets.resolves(n.RefName) {
		// Indirect targets may point forward; resolution is re-checked
		// during rendering once the registry is complete.
		s.pendingIndirect = append(s.pendingIndirect, indirectCheck{name: n.RefName, path: path})
	}
	return s.targets.register(targetEntry{
		name:    n.Name,
		uri:     n.URI,
		refname: n.RefName,
		path:    path,
	})
}

type indirectCheck struct {
	name string
	path string
}

// verifyIndirect confirms every indirect target points at a registered
// name, after the full pre-pass has run.
func (s *renderState) verifyIndirect() error {
	for _, c := range s.pendingIndirect {
		if !s.targets.resolves(c.name) {
			return treeErrorf(ErrUnresolvedReference, c.path,
				"indirect target points at unknown name %q", c.name)
		}
	}
	s.pendingIndirect = nil
	return nil
}

// renderTargetBlock renders a block-level hyperlink target.
func renderTargetBlock(n *Node) string {
	switch {
	case n.Anonymous:
		return ".. __: " + n.URI
	case n.RefName != "":
		// Indirect target: rendered as indirect syntax, never flattened to
		// the final URI.
		return ".. _`" + n.Name + "`: `" + n.RefName + "`_"
	case n.URI != "":
		return ".. _`" + n.Name + "`: " + n.URI
	default:
		return ".. _`" + n.Name + "`:"
	}
}
