package rstfmt

import (
	"encoding/json"
	"fmt"
)

// NodeKind identifies the type of a document tree node. The set is closed:
// the block and inline renderers switch exhaustively over it and reject
// anything else as a malformed tree.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindDocument
	KindSection
	KindTitle
	KindParagraph
	KindText
	KindEmphasis
	KindStrong
	KindLiteral
	KindRole
	KindReference
	KindSubstitutionRef
	KindSubstitutionDef
	KindTarget
	KindBulletList
	KindEnumList
	KindListItem
	KindLiteralBlock
	KindBlockQuote
	KindTransition
	KindComment
	KindDirective
	KindTable
	KindRow
	KindEntry
	KindFootnote
	KindFootnoteRef
	KindCitation
	KindCitationRef
	KindDefinitionList
	KindDefinitionItem
	KindTerm
)

var kindNames = map[NodeKind]string{
	KindDocument:        "document",
	KindSection:         "section",
	KindTitle:           "title",
	KindParagraph:       "paragraph",
	KindText:            "text",
	KindEmphasis:        "emphasis",
	KindStrong:          "strong",
	KindLiteral:         "literal",
	KindRole:            "role",
	KindReference:       "reference",
	KindSubstitutionRef: "substitution_reference",
	KindSubstitutionDef: "substitution_definition",
	KindTarget:          "target",
	KindBulletList:      "bullet_list",
	KindEnumList:        "enumerated_list",
	KindListItem:        "list_item",
	KindLiteralBlock:    "literal_block",
	KindBlockQuote:      "block_quote",
	KindTransition:      "transition",
	KindComment:         "comment",
	KindDirective:       "directive",
	KindTable:           "table",
	KindRow:             "row",
	KindEntry:           "entry",
	KindFootnote:        "footnote",
	KindFootnoteRef:     "footnote_reference",
	KindCitation:        "citation",
	KindCitationRef:     "citation_reference",
	KindDefinitionList:  "definition_list",
	KindDefinitionItem:  "definition_list_item",
	KindTerm:            "term",
}

var kindByName = func() map[string]NodeKind {
	m := make(map[string]NodeKind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalJSON encodes the kind as its stable string name.
func (k NodeKind) MarshalJSON() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown node kind %d", uint8(k))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a kind from its string name.
func (k *NodeKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	kind, ok := kindByName[name]
	if !ok {
		return fmt.Errorf("unknown node kind %q", name)
	}
	*k = kind
	return nil
}

// EnumType is the numbering style of an enumerated list.
type EnumType uint8

const (
	EnumArabic EnumType = iota
	EnumAlphaLower
	EnumAlphaUpper
	EnumRomanLower
	EnumRomanUpper
)

var enumNames = map[EnumType]string{
	EnumArabic:     "arabic",
	EnumAlphaLower: "loweralpha",
	EnumAlphaUpper: "upperalpha",
	EnumRomanLower: "lowerroman",
	EnumRomanUpper: "upperroman",
}

var enumByName = func() map[string]EnumType {
	m := make(map[string]EnumType, len(enumNames))
	for e, name := range enumNames {
		m[name] = e
	}
	return m
}()

func (e EnumType) String() string {
	if name, ok := enumNames[e]; ok {
		return name
	}
	return fmt.Sprintf("enum(%d)", uint8(e))
}

// MarshalJSON encodes the enumeration type as its docutils name.
func (e EnumType) MarshalJSON() ([]byte, error) {
	name, ok := enumNames[e]
	if !ok {
		return nil, fmt.Errorf("unknown enum type %d", uint8(e))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes an enumeration type from its docutils name.
func (e *EnumType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	enum, ok := enumByName[name]
	if !ok {
		return fmt.Errorf("unknown enum type %q", name)
	}
	*e = enum
	return nil
}

// Field is a directive option line, rendered as ":name: value".
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// Node is one node of an externally-built document tree. The writer treats
// nodes as read-only. Which attributes are meaningful depends on Kind; the
// rest stay at their zero values. Trees serialize to JSON with stable kind
// names so they can be piped into the CLI.
type Node struct {
	Kind     NodeKind `json:"kind"`
	Children []*Node  `json:"children,omitempty"`

	// Text is the content of text leaves and the verbatim body of literal
	// blocks and comments.
	Text string `json:"text,omitempty"`

	// Name is the reference/target/substitution/footnote/citation name, the
	// role name of a role node, or the directive name of a directive node.
	Name string `json:"name,omitempty"`

	URI       string `json:"uri,omitempty"`
	RefName   string `json:"refname,omitempty"`
	Anonymous bool   `json:"anonymous,omitempty"`

	// Enumerated list attributes. Start and Step default to 1 when zero.
	Enum   EnumType `json:"enum,omitempty"`
	Prefix string   `json:"prefix,omitempty"`
	Suffix string   `json:"suffix,omitempty"`
	Start  int      `json:"start,omitempty"`
	Step   int      `json:"step,omitempty"`

	// Args holds directive arguments, the language of a classed literal
	// block, and the classifiers of a definition term.
	Args   []string `json:"args,omitempty"`
	Fields []Field  `json:"fields,omitempty"`

	// Header marks a table row as part of the header.
	Header bool `json:"header,omitempty"`

	// Auto marks an auto-numbered footnote or footnote reference.
	Auto bool `json:"auto,omitempty"`
}

// Textf creates a text leaf node.
func Textf(format string, args ...any) *Node {
	return &Node{Kind: KindText, Text: fmt.Sprintf(format, args...)}
}

// NewNode creates a node of the given kind with children.
func NewNode(kind NodeKind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// PlainText returns the concatenated text content of the subtree.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Text
	}
	var out string
	for _, c := range n.Children {
		out += c.PlainText()
	}
	return out
}

func (n *Node) isInline() bool {
	switch n.Kind {
	case KindText, KindEmphasis, KindStrong, KindLiteral, KindRole,
		KindReference, KindSubstitutionRef, KindFootnoteRef, KindCitationRef:
		return true
	case KindTarget:
		// Targets with content are inline internal targets; bare targets
		// are block-level.
		return len(n.Children) > 0
	}
	return false
}
