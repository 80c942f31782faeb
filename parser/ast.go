package parser

import (
	"github.com/texchew/texchew/tokenizer"
)

// NodeKind represents the kind of a syntax tree node
type NodeKind int

const (
	// Document-level synthetic nodes
	FILE NodeKind = iota
	PREAMBLE
	POSTAMBLE
	END // closing sentinel, last child of every construct

	// Constructs
	ENV   // \begin{name} ... \end{name}
	DMATH // \[ ... \] or $$ ... $$
	TMATH // \( ... \) or $ ... $
	GROUP // { ... }

	// Atoms
	CNAME
	COMMENT
	TEXT
	VERB
)

// String returns the string representation of NodeKind
func (k NodeKind) String() string {
	switch k {
	case FILE:
		return "FILE"
	case PREAMBLE:
		return "PREAMBLE"
	case POSTAMBLE:
		return "POSTAMBLE"
	case END:
		return "END"
	case ENV:
		return "ENV"
	case DMATH:
		return "DMATH"
	case TMATH:
		return "TMATH"
	case GROUP:
		return "GROUP"
	case CNAME:
		return "CNAME"
	case COMMENT:
		return "COMMENT"
	case TEXT:
		return "TEXT"
	case VERB:
		return "VERB"
	default:
		return "UNKNOWN"
	}
}

// Node is an element of the syntax tree. For ENV nodes Text is the
// environment name; for atoms and the document-level nodes it is the literal
// source text; for an END sentinel it is the closing token's text.
//
// Children is nil for atoms and the PREAMBLE/POSTAMBLE/END nodes. For every
// construct it is non-empty and its last element is exactly one END node, so
// concatenating the spans of the tree in order reproduces the input exactly.
// The tree is built once and never mutated afterwards.
type Node struct {
	Kind     NodeKind
	Text     string
	Start    tokenizer.Position
	Children []*Node
}

// nodeKind maps an opening or atom token to the kind of the node it produces.
func nodeKind(t tokenizer.TokenType) NodeKind {
	switch t {
	case tokenizer.ENV_BEGIN:
		return ENV
	case tokenizer.DMATH_BEGIN, tokenizer.DOUBLE_DOLLAR:
		return DMATH
	case tokenizer.TMATH_BEGIN, tokenizer.DOLLAR:
		return TMATH
	case tokenizer.GROUP_BEGIN:
		return GROUP
	case tokenizer.COMMAND_NAME:
		return CNAME
	case tokenizer.COMMENT:
		return COMMENT
	case tokenizer.TEXT:
		return TEXT
	case tokenizer.VERBATIM:
		return VERB
	default:
		return END
	}
}
