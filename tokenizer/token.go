package tokenizer

import "errors"

// Sentinel errors
var (
	ErrTokenizerStuck   = errors.New("tokenizer stuck")
	ErrUnclosedVerbatim = errors.New("unclosed verbatim environment")
)

// TokenType represents the type of a token
type TokenType int

const (
	EOF TokenType = iota

	// Construct delimiters
	ENV_BEGIN     // \begin{name}
	ENV_END       // \end{name}
	DMATH_BEGIN   // \[
	DMATH_END     // \]
	TMATH_BEGIN   // \(
	TMATH_END     // \)
	GROUP_BEGIN   // {
	GROUP_END     // }
	DOUBLE_DOLLAR // $$
	DOLLAR        // $

	// Atoms
	COMMAND_NAME // \word, or backslash plus one character
	COMMENT      // % up to and including the newline
	TEXT         // run of characters outside \{}$%
	VERBATIM     // captured body of a verbatim-like environment
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ENV_BEGIN:
		return "ENV_BEGIN"
	case ENV_END:
		return "ENV_END"
	case DMATH_BEGIN:
		return "DMATH_BEGIN"
	case DMATH_END:
		return "DMATH_END"
	case TMATH_BEGIN:
		return "TMATH_BEGIN"
	case TMATH_END:
		return "TMATH_END"
	case GROUP_BEGIN:
		return "GROUP_BEGIN"
	case GROUP_END:
		return "GROUP_END"
	case DOUBLE_DOLLAR:
		return "DOUBLE_DOLLAR"
	case DOLLAR:
		return "DOLLAR"
	case COMMAND_NAME:
		return "COMMAND_NAME"
	case COMMENT:
		return "COMMENT"
	case TEXT:
		return "TEXT"
	case VERBATIM:
		return "VERBATIM"
	default:
		return "UNKNOWN"
	}
}

// OpensConstruct reports whether tokens of this type open a recursively
// nestable construct.
func (t TokenType) OpensConstruct() bool {
	switch t {
	case ENV_BEGIN, DMATH_BEGIN, TMATH_BEGIN, GROUP_BEGIN, DOUBLE_DOLLAR, DOLLAR:
		return true
	default:
		return false
	}
}

// IsAtom reports whether tokens of this type are non-recursive lexical units.
func (t TokenType) IsAtom() bool {
	switch t {
	case COMMAND_NAME, COMMENT, TEXT, VERBATIM:
		return true
	default:
		return false
	}
}

// Token represents a token. For ENV_BEGIN and ENV_END the Value is the
// environment name only; for VERBATIM it is the captured body; for every
// other type it is the literal matched text.
type Token struct {
	Type  TokenType
	Value string
	Start Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
